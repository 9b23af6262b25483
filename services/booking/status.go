package booking

import (
	"fmt"

	"flupp/models"
)

// transitions declares every legal status change. Identity transitions
// are handled separately as no-ops. Completed and cancelled have no
// exits: a cancelled booking is never resurrected.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPendingPayment: {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:      {models.StatusInProgress, models.StatusCompleted, models.StatusCancelled},
	models.StatusInProgress:     {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:      {},
	models.StatusCancelled:      {},
}

// statusAliases maps the legacy three-state vocabulary onto the current
// one so older clients keep working.
var statusAliases = map[string]models.BookingStatus{
	"pending": models.StatusPendingPayment,
	"paid":    models.StatusConfirmed,
}

// ParseStatus resolves a client-supplied status string, accepting legacy
// aliases. Unknown values are a validation failure, not a transition one.
func ParseStatus(raw string) (models.BookingStatus, error) {
	if alias, ok := statusAliases[raw]; ok {
		return alias, nil
	}
	status := models.BookingStatus(raw)
	if _, ok := transitions[status]; ok {
		return status, nil
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

// CanTransition reports whether moving from one status to another is
// legal. Identity transitions are allowed and treated as no-ops by the
// caller.
func CanTransition(from, to models.BookingStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsPaid reports whether the status reflects a completed payment.
func IsPaid(status models.BookingStatus) bool {
	switch status {
	case models.StatusConfirmed, models.StatusInProgress, models.StatusCompleted:
		return true
	}
	return false
}
