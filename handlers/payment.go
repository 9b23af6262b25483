package handlers

import (
	"io"
	"net/http"

	"flupp/models"
	"flupp/services/payment"
	"flupp/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// PaymentHandler exposes intent creation and the processor webhook.
type PaymentHandler struct {
	Service       payment.PaymentService
	WebhookSecret string
	Logger        *zap.Logger
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc payment.PaymentService, webhookSecret string, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Service: svc, WebhookSecret: webhookSecret, Logger: logger}
}

// CreateIntent handles POST /api/payments/create-intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var input models.CreateIntentInput
	if err := c.ShouldBindJSON(&input); err != nil || input.BookingID == "" {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "Booking ID is required")
		return
	}

	result, err := h.Service.CreateIntent(c.Request.Context(), input.BookingID)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Webhook handles POST /api/payments/webhook.
//
// The raw body must be consumed and the signature verified before any
// other stage touches the request; this route therefore binds nothing
// and reads the bytes itself. Signature failures are the only 400 path;
// once the event is authenticated every outcome is acknowledged.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "Unreadable request body")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "Missing stripe-signature header")
		return
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, h.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		h.Logger.Warn("webhook signature verification failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "Webhook signature verification failed")
		return
	}

	ack := h.Service.HandleConfirmation(c.Request.Context(), event)
	c.JSON(http.StatusOK, ack)
}
