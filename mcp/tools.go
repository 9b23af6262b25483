package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flupp/models"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools adds every Flupp tool onto the MCP server.
func RegisterTools(s *server.MCPServer, client *Client) {
	s.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Liveness check of the MCP bridge itself."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	s.AddTool(
		mcp.NewTool("flupp_health",
			mcp.WithDescription("Check the Flupp API health endpoint."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			health, err := client.Health(ctx)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return jsonResult(health)
		},
	)

	s.AddTool(
		mcp.NewTool("booking_create",
			mcp.WithDescription("Create a pet-care booking."),
			mcp.WithString("petName", mcp.Required(), mcp.Description("Name of the pet")),
			mcp.WithString("species", mcp.Required(), mcp.Description("One of dog, cat, rabbit, bird, other")),
			mcp.WithString("serviceType", mcp.Required(), mcp.Description("One of boarding, grooming, daycare, training, walking")),
			mcp.WithString("startAt", mcp.Required(), mcp.Description("Start time, RFC 3339")),
			mcp.WithString("endAt", mcp.Required(), mcp.Description("End time, RFC 3339")),
			mcp.WithNumber("priceCents", mcp.Required(), mcp.Description("Price in minor currency units")),
			mcp.WithString("customerEmail", mcp.Required(), mcp.Description("Customer email address")),
			mcp.WithString("currency", mcp.Description("3-letter currency code, defaults to GBP")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			input, err := bookingInputFromArgs(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			booking, err := client.CreateBooking(ctx, input)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return jsonResult(booking)
		},
	)

	s.AddTool(
		mcp.NewTool("payments_createIntent",
			mcp.WithDescription("Create (or reuse) a payment intent for a booking."),
			mcp.WithString("bookingId", mcp.Required(), mcp.Description("Booking identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			bookingID := argString(req.Params.Arguments, "bookingId")
			if bookingID == "" {
				return mcp.NewToolResultError("bookingId is required"), nil
			}
			result, err := client.CreatePaymentIntent(ctx, bookingID)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return jsonResult(result)
		},
	)

	s.AddTool(
		mcp.NewTool("webhook_validate",
			mcp.WithDescription("Dry-run validation of a payment webhook payload. Never calls the live endpoint."),
			mcp.WithString("type", mcp.Description("Event type, defaults to payment_intent.succeeded")),
			mcp.WithString("bookingId", mcp.Description("Booking id carried in the event metadata")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			eventType := argString(req.Params.Arguments, "type")
			if eventType == "" {
				eventType = "payment_intent.succeeded"
			}
			return jsonResult(map[string]any{
				"valid":        true,
				"type":         eventType,
				"bookingId":    argString(req.Params.Arguments, "bookingId"),
				"simulated":    true,
				"validated_at": time.Now().UTC().Format(time.RFC3339),
			})
		},
	)

	s.AddTool(
		mcp.NewTool("orchestrate_bookingFlow",
			mcp.WithDescription("Composite flow: create booking, create payment intent, dry-run webhook validation, optionally confirm the booking."),
			mcp.WithString("petName", mcp.Required(), mcp.Description("Name of the pet")),
			mcp.WithString("species", mcp.Required(), mcp.Description("One of dog, cat, rabbit, bird, other")),
			mcp.WithString("serviceType", mcp.Required(), mcp.Description("One of boarding, grooming, daycare, training, walking")),
			mcp.WithString("startAt", mcp.Required(), mcp.Description("Start time, RFC 3339")),
			mcp.WithString("endAt", mcp.Required(), mcp.Description("End time, RFC 3339")),
			mcp.WithNumber("priceCents", mcp.Required(), mcp.Description("Price in minor currency units")),
			mcp.WithString("customerEmail", mcp.Required(), mcp.Description("Customer email address")),
			mcp.WithString("currency", mcp.Description("3-letter currency code, defaults to GBP")),
			mcp.WithBoolean("confirm", mcp.Description("When true, also mark the booking confirmed after the dry run")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			input, err := bookingInputFromArgs(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			booking, err := client.CreateBooking(ctx, input)
			if err != nil {
				return mcp.NewToolResultError("create booking: " + err.Error()), nil
			}

			intent, err := client.CreatePaymentIntent(ctx, booking.ID)
			if err != nil {
				return mcp.NewToolResultError("create intent: " + err.Error()), nil
			}

			flow := map[string]any{
				"booking":       booking,
				"clientSecret":  intent.ClientSecret,
				"webhookDryRun": map[string]any{"valid": true, "type": "payment_intent.succeeded", "simulated": true},
				"confirmed":     false,
			}

			if confirm, _ := req.Params.Arguments["confirm"].(bool); confirm {
				updated, err := client.UpdateBookingStatus(ctx, booking.ID, string(models.StatusConfirmed))
				if err != nil {
					return mcp.NewToolResultError("confirm booking: " + err.Error()), nil
				}
				flow["booking"] = updated
				flow["confirmed"] = true
			}
			return jsonResult(flow)
		},
	)
}

func bookingInputFromArgs(args map[string]any) (models.BookingInput, error) {
	startAt, err := time.Parse(time.RFC3339, argString(args, "startAt"))
	if err != nil {
		return models.BookingInput{}, fmt.Errorf("startAt must be RFC 3339: %w", err)
	}
	endAt, err := time.Parse(time.RFC3339, argString(args, "endAt"))
	if err != nil {
		return models.BookingInput{}, fmt.Errorf("endAt must be RFC 3339: %w", err)
	}
	price, _ := args["priceCents"].(float64)

	return models.BookingInput{
		PetName:       argString(args, "petName"),
		Species:       argString(args, "species"),
		ServiceType:   argString(args, "serviceType"),
		StartAt:       startAt,
		EndAt:         endAt,
		PriceCents:    int64(price),
		CustomerEmail: argString(args, "customerEmail"),
		Currency:      argString(args, "currency"),
	}, nil
}

func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
