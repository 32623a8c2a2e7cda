package pubsub

import "ecofinds/internal/domain/service"

// checkoutAttributes are the message attributes subscribers filter on.
func checkoutAttributes(event *service.CheckoutEvent) map[string]string {
	attributes := map[string]string{
		"event_type":  "checkout.completed",
		"checkout_id": event.CheckoutID,
	}
	if event.Username != "" {
		attributes["username"] = event.Username
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
