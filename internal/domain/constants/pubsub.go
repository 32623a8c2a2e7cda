// Package constants holds values shared between configuration and infrastructure.
package constants

// Pub/Sub providers accepted by pubsub.provider.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// CheckoutSubscription names the push subscription the local publisher imitates.
const CheckoutSubscription = "projects/local/subscriptions/checkout-sub"

// EnvLocal is the env.env value of a developer machine. Push authentication is skipped there.
const EnvLocal = "local"
