// Package kv maps the marketplace records onto a key-value store: one JSON
// document per record, rewritten whole on every change.
package kv

// Record names, identical to the keys the browser build used in local storage.
const (
	userRecord      = "user"
	productsRecord  = "products"
	cartRecord      = "cart"
	purchasesRecord = "purchases"
)

// Keys are the concrete store keys of the four records.
type Keys struct {
	User      string
	Products  string
	Cart      string
	Purchases string
}

// NewKeys prefixes every record name with "<namespace>:". An empty namespace keeps the bare names.
func NewKeys(namespace string) Keys {
	prefix := ""
	if namespace != "" {
		prefix = namespace + ":"
	}

	return Keys{
		User:      prefix + userRecord,
		Products:  prefix + productsRecord,
		Cart:      prefix + cartRecord,
		Purchases: prefix + purchasesRecord,
	}
}
