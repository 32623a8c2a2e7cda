// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// User is the identity of whoever is currently logged in on this store.
// At most one exists at a time; logging in again overwrites it.
type User struct {
	Email    string `json:"email"`    // Free-form, not validated beyond presence.
	Username string `json:"username"` // Display name shown on the dashboard.
}
