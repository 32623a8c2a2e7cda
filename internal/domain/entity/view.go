package entity

// View is the panel currently shown to the user.
type View string

const (
	ViewEntry     View = "entry"
	ViewDashboard View = "dashboard"
	ViewCart      View = "cart"
	ViewPurchases View = "purchases"
)

// IsNavigable reports whether v can be reached with an explicit navigation action.
// The entry view is only reached by logging out.
func (v View) IsNavigable() bool {
	switch v {
	case ViewDashboard, ViewCart, ViewPurchases:
		return true
	default:
		return false
	}
}

// EditState is the edit-mode sub-state of the dashboard.
type EditState struct {
	ProductID int64        `json:"product_id"`
	Draft     ProductDraft `json:"draft"`
}

// ViewSnapshot is everything the UI needs to render the current screen.
type ViewSnapshot struct {
	View      View       `json:"view"`
	User      *User      `json:"user,omitempty"`
	CartCount int        `json:"cart_count"`
	Editing   *EditState `json:"editing,omitempty"`
}
