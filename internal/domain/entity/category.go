package entity

// Category is the fixed set of listing categories offered by the product form.
type Category string

const (
	CategoryClothing    Category = "Clothing"
	CategoryElectronics Category = "Electronics"
	CategoryBooks       Category = "Books"
	CategoryOther       Category = "Other"
)

// Categories lists every category in the order the form presents them.
func Categories() []Category {
	return []Category{CategoryClothing, CategoryElectronics, CategoryBooks, CategoryOther}
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryClothing, CategoryElectronics, CategoryBooks, CategoryOther:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}
