package types

// Product categories shown on the public storefront page.
const (
	CategorySweet  = "Sweet"
	CategorySavory = "Savory"
	CategoryDrink  = "Drink"
	CategoryCombo  = "Combo"
	CategoryOther  = "Other"
)

// Product is a catalog item. StoreID is a hard ownership reference: items
// are always listed through their storefront.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Active      bool    `json:"isActive"`
	StoreID     string  `json:"storeId"`
}
