// This file implements one-time demo seeding, guarded by the initialized
// flag so a restart never duplicates records.
package store

import "github.com/dukaforge/storefront/pkg/types"

// Fixed demo identifiers so repeated installs stay consistent.
const (
	demoAccountID = "demo_account_001"
	demoStoreID   = "demo_store_001"
	demoStoreCode = "SHOP01"
)

// demoAccount is the merchant account seeded on first start.
var demoAccount = types.Account{
	ID:       demoAccountID,
	Name:     "Dana Silva",
	Email:    "dana@example.com",
	Password: "123456",
	StoreID:  demoStoreID,
}

// demoStorefront is the storefront seeded on first start.
var demoStorefront = types.Storefront{
	ID:              demoStoreID,
	OwnerID:         demoAccountID,
	Name:            "Home Kitchen Delights",
	Slug:            "home-kitchen-delights",
	Code:            demoStoreCode,
	Logo:            "https://picsum.photos/200?random=1",
	Banner:          "https://picsum.photos/800/200?random=2",
	Description:     "Homemade favorites with handpicked ingredients. Order now and get it delivered!",
	WhatsApp:        "15551230000",
	Address:         "123 Flower St, Downtown",
	DeliveryMode:    types.DeliveryBoth,
	DeliveryFee:     5.0,
	DiscountEnabled: true,
	DiscountPercent: 10,
	Hours:           types.OperatingHours{Open: "08:00", Close: "22:00"},
	Theme: &types.Theme{
		PrimaryColor:    "#f97316",
		SecondaryColor:  "#fb923c",
		BackgroundColor: "#fdfcfb",
		TextColor:       "#1e293b",
		AccentColor:     "#22c55e",
		ButtonStyle:     "rounded",
		CardStyle:       "elevated",
		FontSize:        "medium",
		Mode:            "light",
	},
}

// demoProducts is the starter catalog seeded on first start.
var demoProducts = []types.Product{
	{
		ID:          "prod_001",
		Name:        "Smash Burger",
		Description: "Brioche bun, double patty, cheddar, bacon, lettuce and tomato",
		Price:       24.90,
		Image:       "https://picsum.photos/400/300?random=10",
		Category:    types.CategorySavory,
		Active:      true,
		StoreID:     demoStoreID,
	},
	{
		ID:          "prod_002",
		Name:        "Brownie with Ice Cream",
		Description: "Warm brownie served with vanilla ice cream",
		Price:       18.50,
		Image:       "https://picsum.photos/400/300?random=11",
		Category:    types.CategorySweet,
		Active:      true,
		StoreID:     demoStoreID,
	},
	{
		ID:          "prod_003",
		Name:        "Margherita Pizza",
		Description: "Thin crust, tomato sauce, mozzarella and basil",
		Price:       32.00,
		Image:       "https://picsum.photos/400/300?random=12",
		Category:    types.CategorySavory,
		Active:      true,
		StoreID:     demoStoreID,
	},
	{
		ID:          "prod_004",
		Name:        "Fresh Orange Juice",
		Description: "Squeezed to order, 500ml",
		Price:       8.00,
		Image:       "https://picsum.photos/400/300?random=13",
		Category:    types.CategoryDrink,
		Active:      true,
		StoreID:     demoStoreID,
	},
	{
		ID:          "prod_005",
		Name:        "Chicken Croquette",
		Description: "Hand-rolled croquette filled with shredded chicken",
		Price:       6.50,
		Image:       "https://picsum.photos/400/300?random=14",
		Category:    types.CategorySavory,
		Active:      true,
		StoreID:     demoStoreID,
	},
	{
		ID:          "prod_006",
		Name:        "Gourmet Truffle",
		Description: "Handmade chocolate truffle with Belgian cocoa",
		Price:       4.50,
		Image:       "https://picsum.photos/400/300?random=15",
		Category:    types.CategorySweet,
		Active:      true,
		StoreID:     demoStoreID,
	},
}

// Seed writes the demo account, storefront and catalog on first start.
// A repository that has already been initialized is left untouched.
func (r *Repository) Seed() {
	if r.Initialized() {
		return
	}

	r.SaveAccounts([]types.Account{demoAccount})
	r.SaveStorefronts([]types.Storefront{demoStorefront})
	r.SaveProducts(demoProducts)
	r.SaveOrders([]types.Order{})
	r.SaveCustomers([]types.Customer{})
	r.SetInitialized(true)

	r.log.WithField("store_code", demoStoreCode).Info("seeded demo data")
}
