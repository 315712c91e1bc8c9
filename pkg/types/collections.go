package types

// Standard collection keys in the local store. Each key holds the full
// serialized sequence for one entity type.
const (
	AccountsCollection    = "accounts"
	StorefrontsCollection = "storefronts"
	ProductsCollection    = "products"
	OrdersCollection      = "orders"
	CustomersCollection   = "customers"
)

// Singleton keys hold a snapshot of the signed-in account or customer, and
// the one-time initialization flag.
const (
	CurrentAccountKey  = "current_account"
	CurrentCustomerKey = "current_customer"
	InitializedKey     = "initialized"
)

// StandardCollectionNames lists all record collections for enumeration,
// in the order they are reconciled against the remote mirror.
var StandardCollectionNames = []string{
	AccountsCollection,
	StorefrontsCollection,
	ProductsCollection,
	OrdersCollection,
	CustomersCollection,
}
