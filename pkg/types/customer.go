package types

// Customer is a buyer account tied to one storefront by code. The identity
// key for dedup and merge is the normalized email, not the record id.
// After creation a customer is only amended to merge in a saved address or
// delivery preference.
type Customer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	StoreCode    string `json:"storeCode"`
	StoreID      string `json:"storeId"`
	Address      string `json:"address,omitempty"`
	DeliveryMode string `json:"deliveryMode,omitempty"`
}
