package types

import "strings"

// Delivery modes offered by a storefront.
const (
	DeliveryPickup  = "pickup"
	DeliveryCourier = "delivery"
	DeliveryBoth    = "both"
)

// OperatingHours describes when a storefront accepts orders.
type OperatingHours struct {
	Open       string `json:"open"`  // HH:mm
	Close      string `json:"close"` // HH:mm
	AlwaysOpen bool   `json:"alwaysOpen"`
}

// Theme holds the public page customization for a storefront.
type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	AccentColor     string `json:"accentColor"`
	ButtonStyle     string `json:"buttonStyle"` // rounded, square, pill
	CardStyle       string `json:"cardStyle"`   // flat, elevated, outlined
	FontSize        string `json:"fontSize"`    // small, medium, large
	Mode            string `json:"mode"`        // light, dark, auto
}

// Storefront is a merchant's public shop. OwnerID is a weak reference back
// to the owning Account; Code is a short human-shareable lookup token,
// intended unique and compared case-insensitively.
type Storefront struct {
	ID              string         `json:"id"`
	OwnerID         string         `json:"ownerId"`
	Name            string         `json:"name"`
	Slug            string         `json:"slug"`
	Code            string         `json:"code"`
	Logo            string         `json:"logo"`
	Banner          string         `json:"banner"`
	Description     string         `json:"description"`
	WhatsApp        string         `json:"whatsapp"`
	Address         string         `json:"address"`
	DeliveryMode    string         `json:"deliveryMode"`
	DeliveryFee     float64        `json:"deliveryFee"`
	FreeDelivery    bool           `json:"freeDelivery"`
	DiscountEnabled bool           `json:"discountEnabled"`
	DiscountPercent float64        `json:"discountPercent"`
	Hours           OperatingHours `json:"hours"`
	Theme           *Theme         `json:"theme,omitempty"`
}

// NormalizeStoreCode upper-cases and trims a storefront lookup code.
func NormalizeStoreCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
