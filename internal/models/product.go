package models

import "time"

// ProductID identifies a product in the remote catalog service.
type ProductID int64

// BrandID identifies a phone brand. Brand names are fixed, see BrandName.
type BrandID int64

// Product is a catalog entry as served by the remote service.
// Prices are integer PKR minor units; PKR has no fractional sub-unit, so
// PricePKR is the full rupee amount and all arithmetic stays in int64.
type Product struct {
	ID       ProductID `json:"id"`
	Name     string    `json:"name"`
	Stock    int64     `json:"stock"`
	ImageURL string    `json:"imageUrl"`
	Category string    `json:"category"`
	BrandID  BrandID   `json:"brandId"`
	PricePKR int64     `json:"pricePkr"`
	AddedOn  time.Time `json:"addedOn"`
}

// BrandName maps a brand id to its display name.
func BrandName(id BrandID) string {
	switch id {
	case 1:
		return "Oppo"
	case 2:
		return "Vivo"
	case 3:
		return "Infinix"
	default:
		return "Unknown"
	}
}
