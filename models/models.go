package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer places orders. Active is the account flag checked at order intake;
// an inactive customer cannot place orders.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Restaurant owns products and receives orders. DeliveryFee is snapshotted
// onto every order created against the restaurant.
type Restaurant struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Category    string    `gorm:"index" json:"category"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	DeliveryFee int64     `gorm:"not null;default:0" json:"delivery_fee"` // minor units (cents)
	Rating      *int64    `json:"rating,omitempty"`                       // basis points, 0-50000
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Products []Product `gorm:"foreignKey:RestaurantID" json:"products,omitempty"`
}

// Product belongs to exactly one restaurant. Active means listed in the
// catalog; Available means currently orderable (not out of stock). Both must
// hold for the product to be accepted into a new order.
type Product struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RestaurantID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Name            string         `gorm:"not null" json:"name"`
	Description     string         `json:"description"`
	Category        string         `gorm:"index" json:"category"`
	Price           int64          `gorm:"not null" json:"price"` // minor units (cents)
	OnPromotion     bool           `gorm:"not null;default:false" json:"on_promotion"`
	PromoPrice      *int64         `json:"promo_price,omitempty"`
	ImageURL        string         `json:"image_url"`
	Active          bool           `gorm:"not null;default:true" json:"active"`
	Available       bool           `gorm:"not null;default:true" json:"available"`
	PrepTimeMinutes *int           `json:"prep_time_minutes,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectivePrice is the promotional price when a promotion is active and a
// promotional price is set, else the base price. Order pricing deliberately
// does not use it; new orders always capture the base price.
func (p *Product) EffectivePrice() int64 {
	if p.OnPromotion && p.PromoPrice != nil {
		return *p.PromoPrice
	}
	return p.Price
}

// Orderable reports whether the product can be accepted into a new order.
func (p *Product) Orderable() bool {
	return p.Active && p.Available
}
