package domain

import "time"

type ExclusiveOffer struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	SellerID           uint      `gorm:"column:seller_id;not null" json:"seller_id"`
	Image              string    `gorm:"column:image;not null" json:"image"`
	ProductDescription string    `gorm:"column:product_description" json:"product_description"`
	OldPrice           float64   `gorm:"column:old_price;type:numeric" json:"old_price"`
	NewPrice           float64   `gorm:"column:new_price;type:numeric" json:"new_price"`
	PointThreshold     int64     `gorm:"column:point_threshold;not null" json:"point_threshold"`
	UploadedDate       time.Time `gorm:"column:uploaded_date" json:"uploaded_date"`
}

func (ExclusiveOffer) TableName() string {
	return "exclusive_offers"
}

// ExclusiveOfferView is an offer as seen by one viewer.
type ExclusiveOfferView struct {
	ExclusiveOffer
	Unlocked bool `json:"unlocked"`
}

// Viewer identifies who is looking at gated content. The zero value is an
// anonymous visitor.
type Viewer struct {
	CustomerID    uint
	Authenticated bool
}

func AnonymousViewer() Viewer {
	return Viewer{}
}

func CustomerViewer(customerID uint) Viewer {
	return Viewer{CustomerID: customerID, Authenticated: true}
}
