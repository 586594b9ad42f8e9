package domain

import "time"

type Seller struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"column:name;not null" json:"name"`
	Email            string    `gorm:"column:email;unique;not null" json:"email"`
	Password         string    `gorm:"column:password;not null" json:"-"`
	City             string    `gorm:"column:city;not null" json:"city"`
	Location         string    `gorm:"column:location;not null" json:"location"`
	Tel              string    `gorm:"column:tel;not null" json:"tel"`
	StoreCategory    string    `gorm:"column:store_category;not null" json:"store_category"`
	ProfileVisit     int64     `gorm:"column:profile_visit;not null;default:0" json:"profile_visit"`
	StoreName        string    `gorm:"column:store_name" json:"store_name"`
	StoreAvatar      string    `gorm:"column:store_avatar" json:"store_avatar"`
	StoreDescription string    `gorm:"column:store_description" json:"store_description"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Seller) TableName() string {
	return "sellers"
}

// DisplayName is the store name when the seller has set one up.
func (s Seller) DisplayName() string {
	if s.StoreName != "" {
		return s.StoreName
	}
	return s.Name
}
