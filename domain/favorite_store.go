package domain

import "time"

// CREATE UNIQUE INDEX idx_favorite_stores_customer_seller ON favorite_stores (customer_id, seller_id);

type FavoriteStore struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CustomerID  uint      `gorm:"column:customer_id;not null;uniqueIndex:idx_favorite_stores_customer_seller" json:"-"`
	SellerID    uint      `gorm:"column:seller_id;not null;uniqueIndex:idx_favorite_stores_customer_seller" json:"seller_id"`
	StoreName   string    `gorm:"column:store_name" json:"store_name"`
	StoreAvatar string    `gorm:"column:store_avatar" json:"store_avatar"`
	AddedAt     time.Time `gorm:"column:added_at;not null" json:"added_at"`
}

func (FavoriteStore) TableName() string {
	return "favorite_stores"
}
