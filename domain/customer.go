package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Customer struct {
	ID        uint                        `gorm:"primaryKey" json:"id"`
	Name      string                      `gorm:"column:name;not null" json:"name"`
	Email     string                      `gorm:"column:email;unique;not null" json:"email"`
	Password  string                      `gorm:"column:password;not null" json:"-"`
	Location  string                      `gorm:"column:location;not null" json:"location"`
	Points    int64                       `gorm:"column:points;not null;default:0" json:"points"`
	Batch     datatypes.JSONSlice[string] `gorm:"column:batch;type:jsonb" json:"batch"`
	Title     string                      `gorm:"column:title;not null" json:"title"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// Standing returns the cached tier and title alongside the point total.
func (c Customer) Standing() PointsStanding {
	return PointsStanding{
		Points: c.Points,
		Tiers:  append([]string(nil), c.Batch...),
		Title:  c.Title,
	}
}

// PointsStanding is a customer's point total with the tier badges and title
// derived from that same total.
type PointsStanding struct {
	Points int64    `json:"points"`
	Tiers  []string `json:"tiers"`
	Title  string   `json:"title"`
}
