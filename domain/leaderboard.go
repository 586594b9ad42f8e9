package domain

// CustomerRanking carries only what the leaderboard may show about a customer.
type CustomerRanking struct {
	Rank     int    `json:"rank"`
	Location string `json:"location"`
	Points   int64  `json:"points"`
}

type SellerRanking struct {
	Rank         int    `json:"rank"`
	SellerID     uint   `json:"seller_id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	ProfileVisit int64  `json:"profile_visit"`
}
