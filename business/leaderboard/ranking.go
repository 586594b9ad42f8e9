package leaderboard

import (
	"myLocalMarket/domain"
	"sort"
)

const (
	DefaultCustomerLimit = 20
	DefaultSellerLimit   = 10
)

// RankCustomers orders customers by points, highest first. Customers with equal
// points keep their input order, so callers pass them in creation order.
func RankCustomers(customers []domain.Customer, limit int) []domain.CustomerRanking {
	sorted := append([]domain.Customer(nil), customers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	sorted = truncate(sorted, limit)
	out := make([]domain.CustomerRanking, len(sorted))
	for i, c := range sorted {
		out[i] = domain.CustomerRanking{
			Rank:     i + 1,
			Location: c.Location,
			Points:   c.Points,
		}
	}
	return out
}

// RankSellers orders sellers by profile visits, highest first, stable.
func RankSellers(sellers []domain.Seller, limit int) []domain.SellerRanking {
	sorted := append([]domain.Seller(nil), sellers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProfileVisit > sorted[j].ProfileVisit
	})

	sorted = truncate(sorted, limit)
	out := make([]domain.SellerRanking, len(sorted))
	for i, s := range sorted {
		out[i] = domain.SellerRanking{
			Rank:         i + 1,
			SellerID:     s.ID,
			Name:         s.DisplayName(),
			City:         s.City,
			ProfileVisit: s.ProfileVisit,
		}
	}
	return out
}

func truncate[T any](items []T, limit int) []T {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
