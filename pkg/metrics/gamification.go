package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Points credited to customers, by the action that earned them
	PointsGrantedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gamification_points_granted_total",
		Help: "Total points credited to customers by action",
	}, []string{"action"})

	// Number of grants, by action
	PointGrantsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gamification_point_grants_total",
		Help: "Number of successful point grants by action",
	}, []string{"action"})

	TierPromotionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gamification_tier_promotions_total",
		Help: "Customers crossing into a tier badge",
	}, []string{"tier"})

	FavoriteOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gamification_favorite_outcomes_total",
		Help: "Favorite store add attempts by outcome",
	}, []string{"outcome"})

	LeaderboardCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gamification_leaderboard_cache_total",
		Help: "Leaderboard cache lookups by board and result",
	}, []string{"board", "result"})

	PointsEventsPublishFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gamification_points_events_publish_failures_total",
		Help: "Points granted events that could not be published",
	})
)

func Init() {
	prometheus.MustRegister(
		PointsGrantedTotal,
		PointGrantsTotal,
		TierPromotionsTotal,
		FavoriteOutcomesTotal,
		LeaderboardCacheTotal,
		PointsEventsPublishFailures,
	)
}
