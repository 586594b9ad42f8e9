package points

import (
	"context"
	"fmt"
	"myLocalMarket/business/gamification"
	"myLocalMarket/domain"
	"myLocalMarket/pkg/logger"
	"myLocalMarket/pkg/metrics"
	"time"

	"github.com/google/uuid"
)

// DeriveFunc recomputes the cached tier badges and title from a point total.
type DeriveFunc func(points int64) (tiers []string, title string)

// CustomerRepository contract interface
type CustomerRepository interface {
	// AddPoints atomically increments the customer's points by amount and
	// stores derive(newPoints) in the same unit of work.
	AddPoints(ctx context.Context, customerID uint, amount int64, derive DeriveFunc) (domain.Customer, error)
}

// EventPublisher contract interface
type EventPublisher interface {
	PublishPointsGranted(ctx context.Context, event domain.PointsGranted) error
}

type pointsService struct {
	customerRepo CustomerRepository
	publisher    EventPublisher
	now          func() time.Time
}

// NewPointsService builds the ledger. publisher may be nil.
func NewPointsService(customerRepo CustomerRepository, publisher EventPublisher) *pointsService {
	return &pointsService{
		customerRepo: customerRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

// GrantPoints credits an arbitrary positive amount.
func (s *pointsService) GrantPoints(ctx context.Context, customerID uint, amount int64) (domain.PointsStanding, error) {
	return s.grant(ctx, customerID, amount, domain.ActionManual)
}

// Award credits the fixed amount for action.
func (s *pointsService) Award(ctx context.Context, customerID uint, action domain.PointAction) (domain.PointsStanding, error) {
	amount, ok := action.Points()
	if !ok {
		logger.Warn("Unknown point action", "action", action)
		return domain.PointsStanding{}, fmt.Errorf("%w: %q", domain.ErrUnknownAction, action)
	}

	return s.grant(ctx, customerID, amount, action)
}

func (s *pointsService) grant(ctx context.Context, customerID uint, amount int64, action domain.PointAction) (domain.PointsStanding, error) {
	if err := ctx.Err(); err != nil {
		return domain.PointsStanding{}, fmt.Errorf("context error: %w", err)
	}

	if amount <= 0 {
		return domain.PointsStanding{}, domain.ErrInvalidAmount
	}

	customer, err := s.customerRepo.AddPoints(ctx, customerID, amount, gamification.Classify)
	if err != nil {
		logger.Error("Failed to grant points", "customer_id", customerID, "action", action, "error", err)
		return domain.PointsStanding{}, err
	}

	standing := customer.Standing()
	previous := standing.Points - amount
	gained := gamification.NewTiers(gamification.ClassifyTiers(previous), standing.Tiers)

	metrics.PointGrantsTotal.WithLabelValues(string(action)).Inc()
	metrics.PointsGrantedTotal.WithLabelValues(string(action)).Add(float64(amount))
	for _, tier := range gained {
		metrics.TierPromotionsTotal.WithLabelValues(tier).Inc()
	}

	logger.Debug("points_granted",
		"customer_id", customerID,
		"action", action,
		"amount", amount,
		"points", standing.Points,
		"title", standing.Title,
	)

	s.publish(ctx, domain.PointsGranted{
		EventID:        uuid.NewString(),
		CustomerID:     customerID,
		Action:         action,
		Amount:         amount,
		PreviousPoints: previous,
		Points:         standing.Points,
		Tiers:          standing.Tiers,
		NewTiers:       gained,
		Title:          standing.Title,
		OccurredAt:     s.now().UTC(),
	})

	return standing, nil
}

// publish is best effort: the grant is already committed.
func (s *pointsService) publish(ctx context.Context, event domain.PointsGranted) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishPointsGranted(ctx, event); err != nil {
		metrics.PointsEventsPublishFailures.Inc()
		logger.Warn("Failed to publish points granted event", "customer_id", event.CustomerID, "error", err)
	}
}
