package offers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myLocalMarket/domain"
	"myLocalMarket/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// OfferRepository contract interface
type OfferRepository interface {
	// FindBySeller returns offers newest first. sellerID 0 means every seller.
	FindBySeller(ctx context.Context, sellerID uint) ([]domain.ExclusiveOffer, error)
	Create(ctx context.Context, offer *domain.ExclusiveOffer) error
	DeleteOwned(ctx context.Context, sellerID, offerID uint) error
}

// CustomerRepository contract interface
type CustomerRepository interface {
	PointsOf(ctx context.Context, customerID uint) (int64, error)
}

type CreateOfferInput struct {
	Image              string  `validate:"required,url"`
	ProductDescription string  `validate:"required"`
	OldPrice           float64 `validate:"gte=0"`
	NewPrice           float64 `validate:"gte=0"`
	PointThreshold     int64   `validate:"gte=0"`
}

type offersService struct {
	offerRepo    OfferRepository
	customerRepo CustomerRepository
	validate     *validator.Validate
	now          func() time.Time
}

func NewOffersService(offerRepo OfferRepository, customerRepo CustomerRepository, validate *validator.Validate) *offersService {
	return &offersService{
		offerRepo:    offerRepo,
		customerRepo: customerRepo,
		validate:     validate,
		now:          time.Now,
	}
}

// ListExclusiveOffers annotates each offer with whether the viewer has unlocked
// it. The viewer's points are read once so every offer is judged against the
// same total.
func (s *offersService) ListExclusiveOffers(ctx context.Context, viewer domain.Viewer, sellerID uint) ([]domain.ExclusiveOfferView, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var points int64
	if viewer.Authenticated {
		p, err := s.customerRepo.PointsOf(ctx, viewer.CustomerID)
		if err != nil {
			logger.Error("Failed to load customer points", "customer_id", viewer.CustomerID, err)
			return nil, err
		}
		points = p
	}

	offers, err := s.offerRepo.FindBySeller(ctx, sellerID)
	if err != nil {
		logger.Error("Failed to load exclusive offers", "seller_id", sellerID, err)
		return nil, fmt.Errorf("failed to load exclusive offers: %w", err)
	}

	views := make([]domain.ExclusiveOfferView, 0, len(offers))
	for _, offer := range offers {
		views = append(views, domain.ExclusiveOfferView{
			ExclusiveOffer: offer,
			Unlocked:       Gate(viewer, points, offer.PointThreshold),
		})
	}

	return views, nil
}

func (s *offersService) CreateOffer(ctx context.Context, sellerID uint, in CreateOfferInput) (domain.ExclusiveOffer, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExclusiveOffer{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(in); err != nil {
		return domain.ExclusiveOffer{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	offer := domain.ExclusiveOffer{
		SellerID:           sellerID,
		Image:              in.Image,
		ProductDescription: in.ProductDescription,
		OldPrice:           in.OldPrice,
		NewPrice:           in.NewPrice,
		PointThreshold:     in.PointThreshold,
		UploadedDate:       s.now().UTC(),
	}

	if err := s.offerRepo.Create(ctx, &offer); err != nil {
		logger.Error("Failed to create exclusive offer", "seller_id", sellerID, err)
		return domain.ExclusiveOffer{}, err
	}

	return offer, nil
}

func (s *offersService) DeleteOffer(ctx context.Context, sellerID, offerID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.offerRepo.DeleteOwned(ctx, sellerID, offerID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to delete exclusive offer", "offer_id", offerID, err)
		}
		return err
	}

	return nil
}
