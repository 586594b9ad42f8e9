package customer

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"myLocalMarket/business/favorites"
	"myLocalMarket/business/gamification"
	"myLocalMarket/domain"
	"myLocalMarket/pkg/logger"
	"myLocalMarket/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// CustomerRepository contract interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindByID(ctx context.Context, id uint) (domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (domain.Customer, error)
}

// PointsService contract interface
type PointsService interface {
	Award(ctx context.Context, customerID uint, action domain.PointAction) (domain.PointsStanding, error)
}

// FavoritesService contract interface
type FavoritesService interface {
	AddFavorite(ctx context.Context, customerID uint, in favorites.AddFavoriteInput) (domain.FavoriteStore, error)
	RemoveFavorite(ctx context.Context, customerID, sellerID uint) error
	ListFavorites(ctx context.Context, customerID uint) ([]domain.FavoriteStore, error)
}

// SellerVisitRecorder contract interface
type SellerVisitRecorder interface {
	RecordProfileVisit(ctx context.Context, sellerID uint) (int64, error)
}

// Transactor contract interface
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenIssuer contract interface
type TokenIssuer interface {
	GenerateJWT(userID, role string) (string, error)
}

type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Location string `validate:"required"`
}

type LoginResult struct {
	Token    string          `json:"token"`
	Customer domain.Customer `json:"customer"`
}

// VisitResult is what a store page view produced.
type VisitResult struct {
	ProfileVisit int64                  `json:"profile_visit"`
	Standing     *domain.PointsStanding `json:"standing,omitempty"`
}

type customerService struct {
	customerRepo CustomerRepository
	points       PointsService
	favorites    FavoritesService
	sellers      SellerVisitRecorder
	tx           Transactor
	tokens       TokenIssuer
	validate     *validator.Validate
}

func NewCustomerService(
	customerRepo CustomerRepository,
	points PointsService,
	favorites FavoritesService,
	sellers SellerVisitRecorder,
	tx Transactor,
	tokens TokenIssuer,
	validate *validator.Validate,
) *customerService {
	return &customerService{
		customerRepo: customerRepo,
		points:       points,
		favorites:    favorites,
		sellers:      sellers,
		tx:           tx,
		tokens:       tokens,
		validate:     validate,
	}
}

// Register creates the customer at zero points and grants the sign-up bonus
// in the same transaction, so the returned standing already includes it.
func (s *customerService) Register(ctx context.Context, in RegisterInput) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid customer registration", err)
		return domain.Customer{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	existing, err := s.customerRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing.ID > 0 {
		return domain.Customer{}, domain.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to check customer email", err)
		return domain.Customer{}, fmt.Errorf("failed to check email: %w", err)
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.Customer{}, errors.New("failed to hash password")
	}

	tiers, title := gamification.Classify(0)
	customer := domain.Customer{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(passwordHash),
		Location: in.Location,
		Points:   0,
		Batch:    tiers,
		Title:    title,
	}

	var standing domain.PointsStanding
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.customerRepo.Create(ctx, &customer); err != nil {
			logger.Error("Failed to create customer", err)
			return err
		}

		awarded, err := s.points.Award(ctx, customer.ID, domain.ActionRegisterBonus)
		if err != nil {
			logger.Error("Failed to grant register bonus", "customer_id", customer.ID, err)
			return err
		}
		standing = awarded

		return nil
	})
	if err != nil {
		return domain.Customer{}, err
	}

	return withStanding(customer, standing), nil
}

// Login grants the login bonus on every successful login.
func (s *customerService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if err := ctx.Err(); err != nil {
		return LoginResult{}, fmt.Errorf("context error: %w", err)
	}

	customer, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LoginResult{}, domain.ErrInvalidCredentials
		}
		logger.Error("Failed to find customer by email", err)
		return LoginResult{}, err
	}

	if !utils.CheckPassword(password, customer.Password) {
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateJWT(strconv.FormatUint(uint64(customer.ID), 10), utils.RoleCustomer)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return LoginResult{}, errors.New("failed to generate token")
	}

	standing, err := s.points.Award(ctx, customer.ID, domain.ActionLoginBonus)
	if err != nil {
		logger.Error("Failed to grant login bonus", "customer_id", customer.ID, err)
		return LoginResult{}, err
	}

	return LoginResult{Token: token, Customer: withStanding(customer, standing)}, nil
}

func (s *customerService) GetProfile(ctx context.Context, customerID uint) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return domain.Customer{}, err
	}

	customer.Password = ""
	return customer, nil
}

// AddFavoriteStore grants the favorite bonus only when the store was not
// already a favorite. The favorite is kept only if the bonus is granted.
func (s *customerService) AddFavoriteStore(ctx context.Context, customerID uint, in favorites.AddFavoriteInput) (domain.FavoriteStore, domain.PointsStanding, error) {
	var (
		fav      domain.FavoriteStore
		standing domain.PointsStanding
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		fav, err = s.favorites.AddFavorite(ctx, customerID, in)
		if err != nil {
			return err
		}

		standing, err = s.points.Award(ctx, customerID, domain.ActionAddFavoriteBonus)
		if err != nil {
			logger.Error("Failed to grant favorite bonus", "customer_id", customerID, err)
			return err
		}

		return nil
	})
	if err != nil {
		return domain.FavoriteStore{}, domain.PointsStanding{}, err
	}

	return fav, standing, nil
}

func (s *customerService) RemoveFavoriteStore(ctx context.Context, customerID, sellerID uint) error {
	return s.favorites.RemoveFavorite(ctx, customerID, sellerID)
}

func (s *customerService) ListFavoriteStores(ctx context.Context, customerID uint) ([]domain.FavoriteStore, error) {
	return s.favorites.ListFavorites(ctx, customerID)
}

// RecordActivity grants points for an action reported by the client.
func (s *customerService) RecordActivity(ctx context.Context, customerID uint, action domain.PointAction) (domain.PointsStanding, error) {
	if !action.ClientReported() {
		return domain.PointsStanding{}, fmt.Errorf("%w: %q", domain.ErrUnknownAction, action)
	}

	return s.points.Award(ctx, customerID, action)
}

// VisitStore counts a view of a seller's store page. Only signed-in customers
// earn points for it.
func (s *customerService) VisitStore(ctx context.Context, viewer domain.Viewer, sellerID uint) (VisitResult, error) {
	var result VisitResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		visits, err := s.sellers.RecordProfileVisit(ctx, sellerID)
		if err != nil {
			return err
		}

		result.ProfileVisit = visits
		if !viewer.Authenticated {
			return nil
		}

		standing, err := s.points.Award(ctx, viewer.CustomerID, domain.ActionStoreVisit)
		if err != nil {
			logger.Error("Failed to grant store visit points", "customer_id", viewer.CustomerID, err)
			return err
		}
		result.Standing = &standing

		return nil
	})
	if err != nil {
		return VisitResult{}, err
	}

	return result, nil
}

func withStanding(c domain.Customer, standing domain.PointsStanding) domain.Customer {
	c.Password = ""
	c.Points = standing.Points
	c.Batch = standing.Tiers
	c.Title = standing.Title
	return c
}
