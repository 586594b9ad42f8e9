package seller

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"myLocalMarket/domain"
	"myLocalMarket/pkg/logger"
	"myLocalMarket/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// SellerRepository contract interface
type SellerRepository interface {
	Create(ctx context.Context, seller *domain.Seller) error
	FindByID(ctx context.Context, id uint) (domain.Seller, error)
	FindByEmail(ctx context.Context, email string) (domain.Seller, error)
	IncrementProfileVisit(ctx context.Context, id uint) (int64, error)
}

// TokenIssuer contract interface
type TokenIssuer interface {
	GenerateJWT(userID, role string) (string, error)
}

type RegisterInput struct {
	Name             string `validate:"required"`
	Email            string `validate:"required,email"`
	Password         string `validate:"required,min=8"`
	City             string `validate:"required"`
	Location         string `validate:"required"`
	Tel              string `validate:"required"`
	StoreCategory    string `validate:"required"`
	StoreName        string
	StoreAvatar      string `validate:"omitempty,url"`
	StoreDescription string
}

type LoginResult struct {
	Token  string        `json:"token"`
	Seller domain.Seller `json:"seller"`
}

type sellerService struct {
	sellerRepo SellerRepository
	tokens     TokenIssuer
	validate   *validator.Validate
}

func NewSellerService(sellerRepo SellerRepository, tokens TokenIssuer, validate *validator.Validate) *sellerService {
	return &sellerService{
		sellerRepo: sellerRepo,
		tokens:     tokens,
		validate:   validate,
	}
}

func (s *sellerService) Register(ctx context.Context, in RegisterInput) (domain.Seller, error) {
	if err := ctx.Err(); err != nil {
		return domain.Seller{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid seller registration", err)
		return domain.Seller{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	existing, err := s.sellerRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing.ID > 0 {
		return domain.Seller{}, domain.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to check seller email", err)
		return domain.Seller{}, fmt.Errorf("failed to check email: %w", err)
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.Seller{}, errors.New("failed to hash password")
	}

	seller := domain.Seller{
		Name:             in.Name,
		Email:            in.Email,
		Password:         string(passwordHash),
		City:             in.City,
		Location:         in.Location,
		Tel:              in.Tel,
		StoreCategory:    in.StoreCategory,
		StoreName:        in.StoreName,
		StoreAvatar:      in.StoreAvatar,
		StoreDescription: in.StoreDescription,
	}

	if err := s.sellerRepo.Create(ctx, &seller); err != nil {
		logger.Error("Failed to create seller", err)
		return domain.Seller{}, err
	}

	seller.Password = ""
	return seller, nil
}

func (s *sellerService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if err := ctx.Err(); err != nil {
		return LoginResult{}, fmt.Errorf("context error: %w", err)
	}

	seller, err := s.sellerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LoginResult{}, domain.ErrInvalidCredentials
		}
		logger.Error("Failed to find seller by email", err)
		return LoginResult{}, err
	}

	if !utils.CheckPassword(password, seller.Password) {
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateJWT(strconv.FormatUint(uint64(seller.ID), 10), utils.RoleSeller)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return LoginResult{}, errors.New("failed to generate token")
	}

	seller.Password = ""
	return LoginResult{Token: token, Seller: seller}, nil
}

func (s *sellerService) GetSeller(ctx context.Context, id uint) (domain.Seller, error) {
	if err := ctx.Err(); err != nil {
		return domain.Seller{}, fmt.Errorf("context error: %w", err)
	}

	seller, err := s.sellerRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Seller{}, err
	}

	seller.Password = ""
	return seller, nil
}

// RecordProfileVisit bumps the visit counter and returns the new count.
func (s *sellerService) RecordProfileVisit(ctx context.Context, id uint) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	visits, err := s.sellerRepo.IncrementProfileVisit(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to record profile visit", "seller_id", id, err)
		}
		return 0, err
	}

	return visits, nil
}
