package rest

import (
	"context"
	"net/http"
	"time"

	"myLocalMarket/business/seller"
	"myLocalMarket/domain"
	"myLocalMarket/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SellerService interface {
	Register(ctx context.Context, in seller.RegisterInput) (domain.Seller, error)
	Login(ctx context.Context, email, password string) (seller.LoginResult, error)
	GetSeller(ctx context.Context, id uint) (domain.Seller, error)
}

type SellerHandler struct {
	sellerService SellerService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewSellerHandler(sellerService SellerService, timeout time.Duration) *SellerHandler {
	return &SellerHandler{
		sellerService: sellerService,
		validator:     validator.New(),
		timeout:       timeout,
	}
}

type SellerRegisterRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	City             string `json:"city" validate:"required"`
	Location         string `json:"location" validate:"required"`
	Tel              string `json:"tel" validate:"required"`
	StoreCategory    string `json:"store_category" validate:"required"`
	StoreName        string `json:"store_name"`
	StoreAvatar      string `json:"store_avatar" validate:"omitempty,url"`
	StoreDescription string `json:"store_description"`
}

func (h *SellerHandler) Register(c echo.Context) error {
	var req SellerRegisterRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return badRequest(c, "invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "validation failed", err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.sellerService.Register(ctx, seller.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		City:             req.City,
		Location:         req.Location,
		Tel:              req.Tel,
		StoreCategory:    req.StoreCategory,
		StoreName:        req.StoreName,
		StoreAvatar:      req.StoreAvatar,
		StoreDescription: req.StoreDescription,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *SellerHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "validation failed", err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.sellerService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *SellerHandler) GetSeller(c echo.Context) error {
	sellerID, err := parseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid seller id", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	s, err := h.sellerService.GetSeller(ctx, sellerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(s))
}
