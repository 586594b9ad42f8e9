package rest

import (
	"context"
	"net/http"
	"time"

	"myLocalMarket/business/customer"
	"myLocalMarket/business/favorites"
	"myLocalMarket/domain"
	"myLocalMarket/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CustomerService interface {
	Register(ctx context.Context, in customer.RegisterInput) (domain.Customer, error)
	Login(ctx context.Context, email, password string) (customer.LoginResult, error)
	GetProfile(ctx context.Context, customerID uint) (domain.Customer, error)
	AddFavoriteStore(ctx context.Context, customerID uint, in favorites.AddFavoriteInput) (domain.FavoriteStore, domain.PointsStanding, error)
	RemoveFavoriteStore(ctx context.Context, customerID, sellerID uint) error
	ListFavoriteStores(ctx context.Context, customerID uint) ([]domain.FavoriteStore, error)
	RecordActivity(ctx context.Context, customerID uint, action domain.PointAction) (domain.PointsStanding, error)
	VisitStore(ctx context.Context, viewer domain.Viewer, sellerID uint) (customer.VisitResult, error)
}

type CustomerHandler struct {
	customerService CustomerService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewCustomerHandler(customerService CustomerService, timeout time.Duration) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		validator:       validator.New(),
		timeout:         timeout,
	}
}

type CustomerRegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Location string `json:"location" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ActivityRequest struct {
	Action string `json:"action" validate:"required"`
}

type AddFavoriteRequest struct {
	SellerID    uint   `json:"seller_id" validate:"required"`
	StoreName   string `json:"store_name"`
	StoreAvatar string `json:"store_avatar"`
}

type FavoriteAddedResponse struct {
	Favorite domain.FavoriteStore  `json:"favorite"`
	Standing domain.PointsStanding `json:"standing"`
}

func (h *CustomerHandler) Register(c echo.Context) error {
	var req CustomerRegisterRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return badRequest(c, "invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "validation failed", err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.customerService.Register(ctx, customer.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Location: req.Location,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *CustomerHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return badRequest(c, "invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "validation failed", err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.customerService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *CustomerHandler) Me(c echo.Context) error {
	customerID, ok := currentCustomer(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.customerService.GetProfile(ctx, customerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(profile))
}

func (h *CustomerHandler) RecordActivity(c echo.Context) error {
	customerID, ok := currentCustomer(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ActivityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "validation failed", err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	standing, err := h.customerService.RecordActivity(ctx, customerID, domain.PointAction(req.Action))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(standing))
}

func (h *CustomerHandler) AddFavorite(c echo.Context) error {
	customerID, ok := currentCustomer(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "validation failed", err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	fav, standing, err := h.customerService.AddFavoriteStore(ctx, customerID, favorites.AddFavoriteInput{
		SellerID:    req.SellerID,
		StoreName:   req.StoreName,
		StoreAvatar: req.StoreAvatar,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(FavoriteAddedResponse{
		Favorite: fav,
		Standing: standing,
	}))
}

func (h *CustomerHandler) RemoveFavorite(c echo.Context) error {
	customerID, ok := currentCustomer(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	sellerID, err := parseID(c.Param("sellerId"))
	if err != nil {
		return badRequest(c, "invalid seller id", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.customerService.RemoveFavoriteStore(ctx, customerID, sellerID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Favorite store removed"))
}

func (h *CustomerHandler) ListFavorites(c echo.Context) error {
	customerID, ok := currentCustomer(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	favs, err := h.customerService.ListFavoriteStores(ctx, customerID)
	if err != nil {
		return writeError(c, err)
	}

	if favs == nil {
		favs = []domain.FavoriteStore{}
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(favs))
}

// VisitStore is mounted under /sellers/:id/visits with optional auth.
func (h *CustomerHandler) VisitStore(c echo.Context) error {
	sellerID, err := parseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid seller id", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.customerService.VisitStore(ctx, viewerFrom(c), sellerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}
