package rest

import (
	"context"
	"net/http"
	"time"

	"myLocalMarket/business/offers"
	"myLocalMarket/domain"
	"myLocalMarket/internal/middleware"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ExclusiveOfferService interface {
	ListExclusiveOffers(ctx context.Context, viewer domain.Viewer, sellerID uint) ([]domain.ExclusiveOfferView, error)
	CreateOffer(ctx context.Context, sellerID uint, in offers.CreateOfferInput) (domain.ExclusiveOffer, error)
	DeleteOffer(ctx context.Context, sellerID, offerID uint) error
}

type ExclusiveOfferHandler struct {
	offerService ExclusiveOfferService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewExclusiveOfferHandler(offerService ExclusiveOfferService, timeout time.Duration) *ExclusiveOfferHandler {
	return &ExclusiveOfferHandler{
		offerService: offerService,
		validator:    validator.New(),
		timeout:      timeout,
	}
}

type CreateExclusiveOfferRequest struct {
	Image              string  `json:"image" validate:"required,url"`
	ProductDescription string  `json:"product_description" validate:"required"`
	OldPrice           float64 `json:"old_price" validate:"gte=0"`
	NewPrice           float64 `json:"new_price" validate:"gte=0"`
	PointThreshold     int64   `json:"point_threshold" validate:"gte=0"`
}

// List is public. Anonymous viewers get every offer locked.
func (h *ExclusiveOfferHandler) List(c echo.Context) error {
	var sellerID uint
	if raw := c.QueryParam("seller_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return badRequest(c, "invalid seller id", nil)
		}
		sellerID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	views, err := h.offerService.ListExclusiveOffers(ctx, viewerFrom(c), sellerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(views))
}

func (h *ExclusiveOfferHandler) Create(c echo.Context) error {
	sellerID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateExclusiveOfferRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "validation failed", err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	offer, err := h.offerService.CreateOffer(ctx, sellerID, offers.CreateOfferInput{
		Image:              req.Image,
		ProductDescription: req.ProductDescription,
		OldPrice:           req.OldPrice,
		NewPrice:           req.NewPrice,
		PointThreshold:     req.PointThreshold,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(offer))
}

func (h *ExclusiveOfferHandler) Delete(c echo.Context) error {
	sellerID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	offerID, err := parseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid offer id", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.offerService.DeleteOffer(ctx, sellerID, offerID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Exclusive offer deleted"))
}
