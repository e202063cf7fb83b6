package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"marketSearch/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type (
	ActivityService interface {
		RecordEvent(ctx context.Context, event domain.InteractionEvent) error
		SavePreferences(ctx context.Context, prefs domain.UserPreferences) error
	}

	ActivityHandler struct {
		validate        *validator.Validate
		activityService ActivityService
	}

	EventRequest struct {
		UserID    uint              `json:"user_id" validate:"required"`
		ProductID uint64            `json:"product_id" validate:"required"`
		EventType string            `json:"event_type" validate:"required,oneof=view purchase"`
		Context   datatypes.JSONMap `json:"context"`
	}

	PreferencesRequest struct {
		Categories  []string `json:"categories"`
		Brands      []string `json:"brands"`
		MinPrice    float64  `json:"min_price" validate:"gte=0"`
		MaxPrice    float64  `json:"max_price" validate:"gte=0"`
		WPrice      float64  `json:"w_price" validate:"gte=0"`
		WBrand      float64  `json:"w_brand" validate:"gte=0"`
		WCategory   float64  `json:"w_category" validate:"gte=0"`
		WPopularity float64  `json:"w_popularity" validate:"gte=0"`
	}
)

func NewActivityHandler(svc ActivityService) *ActivityHandler {
	return &ActivityHandler{
		validate:        validator.New(),
		activityService: svc,
	}
}

// POST /api/v1/events
func (h *ActivityHandler) RecordEvent(c echo.Context) error {
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	event := domain.InteractionEvent{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		EventType: req.EventType,
		Context:   req.Context,
	}

	if err := h.activityService.RecordEvent(c.Request().Context(), event); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("Event recorded"))
}

// PUT /api/v1/users/:id/preferences
func (h *ActivityHandler) SavePreferences(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || userID == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user id"})
	}

	var req PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	prefs := domain.UserPreferences{
		UserID:      uint(userID),
		Categories:  datatypes.NewJSONSlice(req.Categories),
		Brands:      datatypes.NewJSONSlice(req.Brands),
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		WPrice:      req.WPrice,
		WBrand:      req.WBrand,
		WCategory:   req.WCategory,
		WPopularity: req.WPopularity,
	}

	if err := h.activityService.SavePreferences(c.Request().Context(), prefs); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Preferences saved"))
}
