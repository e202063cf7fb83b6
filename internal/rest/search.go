package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"marketSearch/business/search"
	"marketSearch/domain"
	"marketSearch/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	SearchHandler struct {
		validate      *validator.Validate
		searchService SearchService
	}

	SearchService interface {
		Search(ctx context.Context, query string, filters domain.SearchFilters, limit int) ([]domain.ScoredProduct, error)
		Related(ctx context.Context, productID uint64, category, brand string, limit int) ([]domain.ScoredProduct, error)
		Recommend(ctx context.Context, userID uint, limit int) ([]domain.ScoredProduct, error)
		Similar(ctx context.Context, productID uint64, limit int) ([]domain.ScoredProduct, error)
		Trending(ctx context.Context, limit int) ([]domain.ScoredProduct, error)
	}

	SearchQuery struct {
		Q        string  `query:"q" validate:"required"`
		Category string  `query:"category"`
		Brand    string  `query:"brand"`
		MinPrice float64 `query:"min_price"`
		MaxPrice float64 `query:"max_price"`
		N        int     `query:"n"`
	}

	RelatedQuery struct {
		Category string `query:"category"`
		Brand    string `query:"brand"`
		N        int    `query:"n"`
	}

	RecommendQuery struct {
		UserID uint `query:"user_id" validate:"required"`
		N      int  `query:"n"`
	}
)

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{
		validate:      validator.New(),
		searchService: svc,
	}
}

// GET /api/v1/search?q=...&category=...&n=10
func (h *SearchHandler) Search(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.SearchHandlerLatency.WithLabelValues("search").Observe(time.Since(start).Seconds())
	}()

	var q SearchQuery
	if err := c.Bind(&q); err != nil {
		metrics.SearchHandlerRequests.WithLabelValues("search", "error").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		metrics.SearchHandlerRequests.WithLabelValues("search", "error").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	filters := domain.SearchFilters{
		Category: q.Category,
		Brand:    q.Brand,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
	}

	results, err := h.searchService.Search(c.Request().Context(), q.Q, filters, q.N)
	if err != nil {
		if errors.Is(err, search.ErrQueryTooShort) {
			metrics.SearchHandlerRequests.WithLabelValues("search", "error").Inc()
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "please provide a longer search query"})
		}
		metrics.SearchHandlerRequests.WithLabelValues("search", "error").Inc()
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.SearchHandlerRequests.WithLabelValues("search", "ok").Inc()
	return c.JSON(http.StatusOK, fres.Response.StatusOK(results))
}

// GET /api/v1/products/:id/related?category=...&n=10
func (h *SearchHandler) Related(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.SearchHandlerLatency.WithLabelValues("related").Observe(time.Since(start).Seconds())
	}()

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		metrics.SearchHandlerRequests.WithLabelValues("related", "error").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var q RelatedQuery
	if err := c.Bind(&q); err != nil {
		metrics.SearchHandlerRequests.WithLabelValues("related", "error").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	results, err := h.searchService.Related(c.Request().Context(), productID, q.Category, q.Brand, q.N)
	if err != nil {
		metrics.SearchHandlerRequests.WithLabelValues("related", "error").Inc()
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.SearchHandlerRequests.WithLabelValues("related", "ok").Inc()
	return c.JSON(http.StatusOK, fres.Response.StatusOK(results))
}

// GET /api/v1/products/:id/similar?n=5
func (h *SearchHandler) Similar(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.SearchHandlerLatency.WithLabelValues("similar").Observe(time.Since(start).Seconds())
	}()

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		metrics.SearchHandlerRequests.WithLabelValues("similar", "error").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	limit, _ := strconv.Atoi(c.QueryParam("n"))

	results, err := h.searchService.Similar(c.Request().Context(), productID, limit)
	if err != nil {
		metrics.SearchHandlerRequests.WithLabelValues("similar", "error").Inc()
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.SearchHandlerRequests.WithLabelValues("similar", "ok").Inc()
	return c.JSON(http.StatusOK, fres.Response.StatusOK(results))
}

// GET /api/v1/recommendations?user_id=1&n=10
func (h *SearchHandler) Recommend(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.SearchHandlerLatency.WithLabelValues("recommend").Observe(time.Since(start).Seconds())
	}()

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		metrics.SearchHandlerRequests.WithLabelValues("recommend", "error").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		metrics.SearchHandlerRequests.WithLabelValues("recommend", "error").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	results, err := h.searchService.Recommend(c.Request().Context(), q.UserID, q.N)
	if err != nil {
		metrics.SearchHandlerRequests.WithLabelValues("recommend", "error").Inc()
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.SearchHandlerRequests.WithLabelValues("recommend", "ok").Inc()
	return c.JSON(http.StatusOK, fres.Response.StatusOK(results))
}

// GET /api/v1/trending?n=10
func (h *SearchHandler) Trending(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.SearchHandlerLatency.WithLabelValues("trending").Observe(time.Since(start).Seconds())
	}()

	limit, _ := strconv.Atoi(c.QueryParam("n"))

	results, err := h.searchService.Trending(c.Request().Context(), limit)
	if err != nil {
		metrics.SearchHandlerRequests.WithLabelValues("trending", "error").Inc()
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.SearchHandlerRequests.WithLabelValues("trending", "ok").Inc()
	return c.JSON(http.StatusOK, fres.Response.StatusOK(results))
}
