package router

import (
	"marketSearch/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupSearchRoutes(api *echo.Group, handler *rest.SearchHandler) {
	api.GET("/search", handler.Search)
	api.GET("/trending", handler.Trending)
	api.GET("/recommendations", handler.Recommend)

	products := api.Group("/products")
	products.GET("/:id/similar", handler.Similar)
	products.GET("/:id/related", handler.Related)
}

func SetupCatalogRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
}

func SetupActivityRoutes(api *echo.Group, handler *rest.ActivityHandler) {
	api.POST("/events", handler.RecordEvent)
	api.PUT("/users/:id/preferences", handler.SavePreferences)
}
