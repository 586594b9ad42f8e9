package router

import (
	"myLocalMarket/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupCustomerRoutes(api *echo.Group, handler *rest.CustomerHandler, authRequired, customerOnly echo.MiddlewareFunc) {
	customers := api.Group("/customers")

	customers.POST("/register", handler.Register)
	customers.POST("/login", handler.Login)

	me := customers.Group("/me", authRequired, customerOnly)
	me.GET("", handler.Me)
	me.POST("/activities", handler.RecordActivity)
	me.GET("/favorites", handler.ListFavorites)
	me.POST("/favorites", handler.AddFavorite)
	me.DELETE("/favorites/:sellerId", handler.RemoveFavorite)
}

func SetupSellerRoutes(api *echo.Group, handler *rest.SellerHandler, visits *rest.CustomerHandler, optionalAuth echo.MiddlewareFunc) {
	sellers := api.Group("/sellers")

	sellers.POST("/register", handler.Register)
	sellers.POST("/login", handler.Login)
	sellers.GET("/:id", handler.GetSeller)
	sellers.POST("/:id/visits", visits.VisitStore, optionalAuth)
}

func SetupLeaderboardRoutes(api *echo.Group, handler *rest.LeaderboardHandler) {
	leaderboard := api.Group("/leaderboard")

	leaderboard.GET("/customers", handler.Customers)
	leaderboard.GET("/sellers", handler.Sellers)
}

func SetupExclusiveOfferRoutes(api *echo.Group, handler *rest.ExclusiveOfferHandler, optionalAuth, authRequired, sellerOnly echo.MiddlewareFunc) {
	offers := api.Group("/exclusive-offers")

	offers.GET("", handler.List, optionalAuth)
	offers.POST("", handler.Create, authRequired, sellerOnly)
	offers.DELETE("/:id", handler.Delete, authRequired, sellerOnly)
}
