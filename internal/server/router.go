package server

import (
	"net/http"

	"bazario-bidding/internal/metrics"
	handler "bazario-bidding/services/bidding/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the bidding service
func SetupRouter(service handler.AuctionServiceInterface, m *metrics.AuctionMetrics) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	if m != nil {
		router.Use(MetricsMiddleware(m))
	}

	biddingHandler := handler.NewBiddingHandler(service)

	api := router.Group("/api")

	bids := api.Group("/bids")
	{
		bids.POST("/place", biddingHandler.PlaceBidHandler)
		bids.GET("/active-auctions", biddingHandler.ActiveAuctionsHandler)
		bids.GET("/highest-bidder/:productId", biddingHandler.HighestBidderHandler)
		bids.GET("/history/:productId", biddingHandler.BidHistoryHandler)
	}

	listings := api.Group("/listings")
	{
		listings.POST("", biddingHandler.PublishListingHandler)
		listings.POST("/:id/cancel", biddingHandler.CancelListingHandler)
		listings.POST("/:id/settle", biddingHandler.SettleListingHandler)
		listings.GET("/:id/bid-state", biddingHandler.BidStateHandler)
	}

	api.GET("/b2b/won-auctions/:agencyId", biddingHandler.WonAuctionsHandler)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
