package handler

import (
	"fmt"
	"net/http"
	"time"

	auction "bazario-bidding/internal/auctionService"
	model "bazario-bidding/internal/models"
	"bazario-bidding/services/bidding/helpers"
	"bazario-bidding/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AuctionServiceInterface interface {
	PublishListing(sellerID string, basePrice decimal.Decimal, totalStock int, unit string, endsAt time.Time) (model.Listing, error)
	PlaceBid(listingID, bidderID string, amount decimal.Decimal) (model.Bid, model.Listing, error)
	CancelListing(listingID, sellerID string) error
	SettleListing(listingID string) error
	GetBidState(listingID string) (auction.BidState, error)
	GetBidHistory(listingID string) ([]model.Bid, error)
	IsHighestBidder(listingID, principalID string) (bool, error)
	ActiveAuctions() ([]model.Listing, error)
	WonAuctions(bidderID string) ([]model.Outcome, error)
}

type BiddingHandler struct {
	service AuctionServiceInterface
}

func NewBiddingHandler(service AuctionServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// PlaceBidHandler handles POST /api/bids/place
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, listing, err := h.service.PlaceBid(req.ProductID, req.AgencyID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"product_id": req.ProductID,
			"agency_id":  req.AgencyID,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.PlaceBidResponse{
		BidID:                bid.BidID,
		ProductID:            bid.ListingID,
		AgencyID:             bid.BidderID,
		Amount:               bid.Amount,
		Sequence:             bid.Sequence,
		CreatedAt:            bid.CreatedAt.UTC().Format(time.RFC3339),
		CurrentHighestBid:    listing.CurrentHighestBid,
		CurrentHighestBidder: listing.CurrentHighestBidder,
		TotalBids:            listing.BidCount,
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"product_id": bid.ListingID,
		"agency_id":  bid.BidderID,
		"amount":     bid.Amount.String(),
		"sequence":   bid.Sequence,
	})
}

// ActiveAuctionsHandler handles GET /api/bids/active-auctions
func (h *BiddingHandler) ActiveAuctionsHandler(c *gin.Context) {
	listings, err := h.service.ActiveAuctions()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ActiveAuctionsHandler: error retrieving auctions", map[string]any{"error": err.Error()})
		return
	}

	if listings == nil {
		listings = []model.Listing{}
	}

	utils.JSONResponse(c, http.StatusOK, listings, "active auctions retrieved successfully")
	helpers.LogSuccess("ActiveAuctionsHandler", "active auctions retrieved successfully", map[string]any{
		"count": len(listings),
	})
}

// HighestBidderHandler handles GET /api/bids/highest-bidder/:productId.
// With an agencyId query parameter the response also answers "is this
// principal the highest bidder" server-side.
func (h *BiddingHandler) HighestBidderHandler(c *gin.Context) {
	productID := c.Param("productId")

	state, err := h.service.GetBidState(productID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("HighestBidderHandler: error retrieving bid state", map[string]any{"product_id": productID, "error": err.Error()})
		return
	}

	resp := helpers.HighestBidderResponse{
		ProductID:            state.ListingID,
		CurrentHighestBidder: state.CurrentHighestBidder,
	}
	if agencyID := c.Query("agencyId"); agencyID != "" {
		is := state.CurrentHighestBidder == agencyID
		resp.IsHighestBidder = &is
	}

	utils.JSONResponse(c, http.StatusOK, resp, "highest bidder retrieved successfully")
	helpers.LogSuccess("HighestBidderHandler", "highest bidder retrieved successfully", map[string]any{
		"product_id":     productID,
		"highest_bidder": state.CurrentHighestBidder,
	})
}

// BidHistoryHandler handles GET /api/bids/history/:productId
func (h *BiddingHandler) BidHistoryHandler(c *gin.Context) {
	productID := c.Param("productId")

	bids, err := h.service.GetBidHistory(productID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("BidHistoryHandler: error retrieving bids", map[string]any{"product_id": productID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bid history retrieved successfully")
	helpers.LogSuccess("BidHistoryHandler", "bid history retrieved successfully", map[string]any{
		"product_id": productID,
		"count":      len(bids),
	})
}

// WonAuctionsHandler handles GET /api/b2b/won-auctions/:agencyId
func (h *BiddingHandler) WonAuctionsHandler(c *gin.Context) {
	agencyID := c.Param("agencyId")

	won, err := h.service.WonAuctions(agencyID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("WonAuctionsHandler: error retrieving outcomes", map[string]any{"agency_id": agencyID, "error": err.Error()})
		return
	}

	if won == nil {
		won = []model.Outcome{}
	}

	utils.JSONResponse(c, http.StatusOK, won, "won auctions retrieved successfully")
	helpers.LogSuccess("WonAuctionsHandler", "won auctions retrieved successfully", map[string]any{
		"agency_id": agencyID,
		"count":     len(won),
	})
}

// PublishListingHandler handles POST /api/listings
func (h *BiddingHandler) PublishListingHandler(c *gin.Context) {
	var req helpers.PublishListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PublishListingHandler", err)
		return
	}

	listing, err := h.service.PublishListing(req.SellerID, req.BasePrice, req.TotalStock, req.Unit, req.AuctionEndsAt)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PublishListingHandler: failed to publish listing", map[string]any{
			"seller_id": req.SellerID,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, listing, "listing published successfully")
	helpers.LogSuccess("PublishListingHandler", "listing published successfully", map[string]any{
		"listing_id": listing.ListingID,
		"seller_id":  listing.SellerID,
	})
}

// CancelListingHandler handles POST /api/listings/:id/cancel
func (h *BiddingHandler) CancelListingHandler(c *gin.Context) {
	listingID := c.Param("id")

	var req helpers.CancelListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CancelListingHandler", err)
		return
	}

	if err := h.service.CancelListing(listingID, req.SellerID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CancelListingHandler: cancellation rejected", map[string]any{
			"listing_id": listingID,
			"seller_id":  req.SellerID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"listing_id": listingID, "status": model.StatusCancelled}, "listing cancelled successfully")
	helpers.LogSuccess("CancelListingHandler", "listing cancelled successfully", map[string]any{
		"listing_id": listingID,
	})
}

// SettleListingHandler handles POST /api/listings/:id/settle
func (h *BiddingHandler) SettleListingHandler(c *gin.Context) {
	listingID := c.Param("id")

	if err := h.service.SettleListing(listingID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("SettleListingHandler: settlement rejected", map[string]any{
			"listing_id": listingID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"listing_id": listingID, "status": model.StatusSettled}, "listing settled successfully")
	helpers.LogSuccess("SettleListingHandler", "listing settled successfully", map[string]any{
		"listing_id": listingID,
	})
}

// BidStateHandler handles GET /api/listings/:id/bid-state
func (h *BiddingHandler) BidStateHandler(c *gin.Context) {
	listingID := c.Param("id")

	state, err := h.service.GetBidState(listingID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("BidStateHandler: error retrieving bid state", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, state, "bid state retrieved successfully")
	helpers.LogSuccess("BidStateHandler", "bid state retrieved successfully", map[string]any{
		"listing_id": listingID,
		"total_bids": state.TotalBids,
	})
}
