package helpers

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs. Wire field names follow the storefront's existing contract
// (productId / agencyId).
type PlaceBidRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	AgencyID  string          `json:"agencyId" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

type PublishListingRequest struct {
	SellerID      string          `json:"sellerId" binding:"required"`
	BasePrice     decimal.Decimal `json:"basePrice" binding:"required"`
	TotalStock    int             `json:"totalStock" binding:"required,gt=0"`
	Unit          string          `json:"unit" binding:"required"`
	AuctionEndsAt time.Time       `json:"auctionEndsAt" binding:"required"`
}

type CancelListingRequest struct {
	SellerID string `json:"sellerId" binding:"required"`
}

// Response DTOs
type PlaceBidResponse struct {
	BidID                string          `json:"bid_id"`
	ProductID            string          `json:"productId"`
	AgencyID             string          `json:"agencyId"`
	Amount               decimal.Decimal `json:"amount"`
	Sequence             int             `json:"sequence"`
	CreatedAt            string          `json:"created_at"`
	CurrentHighestBid    decimal.Decimal `json:"current_highest_bid"`
	CurrentHighestBidder string          `json:"current_highest_bidder"`
	TotalBids            int             `json:"total_bids"`
}

type HighestBidderResponse struct {
	ProductID            string `json:"productId"`
	CurrentHighestBidder string `json:"currentHighestBidder"`
	IsHighestBidder      *bool  `json:"isHighestBidder,omitempty"`
}
