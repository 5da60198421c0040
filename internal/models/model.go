package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingStatus represents the lifecycle state of an auction listing
type ListingStatus string

const (
	StatusOpen      ListingStatus = "open"
	StatusClosed    ListingStatus = "closed"
	StatusCancelled ListingStatus = "cancelled"
	StatusSettled   ListingStatus = "settled"
)

// Listing represents a B2B product published for competitive bidding.
// BidCount is the ledger length and doubles as the version for conditional writes.
type Listing struct {
	ListingID            string          `json:"listing_id"`
	SellerID             string          `json:"seller_id"`
	BasePrice            decimal.Decimal `json:"base_price"`
	TotalStock           int             `json:"total_stock"`
	Unit                 string          `json:"unit"`
	AuctionEndsAt        time.Time       `json:"auction_ends_at"`
	Status               ListingStatus   `json:"status"`
	BidCount             int             `json:"bid_count"`
	CurrentHighestBid    decimal.Decimal `json:"current_highest_bid"`
	CurrentHighestBidder string          `json:"current_highest_bidder"`
	CreatedAt            time.Time       `json:"created_at"`
}

// Bid is an immutable ledger entry. Sequence is 1-based and scoped to the listing;
// within a listing, amounts are strictly increasing by sequence.
type Bid struct {
	BidID     string          `json:"bid_id"`
	ListingID string          `json:"listing_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	Sequence  int             `json:"sequence"`
	CreatedAt time.Time       `json:"created_at"`
}

// Outcome is the durable record of a sealed auction. WinnerID is empty when the
// auction closed without bids.
type Outcome struct {
	ListingID     string          `json:"listing_id"`
	WinnerID      string          `json:"winner_id"`
	WinningAmount decimal.Decimal `json:"winning_amount"`
	TotalBids     int             `json:"total_bids"`
	ClosedAt      time.Time       `json:"closed_at"`
}

// HasWinner reports whether the auction closed with at least one admitted bid.
func (o Outcome) HasWinner() bool {
	return o.WinnerID != ""
}
