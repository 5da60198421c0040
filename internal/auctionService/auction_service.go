package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bazario-bidding/internal/auctionerrors"
	"bazario-bidding/internal/events"
	"bazario-bidding/internal/locks"
	"bazario-bidding/internal/metrics"
	"bazario-bidding/internal/models"
	"bazario-bidding/internal/repository"
	"bazario-bidding/utils"

	"github.com/shopspring/decimal"
)

const defaultLockTimeout = 2 * time.Second

// AuctionService owns the bidding lifecycle: admission, state transitions,
// and the read projections. Admission is serialized per listing through a
// keyed mutex, so bids against different listings proceed in parallel while
// two bids on the same listing never validate against the same snapshot.
type AuctionService struct {
	store       repository.AuctionStore
	listingLock *locks.KeyedMutex
	lockTimeout time.Duration
	publisher   events.EventPublisher
	metrics     *metrics.AuctionMetrics
	now         func() time.Time
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store repository.AuctionStore) *AuctionService {
	return &AuctionService{
		store:       store,
		listingLock: locks.NewKeyedMutex(),
		lockTimeout: defaultLockTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithLockTimeout bounds the wait for a listing's admission critical section
func (s *AuctionService) WithLockTimeout(d time.Duration) *AuctionService {
	s.lockTimeout = d
	return s
}

// WithPublisher attaches a Kafka event publisher
func (s *AuctionService) WithPublisher(p events.EventPublisher) *AuctionService {
	s.publisher = p
	return s
}

// WithMetrics attaches prometheus instrumentation
func (s *AuctionService) WithMetrics(m *metrics.AuctionMetrics) *AuctionService {
	s.metrics = m
	return s
}

// WithClock overrides the time source. Tests use this to drive end-time gating.
func (s *AuctionService) WithClock(now func() time.Time) *AuctionService {
	s.now = now
	return s
}

// BidState is the read projection served to bidders before they place a bid.
type BidState struct {
	ListingID            string               `json:"listing_id"`
	Status               models.ListingStatus `json:"status"`
	BasePrice            decimal.Decimal      `json:"base_price"`
	CurrentHighestBid    decimal.Decimal      `json:"current_highest_bid"`
	CurrentHighestBidder string               `json:"current_highest_bidder"`
	IsFirstBid           bool                 `json:"is_first_bid"`
	TotalBids            int                  `json:"total_bids"`
	AuctionEndsAt        time.Time            `json:"auction_ends_at"`
}

// PublishListing creates a new open listing for competitive bidding
func (s *AuctionService) PublishListing(sellerID string, basePrice decimal.Decimal, totalStock int, unit string, endsAt time.Time) (models.Listing, error) {
	if sellerID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - missing sellerID", auctionerrors.ErrInvalidInput)
	}
	if !basePrice.IsPositive() {
		return models.Listing{}, fmt.Errorf("service: %w - base price must be positive", auctionerrors.ErrInvalidInput)
	}
	if totalStock <= 0 {
		return models.Listing{}, fmt.Errorf("service: %w - total stock must be positive", auctionerrors.ErrInvalidInput)
	}
	now := s.now()
	if !endsAt.After(now) {
		return models.Listing{}, fmt.Errorf("service: %w - auction end must be in the future", auctionerrors.ErrInvalidInput)
	}

	listing := models.Listing{
		ListingID:         utils.GenerateID(),
		SellerID:          sellerID,
		BasePrice:         basePrice,
		TotalStock:        totalStock,
		Unit:              unit,
		AuctionEndsAt:     endsAt.UTC(),
		Status:            models.StatusOpen,
		CurrentHighestBid: decimal.Zero,
		CreatedAt:         now,
	}
	if err := s.store.CreateListing(listing); err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to create listing for seller %s: %w", sellerID, err)
	}
	return listing, nil
}

// PlaceBid validates and records a bid under the listing's critical section.
// On admission it returns the new ledger entry and the updated listing snapshot.
func (s *AuctionService) PlaceBid(listingID, bidderID string, amount decimal.Decimal) (models.Bid, models.Listing, error) {
	if listingID == "" || bidderID == "" {
		return models.Bid{}, models.Listing{}, s.reject("invalid_input",
			fmt.Errorf("service: %w - missing listingID or bidderID", auctionerrors.ErrInvalidInput))
	}
	if !amount.IsPositive() {
		return models.Bid{}, models.Listing{}, s.reject("invalid_input",
			fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidInput))
	}

	release, err := s.listingLock.Acquire(listingID, s.lockTimeout)
	if err != nil {
		return models.Bid{}, models.Listing{}, s.reject("busy",
			fmt.Errorf("service: listing %s: %w", listingID, auctionerrors.ErrBusy))
	}
	defer release()

	listing, err := s.store.GetListing(listingID)
	if err != nil {
		return models.Bid{}, models.Listing{}, s.reject("listing_not_found",
			fmt.Errorf("service: %w", err))
	}

	// The end-time check is authoritative even while the closer has not yet
	// flipped the status.
	now := s.now()
	if listing.Status != models.StatusOpen || !now.Before(listing.AuctionEndsAt) {
		return models.Bid{}, models.Listing{}, s.reject("auction_not_open",
			fmt.Errorf("service: listing %s ended at %s: %w", listingID,
				listing.AuctionEndsAt.Format(time.RFC3339), auctionerrors.ErrAuctionNotOpen))
	}
	if bidderID == listing.SellerID {
		return models.Bid{}, models.Listing{}, s.reject("self_seller_bid",
			fmt.Errorf("service: listing %s: %w", listingID, auctionerrors.ErrSelfSellerBid))
	}

	if listing.BidCount == 0 {
		if !amount.Equal(listing.BasePrice) {
			return models.Bid{}, models.Listing{}, s.reject("invalid_first_bid",
				fmt.Errorf("service: %w - base price is %s", auctionerrors.ErrInvalidFirstBid, listing.BasePrice))
		}
	} else if !amount.GreaterThan(listing.CurrentHighestBid) {
		return models.Bid{}, models.Listing{}, s.reject("bid_too_low",
			fmt.Errorf("service: %w - bid must exceed %s", auctionerrors.ErrBidTooLow, listing.CurrentHighestBid))
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		ListingID: listingID,
		BidderID:  bidderID,
		Amount:    amount,
		Sequence:  listing.BidCount + 1,
		CreatedAt: now,
	}

	updated, err := s.store.AppendBid(bid, listing.BidCount)
	if err != nil {
		// The per-listing lock already serializes in-process writers; a CAS
		// miss means another service instance won the race. Retryable.
		if errors.Is(err, auctionerrors.ErrVersionConflict) {
			return models.Bid{}, models.Listing{}, s.reject("busy",
				fmt.Errorf("service: listing %s: %w", listingID, auctionerrors.ErrBusy))
		}
		return models.Bid{}, models.Listing{}, fmt.Errorf("service: failed to record bid for listing %s by bidder %s: %w", listingID, bidderID, err)
	}

	// The bid is committed once AppendBid returns. Publishing happens outside
	// the critical section so a stalled broker cannot starve other bidders on
	// this listing.
	release()

	if s.metrics != nil {
		s.metrics.BidsAdmitted.Inc()
	}
	s.publishBidAdmitted(bid)

	return bid, updated, nil
}

// reject counts the rejection and passes the error through unchanged
func (s *AuctionService) reject(reason string, err error) error {
	if s.metrics != nil {
		s.metrics.BidsRejected.WithLabelValues(reason).Inc()
	}
	return err
}

// CancelListing transitions a listing open→cancelled. Only the seller may
// cancel, and only while the ledger is still empty.
func (s *AuctionService) CancelListing(listingID, sellerID string) error {
	if listingID == "" || sellerID == "" {
		return fmt.Errorf("service: %w - missing listingID or sellerID", auctionerrors.ErrInvalidInput)
	}

	release, err := s.listingLock.Acquire(listingID, s.lockTimeout)
	if err != nil {
		return fmt.Errorf("service: listing %s: %w", listingID, auctionerrors.ErrBusy)
	}
	defer release()

	listing, err := s.store.GetListing(listingID)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if listing.SellerID != sellerID {
		return fmt.Errorf("service: listing %s is not owned by %s: %w", listingID, sellerID, auctionerrors.ErrCancellationNotAllowed)
	}

	if err := s.store.CancelListing(listingID); err != nil {
		return fmt.Errorf("service: failed to cancel listing %s: %w", listingID, err)
	}
	return nil
}

// SettleListing transitions a listing closed→settled once the fulfillment
// collaborator reports the winner's order as created.
func (s *AuctionService) SettleListing(listingID string) error {
	if listingID == "" {
		return fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidInput)
	}
	if err := s.store.SettleListing(listingID); err != nil {
		return fmt.Errorf("service: failed to settle listing %s: %w", listingID, err)
	}
	return nil
}

// CloseExpired seals every open listing whose end time has passed, returning
// the outcomes materialized in this pass. One listing's failure never aborts
// the batch; it stays open-but-expired and is retried on the next scan.
func (s *AuctionService) CloseExpired(now time.Time) ([]models.Outcome, error) {
	expired, err := s.store.ListExpiredOpen(now)
	if err != nil {
		return nil, fmt.Errorf("service: failed to scan expired listings: %w", err)
	}

	var outcomes []models.Outcome
	for _, listing := range expired {
		outcome, err := s.store.CloseListing(listing.ListingID, now)
		if err != nil {
			if errors.Is(err, auctionerrors.ErrVersionConflict) {
				// Another closer sealed it first.
				continue
			}
			utils.Warn("CloseExpired: failed to close listing",
				utils.ListingFields(listing.ListingID, map[string]any{"error": err.Error()}))
			continue
		}

		if s.metrics != nil {
			s.metrics.AuctionsClosed.Inc()
		}
		s.publishAuctionClosed(outcome)
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// GetBidState returns the snapshot a bidder needs to construct a valid bid
func (s *AuctionService) GetBidState(listingID string) (BidState, error) {
	if listingID == "" {
		return BidState{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidInput)
	}

	listing, err := s.store.GetListing(listingID)
	if err != nil {
		return BidState{}, fmt.Errorf("service: %w", err)
	}

	return BidState{
		ListingID:            listing.ListingID,
		Status:               listing.Status,
		BasePrice:            listing.BasePrice,
		CurrentHighestBid:    listing.CurrentHighestBid,
		CurrentHighestBidder: listing.CurrentHighestBidder,
		IsFirstBid:           listing.BidCount == 0,
		TotalBids:            listing.BidCount,
		AuctionEndsAt:        listing.AuctionEndsAt,
	}, nil
}

// GetBidHistory returns the listing's ledger, oldest first
func (s *AuctionService) GetBidHistory(listingID string) ([]models.Bid, error) {
	if listingID == "" {
		return nil, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidInput)
	}

	bids, err := s.store.GetBidsByListing(listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}
	return bids, nil
}

// IsHighestBidder reports whether principalID holds the current highest bid
func (s *AuctionService) IsHighestBidder(listingID, principalID string) (bool, error) {
	if listingID == "" || principalID == "" {
		return false, fmt.Errorf("service: %w - missing listingID or principalID", auctionerrors.ErrInvalidInput)
	}

	listing, err := s.store.GetListing(listingID)
	if err != nil {
		return false, fmt.Errorf("service: %w", err)
	}
	return listing.CurrentHighestBidder == principalID, nil
}

// ActiveAuctions returns open listings still accepting bids. The end-time
// predicate filters listings the closer has not sealed yet.
func (s *AuctionService) ActiveAuctions() ([]models.Listing, error) {
	open, err := s.store.ListOpenListings()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list open listings: %w", err)
	}

	now := s.now()
	active := make([]models.Listing, 0, len(open))
	for _, l := range open {
		if l.AuctionEndsAt.After(now) {
			active = append(active, l)
		}
	}
	return active, nil
}

// WonAuctions returns the outcomes where the given bidder is the winner
func (s *AuctionService) WonAuctions(bidderID string) ([]models.Outcome, error) {
	if bidderID == "" {
		return nil, fmt.Errorf("service: %w - empty bidder ID", auctionerrors.ErrInvalidInput)
	}

	won, err := s.store.ListOutcomesByWinner(bidderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list won auctions for %s: %w", bidderID, err)
	}
	return won, nil
}

func (s *AuctionService) publishBidAdmitted(bid models.Bid) {
	if s.publisher == nil || !s.publisher.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishBidAdmitted(ctx, bid); err != nil {
		utils.Warn("PlaceBid: failed to publish bid.admitted event",
			utils.ListingFields(bid.ListingID, map[string]any{
				"bid_id": bid.BidID,
				"error":  err.Error(),
			}))
	}
}

func (s *AuctionService) publishAuctionClosed(outcome models.Outcome) {
	if s.publisher == nil || !s.publisher.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishAuctionClosed(ctx, outcome); err != nil {
		utils.Warn("CloseExpired: failed to publish auction.closed event",
			utils.ListingFields(outcome.ListingID, map[string]any{"error": err.Error()}))
	}
}
