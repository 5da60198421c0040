package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"bazario-bidding/internal/auctionerrors"
	model "bazario-bidding/internal/models"
)

// AuctionStore defines the listing/ledger storage interface for the bidding core.
// Every mutation is atomic per call; AppendBid, CloseListing, CancelListing and
// SettleListing act as compare-and-set guards against concurrent writers.
type AuctionStore interface {
	CreateListing(listing model.Listing) error
	GetListing(listingID string) (model.Listing, error)
	ListOpenListings() ([]model.Listing, error)
	ListExpiredOpen(now time.Time) ([]model.Listing, error)

	// AppendBid appends a ledger entry and advances the listing's denormalized
	// highest-bid fields in one atomic unit. It fails with ErrVersionConflict
	// when expectedSeq no longer matches the ledger length, and with
	// ErrAuctionNotOpen when the listing has been sealed in the meantime.
	AppendBid(bid model.Bid, expectedSeq int) (model.Listing, error)
	GetBidsByListing(listingID string) ([]model.Bid, error)

	// CloseListing transitions open→closed and materializes the Outcome.
	// A listing is closed at most once: a second call fails ErrVersionConflict.
	CloseListing(listingID string, closedAt time.Time) (model.Outcome, error)
	CancelListing(listingID string) error
	SettleListing(listingID string) error

	GetOutcome(listingID string) (model.Outcome, error)
	ListOutcomesByWinner(bidderID string) ([]model.Outcome, error)
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore
type MemoryStore struct {
	mu       sync.RWMutex
	listings map[string]model.Listing // key: listingID
	bids     map[string][]model.Bid   // key: listingID -> ordered ledger
	outcomes map[string]model.Outcome // key: listingID
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		listings: make(map[string]model.Listing),
		bids:     make(map[string][]model.Bid),
		outcomes: make(map[string]model.Outcome),
	}
}

// CreateListing registers a new listing
func (s *MemoryStore) CreateListing(listing model.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listing.ListingID]; ok {
		return fmt.Errorf("create listing %s: %w", listing.ListingID, auctionerrors.ErrVersionConflict)
	}
	s.listings[listing.ListingID] = listing
	return nil
}

// GetListing returns one listing by ID
func (s *MemoryStore) GetListing(listingID string) (model.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.listings[listingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return listing, nil
}

// ListOpenListings returns all listings currently in status open
func (s *MemoryStore) ListOpenListings() ([]model.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var open []model.Listing
	for _, l := range s.listings {
		if l.Status == model.StatusOpen {
			open = append(open, l)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].AuctionEndsAt.Before(open[j].AuctionEndsAt) })
	return open, nil
}

// ListExpiredOpen returns open listings whose auction end time has passed
func (s *MemoryStore) ListExpiredOpen(now time.Time) ([]model.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expired []model.Listing
	for _, l := range s.listings {
		if l.Status == model.StatusOpen && !l.AuctionEndsAt.After(now) {
			expired = append(expired, l)
		}
	}
	return expired, nil
}

// AppendBid records an admitted bid and advances the listing snapshot
func (s *MemoryStore) AppendBid(bid model.Bid, expectedSeq int) (model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.listings[bid.ListingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("append bid for listing %s: %w", bid.ListingID, auctionerrors.ErrListingNotFound)
	}
	if listing.Status != model.StatusOpen {
		return model.Listing{}, fmt.Errorf("append bid for listing %s: %w", bid.ListingID, auctionerrors.ErrAuctionNotOpen)
	}
	if listing.BidCount != expectedSeq {
		return model.Listing{}, fmt.Errorf("append bid for listing %s: expected seq %d, have %d: %w",
			bid.ListingID, expectedSeq, listing.BidCount, auctionerrors.ErrVersionConflict)
	}

	s.bids[bid.ListingID] = append(s.bids[bid.ListingID], bid)

	listing.BidCount++
	listing.CurrentHighestBid = bid.Amount
	listing.CurrentHighestBidder = bid.BidderID
	s.listings[bid.ListingID] = listing

	return listing, nil
}

// GetBidsByListing returns the full ledger for a listing, oldest first
func (s *MemoryStore) GetBidsByListing(listingID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.listings[listingID]; !ok {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return append([]model.Bid(nil), s.bids[listingID]...), nil
}

// CloseListing seals an open listing and materializes its outcome
func (s *MemoryStore) CloseListing(listingID string, closedAt time.Time) (model.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.listings[listingID]
	if !ok {
		return model.Outcome{}, fmt.Errorf("close listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	if listing.Status != model.StatusOpen {
		return model.Outcome{}, fmt.Errorf("close listing %s: status %s: %w", listingID, listing.Status, auctionerrors.ErrVersionConflict)
	}

	listing.Status = model.StatusClosed
	s.listings[listingID] = listing

	outcome := model.Outcome{
		ListingID:     listingID,
		WinnerID:      listing.CurrentHighestBidder,
		WinningAmount: listing.CurrentHighestBid,
		TotalBids:     listing.BidCount,
		ClosedAt:      closedAt,
	}
	s.outcomes[listingID] = outcome
	return outcome, nil
}

// CancelListing transitions open→cancelled; only legal before any bid exists
func (s *MemoryStore) CancelListing(listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.listings[listingID]
	if !ok {
		return fmt.Errorf("cancel listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	if listing.Status != model.StatusOpen || listing.BidCount > 0 {
		return fmt.Errorf("cancel listing %s: %w", listingID, auctionerrors.ErrCancellationNotAllowed)
	}

	listing.Status = model.StatusCancelled
	s.listings[listingID] = listing
	return nil
}

// SettleListing transitions closed→settled once fulfillment completes
func (s *MemoryStore) SettleListing(listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.listings[listingID]
	if !ok {
		return fmt.Errorf("settle listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	if listing.Status != model.StatusClosed {
		return fmt.Errorf("settle listing %s: status %s: %w", listingID, listing.Status, auctionerrors.ErrSettlementNotAllowed)
	}

	listing.Status = model.StatusSettled
	s.listings[listingID] = listing
	return nil
}

// GetOutcome returns the sealed outcome for a listing
func (s *MemoryStore) GetOutcome(listingID string) (model.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	outcome, ok := s.outcomes[listingID]
	if !ok {
		return model.Outcome{}, fmt.Errorf("get outcome for listing %s: %w", listingID, auctionerrors.ErrOutcomeNotFound)
	}
	return outcome, nil
}

// ListOutcomesByWinner returns every outcome won by the given bidder
func (s *MemoryStore) ListOutcomesByWinner(bidderID string) ([]model.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var won []model.Outcome
	for _, o := range s.outcomes {
		if o.WinnerID != "" && o.WinnerID == bidderID {
			won = append(won, o)
		}
	}
	sort.Slice(won, func(i, j int) bool { return won[i].ClosedAt.Before(won[j].ClosedAt) })
	return won, nil
}
