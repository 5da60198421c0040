package auction

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"bazario-bidding/internal/auctionerrors"
	model "bazario-bidding/internal/models"
	"bazario-bidding/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func openListing(listingID, sellerID string, basePrice int64, bidCount int, highest int64, highestBidder string, endsAt time.Time) model.Listing {
	return model.Listing{
		ListingID:            listingID,
		SellerID:             sellerID,
		BasePrice:            decimal.NewFromInt(basePrice),
		TotalStock:           50,
		Unit:                 "kg",
		AuctionEndsAt:        endsAt,
		Status:               model.StatusOpen,
		BidCount:             bidCount,
		CurrentHighestBid:    decimal.NewFromInt(highest),
		CurrentHighestBidder: highestBidder,
	}
}

// Tests PlaceBid admission rules against a mocked store
func TestAuctionService_PlaceBid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockAuctionStore(ctrl)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	endsAt := now.Add(time.Hour)
	service := NewAuctionService(mockStore).WithClock(func() time.Time { return now })

	tests := []struct {
		name          string
		listingID     string
		bidderID      string
		amount        decimal.Decimal
		mockSetup     func()
		expectedError error
	}{
		{
			name:      "first_bid_at_base_price",
			listingID: "listing1",
			bidderID:  "agencyA",
			amount:    decimal.NewFromInt(100),
			mockSetup: func() {
				listing := openListing("listing1", "seller1", 100, 0, 0, "", endsAt)
				mockStore.EXPECT().GetListing("listing1").Return(listing, nil)
				updated := listing
				updated.BidCount = 1
				updated.CurrentHighestBid = decimal.NewFromInt(100)
				updated.CurrentHighestBidder = "agencyA"
				mockStore.EXPECT().AppendBid(gomock.Any(), 0).Return(updated, nil)
			},
		},
		{
			name:      "first_bid_above_base_price_rejected",
			listingID: "listing1",
			bidderID:  "agencyA",
			amount:    decimal.NewFromInt(120),
			mockSetup: func() {
				mockStore.EXPECT().GetListing("listing1").
					Return(openListing("listing1", "seller1", 100, 0, 0, "", endsAt), nil)
			},
			expectedError: auctionerrors.ErrInvalidFirstBid,
		},
		{
			name:      "first_bid_below_base_price_rejected",
			listingID: "listing1",
			bidderID:  "agencyA",
			amount:    decimal.NewFromInt(80),
			mockSetup: func() {
				mockStore.EXPECT().GetListing("listing1").
					Return(openListing("listing1", "seller1", 100, 0, 0, "", endsAt), nil)
			},
			expectedError: auctionerrors.ErrInvalidFirstBid,
		},
		{
			name:      "subsequent_bid_above_highest",
			listingID: "listing1",
			bidderID:  "agencyB",
			amount:    decimal.NewFromInt(160),
			mockSetup: func() {
				listing := openListing("listing1", "seller1", 100, 2, 150, "agencyA", endsAt)
				mockStore.EXPECT().GetListing("listing1").Return(listing, nil)
				updated := listing
				updated.BidCount = 3
				updated.CurrentHighestBid = decimal.NewFromInt(160)
				updated.CurrentHighestBidder = "agencyB"
				mockStore.EXPECT().AppendBid(gomock.Any(), 2).Return(updated, nil)
			},
		},
		{
			name:      "subsequent_bid_equal_highest_rejected",
			listingID: "listing1",
			bidderID:  "agencyB",
			amount:    decimal.NewFromInt(150),
			mockSetup: func() {
				mockStore.EXPECT().GetListing("listing1").
					Return(openListing("listing1", "seller1", 100, 2, 150, "agencyA", endsAt), nil)
			},
			expectedError: auctionerrors.ErrBidTooLow,
		},
		{
			name:      "self_raise_allowed",
			listingID: "listing1",
			bidderID:  "agencyA",
			amount:    decimal.NewFromInt(160),
			mockSetup: func() {
				listing := openListing("listing1", "seller1", 100, 1, 150, "agencyA", endsAt)
				mockStore.EXPECT().GetListing("listing1").Return(listing, nil)
				updated := listing
				updated.BidCount = 2
				updated.CurrentHighestBid = decimal.NewFromInt(160)
				mockStore.EXPECT().AppendBid(gomock.Any(), 1).Return(updated, nil)
			},
		},
		{
			name:      "seller_bidding_on_own_listing",
			listingID: "listing1",
			bidderID:  "seller1",
			amount:    decimal.NewFromInt(100),
			mockSetup: func() {
				mockStore.EXPECT().GetListing("listing1").
					Return(openListing("listing1", "seller1", 100, 0, 0, "", endsAt), nil)
			},
			expectedError: auctionerrors.ErrSelfSellerBid,
		},
		{
			name:      "expired_but_status_still_open",
			listingID: "listing1",
			bidderID:  "agencyA",
			amount:    decimal.NewFromInt(100),
			mockSetup: func() {
				// The closer has not flipped the status yet; the time check
				// must reject on its own.
				mockStore.EXPECT().GetListing("listing1").
					Return(openListing("listing1", "seller1", 100, 0, 0, "", now.Add(-time.Second)), nil)
			},
			expectedError: auctionerrors.ErrAuctionNotOpen,
		},
		{
			name:      "closed_listing",
			listingID: "listing1",
			bidderID:  "agencyA",
			amount:    decimal.NewFromInt(200),
			mockSetup: func() {
				listing := openListing("listing1", "seller1", 100, 1, 150, "agencyB", endsAt)
				listing.Status = model.StatusClosed
				mockStore.EXPECT().GetListing("listing1").Return(listing, nil)
			},
			expectedError: auctionerrors.ErrAuctionNotOpen,
		},
		{
			name:      "listing_not_found",
			listingID: "listingX",
			bidderID:  "agencyA",
			amount:    decimal.NewFromInt(100),
			mockSetup: func() {
				mockStore.EXPECT().GetListing("listingX").
					Return(model.Listing{}, fmt.Errorf("get listing listingX: %w", auctionerrors.ErrListingNotFound))
			},
			expectedError: auctionerrors.ErrListingNotFound,
		},
		{
			name:          "empty_listing_id",
			listingID:     "",
			bidderID:      "agencyA",
			amount:        decimal.NewFromInt(100),
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:          "empty_bidder_id",
			listingID:     "listing1",
			bidderID:      "",
			amount:        decimal.NewFromInt(100),
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:          "zero_amount",
			listingID:     "listing1",
			bidderID:      "agencyA",
			amount:        decimal.Zero,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:          "negative_amount",
			listingID:     "listing1",
			bidderID:      "agencyA",
			amount:        decimal.NewFromInt(-50),
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:      "storage_conflict_maps_to_busy",
			listingID: "listing1",
			bidderID:  "agencyA",
			amount:    decimal.NewFromInt(100),
			mockSetup: func() {
				mockStore.EXPECT().GetListing("listing1").
					Return(openListing("listing1", "seller1", 100, 0, 0, "", endsAt), nil)
				mockStore.EXPECT().AppendBid(gomock.Any(), 0).
					Return(model.Listing{}, fmt.Errorf("append: %w", auctionerrors.ErrVersionConflict))
			},
			expectedError: auctionerrors.ErrBusy,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			bid, listing, err := service.PlaceBid(tc.listingID, tc.bidderID, tc.amount)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)

				// Validate generated BidID
				require.NotEmpty(t, bid.BidID)
				_, parseErr := uuid.Parse(bid.BidID)
				require.NoError(t, parseErr, "BidID should be a valid UUID")

				require.Equal(t, tc.listingID, bid.ListingID)
				require.Equal(t, tc.bidderID, bid.BidderID)
				require.True(t, bid.Amount.Equal(tc.amount))
				require.Equal(t, now, bid.CreatedAt)

				// Denormalized snapshot advanced with the bid
				require.True(t, listing.CurrentHighestBid.Equal(tc.amount))
				require.Equal(t, bid.Sequence, listing.BidCount)
			}
		})
	}
}

// Tests PublishListing validation
func TestAuctionService_PublishListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockAuctionStore(ctrl)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := NewAuctionService(mockStore).WithClock(func() time.Time { return now })

	tests := []struct {
		name          string
		sellerID      string
		basePrice     decimal.Decimal
		totalStock    int
		endsAt        time.Time
		mockSetup     func()
		expectedError error
	}{
		{
			name:       "valid_listing",
			sellerID:   "seller1",
			basePrice:  decimal.NewFromInt(100),
			totalStock: 50,
			endsAt:     now.Add(48 * time.Hour),
			mockSetup: func() {
				mockStore.EXPECT().CreateListing(gomock.Any()).Return(nil)
			},
		},
		{
			name:          "empty_seller",
			sellerID:      "",
			basePrice:     decimal.NewFromInt(100),
			totalStock:    50,
			endsAt:        now.Add(time.Hour),
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:          "non_positive_base_price",
			sellerID:      "seller1",
			basePrice:     decimal.Zero,
			totalStock:    50,
			endsAt:        now.Add(time.Hour),
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:          "non_positive_stock",
			sellerID:      "seller1",
			basePrice:     decimal.NewFromInt(100),
			totalStock:    0,
			endsAt:        now.Add(time.Hour),
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:          "end_time_in_past",
			sellerID:      "seller1",
			basePrice:     decimal.NewFromInt(100),
			totalStock:    50,
			endsAt:        now.Add(-time.Hour),
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			listing, err := service.PublishListing(tc.sellerID, tc.basePrice, tc.totalStock, "kg", tc.endsAt)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)
				require.NotEmpty(t, listing.ListingID)
				require.Equal(t, model.StatusOpen, listing.Status)
				require.Equal(t, 0, listing.BidCount)
				require.True(t, listing.CurrentHighestBid.IsZero())
			}
		})
	}
}

// Tests read projections against a mocked store
func TestAuctionService_Reads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockAuctionStore(ctrl)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := NewAuctionService(mockStore).WithClock(func() time.Time { return now })

	t.Run("bid_state_first_bid", func(t *testing.T) {
		mockStore.EXPECT().GetListing("listing1").
			Return(openListing("listing1", "seller1", 100, 0, 0, "", now.Add(time.Hour)), nil)

		state, err := service.GetBidState("listing1")
		require.NoError(t, err)
		require.True(t, state.IsFirstBid)
		require.True(t, state.BasePrice.Equal(decimal.NewFromInt(100)))
		require.Empty(t, state.CurrentHighestBidder)
	})

	t.Run("is_highest_bidder", func(t *testing.T) {
		listing := openListing("listing1", "seller1", 100, 3, 180, "agencyA", now.Add(time.Hour))
		mockStore.EXPECT().GetListing("listing1").Return(listing, nil).Times(2)

		is, err := service.IsHighestBidder("listing1", "agencyA")
		require.NoError(t, err)
		require.True(t, is)

		is, err = service.IsHighestBidder("listing1", "agencyB")
		require.NoError(t, err)
		require.False(t, is)
	})

	t.Run("is_highest_bidder_empty_principal", func(t *testing.T) {
		_, err := service.IsHighestBidder("listing1", "")
		require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)
	})

	t.Run("active_auctions_filters_expired", func(t *testing.T) {
		mockStore.EXPECT().ListOpenListings().Return([]model.Listing{
			openListing("live", "seller1", 100, 0, 0, "", now.Add(time.Hour)),
			openListing("expired", "seller1", 100, 0, 0, "", now.Add(-time.Second)),
		}, nil)

		active, err := service.ActiveAuctions()
		require.NoError(t, err)
		require.Len(t, active, 1)
		require.Equal(t, "live", active[0].ListingID)
	})

	t.Run("bid_history_passthrough", func(t *testing.T) {
		ledger := []model.Bid{
			{BidID: "bid1", ListingID: "listing1", BidderID: "agencyA", Amount: decimal.NewFromInt(100), Sequence: 1},
			{BidID: "bid2", ListingID: "listing1", BidderID: "agencyB", Amount: decimal.NewFromInt(120), Sequence: 2},
		}
		mockStore.EXPECT().GetBidsByListing("listing1").Return(ledger, nil)

		bids, err := service.GetBidHistory("listing1")
		require.NoError(t, err)
		require.Equal(t, ledger, bids)
	})

	t.Run("won_auctions_passthrough", func(t *testing.T) {
		outcomes := []model.Outcome{
			{ListingID: "listing1", WinnerID: "agencyA", WinningAmount: decimal.NewFromInt(180), TotalBids: 3, ClosedAt: now},
		}
		mockStore.EXPECT().ListOutcomesByWinner("agencyA").Return(outcomes, nil)

		won, err := service.WonAuctions("agencyA")
		require.NoError(t, err)
		require.Equal(t, outcomes, won)
	})

	t.Run("won_auctions_empty_bidder", func(t *testing.T) {
		_, err := service.WonAuctions("")
		require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)
	})
}

// Tests CancelListing ownership and state rules
func TestAuctionService_CancelListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockAuctionStore(ctrl)
	service := NewAuctionService(mockStore)

	t.Run("seller_cancels_unbid_listing", func(t *testing.T) {
		mockStore.EXPECT().GetListing("listing1").
			Return(openListing("listing1", "seller1", 100, 0, 0, "", time.Now().UTC().Add(time.Hour)), nil)
		mockStore.EXPECT().CancelListing("listing1").Return(nil)

		require.NoError(t, service.CancelListing("listing1", "seller1"))
	})

	t.Run("non_seller_rejected", func(t *testing.T) {
		mockStore.EXPECT().GetListing("listing1").
			Return(openListing("listing1", "seller1", 100, 0, 0, "", time.Now().UTC().Add(time.Hour)), nil)

		err := service.CancelListing("listing1", "someone-else")
		require.ErrorIs(t, err, auctionerrors.ErrCancellationNotAllowed)
	})

	t.Run("store_rejection_propagates", func(t *testing.T) {
		mockStore.EXPECT().GetListing("listing1").
			Return(openListing("listing1", "seller1", 100, 2, 150, "agencyA", time.Now().UTC().Add(time.Hour)), nil)
		mockStore.EXPECT().CancelListing("listing1").
			Return(fmt.Errorf("cancel: %w", auctionerrors.ErrCancellationNotAllowed))

		err := service.CancelListing("listing1", "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrCancellationNotAllowed)
	})

	t.Run("missing_input", func(t *testing.T) {
		require.ErrorIs(t, service.CancelListing("", "seller1"), auctionerrors.ErrInvalidInput)
		require.ErrorIs(t, service.CancelListing("listing1", ""), auctionerrors.ErrInvalidInput)
	})
}
