package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bazario-bidding/internal/auctionerrors"
	model "bazario-bidding/internal/models"

	_ "github.com/lib/pq"
)

// PostgresStore is an AuctionStore backed by PostgreSQL. Conditional UPDATEs
// on (status, bid_count) provide the compare-and-set guard, so the store stays
// correct when several service instances share one database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the database and bootstraps the schema
func NewPostgresStore(storageURL string) (*PostgresStore, error) {
	const op = "repository.postgres.New"

	db, err := sql.Open("postgres", storageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS listing (
			id TEXT PRIMARY KEY,
			seller_id TEXT NOT NULL,
			base_price NUMERIC(18,2) NOT NULL,
			total_stock INT NOT NULL,
			unit TEXT NOT NULL,
			auction_ends_at TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL,
			bid_count INT NOT NULL DEFAULT 0,
			current_highest_bid NUMERIC(18,2) NOT NULL DEFAULT 0,
			current_highest_bidder TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS bid (
			id TEXT PRIMARY KEY,
			listing_id TEXT NOT NULL REFERENCES listing(id),
			bidder_id TEXT NOT NULL,
			amount NUMERIC(18,2) NOT NULL,
			seq INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE (listing_id, seq)
		);`,
		`CREATE TABLE IF NOT EXISTS outcome (
			listing_id TEXT PRIMARY KEY REFERENCES listing(id),
			winner_id TEXT NOT NULL DEFAULT '',
			winning_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
			total_bids INT NOT NULL,
			closed_at TIMESTAMPTZ NOT NULL
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return &PostgresStore{db: db}, nil
}

const listingColumns = `id, seller_id, base_price, total_stock, unit, auction_ends_at,
	status, bid_count, current_highest_bid, current_highest_bidder, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (model.Listing, error) {
	var l model.Listing
	err := row.Scan(&l.ListingID, &l.SellerID, &l.BasePrice, &l.TotalStock, &l.Unit,
		&l.AuctionEndsAt, &l.Status, &l.BidCount, &l.CurrentHighestBid,
		&l.CurrentHighestBidder, &l.CreatedAt)
	return l, err
}

func scanOutcome(row rowScanner) (model.Outcome, error) {
	var o model.Outcome
	err := row.Scan(&o.ListingID, &o.WinnerID, &o.WinningAmount, &o.TotalBids, &o.ClosedAt)
	return o, err
}

// CreateListing registers a new listing
func (s *PostgresStore) CreateListing(listing model.Listing) error {
	const op = "repository.postgres.CreateListing"

	_, err := s.db.Exec(`INSERT INTO listing (`+listingColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		listing.ListingID, listing.SellerID, listing.BasePrice, listing.TotalStock,
		listing.Unit, listing.AuctionEndsAt, listing.Status, listing.BidCount,
		listing.CurrentHighestBid, listing.CurrentHighestBidder, listing.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetListing returns one listing by ID
func (s *PostgresStore) GetListing(listingID string) (model.Listing, error) {
	const op = "repository.postgres.GetListing"

	row := s.db.QueryRow(`SELECT `+listingColumns+` FROM listing WHERE id = $1`, listingID)
	listing, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Listing{}, fmt.Errorf("%s: %w", op, auctionerrors.ErrListingNotFound)
	}
	if err != nil {
		return model.Listing{}, fmt.Errorf("%s: %w", op, err)
	}
	return listing, nil
}

func (s *PostgresStore) queryListings(op, query string, args ...any) ([]model.Listing, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return listings, nil
}

// ListOpenListings returns all listings currently in status open
func (s *PostgresStore) ListOpenListings() ([]model.Listing, error) {
	return s.queryListings("repository.postgres.ListOpenListings",
		`SELECT `+listingColumns+` FROM listing WHERE status = $1 ORDER BY auction_ends_at`,
		model.StatusOpen)
}

// ListExpiredOpen returns open listings whose auction end time has passed
func (s *PostgresStore) ListExpiredOpen(now time.Time) ([]model.Listing, error) {
	return s.queryListings("repository.postgres.ListExpiredOpen",
		`SELECT `+listingColumns+` FROM listing WHERE status = $1 AND auction_ends_at <= $2`,
		model.StatusOpen, now)
}

// classifyGuardMiss reports why a conditional update touched zero rows
func (s *PostgresStore) classifyGuardMiss(tx *sql.Tx, op, listingID string) error {
	var status model.ListingStatus
	err := tx.QueryRow(`SELECT status FROM listing WHERE id = $1`, listingID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, auctionerrors.ErrListingNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if status != model.StatusOpen {
		return fmt.Errorf("%s: status %s: %w", op, status, auctionerrors.ErrAuctionNotOpen)
	}
	return fmt.Errorf("%s: %w", op, auctionerrors.ErrVersionConflict)
}

// AppendBid records an admitted bid and advances the listing snapshot
func (s *PostgresStore) AppendBid(bid model.Bid, expectedSeq int) (model.Listing, error) {
	const op = "repository.postgres.AppendBid"

	tx, err := s.db.Begin()
	if err != nil {
		return model.Listing{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE listing
		SET bid_count = bid_count + 1, current_highest_bid = $1, current_highest_bidder = $2
		WHERE id = $3 AND status = $4 AND bid_count = $5`,
		bid.Amount, bid.BidderID, bid.ListingID, model.StatusOpen, expectedSeq)
	if err != nil {
		return model.Listing{}, fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Listing{}, s.classifyGuardMiss(tx, op, bid.ListingID)
	}

	_, err = tx.Exec(`INSERT INTO bid (id, listing_id, bidder_id, amount, seq, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		bid.BidID, bid.ListingID, bid.BidderID, bid.Amount, bid.Sequence, bid.CreatedAt)
	if err != nil {
		return model.Listing{}, fmt.Errorf("%s: %w", op, err)
	}

	listing, err := scanListing(tx.QueryRow(`SELECT `+listingColumns+` FROM listing WHERE id = $1`, bid.ListingID))
	if err != nil {
		return model.Listing{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return model.Listing{}, fmt.Errorf("%s: %w", op, err)
	}
	return listing, nil
}

// GetBidsByListing returns the full ledger for a listing, oldest first
func (s *PostgresStore) GetBidsByListing(listingID string) ([]model.Bid, error) {
	const op = "repository.postgres.GetBidsByListing"

	if _, err := s.GetListing(listingID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT id, listing_id, bidder_id, amount, seq, created_at
		FROM bid WHERE listing_id = $1 ORDER BY seq`, listingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bids []model.Bid
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.BidID, &b.ListingID, &b.BidderID, &b.Amount, &b.Sequence, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bids, nil
}

// CloseListing seals an open listing and materializes its outcome
func (s *PostgresStore) CloseListing(listingID string, closedAt time.Time) (model.Outcome, error) {
	const op = "repository.postgres.CloseListing"

	tx, err := s.db.Begin()
	if err != nil {
		return model.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE listing SET status = $1 WHERE id = $2 AND status = $3`,
		model.StatusClosed, listingID, model.StatusOpen)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var status model.ListingStatus
		err := tx.QueryRow(`SELECT status FROM listing WHERE id = $1`, listingID).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return model.Outcome{}, fmt.Errorf("%s: %w", op, auctionerrors.ErrListingNotFound)
		}
		if err != nil {
			return model.Outcome{}, fmt.Errorf("%s: %w", op, err)
		}
		return model.Outcome{}, fmt.Errorf("%s: status %s: %w", op, status, auctionerrors.ErrVersionConflict)
	}

	listing, err := scanListing(tx.QueryRow(`SELECT `+listingColumns+` FROM listing WHERE id = $1`, listingID))
	if err != nil {
		return model.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}

	outcome := model.Outcome{
		ListingID:     listingID,
		WinnerID:      listing.CurrentHighestBidder,
		WinningAmount: listing.CurrentHighestBid,
		TotalBids:     listing.BidCount,
		ClosedAt:      closedAt,
	}
	_, err = tx.Exec(`INSERT INTO outcome (listing_id, winner_id, winning_amount, total_bids, closed_at)
		VALUES ($1,$2,$3,$4,$5)`,
		outcome.ListingID, outcome.WinnerID, outcome.WinningAmount, outcome.TotalBids, outcome.ClosedAt)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return model.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}
	return outcome, nil
}

// CancelListing transitions open→cancelled; only legal before any bid exists
func (s *PostgresStore) CancelListing(listingID string) error {
	const op = "repository.postgres.CancelListing"

	res, err := s.db.Exec(`UPDATE listing SET status = $1
		WHERE id = $2 AND status = $3 AND bid_count = 0`,
		model.StatusCancelled, listingID, model.StatusOpen)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.GetListing(listingID); err != nil {
			return err
		}
		return fmt.Errorf("%s: %w", op, auctionerrors.ErrCancellationNotAllowed)
	}
	return nil
}

// SettleListing transitions closed→settled once fulfillment completes
func (s *PostgresStore) SettleListing(listingID string) error {
	const op = "repository.postgres.SettleListing"

	res, err := s.db.Exec(`UPDATE listing SET status = $1 WHERE id = $2 AND status = $3`,
		model.StatusSettled, listingID, model.StatusClosed)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.GetListing(listingID); err != nil {
			return err
		}
		return fmt.Errorf("%s: %w", op, auctionerrors.ErrSettlementNotAllowed)
	}
	return nil
}

// GetOutcome returns the sealed outcome for a listing
func (s *PostgresStore) GetOutcome(listingID string) (model.Outcome, error) {
	const op = "repository.postgres.GetOutcome"

	row := s.db.QueryRow(`SELECT listing_id, winner_id, winning_amount, total_bids, closed_at
		FROM outcome WHERE listing_id = $1`, listingID)
	outcome, err := scanOutcome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Outcome{}, fmt.Errorf("%s: %w", op, auctionerrors.ErrOutcomeNotFound)
	}
	if err != nil {
		return model.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}
	return outcome, nil
}

// ListOutcomesByWinner returns every outcome won by the given bidder
func (s *PostgresStore) ListOutcomesByWinner(bidderID string) ([]model.Outcome, error) {
	const op = "repository.postgres.ListOutcomesByWinner"

	rows, err := s.db.Query(`SELECT listing_id, winner_id, winning_amount, total_bids, closed_at
		FROM outcome WHERE winner_id = $1 AND winner_id <> '' ORDER BY closed_at`, bidderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var won []model.Outcome
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		won = append(won, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return won, nil
}
