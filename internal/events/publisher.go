package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	model "bazario-bidding/internal/models"

	"github.com/segmentio/kafka-go"
)

const (
	TopicBidAdmitted   = "bazario.bid.admitted"
	TopicAuctionClosed = "bazario.auction.closed"
)

// BidAdmittedEvent is emitted after a bid clears admission.
type BidAdmittedEvent struct {
	BidID     string    `json:"bid_id"`
	ListingID string    `json:"listing_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    string    `json:"amount"`
	Sequence  int       `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
}

// AuctionClosedEvent is emitted once per listing when the closer seals it.
type AuctionClosedEvent struct {
	ListingID     string    `json:"listing_id"`
	WinnerID      string    `json:"winner_id,omitempty"`
	WinningAmount string    `json:"winning_amount"`
	TotalBids     int       `json:"total_bids"`
	ClosedAt      time.Time `json:"closed_at"`
}

// EventPublisher is the sink the bidding service emits lifecycle events to.
type EventPublisher interface {
	Enabled() bool
	PublishBidAdmitted(ctx context.Context, bid model.Bid) error
	PublishAuctionClosed(ctx context.Context, outcome model.Outcome) error
}

// Publisher writes bidding events to Kafka. With no brokers configured the
// publisher is disabled and every Publish call is a no-op.
type Publisher struct {
	brokers     []string
	bidWriter   *kafka.Writer
	closeWriter *kafka.Writer
}

// NewPublisher parses a comma-separated broker list
func NewPublisher(brokersCSV string) *Publisher {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}

	p := &Publisher{brokers: brokers}
	if p.Enabled() {
		p.bidWriter = p.newWriter(TopicBidAdmitted)
		p.closeWriter = p.newWriter(TopicAuctionClosed)
	}
	return p
}

// Enabled reports whether event publishing is configured
func (p *Publisher) Enabled() bool {
	return len(p.brokers) > 0
}

func (p *Publisher) newWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// PublishBidAdmitted emits a bid.admitted event keyed by listing
func (p *Publisher) PublishBidAdmitted(ctx context.Context, bid model.Bid) error {
	if !p.Enabled() {
		return nil
	}
	event := BidAdmittedEvent{
		BidID:     bid.BidID,
		ListingID: bid.ListingID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount.String(),
		Sequence:  bid.Sequence,
		Timestamp: bid.CreatedAt,
	}
	return p.write(ctx, p.bidWriter, bid.ListingID, event)
}

// PublishAuctionClosed emits an auction.closed event keyed by listing
func (p *Publisher) PublishAuctionClosed(ctx context.Context, outcome model.Outcome) error {
	if !p.Enabled() {
		return nil
	}
	event := AuctionClosedEvent{
		ListingID:     outcome.ListingID,
		WinnerID:      outcome.WinnerID,
		WinningAmount: outcome.WinningAmount.String(),
		TotalBids:     outcome.TotalBids,
		ClosedAt:      outcome.ClosedAt,
	}
	return p.write(ctx, p.closeWriter, outcome.ListingID, event)
}

func (p *Publisher) write(ctx context.Context, w *kafka.Writer, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

// Close flushes and closes the underlying writers
func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	if err := p.bidWriter.Close(); err != nil {
		return err
	}
	return p.closeWriter.Close()
}
