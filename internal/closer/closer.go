package closer

import (
	"context"
	"time"

	model "bazario-bidding/internal/models"
	"bazario-bidding/utils"
)

// ExpiredCloser is the slice of the auction service the closer drives.
type ExpiredCloser interface {
	CloseExpired(now time.Time) ([]model.Outcome, error)
}

// Closer periodically seals open auctions whose end time has passed. Several
// closers may run against the same store; the storage compare-and-set on the
// open→closed transition guarantees each listing is sealed at most once.
type Closer struct {
	service  ExpiredCloser
	interval time.Duration
	now      func() time.Time
}

// New creates a closer scanning on the given interval
func New(service ExpiredCloser, interval time.Duration) *Closer {
	return &Closer{
		service:  service,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source for tests
func (c *Closer) WithClock(now func() time.Time) *Closer {
	c.now = now
	return c
}

// Run scans until the context is cancelled. An immediate first pass picks up
// listings that expired while the service was down.
func (c *Closer) Run(ctx context.Context) {
	c.scan()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.Info("Closer: stopped", nil)
			return
		case <-ticker.C:
			c.scan()
		}
	}
}

// scan runs one closing pass; scan errors are logged and retried next tick
func (c *Closer) scan() {
	outcomes, err := c.service.CloseExpired(c.now())
	if err != nil {
		utils.Error("Closer: scan failed", map[string]any{"error": err.Error()})
		return
	}
	for _, o := range outcomes {
		utils.Info("Closer: auction sealed", utils.ListingFields(o.ListingID, map[string]any{
			"winner_id":  o.WinnerID,
			"amount":     o.WinningAmount.String(),
			"total_bids": o.TotalBids,
		}))
	}
}
