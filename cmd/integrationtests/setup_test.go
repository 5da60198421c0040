package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	auction "bazario-bidding/internal/auctionService"
	"bazario-bidding/internal/repository"
	"bazario-bidding/internal/server"

	"github.com/gin-gonic/gin"
)

// FakeClock drives auction expiry without sleeping in tests
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{t: t}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// TestEnv bundles the wired service with direct access to its internals
type TestEnv struct {
	Router  *gin.Engine
	Service *auction.AuctionService
	Store   *repository.MemoryStore
	Clock   *FakeClock
}

// SetupTestEnv initializes the router with an in-memory store for integration testing.
func SetupTestEnv() *TestEnv {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	clock := NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	service := auction.NewAuctionService(store).WithClock(clock.Now)
	router := server.SetupRouter(service, nil)

	return &TestEnv{
		Router:  router,
		Service: service,
		Store:   store,
		Clock:   clock,
	}
}

// ExecuteRequest executes an HTTP request on the router and parses the response envelope
func (e *TestEnv) ExecuteRequest(t *testing.T, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		var err error
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	e.Router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// Data extracts the data field of a response envelope as an object
func Data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no object data field: %v", resp)
	}
	return data
}
