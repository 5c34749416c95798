package tests

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/flokiorg/tickethub/logger"
)

// MockPaymentRelay is an in-process payment relay that records every claim
// and answers with a scripted status.
type MockPaymentRelay struct {
	*httptest.Server

	mu      sync.Mutex
	status  int
	claims  []url.Values
	release chan struct{}
}

func NewMockPaymentRelay(t *testing.T, status int) *MockPaymentRelay {
	relay := &MockPaymentRelay{status: status}
	relay.Server = httptest.NewServer(http.HandlerFunc(relay.handleClaim))
	t.Cleanup(func() {
		relay.Release()
		relay.Close()
	})
	return relay
}

// Hold makes the relay block every claim until Release is called.
func (relay *MockPaymentRelay) Hold() {
	relay.mu.Lock()
	defer relay.mu.Unlock()
	relay.release = make(chan struct{})
}

func (relay *MockPaymentRelay) Release() {
	relay.mu.Lock()
	defer relay.mu.Unlock()
	if relay.release != nil {
		close(relay.release)
		relay.release = nil
	}
}

func (relay *MockPaymentRelay) Claims() []url.Values {
	relay.mu.Lock()
	defer relay.mu.Unlock()
	return append([]url.Values(nil), relay.claims...)
}

func (relay *MockPaymentRelay) handleClaim(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	relay.mu.Lock()
	relay.claims = append(relay.claims, r.PostForm)
	status := relay.status
	release := relay.release
	relay.mu.Unlock()

	logger.Logger.Info().Interface("claim", r.PostForm).Msg("Mock relay received claim")

	if release != nil {
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
	}

	w.WriteHeader(status)
	w.Write([]byte(`{}`))
}
