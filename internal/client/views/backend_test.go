package views

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// backend is an httptest server answering fixed bodies by path and
// recording every request it sees.
type backend struct {
	*httptest.Server

	mu     sync.Mutex
	bodies map[string]string
	status map[string]int
	seen   []*http.Request
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{bodies: map[string]string{}, status: map[string]int{}}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

func (b *backend) on(path, body string) *backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bodies[path] = body
	return b
}

func (b *backend) fail(path string, status int) *backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status[path] = status
	return b
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.seen = append(b.seen, r.Clone(r.Context()))
	status, failing := b.status[r.URL.Path]
	body, ok := b.bodies[r.URL.Path]
	b.mu.Unlock()

	if failing {
		w.WriteHeader(status)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (b *backend) requests() []*http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*http.Request(nil), b.seen...)
}

func (b *backend) count(path string) int {
	n := 0
	for _, r := range b.requests() {
		if r.URL.Path == path {
			n++
		}
	}
	return n
}
