package resource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storepulse/internal/client/client"
	"github.com/dmitrijs2005/storepulse/internal/logging"
)

type item struct {
	Name string `json:"name"`
}

func newResource(t *testing.T, c client.Client) *Resource[item] {
	t.Helper()
	r := New[item](context.Background(), c, logging.Discard())
	t.Cleanup(r.Close)
	return r
}

func next(t *testing.T, g *gatedClient) *pending {
	t.Helper()
	select {
	case p := <-g.started:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("no fetch started")
		return nil
	}
}

func wait(t *testing.T, r *Resource[item]) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.Wait(ctx))
}

func reqFor(path string) *client.Request {
	req := client.Get(path)
	return &req
}

func TestResource_IdleUntilBound(t *testing.T) {
	g := newGatedClient()
	r := newResource(t, g)

	r.Bind(nil)
	r.Refetch()

	assert.True(t, r.State().Idle())
	assert.Nil(t, r.Request())
	assert.Empty(t, g.started)
	require.NoError(t, r.Wait(context.Background()))
}

func TestResource_LoadingIsSetBeforeFetchRuns(t *testing.T) {
	g := newGatedClient()
	r := newResource(t, g)

	r.Bind(reqFor("/api/products/tenant/t1"))

	st := r.State()
	assert.True(t, st.Loading)
	assert.Nil(t, st.Err)
	assert.Nil(t, st.Data)

	p := next(t, g)
	assert.Equal(t, "/api/products/tenant/t1", p.req.Path)
	p.release <- result{body: `{"name":"mug"}`}
	wait(t, r)

	st = r.State()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Err)
	require.NotNil(t, st.Data)
	assert.Equal(t, "mug", st.Data.Name)
	assert.True(t, r.Status().Ready)
}

func TestResource_FailureReplacesData(t *testing.T) {
	g := newGatedClient()
	r := newResource(t, g)

	r.Bind(reqFor("/x"))
	next(t, g).release <- result{body: `{"name":"first"}`}
	wait(t, r)

	r.Refetch()
	st := r.State()
	assert.True(t, st.Loading)
	require.NotNil(t, st.Data, "previous data stays visible while reloading")
	assert.Equal(t, "first", st.Data.Name)

	next(t, g).release <- result{err: &client.HTTPError{Status: http.StatusInternalServerError}}
	wait(t, r)

	st = r.State()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Data)
	var httpErr *client.HTTPError
	require.ErrorAs(t, st.Err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)

	r.Refetch()
	assert.Nil(t, r.State().Err, "refetch clears the error synchronously")
	next(t, g).release <- result{body: `{"name":"second"}`}
	wait(t, r)
	assert.Equal(t, "second", r.State().Data.Name)
	assert.Nil(t, r.State().Err)
}

func TestResource_SameRequestDoesNotRefetch(t *testing.T) {
	g := newGatedClient()
	r := newResource(t, g)

	r.Bind(reqFor("/x"))
	r.Bind(reqFor("/x"))
	next(t, g).release <- result{body: `{}`}
	wait(t, r)
	r.Bind(reqFor("/x"))

	assert.Empty(t, g.started)

	changed := client.Get("/x").WithHeader("Authorization", "Bearer b")
	r.Bind(&changed)
	p := next(t, g)
	assert.Equal(t, "Bearer b", p.req.Headers["Authorization"])
	p.release <- result{body: `{}`}
	wait(t, r)
}

func TestResource_LastIssuedWins(t *testing.T) {
	g := newGatedClient()
	g.ignoreCancel = true
	r := newResource(t, g)

	r.Bind(reqFor("/x"))
	first := next(t, g)
	r.Refetch()
	second := next(t, g)

	first.release <- result{body: `{"name":"old"}`}
	assert.True(t, r.State().Loading)

	second.release <- result{body: `{"name":"new"}`}
	wait(t, r)

	assert.Never(t, func() bool {
		st := r.State()
		return st.Data == nil || st.Data.Name != "new"
	}, 100*time.Millisecond, 5*time.Millisecond)
}

func TestResource_NewerFetchCancelsOlder(t *testing.T) {
	g := newGatedClient()
	r := newResource(t, g)

	r.Bind(reqFor("/api/orders/t1/analytics/total-orders"))
	first := next(t, g)
	r.Bind(reqFor("/api/orders/t2/analytics/total-orders"))
	second := next(t, g)

	assert.Eventually(t, func() bool { return first.ctx.Err() != nil }, time.Second, 5*time.Millisecond)
	assert.NoError(t, second.ctx.Err())

	second.release <- result{body: `{"name":"t2"}`}
	wait(t, r)
	st := r.State()
	assert.Nil(t, st.Err, "the cancelled fetch must not surface its error")
	assert.Equal(t, "t2", st.Data.Name)
}

func TestResource_UnbindReturnsToIdle(t *testing.T) {
	g := newGatedClient()
	r := newResource(t, g)

	r.Bind(reqFor("/x"))
	p := next(t, g)
	r.Bind(nil)

	assert.True(t, r.State().Idle())
	require.NoError(t, r.Wait(context.Background()))
	assert.Eventually(t, func() bool { return p.ctx.Err() != nil }, time.Second, 5*time.Millisecond)
}

func TestResource_SubscribeSeesEveryTransition(t *testing.T) {
	g := newGatedClient()
	r := newResource(t, g)

	var mu sync.Mutex
	var seen []State[item]
	unsubscribe := r.Subscribe(func(s State[item]) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s)
	})

	r.Bind(reqFor("/x"))
	next(t, g).release <- result{body: `{"name":"a"}`}
	wait(t, r)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[1].Loading)
	assert.Equal(t, "a", seen[1].Data.Name)
	mu.Unlock()

	unsubscribe()
	r.Refetch()
	next(t, g).release <- result{body: `{"name":"b"}`}
	wait(t, r)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 2)
}

func TestResource_CloseStopsFetching(t *testing.T) {
	g := newGatedClient()
	r := New[item](context.Background(), g, logging.Discard())

	r.Bind(reqFor("/x"))
	p := next(t, g)
	r.Close()

	require.NoError(t, r.Wait(context.Background()))
	assert.Eventually(t, func() bool { return p.ctx.Err() != nil }, time.Second, 5*time.Millisecond)

	r.Refetch()
	r.Bind(reqFor("/y"))
	assert.Empty(t, g.started)
}

func TestResource_OneCallPerTrigger(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer srv.Close()

	r := newResource(t, client.NewHTTPClient(srv.URL))

	r.Bind(reqFor("/api/tenants"))
	wait(t, r)
	assert.EqualValues(t, 1, calls.Load())

	r.Refetch()
	wait(t, r)
	assert.EqualValues(t, 2, calls.Load())

	r.Bind(reqFor("/api/tenants"))
	wait(t, r)
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, "ok", r.State().Data.Name)
}

func TestResource_TransportErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	r := newResource(t, client.NewHTTPClient(srv.URL))
	r.Bind(reqFor("/api/tenants"))
	wait(t, r)

	st := r.State()
	assert.Nil(t, st.Data)
	var transportErr *client.TransportError
	assert.ErrorAs(t, st.Err, &transportErr)
}

func TestResource_PrepareDefersTheRequest(t *testing.T) {
	g := newGatedClient()
	r := newResource(t, g)

	start := r.Prepare(reqFor("/x"))
	assert.True(t, r.State().Loading)
	assert.Empty(t, g.started)

	start()
	next(t, g).release <- result{body: `{"name":"a"}`}
	wait(t, r)

	r.Prepare(reqFor("/x"))()
	assert.Empty(t, g.started, "same request is a no-op")

	start = r.PrepareRefetch()
	assert.True(t, r.State().Loading)
	assert.Empty(t, g.started)
	start()
	next(t, g).release <- result{body: `{"name":"b"}`}
	wait(t, r)
	assert.Equal(t, "b", r.State().Data.Name)
}
