// Package aggregate merges a fixed, ordered set of resources into one
// loading/error state with a single refetch.
package aggregate

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/storepulse/internal/client/resource"
)

// Member is the type-erased view of a resource.Resource.
type Member interface {
	Status() resource.Status
	PrepareRefetch() (start func())
	Wait(ctx context.Context) error
	Watch(fn func()) func()
	Close()
}

// MemberStatus is one member's contribution to a Snapshot.
type MemberStatus struct {
	Name string
	resource.Status
}

// Snapshot is the derived state of a Group. Loading is true while any
// member is loading. Err is the error of the first failing member in
// declaration order, and ErrFrom names it.
type Snapshot struct {
	Loading bool
	Err     error
	ErrFrom string
	Members []MemberStatus
}

// Idle reports whether no member has started or settled anything.
func (s Snapshot) Idle() bool {
	for _, m := range s.Members {
		if m.Loading || m.Err != nil || m.Ready {
			return false
		}
	}
	return true
}

// Reduce folds member statuses left to right.
func Reduce(members []MemberStatus) Snapshot {
	s := Snapshot{Members: members}
	for _, m := range members {
		s.Loading = s.Loading || m.Loading
		if s.Err == nil && m.Err != nil {
			s.Err = m.Err
			s.ErrFrom = m.Name
		}
	}
	return s
}

type Group struct {
	mu      sync.Mutex
	names   []string
	members []Member
	unwatch []func()

	notifyMu sync.Mutex
	subs     map[uint64]func(Snapshot)
	subSeq   uint64
}

func New() *Group {
	return &Group{subs: make(map[uint64]func(Snapshot))}
}

// Add appends m under name. Names are unique; declaration order is the
// order of Add calls.
func (g *Group) Add(name string, m Member) {
	g.mu.Lock()
	for _, n := range g.names {
		if n == name {
			g.mu.Unlock()
			panic(fmt.Sprintf("aggregate: duplicate member %q", name))
		}
	}
	g.mu.Unlock()

	// Watch takes the member's notify lock, which its deliveries hold while
	// calling into publish; it must not run under g.mu.
	unwatch := m.Watch(g.publish)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.names = append(g.names, name)
	g.members = append(g.members, m)
	g.unwatch = append(g.unwatch, unwatch)
}

func (g *Group) Names() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.names...)
}

func (g *Group) Snapshot() Snapshot {
	g.mu.Lock()
	names := append([]string(nil), g.names...)
	members := append([]Member(nil), g.members...)
	g.mu.Unlock()

	statuses := make([]MemberStatus, len(members))
	for i, m := range members {
		statuses[i] = MemberStatus{Name: names[i], Status: m.Status()}
	}
	return Reduce(statuses)
}

// Refetch refetches every member. All members enter Loading before any
// request is issued. Idle members ignore it.
func (g *Group) Refetch() {
	members := g.list()
	starts := make([]func(), len(members))
	for i, m := range members {
		starts[i] = m.PrepareRefetch()
	}
	for _, start := range starts {
		start()
	}
}

// Wait blocks until no member is loading.
func (g *Group) Wait(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, m := range g.list() {
		eg.Go(func() error { return m.Wait(ctx) })
	}
	return eg.Wait()
}

// Subscribe registers fn for every member change. Deliveries are
// serialized and carry the snapshot current at delivery time.
func (g *Group) Subscribe(fn func(Snapshot)) func() {
	g.notifyMu.Lock()
	defer g.notifyMu.Unlock()
	g.subSeq++
	id := g.subSeq
	g.subs[id] = fn
	return func() {
		g.notifyMu.Lock()
		defer g.notifyMu.Unlock()
		delete(g.subs, id)
	}
}

// Close detaches from and closes every member.
func (g *Group) Close() {
	g.mu.Lock()
	unwatch, members := g.unwatch, g.members
	g.unwatch = nil
	g.mu.Unlock()

	for _, u := range unwatch {
		u()
	}
	for _, m := range members {
		m.Close()
	}
}

func (g *Group) list() []Member {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Member(nil), g.members...)
}

func (g *Group) publish() {
	g.notifyMu.Lock()
	defer g.notifyMu.Unlock()
	if len(g.subs) == 0 {
		return
	}
	s := g.Snapshot()
	for _, fn := range g.subs {
		fn(s)
	}
}
