// Package notify queues transient user notifications (toasts). Producers
// push; the console drains and prints them after each command.
package notify

import (
	"sync"
	"time"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

// Center is a FIFO of pending notifications. The zero value is not usable;
// use New.
type Center struct {
	mu      sync.Mutex
	pending []Notification
	now     func() time.Time
}

func New() *Center {
	return &Center{now: time.Now}
}

func (c *Center) Info(msg string)    { c.push(LevelInfo, msg) }
func (c *Center) Success(msg string) { c.push(LevelSuccess, msg) }
func (c *Center) Error(msg string)   { c.push(LevelError, msg) }

func (c *Center) push(l Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, Notification{Level: l, Message: msg, At: c.now()})
}

// Drain returns the pending notifications in arrival order and forgets
// them.
func (c *Center) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pending
	c.pending = nil
	return out
}

func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
