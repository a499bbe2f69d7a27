package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Severity grades a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a short message shown to the learner.
type Notification struct {
	Title    string
	Message  string
	Severity Severity
}

// Sink accepts notifications. Implementations must not block.
type Sink interface {
	Notify(ctx context.Context, n Notification)
}

// Multi fans a notification out to every sink.
type Multi []Sink

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, s := range m {
		s.Notify(ctx, n)
	}
}

// DefaultQueueSize is the number of notifications a Queue keeps by default.
const DefaultQueueSize = 8

// Queue keeps the most recent notifications for display, oldest first.
// When full the oldest entry is dropped. It is safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	items []Notification
	size  int
}

var _ Sink = (*Queue)(nil)

// NewQueue creates a queue holding up to size notifications.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{size: size}
}

func (q *Queue) Notify(_ context.Context, n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == q.size {
		q.items = q.items[1:]
	}
	q.items = append(q.items, n)
}

// Latest returns the newest notification.
func (q *Queue) Latest() (Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Notification{}, false
	}
	return q.items[len(q.items)-1], true
}

// Pop removes and returns the oldest notification.
func (q *Queue) Pop() (Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Notification{}, false
	}
	n := q.items[0]
	q.items = q.items[1:]
	return n, true
}

// Len returns the number of queued notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// LogSink writes notifications to a zap logger.
type LogSink struct {
	Logger *zap.Logger
}

func (s LogSink) Notify(_ context.Context, n Notification) {
	if s.Logger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("severity", string(n.Severity)),
	}
	switch n.Severity {
	case SeverityError:
		s.Logger.Error(n.Message, fields...)
	case SeverityWarning:
		s.Logger.Warn(n.Message, fields...)
	default:
		s.Logger.Info(n.Message, fields...)
	}
}
