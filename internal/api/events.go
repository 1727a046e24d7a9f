package api

import (
	"sync"
	"sync/atomic"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
	"go.uber.org/zap"
)

const (
	EventResult   = "result"
	EventComplete = "complete"

	subscriberBuffer = 64
)

// Event is one message on the scan stream
type Event struct {
	Type   string        `json:"type"`
	Index  int           `json:"index"`
	Total  int           `json:"total"`
	Result *check.Result `json:"result,omitempty"`
	Report *check.Report `json:"report,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// Broker fans scan events out to stream subscribers. It implements
// scan.Observer so it can be handed straight to Scanner.Run.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	dropped     atomic.Uint64
	total       int
	logger      *zap.Logger
}

// NewBroker creates a broker for scans of total checks
func NewBroker(logger *zap.Logger, total int) *Broker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broker{
		subscribers: make(map[chan Event]struct{}),
		total:       total,
		logger:      logger,
	}
}

// Subscribe registers a new listener. The returned func unsubscribes and
// closes the channel; it is safe to call more than once.
func (b *Broker) Subscribe() (chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch, func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
}

// Subscribers returns the number of live subscriptions
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Dropped counts events not delivered to slow subscribers
func (b *Broker) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Broker) OnResult(index, total int, result *check.Result) {
	b.broadcast(Event{Type: EventResult, Index: index, Total: total, Result: result})
}

func (b *Broker) OnComplete(report *check.Report, err error) {
	evt := Event{Type: EventComplete, Report: report}
	if report != nil {
		evt.Index = report.Total()
		evt.Total = max(b.total, report.Total())
	}
	if err != nil {
		evt.Error = err.Error()
	}
	b.broadcast(evt)
}

func (b *Broker) broadcast(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- evt:
		default:
			// slow consumer; the scan never waits on the stream
			b.dropped.Add(1)
			b.logger.Warn("scan event dropped", zap.String("type", evt.Type), zap.Int("index", evt.Index))
		}
	}
}
