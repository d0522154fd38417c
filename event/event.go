package event

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "event"})

const (
	// EventQueueSize is the buffer of every subscription channel.
	EventQueueSize = 64

	// AllEvents subscribes to every event type.
	AllEvents types.EventType = 0
)

type SubscriberID int

type HandlerFunc func(*types.Event)

type subscriber struct {
	ch     chan *types.Event
	mu     sync.RWMutex
	closed bool
}

// deliver never blocks: a subscriber that does not keep up loses events
// rather than stalling the ledger.
func (s *subscriber) deliver(evt *types.Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- evt:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// EventBus fans committed ledger events out to in-process subscribers.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[types.EventType]map[SubscriberID]*subscriber
	lastID      SubscriberID
	wg          sync.WaitGroup
	metrics     *busMetrics
}

// NewEventBus creates an EventBus. Metrics are registered when promRegistry
// is not nil.
func NewEventBus(promRegistry prometheus.Registerer) *EventBus {
	eb := &EventBus{
		subscribers: make(map[types.EventType]map[SubscriberID]*subscriber),
	}
	if promRegistry != nil {
		eb.metrics = newBusMetrics(promRegistry)
	}
	return eb
}

// Subscribe returns a channel receiving events of eventType, or of every
// type for AllEvents. The channel is closed by Unsubscribe or Stop.
func (eb *EventBus) Subscribe(eventType types.EventType) (SubscriberID, <-chan *types.Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	sub := &subscriber{ch: make(chan *types.Event, EventQueueSize)}
	eb.lastID++
	id := eb.lastID
	if _, ok := eb.subscribers[eventType]; !ok {
		eb.subscribers[eventType] = make(map[SubscriberID]*subscriber)
	}
	eb.subscribers[eventType][id] = sub
	if eb.metrics != nil {
		eb.metrics.subscribers.WithLabelValues(eventType.String()).Inc()
	}
	return id, sub.ch
}

// SubscribeFunc calls handler for every event of eventType on a dedicated
// goroutine until the subscription ends.
func (eb *EventBus) SubscribeFunc(eventType types.EventType, handler HandlerFunc) SubscriberID {
	id, ch := eb.Subscribe(eventType)
	eb.wg.Add(1)
	go func() {
		defer eb.wg.Done()
		for evt := range ch {
			handler(evt)
		}
	}()
	return id
}

// Unsubscribe ends a subscription and closes its channel.
func (eb *EventBus) Unsubscribe(eventType types.EventType, id SubscriberID) {
	eb.mu.Lock()
	var sub *subscriber
	if subs, ok := eb.subscribers[eventType]; ok {
		sub = subs[id]
		delete(subs, id)
		if len(subs) == 0 {
			delete(eb.subscribers, eventType)
		}
	}
	eb.mu.Unlock()

	if sub != nil {
		sub.close()
		if eb.metrics != nil {
			eb.metrics.subscribers.WithLabelValues(eventType.String()).Dec()
		}
	}
}

// Publish delivers events in order to the subscribers of their type and
// to the AllEvents subscribers.
func (eb *EventBus) Publish(events ...*types.Event) {
	for _, evt := range events {
		eb.mu.RLock()
		targets := make([]*subscriber, 0, len(eb.subscribers[evt.Type])+len(eb.subscribers[AllEvents]))
		for _, sub := range eb.subscribers[evt.Type] {
			targets = append(targets, sub)
		}
		for _, sub := range eb.subscribers[AllEvents] {
			targets = append(targets, sub)
		}
		eb.mu.RUnlock()

		for _, sub := range targets {
			if !sub.deliver(evt) {
				logger.Warnf("Subscriber queue full, dropped %v", evt)
				if eb.metrics != nil {
					eb.metrics.dropped.WithLabelValues(evt.Type.String()).Inc()
				}
			}
		}
		if eb.metrics != nil {
			eb.metrics.published.WithLabelValues(evt.Type.String()).Inc()
		}
	}
}

// Stop closes every subscription and waits for SubscribeFunc handlers to
// return. The bus can be used again afterwards.
func (eb *EventBus) Stop() {
	eb.mu.Lock()
	subs := eb.subscribers
	eb.subscribers = make(map[types.EventType]map[SubscriberID]*subscriber)
	eb.mu.Unlock()

	for _, byID := range subs {
		for _, sub := range byID {
			sub.close()
		}
	}
	eb.wg.Wait()
	if eb.metrics != nil {
		eb.metrics.subscribers.Reset()
	}
}
