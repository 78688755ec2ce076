// Package event is the outbound surface of the threat engine: a closed set
// of event kinds and a synchronous in-process bus. Subscribers (commentary,
// UI, logging) are passive; the engine never depends on their existence or
// good behavior.
package event

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Kind is the closed event enumeration. No ad-hoc kinds: anything new gets a
// constant here.
type Kind string

const (
	KindLeadUpdate Kind = "THREAT_LEAD"
	KindPickoff    Kind = "THREAT_PICKOFF"
	KindSteal      Kind = "THREAT_STEAL"
)

func (k Kind) Valid() bool {
	switch k {
	case KindLeadUpdate, KindPickoff, KindSteal:
		return true
	}
	return false
}

// Event is one resolved action. Outcome holds the relevant outcome struct
// (StealOutcome, PickoffOutcome, or a threat-state snapshot for lead updates).
type Event struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	GameID   string `json:"game_id"`
	RunnerID string `json:"runner_id"`
	Base     int    `json:"base"`
	Tick     int    `json:"tick"`
	Outcome  any    `json:"outcome,omitempty"`
}

// Handler consumes one event. Panics are confined to the bus.
type Handler func(Event)

type subscription struct {
	id string
	fn Handler
}

// Bus fans events out to all current subscribers before Publish returns.
// Delivery is fire-and-forget: a panicking subscriber is recovered and
// logged and never blocks the others or the resolving call. There is no
// ordering guarantee between subscribers.
type Bus struct {
	mu     sync.Mutex
	subs   map[Kind][]subscription
	logger *log.Logger
}

// NewBus creates an empty bus. logger may be nil to use the default logger.
func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.Default()
	}
	return &Bus{subs: make(map[Kind][]subscription), logger: logger}
}

// Subscribe registers a handler for one kind and returns a token for
// Unsubscribe.
func (b *Bus) Subscribe(kind Kind, fn Handler) string {
	id := uuid.NewString()
	b.mu.Lock()
	b.subs[kind] = append(b.subs[kind], subscription{id: id, fn: fn})
	b.mu.Unlock()
	return id
}

// SubscribeAll registers a handler for every kind. Returns one token valid
// for UnsubscribeAll.
func (b *Bus) SubscribeAll(fn Handler) string {
	id := uuid.NewString()
	b.mu.Lock()
	for _, k := range []Kind{KindLeadUpdate, KindPickoff, KindSteal} {
		b.subs[k] = append(b.subs[k], subscription{id: id, fn: fn})
	}
	b.mu.Unlock()
	return id
}

// Unsubscribe removes a previously registered handler. Unknown tokens are a
// no-op.
func (b *Bus) Unsubscribe(kind Kind, token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.remove(kind, token)
}

// UnsubscribeAll removes the token from every kind.
func (b *Bus) UnsubscribeAll(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k := range b.subs {
		b.remove(k, token)
	}
}

func (b *Bus) remove(kind Kind, token string) {
	handlers := b.subs[kind]
	for i, s := range handlers {
		if s.id == token {
			b.subs[kind] = append(handlers[:i], handlers[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to every current subscriber of its kind, synchronously,
// before returning. Stamps an event id when the caller left it empty.
func (b *Bus) Publish(ev Event) {
	if !ev.Kind.Valid() {
		b.logger.Printf("event: dropping unknown kind %q", ev.Kind)
		return
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	b.mu.Lock()
	handlers := make([]subscription, len(b.subs[ev.Kind]))
	copy(handlers, b.subs[ev.Kind])
	b.mu.Unlock()

	for _, s := range handlers {
		b.deliver(s, ev)
	}
}

func (b *Bus) deliver(s subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("event: subscriber %s panicked on %s: %v", s.id, ev.Kind, r)
		}
	}()
	s.fn(ev)
}
