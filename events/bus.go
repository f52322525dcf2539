package events

import (
	"context"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// ErrUnsupportedEvent unknown payload passed to the generic constructor.
var ErrUnsupportedEvent = errors.New("unknown payload for event")

type Type int

const (
	// All event type -> used by subscribers to just receive all events,
	// has no corresponding event payload.
	All Type = iota
	PurchasedEvent
	WithdrawnEvent
	MatchCreatedEvent
	MatchJoinedEvent
	MatchResolvedEvent
	MatchCancelledEvent
)

var eventStrings = map[Type]string{
	All:                 "ALL",
	PurchasedEvent:      "Purchased",
	WithdrawnEvent:      "Withdrawn",
	MatchCreatedEvent:   "MatchCreated",
	MatchJoinedEvent:    "MatchJoined",
	MatchResolvedEvent:  "MatchResolved",
	MatchCancelledEvent: "MatchCancelled",
}

// String gets the string representation of the event type.
func (t Type) String() string {
	s, ok := eventStrings[t]
	if !ok {
		return "UNKNOWN EVENT"
	}
	return s
}

// Event common contract all bus events satisfy.
type Event interface {
	Type() Type
	Context() context.Context
	TraceID() string
	Sequence() int
	SetSequenceID(s int)
}

// Base common denominator all bus events share.
type Base struct {
	ctx     context.Context
	traceID string
	seq     int
	et      Type
}

type traceIDKey int

var traceIDCtxKey traceIDKey

// newBase events hold no data at this level, so this is only called by the
// concrete event constructors.
func newBase(ctx context.Context, t Type) *Base {
	ctx, tID := traceIDFromContext(ctx)
	return &Base{
		ctx:     ctx,
		traceID: tID,
		et:      t,
	}
}

// traceIDFromContext reuses the trace ID already set on the context, or
// generates one and stores it so all events of one operation share it.
func traceIDFromContext(ctx context.Context) (context.Context, string) {
	if tID, ok := ctx.Value(traceIDCtxKey).(string); ok {
		return ctx, tID
	}
	tID := uuid.NewV4().String()
	return context.WithValue(ctx, traceIDCtxKey, tID), tID
}

// TraceID returns the... traceID obviously.
func (b Base) TraceID() string {
	return b.traceID
}

// Sequence returns the event sequence number.
func (b Base) Sequence() int {
	return b.seq
}

// SetSequenceID set by the broker when the event is accepted for delivery.
func (b *Base) SetSequenceID(s int) {
	b.seq = s
}

// Context returns the context the event was raised with.
func (b Base) Context() context.Context {
	return b.ctx
}

// Type returns the event type.
func (b Base) Type() Type {
	return b.et
}
