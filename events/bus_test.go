package events_test

import (
	"context"
	"testing"

	"code.wagernet.io/wager/events"
	"code.wagernet.io/wager/types/num"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	t.Run("Events of one operation share a trace ID", testTraceIDShared)
	t.Run("Event types have readable names", testTypeStrings)
	t.Run("Event payloads are copies", testPayloadCopies)
}

func testTraceIDShared(t *testing.T) {
	ctx := context.Background()
	e1 := events.NewMatchCreatedEvent(ctx, "match-1", "creator", num.NewUint(1))
	assert.NotEmpty(t, e1.TraceID())

	// the constructor stores the generated trace ID on the context it
	// returns, a second event built from that context reuses it
	e2 := events.NewMatchJoinedEvent(e1.Context(), "match-1", "opponent")
	assert.Equal(t, e1.TraceID(), e2.TraceID())

	// a fresh context means a fresh trace
	e3 := events.NewMatchJoinedEvent(context.Background(), "match-1", "opponent")
	assert.NotEqual(t, e1.TraceID(), e3.TraceID())
}

func testTypeStrings(t *testing.T) {
	assert.Equal(t, "Purchased", events.PurchasedEvent.String())
	assert.Equal(t, "MatchResolved", events.MatchResolvedEvent.String())
	assert.Equal(t, "UNKNOWN EVENT", events.Type(999).String())
}

func testPayloadCopies(t *testing.T) {
	stake := num.NewUint(10)
	e := events.NewMatchCreatedEvent(context.Background(), "match-1", "creator", stake)
	stake.AddSum(num.NewUint(5))
	assert.True(t, e.Stake().EQ(num.NewUint(10)))
	// the getter clones too
	e.Stake().AddSum(num.NewUint(5))
	assert.True(t, e.Stake().EQ(num.NewUint(10)))
}
