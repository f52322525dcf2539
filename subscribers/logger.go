package subscribers

import (
	"context"

	"code.wagernet.io/wager/events"
	"code.wagernet.io/wager/logging"
)

// LogSub acking subscriber writing every bus event to the log. The one
// in-scope event consumer, wired by the node bootstrap so an operator can
// follow purchases and match transitions.
type LogSub struct {
	*Base
	log *logging.Logger
}

func NewLogSub(ctx context.Context, log *logging.Logger) *LogSub {
	return &LogSub{
		Base: NewBase(ctx, 0, true),
		log:  log.Named("events"),
	}
}

func (l *LogSub) Push(evts ...events.Event) {
	for _, e := range evts {
		l.log.Info(e.Type().String(),
			logging.Int("sequence", e.Sequence()),
			logging.String("trace-id", e.TraceID()),
			logging.String("detail", detail(e)),
		)
	}
}

// Types nil means subscribed to everything.
func (l *LogSub) Types() []events.Type {
	return []events.Type{events.All}
}

func detail(e events.Event) string {
	switch ev := e.(type) {
	case *events.Purchased:
		return "buyer=" + ev.Buyer() + " amount=" + ev.Amount().String()
	case *events.Withdrawn:
		return "owner=" + ev.Owner() + " amount=" + ev.Amount().String()
	case *events.MatchCreated:
		return "match=" + ev.MatchID() + " creator=" + ev.Creator() + " stake=" + ev.Stake().String()
	case *events.MatchJoined:
		return "match=" + ev.MatchID() + " opponent=" + ev.Opponent()
	case *events.MatchResolved:
		return "match=" + ev.MatchID() + " winner=" + ev.Winner()
	case *events.MatchCancelled:
		return "match=" + ev.MatchID()
	}
	return ""
}
