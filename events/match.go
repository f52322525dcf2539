package events

import (
	"context"

	"code.wagernet.io/wager/types/num"
)

// MatchCreated a match was opened and the creator's stake escrowed.
type MatchCreated struct {
	*Base
	matchID string
	creator string
	stake   *num.Uint
}

func NewMatchCreatedEvent(ctx context.Context, matchID, creator string, stake *num.Uint) *MatchCreated {
	return &MatchCreated{
		Base:    newBase(ctx, MatchCreatedEvent),
		matchID: matchID,
		creator: creator,
		stake:   stake.Clone(),
	}
}

func (m MatchCreated) MatchID() string {
	return m.matchID
}

func (m MatchCreated) Creator() string {
	return m.creator
}

func (m MatchCreated) Stake() *num.Uint {
	return m.stake.Clone()
}

// MatchJoined an opponent matched the creator's stake, match is active.
type MatchJoined struct {
	*Base
	matchID  string
	opponent string
}

func NewMatchJoinedEvent(ctx context.Context, matchID, opponent string) *MatchJoined {
	return &MatchJoined{
		Base:     newBase(ctx, MatchJoinedEvent),
		matchID:  matchID,
		opponent: opponent,
	}
}

func (m MatchJoined) MatchID() string {
	return m.matchID
}

func (m MatchJoined) Opponent() string {
	return m.opponent
}

// MatchResolved the gateway reported a winner, the full escrow was paid out.
type MatchResolved struct {
	*Base
	matchID string
	winner  string
}

func NewMatchResolvedEvent(ctx context.Context, matchID, winner string) *MatchResolved {
	return &MatchResolved{
		Base:    newBase(ctx, MatchResolvedEvent),
		matchID: matchID,
		winner:  winner,
	}
}

func (m MatchResolved) MatchID() string {
	return m.matchID
}

func (m MatchResolved) Winner() string {
	return m.winner
}

// MatchCancelled the owner cancelled an open match, creator refunded.
type MatchCancelled struct {
	*Base
	matchID string
}

func NewMatchCancelledEvent(ctx context.Context, matchID string) *MatchCancelled {
	return &MatchCancelled{
		Base:    newBase(ctx, MatchCancelledEvent),
		matchID: matchID,
	}
}

func (m MatchCancelled) MatchID() string {
	return m.matchID
}
