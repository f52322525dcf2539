package types

import (
	"code.wagernet.io/wager/types/num"
)

// MatchStatus lifecycle state of a match. Open and Active are live states,
// Resolved and Cancelled are terminal.
type MatchStatus int

const (
	// MatchStatusOpen created, waiting on an opponent, creator stake escrowed.
	MatchStatusOpen MatchStatus = iota
	// MatchStatusActive both stakes escrowed, waiting on the gateway result.
	MatchStatusActive
	// MatchStatusResolved gateway reported a winner, escrow paid out.
	MatchStatusResolved
	// MatchStatusCancelled owner cancelled while open, creator refunded.
	MatchStatusCancelled
)

var matchStatusNames = map[MatchStatus]string{
	MatchStatusOpen:      "STATUS_OPEN",
	MatchStatusActive:    "STATUS_ACTIVE",
	MatchStatusResolved:  "STATUS_RESOLVED",
	MatchStatusCancelled: "STATUS_CANCELLED",
}

func (s MatchStatus) String() string {
	name, ok := matchStatusNames[s]
	if !ok {
		return "STATUS_UNSPECIFIED"
	}
	return name
}

// IsTerminal no transition ever leaves a terminal status.
func (s MatchStatus) IsTerminal() bool {
	return s == MatchStatusResolved || s == MatchStatusCancelled
}

// Match a single two-party wager. The record outlives its terminal
// transition and stays readable for audit.
type Match struct {
	ID       string
	Creator  string
	Opponent string
	Winner   string
	Stake    *num.Uint
	Status   MatchStatus
}

// Escrowed returns the amount held against this match in the engine's
// escrow account: stake while open, both stakes while active, nothing
// once terminal.
func (m *Match) Escrowed() *num.Uint {
	switch m.Status {
	case MatchStatusOpen:
		return m.Stake.Clone()
	case MatchStatusActive:
		return num.Sum(m.Stake, m.Stake)
	default:
		return num.UintZero()
	}
}

func (m *Match) IsParticipant(party string) bool {
	return party == m.Creator || (m.Opponent != "" && party == m.Opponent)
}

func (m *Match) Clone() *Match {
	cpy := *m
	cpy.Stake = m.Stake.Clone()
	return &cpy
}
