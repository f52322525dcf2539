package match

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"code.wagernet.io/wager/events"
	"code.wagernet.io/wager/logging"
	"code.wagernet.io/wager/metrics"
	"code.wagernet.io/wager/types"
	"code.wagernet.io/wager/types/num"
)

var (
	// ErrNotGateway a party other than the gateway tried to submit a result.
	ErrNotGateway = errors.New("not gateway")
	// ErrNotOwner a party other than the owner tried to cancel.
	ErrNotOwner = errors.New("not owner")
	// ErrInvalidMatchID empty match identifier.
	ErrInvalidMatchID = errors.New("invalid match id")
	// ErrDuplicateMatch the match id was used before, terminal matches
	// included - ids are never recycled.
	ErrDuplicateMatch = errors.New("match already exists")
	// ErrInvalidStake nil or zero stake at creation.
	ErrInvalidStake = errors.New("invalid stake")
	// ErrMatchNotFound no match with that id.
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchNotOpen the operation needs an open match.
	ErrMatchNotOpen = errors.New("match not open")
	// ErrMatchNotActive the operation needs an active match.
	ErrMatchNotActive = errors.New("match not active")
	// ErrInvalidWinner the reported winner is not a participant.
	ErrInvalidWinner = errors.New("winner is not a participant")
	// ErrSelfJoin the creator cannot take the opponent seat.
	ErrSelfJoin = errors.New("creator cannot join own match")
)

// Ledger is the balance movement side of the ledger engine. The match
// engine pulls stakes within the allowance a participant granted its
// escrow party, and pays out of that same party.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/ledger_mock.go -package mocks code.wagernet.io/wager/match Ledger
type Ledger interface {
	Transfer(ctx context.Context, from, to string, amount *num.Uint) error
	TransferFrom(ctx context.Context, spender, from, to string, amount *num.Uint) error
}

// Broker send events.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -package mocks code.wagernet.io/wager/match Broker
type Broker interface {
	Send(event events.Event)
}

// Engine runs the match lifecycle: escrow both stakes, wait for the
// gateway's result, pay the winner - or refund the creator if the owner
// cancels before anyone joined. Escrow is balance held by the engine's own
// ledger party, individually accounted per match through the match stake.
// Matches have no expiry: an open or active match stays that way until
// cancelled or resolved.
type Engine struct {
	Config
	log *logging.Logger

	mu      sync.Mutex
	escrow  string
	owner   string
	gateway string
	ledger  Ledger
	broker  Broker
	matches map[string]*types.Match
}

// New instantiates the match engine. The owner is the administrative party,
// the gateway is the sole party allowed to report results. Both are fixed
// for the engine's lifetime.
func New(log *logging.Logger, cfg Config, ledger Ledger, broker Broker, owner, gateway string) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	metrics.Setup()
	return &Engine{
		Config:  cfg,
		log:     log,
		escrow:  uuid.NewV4().String(),
		owner:   owner,
		gateway: gateway,
		ledger:  ledger,
		broker:  broker,
		matches: map[string]*types.Match{},
	}
}

// ReloadConf updates the internal configuration of the match engine.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}

	e.mu.Lock()
	e.Config = cfg
	e.mu.Unlock()
}

// EscrowParty the ledger party holding all live stakes. Participants grant
// this party their stake allowance before creating or joining.
func (e *Engine) EscrowParty() string {
	return e.escrow
}

// Create opens a new match and escrows the creator's stake. The stake pull
// runs before the record is written, so a failed pull leaves no trace of
// the match.
func (e *Engine) Create(ctx context.Context, party, id string, stake *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id == "" {
		return ErrInvalidMatchID
	}
	if _, ok := e.matches[id]; ok {
		return ErrDuplicateMatch
	}
	if stake == nil || stake.IsZero() {
		return ErrInvalidStake
	}
	if err := e.ledger.TransferFrom(ctx, e.escrow, party, e.escrow, stake); err != nil {
		e.log.Debug("could not escrow creator stake",
			logging.MatchID(id),
			logging.Party("creator", party),
			logging.Error(err),
		)
		return err
	}
	e.matches[id] = &types.Match{
		ID:      id,
		Creator: party,
		Stake:   stake.Clone(),
		Status:  types.MatchStatusOpen,
	}
	metrics.MatchTransitionInc("created")
	e.log.Info("match created",
		logging.MatchID(id),
		logging.Party("creator", party),
		logging.BigUint("stake", stake),
	)
	e.broker.Send(events.NewMatchCreatedEvent(ctx, id, party, stake))
	return nil
}

// Join escrows the opponent's stake and activates the match.
func (e *Engine) Join(ctx context.Context, party, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.matches[id]
	if !ok {
		return ErrMatchNotFound
	}
	if m.Status != types.MatchStatusOpen {
		return ErrMatchNotOpen
	}
	if party == m.Creator {
		return ErrSelfJoin
	}
	if err := e.ledger.TransferFrom(ctx, e.escrow, party, e.escrow, m.Stake); err != nil {
		e.log.Debug("could not escrow opponent stake",
			logging.MatchID(id),
			logging.Party("opponent", party),
			logging.Error(err),
		)
		return err
	}
	m.Opponent = party
	m.Status = types.MatchStatusActive
	metrics.MatchTransitionInc("joined")
	e.log.Info("match joined",
		logging.MatchID(id),
		logging.Party("opponent", party),
	)
	e.broker.Send(events.NewMatchJoinedEvent(ctx, id, party))
	return nil
}

// SubmitResult pays the full escrow of an active match to the winner. Only
// the gateway may call this, and that check runs first: a non-gateway
// caller is rejected whatever the state of the match.
func (e *Engine) SubmitResult(ctx context.Context, party, id, winner string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if party != e.gateway {
		e.log.Debug("result submission rejected",
			logging.MatchID(id),
			logging.Party("caller", party),
			logging.Error(ErrNotGateway),
		)
		return ErrNotGateway
	}
	m, ok := e.matches[id]
	if !ok {
		return ErrMatchNotFound
	}
	if m.Status != types.MatchStatusActive {
		return ErrMatchNotActive
	}
	if !m.IsParticipant(winner) {
		return ErrInvalidWinner
	}
	payout := num.Sum(m.Stake, m.Stake)
	if err := e.ledger.Transfer(ctx, e.escrow, winner, payout); err != nil {
		// state untouched, the match stays active for a retried submission
		e.log.Error("could not pay out escrow",
			logging.MatchID(id),
			logging.Party("winner", winner),
			logging.BigUint("payout", payout),
			logging.Error(err),
		)
		return err
	}
	m.Winner = winner
	m.Status = types.MatchStatusResolved
	metrics.MatchTransitionInc("resolved")
	e.log.Info("match resolved",
		logging.MatchID(id),
		logging.Party("winner", winner),
		logging.BigUint("payout", payout),
	)
	e.broker.Send(events.NewMatchResolvedEvent(ctx, id, winner))
	return nil
}

// Cancel refunds the creator of an open match and closes it. Owner only,
// and only while open: once both stakes are at risk the gateway result is
// the single path that releases them.
func (e *Engine) Cancel(ctx context.Context, party, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if party != e.owner {
		return ErrNotOwner
	}
	m, ok := e.matches[id]
	if !ok {
		return ErrMatchNotFound
	}
	if m.Status != types.MatchStatusOpen {
		return ErrMatchNotOpen
	}
	if err := e.ledger.Transfer(ctx, e.escrow, m.Creator, m.Stake); err != nil {
		e.log.Error("could not refund creator stake",
			logging.MatchID(id),
			logging.Party("creator", m.Creator),
			logging.Error(err),
		)
		return err
	}
	m.Status = types.MatchStatusCancelled
	metrics.MatchTransitionInc("cancelled")
	e.log.Info("match cancelled",
		logging.MatchID(id),
		logging.Party("creator", m.Creator),
	)
	e.broker.Send(events.NewMatchCancelledEvent(ctx, id))
	return nil
}

// Match returns a copy of the match record, terminal matches stay readable
// for audit.
func (e *Engine) Match(id string) (*types.Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return m.Clone(), nil
}
