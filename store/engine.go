package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"code.wagernet.io/wager/events"
	"code.wagernet.io/wager/logging"
	"code.wagernet.io/wager/types/num"
)

var (
	// ErrNotOwner a party other than the owner tried to withdraw reserves.
	ErrNotOwner = errors.New("not owner")
	// ErrInvalidAmount nil or zero amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance the store's peg asset reserves are short.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// PegAsset is the external reference asset ledger the store deposits into
// and withdraws from. The store itself is the implicit sender of Transfer
// and the implicit spender of TransferFrom, exactly the authority a party
// grants it with an allowance. Not implemented by this core.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/peg_asset_mock.go -package mocks code.wagernet.io/wager/store PegAsset
type PegAsset interface {
	BalanceOf(party string) *num.Uint
	// Transfer moves amount of the store's own holdings to the given party.
	Transfer(to string, amount *num.Uint) error
	// TransferFrom pulls amount from owner into the given party, within
	// the allowance owner granted the store.
	TransferFrom(owner, to string, amount *num.Uint) error
}

// Ledger is the issuance side of the balance ledger.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/ledger_mock.go -package mocks code.wagernet.io/wager/store Ledger
type Ledger interface {
	Issue(ctx context.Context, caller, to string, amount *num.Uint) error
}

// Broker send events.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -package mocks code.wagernet.io/wager/store Broker
type Broker interface {
	Send(event events.Event)
}

// Engine is the 1:1 peg exchange. A party that granted the store a peg
// asset allowance can convert a deposit into freshly issued ledger balance,
// the owner can pull the accumulated reserves back out.
type Engine struct {
	Config
	log *logging.Logger

	mu       sync.Mutex
	party    string
	owner    string
	pegAsset PegAsset
	ledger   Ledger
	broker   Broker
}

// New instantiates the store engine. The engine generates its own party
// identity, the deployer binds it on the ledger with SetStore before any
// Buy can succeed.
func New(log *logging.Logger, cfg Config, owner string, pegAsset PegAsset, ledger Ledger, broker Broker) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Engine{
		Config:   cfg,
		log:      log,
		party:    uuid.NewV4().String(),
		owner:    owner,
		pegAsset: pegAsset,
		ledger:   ledger,
		broker:   broker,
	}
}

// ReloadConf updates the internal configuration of the store engine.
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

// Party the store's own account identity, holder of the peg asset reserves
// and the one party the ledger lets issue.
func (e *Engine) Party() string {
	return e.party
}

// Buy converts a peg asset deposit into ledger balance 1:1. The pull runs
// first so a failed deposit can never issue anything, the issuance failure
// path unwinds the pull.
func (e *Engine) Buy(ctx context.Context, party string, amount *num.Uint) error {
	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.pegAsset.TransferFrom(party, e.party, amount); err != nil {
		e.log.Debug("peg asset pull failed",
			logging.Party("buyer", party),
			logging.BigUint("amount", amount),
			logging.Error(err),
		)
		return err
	}
	if err := e.ledger.Issue(ctx, e.party, party, amount); err != nil {
		// a bound store cannot fail here, but a stranded deposit would be
		// worse than a noisy unwind
		if rerr := e.pegAsset.Transfer(party, amount); rerr != nil {
			e.log.Error("could not unwind peg asset pull",
				logging.Party("buyer", party),
				logging.BigUint("amount", amount),
				logging.Error(rerr),
			)
		}
		return err
	}
	if e.log.IsDebug() {
		e.log.Debug("purchase complete",
			logging.Party("buyer", party),
			logging.BigUint("amount", amount),
		)
	}
	e.broker.Send(events.NewPurchasedEvent(ctx, party, amount))
	return nil
}

// Withdraw moves peg asset reserves to the owner. Owner only.
func (e *Engine) Withdraw(ctx context.Context, party string, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if party != e.owner {
		return ErrNotOwner
	}
	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}
	if e.pegAsset.BalanceOf(e.party).LT(amount) {
		return ErrInsufficientBalance
	}
	if err := e.pegAsset.Transfer(e.owner, amount); err != nil {
		return err
	}
	e.log.Info("reserves withdrawn",
		logging.Party("owner", e.owner),
		logging.BigUint("amount", amount),
	)
	e.broker.Send(events.NewWithdrawnEvent(ctx, e.owner, amount))
	return nil
}
