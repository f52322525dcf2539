package ledger

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"code.wagernet.io/wager/logging"
	"code.wagernet.io/wager/metrics"
	"code.wagernet.io/wager/types/num"
)

var (
	// ErrNotStore a party other than the bound store tried to issue balance.
	ErrNotStore = errors.New("not store")
	// ErrNotOwner a party other than the owner tried an admin operation.
	ErrNotOwner = errors.New("not owner")
	// ErrStoreAlreadySet the store binding is one-time only.
	ErrStoreAlreadySet = errors.New("store already set")
	// ErrInvalidParty empty party identifier.
	ErrInvalidParty = errors.New("invalid party")
	// ErrInvalidAmount nil or non-positive amount on an operation requiring one.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance the debited party does not hold enough balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInsufficientAllowance the spender was not granted enough allowance
	// by the debited party.
	ErrInsufficientAllowance = errors.New("insufficient allowance")
)

// Engine is the restricted-issuance balance ledger. All balances are held
// in-memory behind a single mutex: every operation is atomic with respect
// to every other, and either fully applies or leaves no trace.
type Engine struct {
	Config
	log *logging.Logger

	mu    sync.Mutex
	owner string
	// store the only party allowed to issue, empty until SetStore is called
	store      string
	balances   map[string]*num.Uint
	allowances map[string]map[string]*num.Uint
	issued     *num.Uint
}

// New instantiates the ledger engine. The owner is the administrative party
// allowed to bind the store, set once here and never rotated.
func New(log *logging.Logger, cfg Config, owner string) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	metrics.Setup()
	return &Engine{
		Config:     cfg,
		log:        log,
		owner:      owner,
		balances:   map[string]*num.Uint{},
		allowances: map[string]map[string]*num.Uint{},
		issued:     num.UintZero(),
	}
}

// ReloadConf updates the internal configuration of the ledger engine.
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

// SetStore binds the party allowed to call Issue. Owner-gated and one-time:
// until this is called every Issue fails, and it cannot be rebound.
func (e *Engine) SetStore(caller, store string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if caller != e.owner {
		return ErrNotOwner
	}
	if store == "" {
		return ErrInvalidParty
	}
	if e.store != "" {
		return ErrStoreAlreadySet
	}
	e.store = store
	e.log.Info("store bound", logging.Party("store", store))
	return nil
}

// Issue mints new balance for the given party. Only the bound store may
// call this, the authorization check runs before anything else so an
// unbound or foreign caller always gets ErrNotStore, whatever the amount.
func (e *Engine) Issue(ctx context.Context, caller, to string, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.store == "" || caller != e.store {
		e.log.Debug("issue rejected",
			logging.Party("caller", caller),
			logging.Error(ErrNotStore),
		)
		return ErrNotStore
	}
	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}
	if to == "" {
		return ErrInvalidParty
	}
	e.credit(to, amount)
	e.issued.AddSum(amount)
	metrics.TransferInc("issue")
	metrics.IssuedAdd(float64(amount.Uint64()))
	if e.log.IsDebug() {
		e.log.Debug("balance issued",
			logging.Party("to", to),
			logging.BigUint("amount", amount),
			logging.BigUint("total-issued", e.issued),
		)
	}
	return nil
}

// Transfer moves balance between two parties. Both sides of the move are
// applied under the engine lock, or neither is.
func (e *Engine) Transfer(ctx context.Context, from, to string, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.move(from, to, amount); err != nil {
		return err
	}
	metrics.TransferInc("transfer")
	return nil
}

// Approve grants spender the right to pull up to amount from the owner's
// balance through TransferFrom. The allowance is set, not added to, so a
// fresh approval replaces any leftover one.
func (e *Engine) Approve(ctx context.Context, owner, spender string, amount *num.Uint) error {
	if owner == "" || spender == "" {
		return ErrInvalidParty
	}
	if amount == nil {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	bySpender, ok := e.allowances[owner]
	if !ok {
		bySpender = map[string]*num.Uint{}
		e.allowances[owner] = bySpender
	}
	bySpender[spender] = amount.Clone()
	if e.log.IsDebug() {
		e.log.Debug("allowance set",
			logging.Party("owner", owner),
			logging.Party("spender", spender),
			logging.BigUint("amount", amount),
		)
	}
	return nil
}

// TransferFrom pulls balance from `from` to `to` on behalf of spender.
// The allowance is checked and decremented atomically with the balance
// move, a failure on either check leaves allowance and balances untouched.
func (e *Engine) TransferFrom(ctx context.Context, spender, from, to string, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if amount == nil {
		return ErrInvalidAmount
	}
	allowed := e.allowance(from, spender)
	if allowed.LT(amount) {
		e.log.Debug("pull rejected",
			logging.Party("spender", spender),
			logging.Party("from", from),
			logging.Error(ErrInsufficientAllowance),
		)
		return ErrInsufficientAllowance
	}
	if err := e.move(from, to, amount); err != nil {
		return err
	}
	// allowed is the stored record, a zero-amount pull may have no record
	if bySpender, ok := e.allowances[from]; ok {
		if _, ok := bySpender[spender]; ok {
			allowed.Sub(allowed, amount)
		}
	}
	metrics.TransferInc("pull")
	return nil
}

// move balance check then double mutation, callers hold the lock.
func (e *Engine) move(from, to string, amount *num.Uint) error {
	if from == "" || to == "" {
		return ErrInvalidParty
	}
	if amount == nil {
		return ErrInvalidAmount
	}
	bal := e.balance(from)
	if bal.LT(amount) {
		e.log.Debug("transfer rejected",
			logging.Party("from", from),
			logging.BigUint("balance", bal),
			logging.BigUint("amount", amount),
			logging.Error(ErrInsufficientBalance),
		)
		return ErrInsufficientBalance
	}
	e.balances[from] = bal.Sub(bal, amount)
	e.credit(to, amount)
	if e.log.IsDebug() {
		e.log.Debug("balance moved",
			logging.Party("from", from),
			logging.Party("to", to),
			logging.BigUint("amount", amount),
		)
	}
	return nil
}

func (e *Engine) credit(party string, amount *num.Uint) {
	bal, ok := e.balances[party]
	if !ok {
		bal = num.UintZero()
		e.balances[party] = bal
	}
	bal.AddSum(amount)
}

// balance internal read, zero for unknown parties, callers hold the lock.
func (e *Engine) balance(party string) *num.Uint {
	bal, ok := e.balances[party]
	if !ok {
		return num.UintZero()
	}
	return bal
}

func (e *Engine) allowance(owner, spender string) *num.Uint {
	bySpender, ok := e.allowances[owner]
	if !ok {
		return num.UintZero()
	}
	allowed, ok := bySpender[spender]
	if !ok {
		return num.UintZero()
	}
	return allowed
}

// BalanceOf returns the party's current balance, zero for unknown parties.
func (e *Engine) BalanceOf(party string) *num.Uint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.balance(party).Clone()
}

// Allowance returns what spender may still pull from owner.
func (e *Engine) Allowance(owner, spender string) *num.Uint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.allowance(owner, spender).Clone()
}

// TotalIssued cumulative issuance. With no burn path this always equals
// the sum of all balances.
func (e *Engine) TotalIssued() *num.Uint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.issued.Clone()
}

// Store returns the bound store party, empty while unbound.
func (e *Engine) Store() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store
}
