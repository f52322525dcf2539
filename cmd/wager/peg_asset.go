package main

import (
	"sync"

	"github.com/pkg/errors"

	"code.wagernet.io/wager/types/num"
)

var (
	errPegInsufficientBalance   = errors.New("peg asset: insufficient balance")
	errPegInsufficientAllowance = errors.New("peg asset: insufficient allowance")
)

// devPegAsset in-memory stand-in for the external reference asset, used by
// the run command so a node can be exercised without a real peg asset
// integration. The store party is bound after the store engine generated
// its identity.
type devPegAsset struct {
	mu         sync.Mutex
	store      string
	balances   map[string]*num.Uint
	allowances map[string]*num.Uint
}

func newDevPegAsset() *devPegAsset {
	return &devPegAsset{
		balances:   map[string]*num.Uint{},
		allowances: map[string]*num.Uint{},
	}
}

func (d *devPegAsset) bindStore(party string) {
	d.mu.Lock()
	d.store = party
	d.mu.Unlock()
}

// Mint dev faucet, the real reference asset has its own issuance.
func (d *devPegAsset) Mint(party string, amount *num.Uint) {
	d.mu.Lock()
	d.balances[party] = num.Sum(d.balanceOf(party), amount)
	d.mu.Unlock()
}

// Approve grants the store a pull allowance over the party's deposits.
func (d *devPegAsset) Approve(party string, amount *num.Uint) {
	d.mu.Lock()
	d.allowances[party] = amount.Clone()
	d.mu.Unlock()
}

func (d *devPegAsset) BalanceOf(party string) *num.Uint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.balanceOf(party).Clone()
}

func (d *devPegAsset) balanceOf(party string) *num.Uint {
	bal, ok := d.balances[party]
	if !ok {
		return num.UintZero()
	}
	return bal
}

func (d *devPegAsset) Transfer(to string, amount *num.Uint) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.move(d.store, to, amount)
}

func (d *devPegAsset) TransferFrom(owner, to string, amount *num.Uint) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	allowed, ok := d.allowances[owner]
	if !ok || allowed.LT(amount) {
		return errPegInsufficientAllowance
	}
	if err := d.move(owner, to, amount); err != nil {
		return err
	}
	allowed.Sub(allowed, amount)
	return nil
}

func (d *devPegAsset) move(from, to string, amount *num.Uint) error {
	bal := d.balanceOf(from)
	if bal.LT(amount) {
		return errPegInsufficientBalance
	}
	d.balances[from] = bal.Clone().Sub(bal, amount)
	d.balances[to] = num.Sum(d.balanceOf(to), amount)
	return nil
}
