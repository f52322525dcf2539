package events

import (
	"context"

	"code.wagernet.io/wager/types/num"
)

// Purchased raised by the store when a peg asset deposit was converted
// into ledger balance.
type Purchased struct {
	*Base
	buyer  string
	amount *num.Uint
}

func NewPurchasedEvent(ctx context.Context, buyer string, amount *num.Uint) *Purchased {
	return &Purchased{
		Base:   newBase(ctx, PurchasedEvent),
		buyer:  buyer,
		amount: amount.Clone(),
	}
}

func (p Purchased) Buyer() string {
	return p.buyer
}

func (p Purchased) Amount() *num.Uint {
	return p.amount.Clone()
}

func (p Purchased) IsParty(id string) bool {
	return p.buyer == id
}

// Withdrawn raised by the store when the owner pulled peg asset reserves.
type Withdrawn struct {
	*Base
	owner  string
	amount *num.Uint
}

func NewWithdrawnEvent(ctx context.Context, owner string, amount *num.Uint) *Withdrawn {
	return &Withdrawn{
		Base:   newBase(ctx, WithdrawnEvent),
		owner:  owner,
		amount: amount.Clone(),
	}
}

func (w Withdrawn) Owner() string {
	return w.owner
}

func (w Withdrawn) Amount() *num.Uint {
	return w.amount.Clone()
}

func (w Withdrawn) IsParty(id string) bool {
	return w.owner == id
}
