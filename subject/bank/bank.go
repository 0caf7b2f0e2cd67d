// Package bank is a ledger of account balances with money-conserving
// transfers.
//
// Balances are instrumented values, so transfers can be interleaved by the
// scheduler. The set of accounts is a plain map: create and delete accounts
// only while no other worker can touch the bank.
package bank

import (
	"errors"
	"maps"
	"math"
	"slices"

	"github.com/kolkov/interleave/shared"
)

// AccountID identifies an account.
type AccountID uint64

// Treasury is the account that holds all money when the bank opens.
const Treasury AccountID = 0

// InitialTreasury is the opening balance of the treasury.
const InitialTreasury = 1_000_000

// Mode selects how Transfer moves money.
type Mode int

const (
	// Buggy reads both balances, then writes both. Concurrent transfers
	// touching the same account lose updates and create or destroy money.
	Buggy Mode = iota
	// Atomic debits with compare-and-swap and credits with fetch-and-add.
	Atomic
)

func (m Mode) String() string {
	if m == Atomic {
		return "atomic"
	}
	return "buggy"
}

var (
	// ErrTreasury is returned when deleting the treasury.
	ErrTreasury = errors.New("bank: the treasury cannot be deleted")
	// ErrNoAccount is returned for an unknown account id.
	ErrNoAccount = errors.New("bank: no such account")
)

// Bank is a ledger.
type Bank struct {
	mode     Mode
	nextID   AccountID
	balances map[AccountID]*shared.Uint64
}

// New opens a bank holding InitialTreasury in the treasury.
func New(mode Mode) *Bank {
	b := &Bank{
		mode:     mode,
		balances: make(map[AccountID]*shared.Uint64),
	}
	if id := b.CreateAccount(); id != Treasury {
		panic("bank: treasury must be the first account")
	}
	b.balances[Treasury].Store(InitialTreasury)
	return b
}

// CreateAccount opens an empty account and returns its id. Ids are never
// reused.
func (b *Bank) CreateAccount() AccountID {
	id := b.nextID
	b.nextID++
	b.balances[id] = new(shared.Uint64)
	return id
}

// DeleteAccount closes an account. Its remaining balance goes back to the
// treasury so the total is conserved.
func (b *Bank) DeleteAccount(id AccountID) error {
	if id == Treasury {
		return ErrTreasury
	}
	bal, ok := b.balances[id]
	if !ok {
		return ErrNoAccount
	}
	delete(b.balances, id)
	b.balances[Treasury].Add(bal.Load())
	return nil
}

// Accounts returns the open account ids in ascending order.
func (b *Bank) Accounts() []AccountID {
	return slices.Sorted(maps.Keys(b.balances))
}

// Balance returns the balance of an account.
func (b *Bank) Balance(id AccountID) (uint64, bool) {
	bal, ok := b.balances[id]
	if !ok {
		return 0, false
	}
	return bal.Load(), true
}

// Total returns the sum of all balances.
func (b *Bank) Total() uint64 {
	var total uint64
	for _, bal := range b.balances {
		total += bal.Load()
	}
	return total
}

// Transfer moves amount from dr to cr and reports whether it happened.
//
// Self-transfers, unknown accounts, overdrafts and overflowing credits are
// no-ops.
func (b *Bank) Transfer(dr, cr AccountID, amount uint64) bool {
	if dr == cr {
		return false
	}
	from, ok := b.balances[dr]
	if !ok {
		return false
	}
	to, ok := b.balances[cr]
	if !ok {
		return false
	}

	if b.mode == Atomic {
		return transferAtomic(from, to, amount)
	}

	fromBal := from.Load()
	toBal := to.Load()
	if fromBal < amount || toBal > math.MaxUint64-amount {
		return false
	}
	from.Store(fromBal - amount)
	to.Store(toBal + amount)
	return true
}

func transferAtomic(from, to *shared.Uint64, amount uint64) bool {
	if to.Load() > math.MaxUint64-amount {
		return false
	}
	for {
		bal := from.Load()
		if bal < amount {
			return false
		}
		if from.CompareAndSwap(bal, bal-amount) {
			break
		}
	}
	to.Add(amount)
	return true
}
