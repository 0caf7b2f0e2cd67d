package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/interleave/interleave"
	"github.com/kolkov/interleave/oracle"
)

func TestNew(t *testing.T) {
	b := New(Buggy)
	assert.Equal(t, []AccountID{Treasury}, b.Accounts())
	bal, ok := b.Balance(Treasury)
	require.True(t, ok)
	assert.Equal(t, uint64(InitialTreasury), bal)
	assert.Equal(t, uint64(InitialTreasury), b.Total())
}

func TestTransfer(t *testing.T) {
	for _, mode := range []Mode{Buggy, Atomic} {
		t.Run(mode.String(), func(t *testing.T) {
			b := New(mode)
			a := b.CreateAccount()
			c := b.CreateAccount()

			assert.True(t, b.Transfer(Treasury, a, 100))
			assert.True(t, b.Transfer(a, c, 40))
			assert.False(t, b.Transfer(a, c, 61), "overdraft")
			assert.False(t, b.Transfer(a, a, 1), "self transfer")
			assert.False(t, b.Transfer(a, 99, 1), "unknown credit account")
			assert.False(t, b.Transfer(99, a, 1), "unknown debit account")

			balA, _ := b.Balance(a)
			balC, _ := b.Balance(c)
			assert.Equal(t, uint64(60), balA)
			assert.Equal(t, uint64(40), balC)
			assert.Equal(t, uint64(InitialTreasury), b.Total())
		})
	}
}

func TestDeleteAccount(t *testing.T) {
	b := New(Atomic)
	a := b.CreateAccount()
	require.True(t, b.Transfer(Treasury, a, 500))

	require.NoError(t, b.DeleteAccount(a))
	_, ok := b.Balance(a)
	assert.False(t, ok)
	assert.Equal(t, uint64(InitialTreasury), b.Total(), "balance swept to the treasury")

	assert.ErrorIs(t, b.DeleteAccount(a), ErrNoAccount)
	assert.ErrorIs(t, b.DeleteAccount(Treasury), ErrTreasury)

	// Ids are not reused.
	assert.Equal(t, a+1, b.CreateAccount())
}

// TestBank_Conservation drives random create/delete/transfer sequences and
// checks the total never changes.
func TestBank_Conservation(t *testing.T) {
	for i := 0; i < 200; i++ {
		seed := oracle.Seed(uint64(i)<<32 | 64)
		o := seed.Oracle()
		b := New(Buggy)

		for !o.Empty() {
			op, err := o.Choose(3)
			require.NoError(t, err)
			accounts := b.Accounts()

			switch op {
			case 0:
				b.CreateAccount()
			case 1:
				k, err := o.Choose(len(accounts))
				require.NoError(t, err)
				if accounts[k] != Treasury {
					require.NoError(t, b.DeleteAccount(accounts[k]))
				}
			case 2:
				dr, err := o.Choose(len(accounts))
				require.NoError(t, err)
				cr, err := o.Choose(len(accounts))
				require.NoError(t, err)
				amount, err := o.IntInRange(0, 100)
				require.NoError(t, err)
				b.Transfer(accounts[dr], accounts[cr], uint64(amount))
			}

			require.Equal(t, uint64(InitialTreasury), b.Total(), "seed %s", seed)
		}
	}
}

// interleavedTransfers parks the first transfer after it has read both
// balances, runs a second transfer on the same debit account to completion,
// then lets the first finish.
func interleavedTransfers(t *testing.T, mode Mode) *Bank {
	t.Helper()
	b := New(mode)
	a := b.CreateAccount()
	c := b.CreateAccount()
	require.True(t, b.Transfer(Treasury, a, 100))

	w1 := interleave.Spawn(b)
	w2 := interleave.Spawn(b)
	defer w1.Close()
	defer w2.Close()

	w1.Act(func(b *Bank) { b.Transfer(a, c, 10) })
	// Release w1 until it has performed both reads (four suspension points
	// in buggy mode, three in atomic mode before the CAS).
	for i := 0; i < 3 && w1.IsBlocked(); i++ {
		w1.Unblock()
	}

	w2.Act(func(b *Bank) { b.Transfer(a, Treasury, 30) })
	for w2.IsBlocked() {
		w2.Unblock()
	}
	return b
}

func TestBank_InterleavedBuggyTransferBreaksConservation(t *testing.T) {
	b := interleavedTransfers(t, Buggy)
	assert.NotEqual(t, uint64(InitialTreasury), b.Total())
}

func TestBank_InterleavedAtomicTransferConserves(t *testing.T) {
	b := interleavedTransfers(t, Atomic)
	assert.Equal(t, uint64(InitialTreasury), b.Total())
}
