package driver

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/kolkov/interleave/oracle"
	"github.com/kolkov/interleave/subject/bank"
	"github.com/kolkov/interleave/subject/counter"
)

// CounterScenario increments a shared counter from every worker. The model
// is the number of increments submitted.
func CounterScenario(mode counter.Mode) Scenario[*counter.Counter, uint32] {
	return Scenario[*counter.Counter, uint32]{
		Name:  "counter/" + mode.String(),
		New:   func() *counter.Counter { return counter.New(mode) },
		Model: func() uint32 { return 0 },
		Op: func(_ oracle.Oracle, model *uint32) (func(*counter.Counter), string, error) {
			*model++
			return (*counter.Counter).Increment, "increment", nil
		},
		Check: func(c *counter.Counter, model uint32) error {
			if got := c.Get(); got != model {
				return &Mismatch{What: "counter value", Want: model, Got: got}
			}
			return nil
		},
	}
}

// MaxTransfer bounds the amount of a single transfer in BankScenario.
const MaxTransfer = 100

// BankModel is the reference model of BankScenario. Transfers conserve
// money whatever their order, so the model only tracks the total.
type BankModel struct {
	Total     uint64
	Transfers int
}

// BankScenario runs random transfers between accounts funded with balance
// each. The treasury takes part as account 0.
func BankScenario(mode bank.Mode, accounts int, balance uint64) Scenario[*bank.Bank, BankModel] {
	return Scenario[*bank.Bank, BankModel]{
		Name: "bank/" + mode.String(),
		New: func() *bank.Bank {
			b := bank.New(mode)
			for i := 0; i < accounts; i++ {
				b.Transfer(bank.Treasury, b.CreateAccount(), balance)
			}
			return b
		},
		Model: func() BankModel { return BankModel{Total: bank.InitialTreasury} },
		Op: func(o oracle.Oracle, model *BankModel) (func(*bank.Bank), string, error) {
			dr, err := o.Choose(accounts + 1)
			if err != nil {
				return nil, "", err
			}
			cr, err := o.Choose(accounts + 1)
			if err != nil {
				return nil, "", err
			}
			amount, err := o.IntInRange(0, MaxTransfer)
			if err != nil {
				return nil, "", err
			}
			model.Transfers++
			work := func(b *bank.Bank) {
				b.Transfer(bank.AccountID(dr), bank.AccountID(cr), uint64(amount))
			}
			return work, fmt.Sprintf("transfer %d->%d %d", dr, cr, amount), nil
		},
		Check: func(b *bank.Bank, model BankModel) error {
			if got := b.Total(); got != model.Total {
				return &Mismatch{What: "total balance", Want: model.Total, Got: got, Detail: dumpBalances(b)}
			}
			return nil
		},
	}
}

func dumpBalances(b *bank.Bank) string {
	balances := make(map[bank.AccountID]uint64)
	for _, id := range b.Accounts() {
		balances[id], _ = b.Balance(id)
	}
	cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
	return cfg.Sdump(balances)
}
