// Package ledger provides an in-memory reference implementation of
// handcore.EscrowAdapter (C8), using cosmossdk.io/math.Int balances the same
// way the teacher's bank-module glue (x/poker/keeper/bridge_keeper.go,
// msg_server_mint.go) moves math.Int-denominated amounts through
// SendCoinsFromModuleToAccount. A real deployment substitutes its own
// adapter (on-chain account, external payments rail) behind the same
// interface; this one exists so the repo is runnable end to end.
package ledger

import (
	"sync"

	"cosmossdk.io/math"

	"github.com/tiltlabs/pokerarbiter/internal/handcore"
)

// Ledger is a mutex-guarded map of player balances.
type Ledger struct {
	mu       sync.Mutex
	balances map[handcore.PlayerId]math.Int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{balances: make(map[handcore.PlayerId]math.Int)}
}

var _ handcore.EscrowAdapter = (*Ledger)(nil)

func (l *Ledger) InitPlayer(pid handcore.PlayerId) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.balances[pid]; !ok {
		l.balances[pid] = math.ZeroInt()
	}
	return nil
}

func (l *Ledger) InitBalance(pid handcore.PlayerId) error {
	return l.InitPlayer(pid)
}

func (l *Ledger) Deposit(pid handcore.PlayerId, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal, ok := l.balances[pid]
	if !ok {
		bal = math.ZeroInt()
	}
	l.balances[pid] = bal.Add(math.NewIntFromUint64(amount))
	return nil
}

func (l *Ledger) Withdraw(pid handcore.PlayerId, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal, ok := l.balances[pid]
	if !ok || bal.LT(math.NewIntFromUint64(amount)) {
		return handcore.ErrInsufficientFunds
	}
	l.balances[pid] = bal.Sub(math.NewIntFromUint64(amount))
	return nil
}

func (l *Ledger) Balance(pid handcore.PlayerId) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal, ok := l.balances[pid]
	if !ok {
		return 0, nil
	}
	return bal.Uint64(), nil
}

func (l *Ledger) DebitPlayerBalance(pid handcore.PlayerId, amount uint64) error {
	return l.Withdraw(pid, amount)
}

func (l *Ledger) CreditPlayerBalance(pid handcore.PlayerId, amount uint64) error {
	return l.Deposit(pid, amount)
}
