package handcore

import "cosmossdk.io/math"

// EscrowAdapter (C8) is the core's sole collaborator for moving funds. The
// core never touches a ledger directly; it issues named effects either
// inside the same atomic transition or as a post-commit instruction, per
// spec.md §5's "shared resource: escrow vault" model. internal/ledger
// provides an in-memory reference implementation; a host embedding this
// core is expected to supply its own (on-chain account, external payments
// rail, etc.) behind the same interface.
type EscrowAdapter interface {
	// InitPlayer registers a fresh player identity with a zero balance.
	InitPlayer(pid PlayerId) error
	// InitBalance is a no-op safety valve matching spec.md §6's init_balance
	// action; implementations may use it to lazily create a balance record.
	InitBalance(pid PlayerId) error
	// Deposit credits amount to pid's balance from outside the system.
	Deposit(pid PlayerId, amount uint64) error
	// Withdraw debits amount from pid's balance; implementations must
	// enforce balance >= amount and return ErrInsufficientFunds otherwise.
	Withdraw(pid PlayerId, amount uint64) error
	// Balance returns pid's current spendable balance.
	Balance(pid PlayerId) (uint64, error)
	// DebitPlayerBalance moves amount out of pid's balance into a hand's
	// vault on entry (create_hand / join_hand).
	DebitPlayerBalance(pid PlayerId, amount uint64) error
	// CreditPlayerBalance moves amount from a hand's vault back to pid's
	// balance on settlement.
	CreditPlayerBalance(pid PlayerId, amount uint64) error
}

// Int is a re-export of cosmossdk.io/math's arbitrary-precision integer,
// used by ledger implementations for balance accounting the same way the
// teacher uses math.Int for SendCoinsFromModuleToAccount amounts.
type Int = math.Int
