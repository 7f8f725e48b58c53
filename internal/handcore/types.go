// Package handcore implements the trustless hand state machine (C6), the
// heads-up betting engine (C5), and showdown/timeout settlement (C7), plus
// the EscrowAdapter interface (C8) the core uses to move funds. It is the
// single-threaded-per-hand core described in spec.md §5: every transition
// reads the current HandState, computes the next one, and commits
// atomically, with no suspension points and no in-flight cancellation.
//
// Grounded in the teacher's keeper/msg_server_*.go transition style (stage
// checks, errorsmod wrap chains, sdk.Context.Logger() structured logging)
// but replacing cosmossdk.io/collections-backed KV storage with a plain
// mutex-guarded map, per spec.md §9's own instruction: "use an owning map
// from hand_id to HandState in memory, with persistence a concern of the
// host."
package handcore

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/tiltlabs/pokerarbiter/internal/card"
	"github.com/tiltlabs/pokerarbiter/internal/merkle"
)

// PlayerId is an opaque 32-byte identity tag from the hosting environment.
type PlayerId = common.Hash

// HandID identifies a single hand, opaque to the core beyond equality.
type HandID = common.Hash

// SlotMap is the fixed assignment of encrypted_cards indices to roles:
// 0-1 P1 hole, 2-3 P2 hole, 4-6 flop, 7 turn, 8 river.
const (
	SlotP1Hole0 = 0
	SlotP1Hole1 = 1
	SlotP2Hole0 = 2
	SlotP2Hole1 = 3
	SlotFlop0   = 4
	SlotFlop1   = 5
	SlotFlop2   = 6
	SlotTurn    = 7
	SlotRiver   = 8

	NumEncryptedSlots = 9
)

// HandState is the central entity, the only struct C6 mutates. Fields are
// grouped exactly as spec.md §3 lists them.
type HandState struct {
	// Identity
	HandID   HandID
	P1       PlayerId
	P2       PlayerId
	VaultRef string // opaque escrow locator
	Bump     uint8  // opaque escrow locator (PDA bump equivalent)

	// Economics
	Stake      uint64
	Pot        uint64
	Bets       [2]uint64
	Stacks     [2]uint64
	Bonds      [2]uint64
	SmallBlind uint64
	BigBlind   uint64

	// Cryptography
	EphPK          [2]*uint256.Int
	DeckMerkleRoot merkle.Hash
	EncryptedCards [NumEncryptedSlots]*uint256.Int
	P1FlopShares   [3]*uint256.Int
	P1TurnShare    *uint256.Int
	P1RiverShare   *uint256.Int

	// Reveals
	Pocket            [2][2]card.Card
	Community         [5]card.Card
	CommunityRevealed int // 0, 3, 4 or 5
	RevealedHand      [2]bool

	// Control
	Stage      Stage
	Turn       int // 1 or 2
	Dealer     int // 1 or 2
	LastAction ActionKind

	// Flags
	Folded [2]bool
	AllIn  [2]bool

	// Time (unix seconds, monotonic per spec.md §1)
	CreatedAt      int64
	LastActionAt   int64
	ActionTimeout  int64 // default 60s
	RevealDeadline int64

	// Result
	Winner      *PlayerId
	WinningRank *uint16
	PaidOut     bool // true once escrow has been credited the final stacks

	// lastRaiseSize tracks the last raise amount for the min-raise rule
	// (spec.md §4.5); reset to 0 at the start of each round, since the
	// opening raise of a round has no minimum floor.
	lastRaiseSize uint64
	// actedThisRound tracks whether each player has acted since the round
	// began, needed by the round-completion rule (c).
	actedThisRound [2]bool
}

// idx returns the 0-based array index for a 1-based player number (1 or 2).
func idx(player int) int {
	return player - 1
}

// opponent returns the other 1-based player number.
func opponent(player int) int {
	if player == 1 {
		return 2
	}
	return 1
}
