package handcore

import (
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/holiman/uint256"

	"github.com/tiltlabs/pokerarbiter/internal/merkle"
)

// Arbiter owns every in-flight hand, keyed by HandID, per spec.md §9's
// design note: "use an owning map from hand_id to HandState in memory, with
// persistence a concern of the host." A single mutex serializes transitions
// across all hands; concurrency between distinct hands is embarrassingly
// parallel in principle (spec.md §5), but this reference arbiter takes the
// simplest correct approach and accepts one lock for the whole map, which
// the teacher's own keeper replaces with collections.Map's store-level
// locking — not needed here since there is no backing KV store.
type Arbiter struct {
	mu     sync.Mutex
	hands  map[HandID]*HandState
	escrow EscrowAdapter
	logger log.Logger

	// defaultActionTimeout seeds HandState.ActionTimeout on creation;
	// overridable per-hand for tests, default 60s per spec.md §6.
	defaultActionTimeout int64
}

// NewArbiter constructs an Arbiter backed by escrow for fund movement and
// logger for structured per-transition logging, matching the teacher's
// NewKeeper(..., logger) constructor shape.
func NewArbiter(escrow EscrowAdapter, logger log.Logger) *Arbiter {
	return &Arbiter{
		hands:                 make(map[HandID]*HandState),
		escrow:                escrow,
		logger:                logger,
		defaultActionTimeout:  60,
	}
}

// SetDefaultActionTimeout overrides the per-hand action timeout seeded into
// every hand created after this call; NewArbiter's default is 60s
// (spec.md §6).
func (a *Arbiter) SetDefaultActionTimeout(seconds int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.defaultActionTimeout = seconds
}

// Get returns a copy-free pointer to the stored hand, or ErrHandNotFound.
// Callers outside this package should treat the returned state as read-only;
// all mutation happens through the Arbiter's own transition methods.
func (a *Arbiter) Get(id HandID) (*HandState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	h, ok := a.hands[id]
	if !ok {
		return nil, errorsmod.Wrapf(ErrHandNotFound, "hand %s", id.Hex())
	}
	return h, nil
}

// CreateHandParams are the create_hand action inputs (spec.md §6).
type CreateHandParams struct {
	HandID         HandID
	P1             PlayerId
	Stake          uint64
	EphPK1         *uint256.Int
	DeckMerkleRoot merkle.Hash
	Now            int64
}

// CreateHand enters WaitingForPlayer2 (spec.md §4.6 "Create hand"). Bond
// stake/10 is captured alongside the stake; blinds are computed as
// stake/100 and stake/50; dealer is fixed to P1.
func (a *Arbiter) CreateHand(p CreateHandParams) (*HandState, error) {
	if p.Stake == 0 {
		return nil, errorsmod.Wrap(ErrInvalidBetAmount, "stake must be > 0")
	}
	if p.EphPK1 == nil || p.EphPK1.IsZero() {
		return nil, errorsmod.Wrap(ErrZeroCommitment, "eph_pk_1 must be non-zero")
	}
	var zeroRoot merkle.Hash
	if p.DeckMerkleRoot == zeroRoot {
		return nil, errorsmod.Wrap(ErrZeroCommitment, "deck_merkle_root must be non-zero")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.hands[p.HandID]; exists {
		return nil, errorsmod.Wrapf(ErrInvalidGameStage, "hand %s already exists", p.HandID.Hex())
	}

	bond := p.Stake / 10
	required := p.Stake + bond
	if err := a.escrow.DebitPlayerBalance(p.P1, required); err != nil {
		return nil, errorsmod.Wrapf(ErrInsufficientBalanceToJoin, "p1: %v", err)
	}

	h := &HandState{
		HandID:         p.HandID,
		P1:             p.P1,
		Stake:          p.Stake,
		Stacks:         [2]uint64{p.Stake, 0},
		Bonds:          [2]uint64{bond, 0},
		SmallBlind:     p.Stake / 100,
		BigBlind:       p.Stake / 50,
		EphPK:          [2]*uint256.Int{p.EphPK1, nil},
		DeckMerkleRoot: p.DeckMerkleRoot,
		Stage:          WaitingForPlayer2,
		Dealer:         1,
		CreatedAt:      p.Now,
		LastActionAt:   p.Now,
		ActionTimeout:  a.defaultActionTimeout,
	}
	a.hands[p.HandID] = h

	a.logger.Info("hand created", "hand_id", p.HandID.Hex(), "stake", p.Stake, "bond", bond)
	return h, nil
}

// JoinHandParams are the join_hand action inputs.
type JoinHandParams struct {
	HandID         HandID
	P2             PlayerId
	EphPK2         *uint256.Int
	EncryptedCards [NumEncryptedSlots]*uint256.Int
	Now            int64
}

// JoinHand supplies P2's key and the nine doubly-encrypted cards, posts
// blinds, and advances to PreFlopBetting (spec.md §4.6 "Join hand"). Player
// distinctness and at-most-one-joiner are enforced here, per the
// original_source/ tilt_programs player-setup check this spec supplements
// with (see SPEC_FULL.md §7).
func (a *Arbiter) JoinHand(p JoinHandParams) (*HandState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.hands[p.HandID]
	if !ok {
		return nil, errorsmod.Wrapf(ErrHandNotFound, "hand %s", p.HandID.Hex())
	}
	if h.Stage != WaitingForPlayer2 {
		return nil, errorsmod.Wrapf(ErrGameAlreadyFull, "hand is in stage %s", h.Stage)
	}
	if p.P2 == h.P1 {
		return nil, errorsmod.Wrap(ErrCannotJoinOwnGame, "p2 must differ from p1")
	}
	if p.EphPK2 == nil || p.EphPK2.IsZero() {
		return nil, errorsmod.Wrap(ErrZeroCommitment, "eph_pk_2 must be non-zero")
	}
	for i, c := range p.EncryptedCards {
		if c == nil || c.IsZero() {
			return nil, errorsmod.Wrapf(ErrInvalidEncryptedCards, "slot %d is zero", i)
		}
	}

	bond := h.Stake / 10
	required := h.Stake + bond
	if err := a.escrow.DebitPlayerBalance(p.P2, required); err != nil {
		return nil, errorsmod.Wrapf(ErrInsufficientBalanceToJoin, "p2: %v", err)
	}

	h.P2 = p.P2
	h.EphPK[1] = p.EphPK2
	h.EncryptedCards = p.EncryptedCards
	h.Stacks[1] = h.Stake
	h.Bonds[1] = bond

	// Heads-up: dealer is the small blind and acts first pre-flop.
	dealerIdx, bbIdx := idx(h.Dealer), idx(opponent(h.Dealer))
	postBlind(h, dealerIdx, h.SmallBlind)
	postBlind(h, bbIdx, h.BigBlind)
	h.Pot = h.Bets[0] + h.Bets[1]
	h.Turn = h.Dealer
	h.lastRaiseSize = 0
	h.LastActionAt = p.Now
	h.Stage = PreFlopBetting

	a.logger.Info("hand joined, blinds posted", "hand_id", p.HandID.Hex(), "pot", h.Pot, "turn", h.Turn)
	return h, nil
}

// postBlind commits a blind amount from a player's stack into their bet,
// capping at the stack (a short-stacked blind goes all-in for less).
func postBlind(h *HandState, i int, amount uint64) {
	if amount > h.Stacks[i] {
		amount = h.Stacks[i]
		h.AllIn[i] = true
	}
	h.Stacks[i] -= amount
	h.Bets[i] += amount
}

// finalizePayout credits each player's final stack back through escrow once
// a hand reaches Finished, completing the debit taken in CreateHand/JoinHand
// (spec.md §4.7's settlement step, §5's "shared resource: escrow vault").
// HandState.Stacks is left as the historical settled amount — it is the
// hand's own record, not a live wallet — so callers can still inspect the
// final stacks from a finished HandState/Snapshot after payout. A
// PaidOut guard stops a hand from being credited twice if this were ever
// invoked more than once for the same hand.
func (a *Arbiter) finalizePayout(h *HandState) {
	if h.Stage != Finished || h.PaidOut {
		return
	}
	if err := a.escrow.CreditPlayerBalance(h.P1, h.Stacks[0]); err != nil {
		a.logger.Error("payout credit failed", "hand_id", h.HandID.Hex(), "player", "p1", "err", err)
		return
	}
	if err := a.escrow.CreditPlayerBalance(h.P2, h.Stacks[1]); err != nil {
		a.logger.Error("payout credit failed", "hand_id", h.HandID.Hex(), "player", "p2", "err", err)
		return
	}
	h.PaidOut = true
}
