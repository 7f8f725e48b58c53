package handcore

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/holiman/uint256"

	"github.com/tiltlabs/pokerarbiter/internal/card"
	"github.com/tiltlabs/pokerarbiter/internal/phcipher"
)

// streetReveal names one of the three progressive reveal rounds.
type streetReveal int

const (
	revealFlop streetReveal = iota
	revealTurn
	revealRiver
)

func (h *HandState) slotsFor(s streetReveal) []int {
	switch s {
	case revealFlop:
		return []int{SlotFlop0, SlotFlop1, SlotFlop2}
	case revealTurn:
		return []int{SlotTurn}
	default:
		return []int{SlotRiver}
	}
}

// RevealCommunityShareParams are the step-A reveal_community inputs: the
// dealer (P1) submits its decryption shares for this street.
type RevealCommunityShareParams struct {
	HandID HandID
	Player PlayerId
	Shares []*uint256.Int // 3 for flop, 1 for turn/river
	Now    int64
}

// RevealCommunityStep1 stores P1's decryption shares (spec.md §4.6 "Step A")
// and opens the window for P2's corresponding step B.
func (a *Arbiter) RevealCommunityStep1(p RevealCommunityShareParams) (*HandState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.hands[p.HandID]
	if !ok {
		return nil, errorsmod.Wrapf(ErrHandNotFound, "hand %s", p.HandID.Hex())
	}
	if p.Player != h.P1 {
		return nil, errorsmod.Wrap(ErrInvalidAction, "only the dealer submits step-A shares")
	}

	var street streetReveal
	var next Stage
	switch h.Stage {
	case AwaitingFlopReveal:
		street, next = revealFlop, AwaitingPlayer2FlopShare
	case AwaitingTurnReveal:
		street, next = revealTurn, AwaitingPlayer2TurnShare
	case AwaitingRiverReveal:
		street, next = revealRiver, AwaitingPlayer2RiverShare
	default:
		return nil, errorsmod.Wrapf(ErrInvalidGameStage, "stage %s does not accept step-A shares", h.Stage)
	}

	slots := h.slotsFor(street)
	if len(p.Shares) != len(slots) {
		return nil, errorsmod.Wrapf(ErrMissingDecryptionShares, "expected %d shares, got %d", len(slots), len(p.Shares))
	}
	for _, s := range p.Shares {
		if s == nil || s.IsZero() {
			return nil, errorsmod.Wrap(ErrZeroCommitment, "decryption share must be non-zero")
		}
	}

	switch street {
	case revealFlop:
		h.P1FlopShares = [3]*uint256.Int{p.Shares[0], p.Shares[1], p.Shares[2]}
	case revealTurn:
		h.P1TurnShare = p.Shares[0]
	case revealRiver:
		h.P1RiverShare = p.Shares[0]
	}

	h.RevealDeadline = p.Now + h.ActionTimeout
	h.Stage = next
	a.logger.Info("dealer reveal share stored", "hand_id", p.HandID.Hex(), "stage", h.Stage.String())
	return h, nil
}

// RevealCommunityStep2Params are the step-B reveal_community inputs: P2
// submits its own shares plus the claimed plaintext cards.
type RevealCommunityStep2Params struct {
	HandID     HandID
	Player     PlayerId
	Shares     []*uint256.Int
	Plaintexts []card.Card
	Now        int64
}

// RevealCommunityStep2 verifies each revealed card against its committed
// ciphertext via phcipher.Verify; any mismatch aborts with no state change,
// per spec.md §4.6 and §7 ("all-or-nothing").
func (a *Arbiter) RevealCommunityStep2(p RevealCommunityStep2Params) (*HandState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.hands[p.HandID]
	if !ok {
		return nil, errorsmod.Wrapf(ErrHandNotFound, "hand %s", p.HandID.Hex())
	}
	if p.Player != h.P2 {
		return nil, errorsmod.Wrap(ErrInvalidAction, "only the non-dealer submits step-B shares")
	}

	var street streetReveal
	switch h.Stage {
	case AwaitingPlayer2FlopShare:
		street = revealFlop
	case AwaitingPlayer2TurnShare:
		street = revealTurn
	case AwaitingPlayer2RiverShare:
		street = revealRiver
	default:
		return nil, errorsmod.Wrapf(ErrInvalidGameStage, "stage %s does not accept step-B shares", h.Stage)
	}

	slots := h.slotsFor(street)
	if len(p.Shares) != len(slots) || len(p.Plaintexts) != len(slots) {
		return nil, errorsmod.Wrapf(ErrMissingDecryptionShares, "expected %d shares and plaintexts", len(slots))
	}
	for i, slot := range slots {
		ok := phcipher.Verify(uint8(p.Plaintexts[i]), h.EncryptedCards[slot], h.EphPK[0], h.EphPK[1])
		if !ok {
			return nil, errorsmod.Wrapf(ErrCardVerificationFailed, "slot %d", slot)
		}
	}

	for i, slot := range slots {
		h.Community[slot-SlotFlop0] = p.Plaintexts[i]
	}

	var nextBetting Stage
	switch street {
	case revealFlop:
		h.CommunityRevealed = 3
		nextBetting = PostFlopBetting
	case revealTurn:
		h.CommunityRevealed = 4
		nextBetting = PostTurnBetting
	case revealRiver:
		h.CommunityRevealed = 5
		nextBetting = PostRiverBetting
	}

	h.Bets = [2]uint64{0, 0}
	h.actedThisRound = [2]bool{false, false}
	h.lastRaiseSize = 0
	// Post-flop/turn/river: non-dealer (BB) acts first, the reverse of
	// pre-flop, per spec.md §4.6 "Initial-actor rule".
	h.Turn = opponent(h.Dealer)
	h.Stage = nextBetting
	h.LastActionAt = p.Now

	a.logger.Info("community revealed", "hand_id", p.HandID.Hex(), "revealed", h.CommunityRevealed, "stage", h.Stage.String())
	return h, nil
}

// RevealHandParams are the reveal_hand action inputs; pockets are already
// stored as ciphertexts, so only the caller and the claimed plaintexts are
// needed.
type RevealHandParams struct {
	HandID     HandID
	Player     PlayerId
	Plaintexts [2]card.Card
	Now        int64
}

// RevealHand implements the two-step showdown reveal (spec.md §4.6
// "Showdown"): each caller's two pocket cards are verified on that caller's
// reveal; the first caller flags and sets the reveal deadline; the second
// caller's reveal triggers evaluation and settlement.
func (a *Arbiter) RevealHand(p RevealHandParams) (*HandState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.hands[p.HandID]
	if !ok {
		return nil, errorsmod.Wrapf(ErrHandNotFound, "hand %s", p.HandID.Hex())
	}
	if h.Stage != Showdown && h.Stage != AwaitingPlayer2ShowdownReveal {
		return nil, errorsmod.Wrapf(ErrInvalidGameStage, "stage %s does not accept a showdown reveal", h.Stage)
	}

	seat, err := seatOf(h, p.Player)
	if err != nil {
		return nil, err
	}
	i := idx(seat)
	if h.RevealedHand[i] {
		return nil, errorsmod.Wrap(ErrAlreadyRevealedHand, "")
	}

	hole0, hole1 := 2*i, 2*i+1
	pk1, pk2 := h.EphPK[0], h.EphPK[1]
	if !phcipher.Verify(uint8(p.Plaintexts[0]), h.EncryptedCards[hole0], pk1, pk2) ||
		!phcipher.Verify(uint8(p.Plaintexts[1]), h.EncryptedCards[hole1], pk1, pk2) {
		return nil, errorsmod.Wrap(ErrCardVerificationFailed, "pocket cards")
	}

	h.Pocket[i] = [2]card.Card{p.Plaintexts[0], p.Plaintexts[1]}
	h.RevealedHand[i] = true

	if h.Stage == Showdown {
		h.RevealDeadline = p.Now + h.ActionTimeout
		h.Stage = AwaitingPlayer2ShowdownReveal
		a.logger.Info("first showdown reveal", "hand_id", p.HandID.Hex(), "seat", seat)
		return h, nil
	}

	// Both hands are now revealed: evaluate and settle.
	settleByShowdown(h)
	a.finalizePayout(h)
	a.logger.Info("showdown settled", "hand_id", p.HandID.Hex(), "winner", h.Winner)
	return h, nil
}
