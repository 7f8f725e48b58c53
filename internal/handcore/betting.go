package handcore

import (
	errorsmod "cosmossdk.io/errors"
)

// BetParams are the bet action inputs (spec.md §6).
type BetParams struct {
	HandID HandID
	Player PlayerId
	Kind   ActionKind
	Raise  uint64 // only meaningful when Kind == Raise
	Now    int64
}

// Bet applies a single betting action: fold, check, call, raise or all-in,
// per the heads-up rules in spec.md §4.5. Every gate is checked in the order
// spec.md §7 prescribes: stage, then turn, then input shape, then economic
// feasibility; a failing gate aborts with no state change.
func (a *Arbiter) Bet(p BetParams) (*HandState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.hands[p.HandID]
	if !ok {
		return nil, errorsmod.Wrapf(ErrHandNotFound, "hand %s", p.HandID.Hex())
	}
	if !h.Stage.IsBetting() {
		return nil, errorsmod.Wrapf(ErrInvalidGameStage, "stage %s is not a betting stage", h.Stage)
	}

	actor, err := seatOf(h, p.Player)
	if err != nil {
		return nil, err
	}
	if idx(h.Turn) != idx(actor) {
		return nil, errorsmod.Wrap(ErrNotYourTurn, "")
	}
	i := idx(actor)
	if h.Folded[i] {
		return nil, errorsmod.Wrap(ErrCannotActAfterFold, "")
	}

	switch p.Kind {
	case Fold:
		applyFold(h, i, p.Now)
	case Check:
		if err := applyCheck(h, i); err != nil {
			return nil, err
		}
	case Call:
		applyCall(h, i)
	case Raise:
		if err := applyRaise(h, i, p.Raise); err != nil {
			return nil, err
		}
	case AllIn:
		if err := applyAllIn(h, i); err != nil {
			return nil, err
		}
	default:
		return nil, errorsmod.Wrapf(ErrInvalidAction, "unknown action kind %v", p.Kind)
	}

	if p.Kind != Fold {
		h.actedThisRound[i] = true
		h.LastAction = p.Kind
		h.LastActionAt = p.Now
		h.Turn = opponent(actor)
	}

	a.finalizePayout(h)
	a.logger.Info("bet applied", "hand_id", p.HandID.Hex(), "player", actor, "action", p.Kind.String())
	return h, nil
}

// subOrZero returns a-b saturated at zero, matching spec.md §7's instruction
// that arithmetic degrade to a no-op zero-delta rather than underflow.
func subOrZero(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

// seatOf maps a PlayerId to its 1-based seat number.
func seatOf(h *HandState, pid PlayerId) (int, error) {
	switch pid {
	case h.P1:
		return 1, nil
	case h.P2:
		return 2, nil
	default:
		return 0, errorsmod.Wrap(ErrInvalidAction, "caller is not a participant in this hand")
	}
}

// applyFold ends the hand immediately: the opponent wins, per spec.md §4.5.
func applyFold(h *HandState, i int, now int64) {
	h.Folded[i] = true
	h.LastAction = Fold
	h.LastActionAt = now
	winnerSeat := opponent(i + 1)
	settleByFold(h, winnerSeat)
}

// applyCheck requires the two bets to already be level.
func applyCheck(h *HandState, i int) error {
	j := idx(opponent(i + 1))
	if h.Bets[i] != h.Bets[j] {
		return errorsmod.Wrap(ErrInvalidAction, "cannot check when bets are unequal")
	}
	return nil
}

// applyCall commits min(opponent_bet - own_bet, own_stack); a short call
// goes all-in.
func applyCall(h *HandState, i int) {
	j := idx(opponent(i + 1))
	delta := subOrZero(h.Bets[j], h.Bets[i])
	if delta > h.Stacks[i] {
		delta = h.Stacks[i]
		h.AllIn[i] = true
	}
	h.Stacks[i] -= delta
	h.Bets[i] += delta
	h.Pot += delta
}

// applyRaise enforces the min-raise rule: r >= the last raise size, or a
// short all-in raise (r == remaining stack after calling).
func applyRaise(h *HandState, i int, r uint64) error {
	j := idx(opponent(i + 1))
	callAmount := subOrZero(h.Bets[j], h.Bets[i])
	if h.AllIn[i] {
		return errorsmod.Wrap(ErrCannotRaiseAllIn, "")
	}
	if r == 0 {
		return errorsmod.Wrap(ErrInvalidBetAmount, "raise must be > 0")
	}
	committed := callAmount + r
	if committed > h.Stacks[i] {
		return errorsmod.Wrap(ErrInsufficientFunds, "raise exceeds stack")
	}
	isShortAllIn := committed == h.Stacks[i]
	if r < h.lastRaiseSize && !isShortAllIn {
		return errorsmod.Wrapf(ErrMinimumRaiseNotMet, "raise %d below minimum %d", r, h.lastRaiseSize)
	}

	// Opponent cap: the effective new bet cannot exceed what the opponent
	// can match (their current bet plus their remaining stack).
	newBet := h.Bets[i] + committed
	opponentCap := h.Bets[j] + h.Stacks[j]
	if newBet > opponentCap {
		newBet = opponentCap
		committed = subOrZero(newBet, h.Bets[i])
	}

	effectiveRaise := subOrZero(newBet, h.Bets[j])
	h.Stacks[i] -= committed
	h.Pot += committed
	h.Bets[i] = newBet
	h.lastRaiseSize = effectiveRaise
	if h.Stacks[i] == 0 {
		h.AllIn[i] = true
	}
	// A raise reopens action: only the raiser has acted this round so far.
	h.actedThisRound[idx(opponent(i + 1))] = false
	return nil
}

// applyAllIn pushes the player's entire remaining stack into the pot.
func applyAllIn(h *HandState, i int) error {
	if h.Stacks[i] == 0 {
		return errorsmod.Wrap(ErrCannotRaiseAllIn, "no stack remaining")
	}
	j := idx(opponent(i + 1))
	callAmount := subOrZero(h.Bets[j], h.Bets[i])
	amount := h.Stacks[i]
	if amount > callAmount {
		// the excess over the call is treated as the raise size for the
		// min-raise rule on any subsequent action.
		h.lastRaiseSize = amount - callAmount
		h.actedThisRound[j] = false
	}
	h.Stacks[i] = 0
	h.Bets[i] += amount
	h.Pot += amount
	h.AllIn[i] = true
	return nil
}

// RoundComplete reports whether the current betting round has ended: either
// a player has folded, a player is all-in and action cannot continue, or
// bets are level and both players have acted since the round started
// (spec.md §4.5 "Round completion").
func (h *HandState) RoundComplete() bool {
	if h.Folded[0] || h.Folded[1] {
		return true
	}
	// An all-in player cannot act again, so action stops once the other
	// player is all-in too or has already matched the all-in bet.
	if h.AllIn[0] && h.AllIn[1] {
		return true
	}
	if h.AllIn[0] && h.Bets[0] <= h.Bets[1] {
		return true
	}
	if h.AllIn[1] && h.Bets[1] <= h.Bets[0] {
		return true
	}
	return h.Bets[0] == h.Bets[1] && h.actedThisRound[0] && h.actedThisRound[1]
}

// AdvanceStreet collapses the round's bets into the pot and moves to the
// next stage's Awaiting*Reveal vertex, resetting per-round betting state.
// Requires RoundComplete; this is the transition the teacher calls lazily
// after detecting round completion rather than inline in Bet, per
// spec.md §4.6.
func (a *Arbiter) AdvanceStreet(handID HandID, now int64) (*HandState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.hands[handID]
	if !ok {
		return nil, errorsmod.Wrapf(ErrHandNotFound, "hand %s", handID.Hex())
	}
	if !h.Stage.IsBetting() {
		return nil, errorsmod.Wrapf(ErrInvalidGameStage, "stage %s is not a betting stage", h.Stage)
	}
	if !h.RoundComplete() {
		return nil, errorsmod.Wrap(ErrRoundNotComplete, "")
	}

	h.Bets = [2]uint64{0, 0}
	h.actedThisRound = [2]bool{false, false}
	h.lastRaiseSize = 0
	h.LastActionAt = now
	// Every next stage is a reveal step; start its deadline now.
	h.RevealDeadline = now + h.ActionTimeout

	switch h.Stage {
	case PreFlopBetting:
		h.Stage = AwaitingFlopReveal
	case PostFlopBetting:
		h.Stage = AwaitingTurnReveal
	case PostTurnBetting:
		h.Stage = AwaitingRiverReveal
	case PostRiverBetting:
		h.Stage = Showdown
	}

	a.logger.Info("street advanced", "hand_id", handID.Hex(), "stage", h.Stage.String())
	return h, nil
}
