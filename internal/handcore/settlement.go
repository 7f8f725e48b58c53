package handcore

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/tiltlabs/pokerarbiter/internal/handeval"
)

// settleByFold awards pot + own_bond + opponent_bond to winnerSeat, per
// spec.md §4.7. Per the bond rule supplemented from original_source/ (see
// SPEC_FULL.md §7), this applies uniformly to a plain fold: the winner takes
// both bonds. h.Pot is already kept in sync with h.Bets by every betting
// action (applyCall/applyRaise/applyAllIn add into Pot as they add into
// Bets), so the current round's bets are collapsed by clearing Bets alone,
// the same as AdvanceStreet and RevealCommunityStep2 do it - adding Bets
// into Pot again here would double-count the round in flight.
func settleByFold(h *HandState, winnerSeat int) {
	h.Bets = [2]uint64{0, 0}

	w := idx(winnerSeat)
	award := h.Pot + h.Bonds[0] + h.Bonds[1]
	h.Stacks[w] += award
	h.Bonds[0] = 0
	h.Bonds[1] = 0
	h.Pot = 0

	var winner PlayerId
	if winnerSeat == 1 {
		winner = h.P1
	} else {
		winner = h.P2
	}
	h.Winner = &winner
	h.Stage = Finished
}

// settleByShowdown evaluates both best-of-seven hands and distributes the
// pot per spec.md §4.7: higher score takes pot+own bond, loser keeps its own
// bond; a tie splits the pot (extra odd chip to the dealer) and each keeps
// its own bond.
func settleByShowdown(h *HandState) {
	_, score1 := handeval.BestOfSeven(h.Pocket[0], h.Community)
	_, score2 := handeval.BestOfSeven(h.Pocket[1], h.Community)

	switch {
	case score1 > score2:
		h.Stacks[0] += h.Pot + h.Bonds[0]
		h.Stacks[1] += h.Bonds[1]
		winner := h.P1
		h.Winner = &winner
		rank := uint16(score1.Category())
		h.WinningRank = &rank
	case score2 > score1:
		h.Stacks[1] += h.Pot + h.Bonds[1]
		h.Stacks[0] += h.Bonds[0]
		winner := h.P2
		h.Winner = &winner
		rank := uint16(score2.Category())
		h.WinningRank = &rank
	default:
		half := h.Pot / 2
		odd := h.Pot % 2
		dealerIdx := idx(h.Dealer)
		nonDealerIdx := idx(opponent(h.Dealer))
		h.Stacks[dealerIdx] += half + odd + h.Bonds[dealerIdx]
		h.Stacks[nonDealerIdx] += half + h.Bonds[nonDealerIdx]
		// Winner is left unset on a true split.
		rank := uint16(score1.Category())
		h.WinningRank = &rank
	}

	h.Bonds = [2]uint64{0, 0}
	h.Pot = 0
	h.Stage = Finished
}

// ClaimTimeoutParams are the claim_timeout action inputs.
type ClaimTimeoutParams struct {
	HandID   HandID
	Claimant PlayerId
	Now      int64
}

// ClaimTimeout lets the non-delinquent player collect pot + both bonds once
// the deadline for the other player's action has passed, per spec.md §4.6
// "Timeout & bond policy". In a betting stage the check uses ActionTimeout
// against the turn player; in a reveal stage it uses RevealDeadline.
func (a *Arbiter) ClaimTimeout(p ClaimTimeoutParams) (*HandState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.hands[p.HandID]
	if !ok {
		return nil, errorsmod.Wrapf(ErrHandNotFound, "hand %s", p.HandID.Hex())
	}
	claimantSeat, err := seatOf(h, p.Claimant)
	if err != nil {
		return nil, err
	}

	// delinquentSeat is whichever seat must act next; only the other seat
	// may claim the timeout.
	var delinquentSeat int
	var expired bool
	switch h.Stage {
	case AwaitingFlopReveal, AwaitingTurnReveal, AwaitingRiverReveal, Showdown:
		delinquentSeat = 1 // dealer owes the step-A / first reveal
		expired = p.Now > h.RevealDeadline
	case AwaitingPlayer2FlopShare, AwaitingPlayer2TurnShare, AwaitingPlayer2RiverShare:
		delinquentSeat = 2 // non-dealer owes the step-B share
		expired = p.Now > h.RevealDeadline
	case AwaitingPlayer2ShowdownReveal:
		// whichever seat has not revealed yet owes the second reveal
		delinquentSeat = 2
		if h.RevealedHand[1] {
			delinquentSeat = 1
		}
		expired = p.Now > h.RevealDeadline
	default:
		if !h.Stage.IsBetting() {
			return nil, errorsmod.Wrapf(ErrInvalidGameStage, "stage %s has no timeout", h.Stage)
		}
		delinquentSeat = h.Turn
		expired = p.Now > h.LastActionAt+h.ActionTimeout
	}
	if idx(claimantSeat) == idx(delinquentSeat) {
		return nil, errorsmod.Wrap(ErrTimeoutNotReached, "claimant is the delinquent player")
	}
	if !expired {
		return nil, errorsmod.Wrap(ErrTimeoutNotReached, "")
	}

	settleByFold(h, claimantSeat)
	a.finalizePayout(h)
	a.logger.Info("timeout claimed", "hand_id", p.HandID.Hex(), "claimant_seat", claimantSeat)
	return h, nil
}
