package handcore

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/tiltlabs/pokerarbiter/internal/card"
)

// Snapshot is a read-only projection of a hand's public state, grounded in
// original_source/'s public view fields on zkpoker's Game account and the
// teacher's query_game_state_public.go read path (SPEC_FULL.md §7). It never
// exposes the two players' ephemeral secrets or anything not already public
// at the given stage.
type Snapshot struct {
	HandID      HandID
	P1, P2      PlayerId
	Stage       Stage
	Pot         uint64
	Stacks      [2]uint64
	Bonds       [2]uint64
	Community   [5]card.Card
	Revealed    int
	Winner      *PlayerId
	WinningRank *uint16
	Pocket      [2][2]card.Card // only populated once RevealedHand[i] is true
}

// Snapshot returns a read-only view of the hand, suitable for client display
// without granting write access to the underlying HandState.
func (a *Arbiter) Snapshot(id HandID) (Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.hands[id]
	if !ok {
		return Snapshot{}, errorsmod.Wrapf(ErrHandNotFound, "hand %s", id.Hex())
	}

	s := Snapshot{
		HandID:      h.HandID,
		P1:          h.P1,
		P2:          h.P2,
		Stage:       h.Stage,
		Pot:         h.Pot,
		Stacks:      h.Stacks,
		Bonds:       h.Bonds,
		Community:   h.Community,
		Revealed:    h.CommunityRevealed,
		Winner:      h.Winner,
		WinningRank: h.WinningRank,
	}
	if h.RevealedHand[0] {
		s.Pocket[0] = h.Pocket[0]
	}
	if h.RevealedHand[1] {
		s.Pocket[1] = h.Pocket[1]
	}
	return s, nil
}
