package handcore_test

import (
	"testing"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/tiltlabs/pokerarbiter/internal/card"
	"github.com/tiltlabs/pokerarbiter/internal/handcore"
	"github.com/tiltlabs/pokerarbiter/internal/ledger"
	"github.com/tiltlabs/pokerarbiter/internal/merkle"
	"github.com/tiltlabs/pokerarbiter/internal/phcipher"
)

var (
	p1 = common.HexToHash("0xaa")
	p2 = common.HexToHash("0xbb")
)

func newArbiterWithFunds(t *testing.T, stake uint64) (*handcore.Arbiter, *ledger.Ledger) {
	t.Helper()
	l := ledger.New()
	require.NoError(t, l.Deposit(p1, stake*2))
	require.NoError(t, l.Deposit(p2, stake*2))
	return handcore.NewArbiter(l, log.NewNopLogger()), l
}

func createAndJoin(t *testing.T, a *handcore.Arbiter, handID handcore.HandID, stake uint64, now int64) *handcore.HandState {
	t.Helper()
	pk1 := uint256.NewInt(111)
	pk2 := uint256.NewInt(222)

	_, err := a.CreateHand(handcore.CreateHandParams{
		HandID:         handID,
		P1:             p1,
		Stake:          stake,
		EphPK1:         pk1,
		DeckMerkleRoot: merkle.Hash{1, 2, 3},
		Now:            now,
	})
	require.NoError(t, err)

	var encCards [handcore.NumEncryptedSlots]*uint256.Int
	for i := range encCards {
		c, err := phcipher.EncryptPlain(uint8(i), pk1)
		require.NoError(t, err)
		c2, err := phcipher.Reencrypt(c, pk2)
		require.NoError(t, err)
		encCards[i] = c2
	}

	h, err := a.JoinHand(handcore.JoinHandParams{
		HandID:         handID,
		P2:             p2,
		EphPK2:         pk2,
		EncryptedCards: encCards,
		Now:            now,
	})
	require.NoError(t, err)
	return h
}

// S1. Fold pre-flop.
func TestS1FoldPreFlop(t *testing.T) {
	a, _ := newArbiterWithFunds(t, 1000)
	handID := common.HexToHash("0x01")
	h := createAndJoin(t, a, handID, 1000, 1000)

	require.Equal(t, uint64(30), h.Pot)
	require.Equal(t, [2]uint64{990, 980}, h.Stacks)
	require.Equal(t, [2]uint64{10, 20}, h.Bets)
	require.Equal(t, 1, h.Turn)

	h, err := a.Bet(handcore.BetParams{HandID: handID, Player: p1, Kind: handcore.Fold, Now: 1010})
	require.NoError(t, err)

	require.Equal(t, handcore.Finished, h.Stage)
	require.NotNil(t, h.Winner)
	require.Equal(t, p2, *h.Winner)
	// P2 collects pot (30) + both bonds (100+100) = 230 on top of its
	// post-blind stack of 980: 980 + 30 + 200 = 1210.
	require.Equal(t, uint64(1210), h.Stacks[1])
}

// TestFullHandToShowdown drives a hand end to end through every reveal step
// using the real ciphertexts createAndJoin committed (slot i encrypts
// card.Card(i), per the fixed slot map), then settles at showdown.
func TestFullHandToShowdown(t *testing.T) {
	a, _ := newArbiterWithFunds(t, 1000)
	handID := common.HexToHash("0x02")
	createAndJoin(t, a, handID, 1000, 2000)

	advanceToShowdown(t, a, handID)

	h, err := a.RevealHand(handcore.RevealHandParams{
		HandID: handID, Player: p1,
		Plaintexts: [2]card.Card{handcore.SlotP1Hole0, handcore.SlotP1Hole1},
		Now:        2100,
	})
	require.NoError(t, err)
	require.Equal(t, handcore.AwaitingPlayer2ShowdownReveal, h.Stage)

	h, err = a.RevealHand(handcore.RevealHandParams{
		HandID: handID, Player: p2,
		Plaintexts: [2]card.Card{handcore.SlotP2Hole0, handcore.SlotP2Hole1},
		Now:        2101,
	})
	require.NoError(t, err)

	require.Equal(t, handcore.Finished, h.Stage)
	require.True(t, h.RevealedHand[0] && h.RevealedHand[1])
	require.Equal(t, uint64(0), h.Pot)
}

// advanceToShowdown checks through all three betting/reveal streets using
// the slot-index plaintexts createAndJoin's ciphertexts actually commit to.
func advanceToShowdown(t *testing.T, a *handcore.Arbiter, handID handcore.HandID) {
	t.Helper()
	now := int64(2000)

	act := func(player common.Hash, kind handcore.ActionKind) {
		_, err := a.Bet(handcore.BetParams{HandID: handID, Player: player, Kind: kind, Now: now})
		require.NoError(t, err)
	}
	oneShare := func(n int) []*uint256.Int {
		s := make([]*uint256.Int, n)
		for i := range s {
			s[i] = uint256.NewInt(1)
		}
		return s
	}

	// Pre-flop: dealer (P1) acts first.
	act(p1, handcore.Call)
	act(p2, handcore.Check)
	_, err := a.AdvanceStreet(handID, now)
	require.NoError(t, err)

	_, err = a.RevealCommunityStep1(handcore.RevealCommunityShareParams{HandID: handID, Player: p1, Shares: oneShare(3), Now: now})
	require.NoError(t, err)
	_, err = a.RevealCommunityStep2(handcore.RevealCommunityStep2Params{
		HandID: handID, Player: p2, Shares: oneShare(3),
		Plaintexts: []card.Card{handcore.SlotFlop0, handcore.SlotFlop1, handcore.SlotFlop2}, Now: now,
	})
	require.NoError(t, err)

	act(p2, handcore.Check)
	act(p1, handcore.Check)
	_, err = a.AdvanceStreet(handID, now)
	require.NoError(t, err)

	_, err = a.RevealCommunityStep1(handcore.RevealCommunityShareParams{HandID: handID, Player: p1, Shares: oneShare(1), Now: now})
	require.NoError(t, err)
	_, err = a.RevealCommunityStep2(handcore.RevealCommunityStep2Params{
		HandID: handID, Player: p2, Shares: oneShare(1), Plaintexts: []card.Card{handcore.SlotTurn}, Now: now,
	})
	require.NoError(t, err)

	act(p2, handcore.Check)
	act(p1, handcore.Check)
	_, err = a.AdvanceStreet(handID, now)
	require.NoError(t, err)

	_, err = a.RevealCommunityStep1(handcore.RevealCommunityShareParams{HandID: handID, Player: p1, Shares: oneShare(1), Now: now})
	require.NoError(t, err)
	_, err = a.RevealCommunityStep2(handcore.RevealCommunityStep2Params{
		HandID: handID, Player: p2, Shares: oneShare(1), Plaintexts: []card.Card{handcore.SlotRiver}, Now: now,
	})
	require.NoError(t, err)

	act(p2, handcore.Check)
	act(p1, handcore.Check)
	_, err = a.AdvanceStreet(handID, now)
	require.NoError(t, err)
}

// S4. Min-raise rejection.
func TestS4MinimumRaiseRejected(t *testing.T) {
	a, _ := newArbiterWithFunds(t, 1000)
	handID := common.HexToHash("0x04")
	createAndJoin(t, a, handID, 1000, 3000)

	// P1 (dealer, SB=10) raises by 10: commits callAmount(10)+10=20, new bet 30.
	_, err := a.Bet(handcore.BetParams{HandID: handID, Player: p1, Kind: handcore.Raise, Raise: 10, Now: 3001})
	require.NoError(t, err)

	// P2's min-raise must be >= 10 (the last raise size). Raising 5 fails.
	_, err = a.Bet(handcore.BetParams{HandID: handID, Player: p2, Kind: handcore.Raise, Raise: 5, Now: 3002})
	require.ErrorIs(t, err, handcore.ErrMinimumRaiseNotMet)
}

// S6. Timeout in reveal.
func TestS6TimeoutDuringReveal(t *testing.T) {
	a, _ := newArbiterWithFunds(t, 1000)
	handID := common.HexToHash("0x06")
	h := createAndJoin(t, a, handID, 1000, 4000)

	_, err := a.Bet(handcore.BetParams{HandID: handID, Player: p1, Kind: handcore.Call, Now: 4001})
	require.NoError(t, err)
	_, err = a.Bet(handcore.BetParams{HandID: handID, Player: p2, Kind: handcore.Check, Now: 4002})
	require.NoError(t, err)
	_, err = a.AdvanceStreet(handID, 4003)
	require.NoError(t, err)

	_, err = a.RevealCommunityStep1(handcore.RevealCommunityShareParams{
		HandID: handID, Player: p1,
		Shares: []*uint256.Int{uint256.NewInt(1), uint256.NewInt(1), uint256.NewInt(1)},
		Now:    4004,
	})
	require.NoError(t, err)

	h, err = a.Get(handID)
	require.NoError(t, err)
	require.Equal(t, handcore.AwaitingPlayer2FlopShare, h.Stage)

	// P2 never submits step B; P1 claims timeout after the deadline.
	past := h.RevealDeadline + 1
	h, err = a.ClaimTimeout(handcore.ClaimTimeoutParams{HandID: handID, Claimant: p1, Now: past})
	require.NoError(t, err)

	require.Equal(t, handcore.Finished, h.Stage)
	require.NotNil(t, h.Winner)
	require.Equal(t, p1, *h.Winner)
}

// S5. Reveal mismatch.
func TestS5RevealMismatchLeavesStateUnchanged(t *testing.T) {
	a, _ := newArbiterWithFunds(t, 1000)
	handID := common.HexToHash("0x05")
	createAndJoin(t, a, handID, 1000, 6000)

	_, err := a.Bet(handcore.BetParams{HandID: handID, Player: p1, Kind: handcore.Call, Now: 6001})
	require.NoError(t, err)
	_, err = a.Bet(handcore.BetParams{HandID: handID, Player: p2, Kind: handcore.Check, Now: 6002})
	require.NoError(t, err)
	_, err = a.AdvanceStreet(handID, 6003)
	require.NoError(t, err)

	_, err = a.RevealCommunityStep1(handcore.RevealCommunityShareParams{
		HandID: handID, Player: p1,
		Shares: []*uint256.Int{uint256.NewInt(1), uint256.NewInt(1), uint256.NewInt(1)},
		Now:    6004,
	})
	require.NoError(t, err)

	before, err := a.Get(handID)
	require.NoError(t, err)
	beforeStage := before.Stage
	beforeCommunity := before.Community

	// P2 claims the flop is {51, 50, 49} - wrong, since createAndJoin's
	// ciphertexts actually commit slots 4-6 to card.Card(4..6).
	_, err = a.RevealCommunityStep2(handcore.RevealCommunityStep2Params{
		HandID: handID, Player: p2, Shares: []*uint256.Int{uint256.NewInt(1), uint256.NewInt(1), uint256.NewInt(1)},
		Plaintexts: []card.Card{51, 50, 49}, Now: 6005,
	})
	require.ErrorIs(t, err, handcore.ErrCardVerificationFailed)

	after, err := a.Get(handID)
	require.NoError(t, err)
	require.Equal(t, beforeStage, after.Stage)
	require.Equal(t, beforeCommunity, after.Community)

	// After the reveal deadline, the honest dealer claims timeout and takes
	// the pot plus both bonds.
	past := after.RevealDeadline + 1
	h, err := a.ClaimTimeout(handcore.ClaimTimeoutParams{HandID: handID, Claimant: p1, Now: past})
	require.NoError(t, err)
	require.Equal(t, handcore.Finished, h.Stage)
	require.Equal(t, p1, *h.Winner)
}

func TestJoinRejectsSameSeat(t *testing.T) {
	a, _ := newArbiterWithFunds(t, 1000)
	handID := common.HexToHash("0x07")
	pk1 := uint256.NewInt(1)
	_, err := a.CreateHand(handcore.CreateHandParams{
		HandID: handID, P1: p1, Stake: 1000, EphPK1: pk1, DeckMerkleRoot: merkle.Hash{9}, Now: 1,
	})
	require.NoError(t, err)

	var encCards [handcore.NumEncryptedSlots]*uint256.Int
	for i := range encCards {
		encCards[i] = uint256.NewInt(uint64(i + 1))
	}
	_, err = a.JoinHand(handcore.JoinHandParams{HandID: handID, P2: p1, EphPK2: uint256.NewInt(2), EncryptedCards: encCards, Now: 2})
	require.ErrorIs(t, err, handcore.ErrCannotJoinOwnGame)
}

func TestNotYourTurnRejected(t *testing.T) {
	a, _ := newArbiterWithFunds(t, 1000)
	handID := common.HexToHash("0x08")
	createAndJoin(t, a, handID, 1000, 5000)

	_, err := a.Bet(handcore.BetParams{HandID: handID, Player: p2, Kind: handcore.Check, Now: 5001})
	require.ErrorIs(t, err, handcore.ErrNotYourTurn)
}
