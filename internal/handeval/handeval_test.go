package handeval

import (
	"testing"

	"github.com/tiltlabs/pokerarbiter/internal/card"
)

// c builds a card from an ace-high rank value (2..14) and a suit.
func c(rankValue int, suit card.Suit) card.Card {
	return card.Card(uint8(suit)*card.NumRanks + uint8(rankValue-2))
}

func TestRoyalFlush(t *testing.T) {
	hand := [5]card.Card{c(14, card.Spades), c(13, card.Spades), c(12, card.Spades), c(11, card.Spades), c(10, card.Spades)}
	score := Evaluate(hand)
	if score.Category() != RoyalFlush {
		t.Fatalf("expected RoyalFlush, got %v", score.Category())
	}
}

func TestWheelStraightFlush(t *testing.T) {
	hand := [5]card.Card{c(14, card.Clubs), c(5, card.Clubs), c(4, card.Clubs), c(3, card.Clubs), c(2, card.Clubs)}
	score := Evaluate(hand)
	if score.Category() != StraightFlush {
		t.Fatalf("expected StraightFlush (wheel), got %v", score.Category())
	}
	// high should be 5, distinct from a royal flush and a 6-high straight flush.
	wantHigh := 5
	gotHigh := (uint32(score) >> 16) & 0xF
	if int(gotHigh) != wantHigh {
		t.Fatalf("wheel straight flush high = %d, want %d", gotHigh, wantHigh)
	}
}

func TestFourOfAKindBeatsFullHouse(t *testing.T) {
	quad := [5]card.Card{c(5, card.Clubs), c(5, card.Diamonds), c(5, card.Hearts), c(5, card.Spades), c(2, card.Clubs)}
	full := [5]card.Card{c(9, card.Clubs), c(9, card.Diamonds), c(9, card.Hearts), c(3, card.Spades), c(3, card.Clubs)}
	if Evaluate(quad) <= Evaluate(full) {
		t.Fatalf("four of a kind should beat full house")
	}
}

func TestHighCardKickerOrdering(t *testing.T) {
	a := [5]card.Card{c(14, card.Clubs), c(10, card.Diamonds), c(8, card.Hearts), c(6, card.Spades), c(4, card.Clubs)}
	b := [5]card.Card{c(14, card.Diamonds), c(10, card.Hearts), c(8, card.Spades), c(6, card.Clubs), c(3, card.Diamonds)}
	if Evaluate(a) <= Evaluate(b) {
		t.Fatalf("higher 5th kicker should win")
	}
}

func TestBestOfSevenPicksBest(t *testing.T) {
	hole := [2]card.Card{c(14, card.Spades), c(13, card.Spades)}
	community := [5]card.Card{c(12, card.Spades), c(11, card.Spades), c(10, card.Spades), c(2, card.Hearts), c(3, card.Diamonds)}
	_, score := BestOfSeven(hole, community)
	if score.Category() != RoyalFlush {
		t.Fatalf("expected best-of-seven to find the royal flush, got %v", score.Category())
	}
}

func TestScoreOrderingAcrossCategories(t *testing.T) {
	straightFlush := Evaluate([5]card.Card{c(9, card.Clubs), c(8, card.Clubs), c(7, card.Clubs), c(6, card.Clubs), c(5, card.Clubs)})
	quad := Evaluate([5]card.Card{c(5, card.Clubs), c(5, card.Diamonds), c(5, card.Hearts), c(5, card.Spades), c(2, card.Clubs)})
	if straightFlush <= quad {
		t.Fatalf("straight flush must outrank four of a kind")
	}
}
