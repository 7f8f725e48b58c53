package card

import "testing"

func TestRankSuit(t *testing.T) {
	cases := []struct {
		c     Card
		rank  uint8
		suit  Suit
		value int
	}{
		{0, 0, Clubs, 2},
		{12, 12, Clubs, 14},
		{13, 0, Diamonds, 2},
		{51, 12, Spades, 14},
	}
	for _, tc := range cases {
		if got := tc.c.Rank(); got != tc.rank {
			t.Errorf("Card(%d).Rank() = %d, want %d", tc.c, got, tc.rank)
		}
		if got := tc.c.Suit(); got != tc.suit {
			t.Errorf("Card(%d).Suit() = %v, want %v", tc.c, got, tc.suit)
		}
		if got := tc.c.RankValue(); got != tc.value {
			t.Errorf("Card(%d).RankValue() = %d, want %d", tc.c, got, tc.value)
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	seed := [32]byte{1, 2, 3}
	deck := Shuffle(seed)

	var seen [NumCards]bool
	for _, c := range deck {
		if c >= NumCards {
			t.Fatalf("card out of range: %d", c)
		}
		if seen[c] {
			t.Fatalf("duplicate card in shuffled deck: %d", c)
		}
		seen[c] = true
	}
}

func TestShuffleDeterministic(t *testing.T) {
	seed := [32]byte{9, 9, 9, 9}
	a := Shuffle(seed)
	b := Shuffle(seed)
	if a != b {
		t.Fatalf("Shuffle is not deterministic for the same seed: %v != %v", a, b)
	}
}

func TestShuffleDifferentSeeds(t *testing.T) {
	a := Shuffle([32]byte{1})
	b := Shuffle([32]byte{2})
	if a == b {
		t.Fatalf("different seeds unexpectedly produced the same shuffle")
	}
}
