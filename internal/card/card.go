// Package card implements the 0..51 card codec and the legacy deterministic
// shuffle used by the seeded-shuffle variant (see handcore for the
// commitment-based variant used by live hands).
package card

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Card is an integer 0..51. rank = c mod 13, suit = c div 13.
type Card uint8

const (
	NumCards = 52
	NumRanks = 13
	NumSuits = 4
)

// Suit is 0..3 in the fixed order clubs, diamonds, hearts, spades, matching
// the teacher's deck.go ordering.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Rank returns the card's rank in 0..12 (0=two ... 12=ace).
func (c Card) Rank() uint8 {
	return uint8(c) % NumRanks
}

// Suit returns the card's suit in 0..3.
func (c Card) Suit() Suit {
	return Suit(uint8(c) / NumRanks)
}

// RankValue returns the Ace-high rank value in 2..14 used by the evaluator.
func (c Card) RankValue() int {
	return int(c.Rank()) + 2
}

var rankNames = [NumRanks]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

func (c Card) String() string {
	if c >= NumCards {
		return fmt.Sprintf("invalid(%d)", uint8(c))
	}
	return rankNames[c.Rank()] + c.Suit().String()
}

// NewDeck returns the ordered 52-card deck 0..51.
func NewDeck() [NumCards]Card {
	var d [NumCards]Card
	for i := range d {
		d[i] = Card(i)
	}
	return d
}

// Shuffle performs the deterministic legacy Fisher-Yates shuffle from a
// 32-byte seed: iterate i = 51 -> 1, derive the next seed as
// keccak256(prev_seed), take the first four little-endian bytes as u32,
// compute j = u32 mod (i+1), and swap positions i and j.
//
// This is grounded in the teacher's types/deck.go Shuffle, adapted to use
// keccak256 (the teacher's own hash of choice elsewhere, e.g.
// msg_server_create_game.go) instead of a PRNG, per spec.md §4.1 and
// property P8.
func Shuffle(seed [32]byte) [NumCards]Card {
	deck := NewDeck()
	s := seed[:]
	for i := NumCards - 1; i >= 1; i-- {
		h := sha3.NewLegacyKeccak256()
		h.Write(s)
		s = h.Sum(nil)
		u32 := binary.LittleEndian.Uint32(s[:4])
		j := int(u32 % uint32(i+1))
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}
