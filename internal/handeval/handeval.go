// Package handeval scores 5-card poker hands and selects the best five of
// seven, producing a totally ordered 32-bit score for showdown comparison.
//
// Grounded in the teacher's x/poker/equity/evaluator.go: same makeScore bit
// layout, same combination-enumeration and kicker-extraction approach,
// generalized per spec.md §4.2 to separate RoyalFlush (category 9) from a
// plain StraightFlush (category 8), which the teacher's HandRank does not
// distinguish.
package handeval

import (
	"sort"

	"github.com/tiltlabs/pokerarbiter/internal/card"
)

// Category is the hand category, 0 (high card) through 9 (royal flush).
type Category uint32

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c Category) String() string {
	names := [...]string{
		"High Card", "One Pair", "Two Pair", "Three of a Kind", "Straight",
		"Flush", "Full House", "Four of a Kind", "Straight Flush", "Royal Flush",
	}
	if int(c) < len(names) {
		return names[c]
	}
	return "Unknown"
}

// Score packs category and up to five rank kickers into a 32-bit value such
// that arithmetic > implements poker hand ordering exactly:
// category<<20 | k1<<16 | k2<<12 | k3<<8 | k4<<4 | k5.
type Score uint32

// Category extracts the hand category from a packed score.
func (s Score) Category() Category {
	return Category(s >> 20)
}

func makeScore(cat Category, k1, k2, k3, k4, k5 int) Score {
	return Score(uint32(cat)<<20 | uint32(k1)<<16 | uint32(k2)<<12 | uint32(k3)<<8 | uint32(k4)<<4 | uint32(k5))
}

// Evaluate scores exactly 5 cards. evaluate(a) > evaluate(b) iff a beats b;
// equal scores mean a true split. Duplicate cards are a caller precondition
// violation and yield a defined but uninteresting score.
func Evaluate(hand [5]card.Card) Score {
	sorted := make([]card.Card, 5)
	copy(sorted, hand[:])
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RankValue() > sorted[j].RankValue()
	})

	isFlush := checkFlush(sorted)
	isStraight, straightHigh := checkStraight(sorted)

	type rankCount struct {
		rank  int
		count int
	}
	counted := make(map[int]int, 5)
	for _, c := range sorted {
		counted[c.RankValue()]++
	}
	counts := make([]rankCount, 0, len(counted))
	for r, n := range counted {
		counts = append(counts, rankCount{r, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].rank > counts[j].rank
	})

	switch {
	case isStraight && isFlush && straightHigh == 14:
		return makeScore(RoyalFlush, straightHigh, 0, 0, 0, 0)
	case isStraight && isFlush:
		return makeScore(StraightFlush, straightHigh, 0, 0, 0, 0)
	case counts[0].count == 4:
		kicker := counts[1].rank
		return makeScore(FourOfAKind, counts[0].rank, kicker, 0, 0, 0)
	case counts[0].count == 3 && counts[1].count == 2:
		return makeScore(FullHouse, counts[0].rank, counts[1].rank, 0, 0, 0)
	case isFlush:
		k := getKickers(sorted, nil, 5)
		return makeScore(Flush, k[0], k[1], k[2], k[3], k[4])
	case isStraight:
		return makeScore(Straight, straightHigh, 0, 0, 0, 0)
	case counts[0].count == 3:
		k := getKickers(sorted, map[int]bool{counts[0].rank: true}, 2)
		return makeScore(ThreeOfAKind, counts[0].rank, k[0], k[1], 0, 0)
	case counts[0].count == 2 && counts[1].count == 2:
		hi, lo := counts[0].rank, counts[1].rank
		if lo > hi {
			hi, lo = lo, hi
		}
		k := getKickers(sorted, map[int]bool{counts[0].rank: true, counts[1].rank: true}, 1)
		return makeScore(TwoPair, hi, lo, k[0], 0, 0)
	case counts[0].count == 2:
		k := getKickers(sorted, map[int]bool{counts[0].rank: true}, 3)
		return makeScore(OnePair, counts[0].rank, k[0], k[1], k[2], 0)
	default:
		k := getKickers(sorted, nil, 5)
		return makeScore(HighCard, k[0], k[1], k[2], k[3], k[4])
	}
}

// BestOfSeven enumerates all C(7,5)=21 combinations of hole+community cards
// and returns the maximum-scoring five and its score.
func BestOfSeven(hole [2]card.Card, community [5]card.Card) ([5]card.Card, Score) {
	seven := [7]card.Card{hole[0], hole[1], community[0], community[1], community[2], community[3], community[4]}

	var best [5]card.Card
	var bestScore Score
	for _, combo := range combinations7Choose5 {
		var hand [5]card.Card
		for i, idx := range combo {
			hand[i] = seven[idx]
		}
		score := Evaluate(hand)
		if score > bestScore {
			bestScore = score
			best = hand
		}
	}
	return best, bestScore
}

var combinations7Choose5 = generateCombinations(7, 5)

func generateCombinations(n, r int) [][]int {
	result := make([][]int, 0)
	combo := make([]int, r)
	var generate func(start, idx int)
	generate = func(start, idx int) {
		if idx == r {
			c := make([]int, r)
			copy(c, combo)
			result = append(result, c)
			return
		}
		for i := start; i <= n-(r-idx); i++ {
			combo[idx] = i
			generate(i+1, idx+1)
		}
	}
	generate(0, 0)
	return result
}

func checkFlush(cards []card.Card) bool {
	suit := cards[0].Suit()
	for _, c := range cards[1:] {
		if c.Suit() != suit {
			return false
		}
	}
	return true
}

// checkStraight returns (isStraight, highCard); the wheel A-2-3-4-5 reports
// high=5 per spec.md §4.2.
func checkStraight(cards []card.Card) (bool, int) {
	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = c.RankValue()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	isSequential := true
	for i := 0; i < len(ranks)-1; i++ {
		if ranks[i]-ranks[i+1] != 1 {
			isSequential = false
			break
		}
	}
	if isSequential {
		return true, ranks[0]
	}

	hasAce := false
	for _, c := range cards {
		if c.RankValue() == 14 {
			hasAce = true
			break
		}
	}
	if hasAce {
		lowRanks := make([]int, len(cards))
		for i, c := range cards {
			if c.RankValue() == 14 {
				lowRanks[i] = 1
			} else {
				lowRanks[i] = c.RankValue()
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(lowRanks)))
		isWheel := true
		for i := 0; i < len(lowRanks)-1; i++ {
			if lowRanks[i]-lowRanks[i+1] != 1 {
				isWheel = false
				break
			}
		}
		if isWheel && lowRanks[0] == 5 {
			return true, 5
		}
	}
	return false, 0
}

func getKickers(cards []card.Card, exclude map[int]bool, n int) []int {
	kickers := make([]int, 0, n)
	for _, c := range cards {
		if exclude != nil && exclude[c.RankValue()] {
			continue
		}
		kickers = append(kickers, c.RankValue())
		if len(kickers) == n {
			break
		}
	}
	for len(kickers) < n {
		kickers = append(kickers, 0)
	}
	return kickers
}
