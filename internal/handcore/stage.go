package handcore

import "encoding/json"

// Stage is a vertex in the hand's 14-stage DAG (spec.md §4.6). It is the
// sole gate on what actions are legal at any moment.
type Stage int

const (
	WaitingForPlayer2 Stage = iota
	PreFlopBetting
	AwaitingFlopReveal
	AwaitingPlayer2FlopShare
	PostFlopBetting
	AwaitingTurnReveal
	AwaitingPlayer2TurnShare
	PostTurnBetting
	AwaitingRiverReveal
	AwaitingPlayer2RiverShare
	PostRiverBetting
	Showdown
	AwaitingPlayer2ShowdownReveal
	Finished
)

func (s Stage) String() string {
	names := [...]string{
		"WaitingForPlayer2",
		"PreFlopBetting",
		"AwaitingFlopReveal",
		"AwaitingPlayer2FlopShare",
		"PostFlopBetting",
		"AwaitingTurnReveal",
		"AwaitingPlayer2TurnShare",
		"PostTurnBetting",
		"AwaitingRiverReveal",
		"AwaitingPlayer2RiverShare",
		"PostRiverBetting",
		"Showdown",
		"AwaitingPlayer2ShowdownReveal",
		"Finished",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// MarshalJSON renders a Stage as its name, so Snapshot's JSON view reads
// naturally for CLI and dashboard clients.
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// IsBetting reports whether s is one of the four betting stages, where I4
// requires neither player has folded and the round is not yet complete.
func (s Stage) IsBetting() bool {
	switch s {
	case PreFlopBetting, PostFlopBetting, PostTurnBetting, PostRiverBetting:
		return true
	default:
		return false
	}
}

// CommunityRevealed returns the count of community cards I5 requires to be
// visible at this stage (0, 3, 4 or 5).
func (s Stage) CommunityRevealed() int {
	switch {
	case s < PostFlopBetting:
		return 0
	case s < PostTurnBetting:
		return 3
	case s < PostRiverBetting:
		return 4
	default:
		return 5
	}
}

// ActionKind is the kind of a betting action submitted to Bet.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
	AllIn
)

func (a ActionKind) String() string {
	names := [...]string{"Fold", "Check", "Call", "Raise", "AllIn"}
	if int(a) < len(names) {
		return names[a]
	}
	return "Unknown"
}
