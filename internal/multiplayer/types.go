// Package multiplayer runs lane-crossing worlds on their own goroutines:
// input queues, fixed-tick runners, two-player versus matches and the
// registry of live sessions that spectators can watch.
package multiplayer

import (
	"fmt"

	"github.com/google/uuid"
)

// PlayerID identifies a seat in a match.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// String returns a human-readable name for the player.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return fmt.Sprintf("Player %d", int(p))
	}
}

// index maps a seat to its slot in two-element arrays.
func (p PlayerID) index() (int, bool) {
	switch p {
	case Player1:
		return 0, true
	case Player2:
		return 1, true
	}
	return 0, false
}

// SessionID uniquely identifies a live session (one terminal or SSH connection).
type SessionID string

// NewSessionID returns a random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// MatchID uniquely identifies one versus round.
type MatchID string

// NewMatchID returns a random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.New().String())
}

// MatchMode defines how a session is configured.
type MatchMode int

const (
	// MatchModeSolo is one player on one world.
	MatchModeSolo MatchMode = iota

	// MatchModeVersus is two players on two worlds sharing a seed.
	MatchModeVersus
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "solo"
	case MatchModeVersus:
		return "versus"
	default:
		return "unknown"
	}
}

// MarshalText encodes the mode by name.
func (m MatchMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *MatchMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "solo":
		*m = MatchModeSolo
	case "versus":
		*m = MatchModeVersus
	default:
		return fmt.Errorf("multiplayer: unknown match mode %q", b)
	}
	return nil
}

// Outcome is the verdict of a versus match.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomePlayer1
	OutcomePlayer2
	OutcomeTie
)

// String returns the banner shown when a match ends.
func (o Outcome) String() string {
	switch o {
	case OutcomePlayer1:
		return "Player 1 wins"
	case OutcomePlayer2:
		return "Player 2 wins"
	case OutcomeTie:
		return "Tie"
	default:
		return "In progress"
	}
}

// Code returns the short form stored with match results.
func (o Outcome) Code() string {
	switch o {
	case OutcomePlayer1:
		return "p1"
	case OutcomePlayer2:
		return "p2"
	case OutcomeTie:
		return "tie"
	default:
		return "pending"
	}
}

// MarshalText encodes the outcome by its code.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.Code()), nil
}

// UnmarshalText decodes an outcome code.
func (o *Outcome) UnmarshalText(b []byte) error {
	parsed, ok := ParseOutcome(string(b))
	if !ok {
		return fmt.Errorf("multiplayer: unknown outcome %q", b)
	}
	*o = parsed
	return nil
}

// ParseOutcome converts an outcome code back to an Outcome.
func ParseOutcome(code string) (Outcome, bool) {
	switch code {
	case "p1":
		return OutcomePlayer1, true
	case "p2":
		return OutcomePlayer2, true
	case "tie":
		return OutcomeTie, true
	case "pending":
		return OutcomePending, true
	}
	return OutcomePending, false
}

// DecideOutcome compares final scores: the higher score wins.
func DecideOutcome(score1, score2 int) Outcome {
	switch {
	case score1 > score2:
		return OutcomePlayer1
	case score2 > score1:
		return OutcomePlayer2
	default:
		return OutcomeTie
	}
}
