package domain

import (
	"fmt"
	"time"
)

// TransitionKind identifies which qualifying edge a transition
// reports.
type TransitionKind string

const (
	TransitionJoin          TransitionKind = "join"
	TransitionChannelAccess TransitionKind = "channel_access"
	TransitionVoiceJoin     TransitionKind = "voice_join"
	TransitionVoiceLeave    TransitionKind = "voice_leave"
	TransitionVoiceMove     TransitionKind = "voice_move"
)

// Transition is one qualifying before/after edge, ready to be
// rendered into a single relay line. Channel fields hold display
// names; FromChannel/ToChannel are set only for voice moves.
type Transition struct {
	Kind        TransitionKind
	Subject     string
	Guild       string
	Channel     string
	FromChannel string
	ToChannel   string
}

// Timestamp renders a wall-clock instant the way relay lines carry
// it: UTC, second precision.
func Timestamp(at time.Time) string {
	return at.UTC().Format("2006-01-02 15:04:05") + " UTC"
}

// Line renders the transition as one self-contained relay line.
// Identical inputs always produce byte-identical output.
func (t Transition) Line(at time.Time) string {
	ts := Timestamp(at)
	switch t.Kind {
	case TransitionJoin:
		return fmt.Sprintf("%s joined : %s at %s", t.Subject, t.Guild, ts)
	case TransitionChannelAccess:
		return fmt.Sprintf("%s gained access to : #%s in %s at %s", t.Subject, t.Channel, t.Guild, ts)
	case TransitionVoiceJoin:
		return fmt.Sprintf("%s joined voice : #%s in %s at %s", t.Subject, t.Channel, t.Guild, ts)
	case TransitionVoiceLeave:
		return fmt.Sprintf("%s left voice : #%s in %s at %s", t.Subject, t.Channel, t.Guild, ts)
	case TransitionVoiceMove:
		return fmt.Sprintf("%s moved voice : #%s → #%s in %s at %s", t.Subject, t.FromChannel, t.ToChannel, t.Guild, ts)
	default:
		return fmt.Sprintf("%s %s at %s", t.Subject, t.Guild, ts)
	}
}
