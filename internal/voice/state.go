// Package voice drives one interview call: the call status machine, the
// transcript it accumulates and the hand-off to feedback once it ends.
package voice

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusInactive   Status = "INACTIVE"
	StatusConnecting Status = "CONNECTING"
	StatusActive     Status = "ACTIVE"
	StatusFinished   Status = "FINISHED"
)

type Event int

const (
	EventStart     Event = iota // user pressed call
	EventCallStart              // vendor connected
	EventCallEnd                // vendor hung up
	EventStop                   // user pressed end
	EventError                  // vendor or start failure
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventCallStart:
		return "call-start"
	case EventCallEnd:
		return "call-end"
	case EventStop:
		return "stop"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

var ErrIllegalTransition = errors.New("illegal call transition")

// Transition returns the status that follows ev in from. A call-end or stop
// that arrives after the call already ended leaves the status unchanged. An
// error always lands in INACTIVE.
func Transition(from Status, ev Event) (Status, error) {
	switch ev {
	case EventStart:
		if from == StatusInactive || from == StatusFinished {
			return StatusConnecting, nil
		}
	case EventCallStart:
		if from == StatusConnecting {
			return StatusActive, nil
		}
	case EventCallEnd:
		switch from {
		case StatusConnecting, StatusActive:
			return StatusFinished, nil
		case StatusFinished, StatusInactive:
			return from, nil
		}
	case EventStop:
		switch from {
		case StatusConnecting, StatusActive:
			return StatusFinished, nil
		case StatusFinished:
			return from, nil
		}
	case EventError:
		return StatusInactive, nil
	}
	return from, fmt.Errorf("%w: %s while %s", ErrIllegalTransition, ev, from)
}
