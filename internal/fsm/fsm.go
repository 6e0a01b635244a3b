package fsm

import "fmt"

type State string

type Event string

const (
	StateLoading    State = "loading"
	StateIdle       State = "idle"
	StateRecording  State = "recording"
	StateProcessing State = "processing"
)

const (
	EventReady Event = "ready"
	EventStart Event = "start"
	EventStop  Event = "stop"
	EventDone  Event = "done"
)

// Transition applies one event to a state and returns the next state.
// Only StateIdle accepts EventStart, so two utterances can never overlap.
func Transition(current State, event Event) (State, error) {
	switch current {
	case StateLoading:
		switch event {
		case EventReady:
			return StateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateIdle:
		switch event {
		case EventStart:
			return StateRecording, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateRecording:
		switch event {
		case EventStop:
			return StateProcessing, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateProcessing:
		switch event {
		case EventDone:
			return StateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}
