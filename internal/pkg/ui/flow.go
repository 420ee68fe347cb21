package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/gitsage/aicommit/internal/pkg/errors"
)

// ErrAborted is returned by a DecisionSource when the user interrupts a prompt.
var ErrAborted = errors.New("aborted by user")

// State is a step of the confirmation flow.
type State int

const (
	StatePresented State = iota
	StateEditing
	StateAccepted
	StateAborted
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StatePresented:
		return "presented"
	case StateEditing:
		return "editing"
	case StateAccepted:
		return "accepted"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition leaves s.
func (s State) Terminal() bool {
	return s == StateAccepted || s == StateAborted
}

// Decision is the user's answer to the proposed message.
type Decision int

const (
	DecisionAccept Decision = iota
	DecisionEdit
	DecisionAbort
)

// String returns the string representation of a Decision.
func (d Decision) String() string {
	switch d {
	case DecisionAccept:
		return "accept"
	case DecisionEdit:
		return "edit"
	case DecisionAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Event drives a transition.
type Event int

const (
	EventAccept Event = iota
	EventEdit
	EventAbort
	// EventSubmit is an edit submitted with non-blank text.
	EventSubmit
	// EventSubmitBlank is an edit submitted with only whitespace.
	EventSubmitBlank
)

// String returns the string representation of an Event.
func (e Event) String() string {
	switch e {
	case EventAccept:
		return "accept"
	case EventEdit:
		return "edit"
	case EventAbort:
		return "abort"
	case EventSubmit:
		return "submit"
	case EventSubmitBlank:
		return "submit-blank"
	default:
		return "unknown"
	}
}

// eventFor maps a decision to the event it raises.
func eventFor(d Decision) Event {
	switch d {
	case DecisionAccept:
		return EventAccept
	case DecisionEdit:
		return EventEdit
	default:
		return EventAbort
	}
}

// Transition returns the state reached from s on e.
// An event that is not valid in s is an error and leaves s unchanged.
func Transition(s State, e Event) (State, error) {
	switch s {
	case StatePresented:
		switch e {
		case EventAccept:
			return StateAccepted, nil
		case EventEdit:
			return StateEditing, nil
		case EventAbort:
			return StateAborted, nil
		}
	case StateEditing:
		switch e {
		case EventSubmit:
			return StateAccepted, nil
		case EventSubmitBlank, EventAbort:
			return StateAborted, nil
		}
	}
	return s, fmt.Errorf("invalid event %s in state %s", e, s)
}

// DecisionSource supplies the user's answers.
type DecisionSource interface {
	// Choose asks whether to accept, edit or abort message.
	Choose(ctx context.Context, message string) (Decision, error)
	// Edit returns the replacement for message. It returns ErrAborted when interrupted.
	Edit(ctx context.Context, message string) (string, error)
}

// Outcome is the terminal result of a confirmation flow.
type Outcome struct {
	State State
	// Message is the text to commit when State is StateAccepted.
	Message string
	// EmptyEdit is set when the flow aborted because the edit was blank.
	EmptyEdit bool
}

// Accepted reports whether Message should be committed.
func (o Outcome) Accepted() bool {
	return o.State == StateAccepted
}

// Flow presents a message and resolves it to a commit or an abort.
type Flow struct {
	source DecisionSource
	ui     Manager
}

// NewFlow creates a Flow reading decisions from source and writing status lines to ui.
func NewFlow(source DecisionSource, ui Manager) *Flow {
	return &Flow{source: source, ui: ui}
}

// Run displays message and drives the flow to a terminal state.
// Prompt failures other than a user interrupt are returned as ErrPromptFailed.
func (f *Flow) Run(ctx context.Context, message string) (Outcome, error) {
	f.ui.DisplayMessage(message)

	state := StatePresented
	outcome := Outcome{Message: message}

	for !state.Terminal() {
		var event Event

		switch state {
		case StatePresented:
			decision, err := f.source.Choose(ctx, outcome.Message)
			switch {
			case errors.Is(err, ErrAborted):
				event = EventAbort
			case err != nil:
				return Outcome{State: StateAborted}, promptError(err)
			default:
				event = eventFor(decision)
			}

		case StateEditing:
			edited, err := f.source.Edit(ctx, outcome.Message)
			switch {
			case errors.Is(err, ErrAborted):
				event = EventAbort
			case err != nil:
				return Outcome{State: StateAborted}, promptError(err)
			case strings.TrimSpace(edited) == "":
				event = EventSubmitBlank
				outcome.EmptyEdit = true
			default:
				event = EventSubmit
				outcome.Message = strings.TrimSpace(edited)
			}
		}

		next, err := Transition(state, event)
		if err != nil {
			return Outcome{State: StateAborted}, apperrors.Wrap(err, apperrors.ErrPromptFailed, "confirmation failed")
		}
		apperrors.Debug("confirmation: %s --%s--> %s", state, event, next)
		state = next
	}

	outcome.State = state
	if state == StateAborted {
		outcome.Message = ""
		if outcome.EmptyEdit {
			f.ui.ShowInfo("The message is empty, commit aborted.")
		} else {
			f.ui.ShowInfo("Commit aborted.")
		}
	}

	return outcome, nil
}

func promptError(err error) error {
	return apperrors.Wrap(err, apperrors.ErrPromptFailed, "prompt failed")
}
