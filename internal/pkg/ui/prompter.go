package ui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"
)

// HuhPrompter implements DecisionSource with huh forms on the terminal.
type HuhPrompter struct {
	accessible bool

	// in and out replace stdin and stdout when set.
	in  io.Reader
	out io.Writer
}

// NewHuhPrompter creates a HuhPrompter. Accessible mode renders plain prompts
// without the full-screen TUI, which suits screen readers and dumb terminals.
func NewHuhPrompter(accessible bool) *HuhPrompter {
	return &HuhPrompter{accessible: accessible}
}

// decisionOptions are the choices offered for a proposed message, in display order.
func decisionOptions() []huh.Option[Decision] {
	return []huh.Option[Decision]{
		huh.NewOption("Yes, commit", DecisionAccept),
		huh.NewOption("Edit the message", DecisionEdit),
		huh.NewOption("No, abort", DecisionAbort),
	}
}

// Choose asks whether to commit with message. An interrupt counts as abort.
func (p *HuhPrompter) Choose(ctx context.Context, message string) (Decision, error) {
	decision := DecisionAccept
	if p.accessible {
		// Accessible prompts fall back to the default on an empty line or closed input.
		decision = DecisionAbort
	}

	field := huh.NewSelect[Decision]().
		Title("Commit with this message?").
		Options(decisionOptions()...).
		Value(&decision)

	if err := p.run(ctx, field); err != nil {
		if errors.Is(err, ErrAborted) {
			return DecisionAbort, nil
		}
		return DecisionAbort, err
	}
	return decision, nil
}

// Edit shows message in an input field and returns what the user submits.
func (p *HuhPrompter) Edit(ctx context.Context, message string) (string, error) {
	edited := message

	field := huh.NewInput().
		Title("Edit the commit message:").
		CharLimit(0).
		Value(&edited)

	if err := p.run(ctx, field); err != nil {
		return "", err
	}
	return edited, nil
}

func (p *HuhPrompter) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(p.accessible).
		WithShowHelp(false)
	if p.in != nil {
		form = form.WithInput(p.in)
	}
	if p.out != nil {
		form = form.WithOutput(p.out)
	}

	if !p.accessible {
		return promptErr(ctx, form.RunWithContext(ctx))
	}

	// Accessible forms block on input without watching ctx.
	done := make(chan error, 1)
	go func() {
		done <- form.RunWithContext(ctx)
	}()

	select {
	case err := <-done:
		return promptErr(ctx, err)
	case <-ctx.Done():
		return ErrAborted
	}
}

// promptErr maps a user interrupt to ErrAborted. In accessible mode Ctrl-C
// arrives as SIGINT and shows up only as a cancelled context.
func promptErr(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return ErrAborted
	}
	return err
}
