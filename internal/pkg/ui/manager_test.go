package ui

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gitsage/aicommit/internal/pkg/errors"
)

func TestNewDefaultManager(t *testing.T) {
	for _, color := range []bool{true, false} {
		m := NewDefaultManager(color)
		assert.NotNil(t, m.styles)
		assert.Equal(t, IsTerminal(os.Stdout), m.animate)
		assert.Same(t, os.Stdout, m.out)
		assert.Same(t, os.Stderr, m.errOut)
	}
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
}

func TestDisplayMessage(t *testing.T) {
	var buf bytes.Buffer
	m := newManager(&buf, io.Discard, false, false)

	m.DisplayMessage("fix: 🐛 修正")

	out := buf.String()
	assert.Contains(t, out, "Proposed commit message:")
	assert.Contains(t, out, "fix: 🐛 修正\n")
	assert.Contains(t, out, strings.Repeat("-", 50))
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	m := newManager(&buf, io.Discard, false, false)

	m.ShowSuccess("Commit created.")
	m.ShowInfo("Commit aborted.")

	assert.Contains(t, buf.String(), "[OK] Commit created.")
	assert.Contains(t, buf.String(), "Commit aborted.\n")
}

func TestShowError(t *testing.T) {
	var out, errOut bytes.Buffer
	m := newManager(&out, &errOut, false, false)

	m.ShowError(nil)
	assert.Empty(t, errOut.String())

	m.ShowError(apperrors.NewGitError(errors.New("exit status 128"), "fatal: not a git repository").
		WithSuggestion("Run aicommit inside a git repository"))

	assert.Empty(t, out.String(), "errors never go to the status output")
	stderr := errOut.String()
	assert.Contains(t, stderr, "git command failed")
	assert.Contains(t, stderr, "fatal: not a git repository")
	assert.Contains(t, stderr, "Run aicommit inside a git repository")
}

func TestShowSpinner_NotAnimated(t *testing.T) {
	var buf bytes.Buffer
	m := newManager(&buf, io.Discard, false, false)

	s := m.ShowSpinner("Requesting a commit message...")
	s.Start()
	s.UpdateText("still waiting")
	s.Stop()

	assert.Equal(t, "Requesting a commit message...\n", buf.String())
}

func TestShowSpinner_Animated(t *testing.T) {
	m := newManager(io.Discard, io.Discard, true, true)

	s := m.ShowSpinner("Requesting")
	_, ok := s.(*bubbleSpinner)
	assert.True(t, ok)
}

func TestBubbleSpinner_StopWithoutStart(t *testing.T) {
	s := newBubbleSpinner("idle")
	assert.NotPanics(t, func() {
		s.UpdateText("changed")
		s.Stop()
	})
	assert.Equal(t, "changed", s.text)
}

func TestSpinnerModel(t *testing.T) {
	model := newBubbleSpinner("loading").model

	next, _ := model.Update(spinnerTextMsg{text: "almost"})
	assert.Contains(t, next.View(), "almost")

	quit, cmd := next.Update(spinnerQuitMsg{})
	assert.NotNil(t, cmd)
	assert.Empty(t, quit.View())
}
