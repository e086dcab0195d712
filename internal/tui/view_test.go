package tui

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/orbital/internal/pipeline"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/render"
)

func newTestModel(job pipeline.Job) *Model {
	runner := pipeline.New(pipeline.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return New(job, runner, render.GetTheme("nebula"))
}

func TestModel_ComputesOffTheUpdateLoop(t *testing.T) {
	job := pipeline.DefaultJob()
	job.Steps = 20
	m := newTestModel(job)

	if !strings.Contains(m.View(), "evaluating") {
		t.Errorf("expected a pending view, got %q", m.View())
	}

	msg := m.Init()()
	if _, ok := msg.(resultMsg); !ok {
		t.Fatalf("init produced %T", msg)
	}
	m.Update(msg)
	if m.result == nil || m.err != nil {
		t.Fatalf("result %v, err %v", m.result, m.err)
	}
	view := m.View()
	if !strings.Contains(view, "norm") || !strings.Contains(view, "8,000") {
		t.Errorf("view missing summary:\n%s", view)
	}
}

func TestModel_ShowsErrors(t *testing.T) {
	m := newTestModel(pipeline.DefaultJob())
	m.Update(resultMsg{err: quantum.ErrInvalidState})
	if !strings.Contains(m.View(), "invalid quantum numbers") {
		t.Errorf("expected the error in the view, got %q", m.View())
	}
	if !errors.Is(m.err, quantum.ErrInvalidState) {
		t.Errorf("err %v", m.err)
	}
}

func TestModel_Keys(t *testing.T) {
	m := newTestModel(pipeline.DefaultJob())

	rot := m.camera.RotZ
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.camera.RotZ == rot {
		t.Error("right arrow should rotate the camera")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}
