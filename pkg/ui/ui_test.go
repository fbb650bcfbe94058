package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyValueTable_AlignsKeys(t *testing.T) {
	table := NewKeyValueTable("")
	table.Add("ID", "abc")
	table.Add("Name", "photo.png")

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}

	for _, line := range lines {
		if !strings.Contains(line, "abc") && !strings.Contains(line, "photo.png") {
			t.Errorf("unexpected line %q", line)
		}
	}

	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestKeyValueTable_Title(t *testing.T) {
	table := NewKeyValueTable("Metadata")
	table.Add("k", "v")

	out := table.Render()
	if !strings.Contains(out, "Metadata") {
		t.Errorf("expected title in output, got %q", out)
	}
}

func TestPadLeft(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"ID", 4, "  ID"},
		{"Name", 4, "Name"},
		{"Longer", 3, "Longer"},
	}

	for _, tt := range tests {
		if got := padLeft(tt.input, tt.width); got != tt.expected {
			t.Errorf("padLeft(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
		}
	}
}

func TestSpinnerModel_DoneQuits(t *testing.T) {
	m := newSpinnerModel("Uploading", func() error { return nil }, func() {})

	wantErr := errors.New("boom")
	updated, cmd := m.Update(taskDoneMsg{err: wantErr})
	sm := updated.(spinnerModel)

	if !sm.done {
		t.Error("expected model to be done")
	}
	if !errors.Is(sm.err, wantErr) {
		t.Errorf("expected task error to be kept, got %v", sm.err)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if sm.View() != "" {
		t.Errorf("expected empty view once done, got %q", sm.View())
	}
}

func TestSpinnerModel_CtrlCCancelsOnce(t *testing.T) {
	cancelled := 0
	m := newSpinnerModel("Uploading", func() error { return nil }, func() { cancelled++ })

	msg := tea.KeyMsg{Type: tea.KeyCtrlC}
	updated, cmd := m.Update(msg)
	updated, _ = updated.(spinnerModel).Update(msg)
	sm := updated.(spinnerModel)

	if cancelled != 1 {
		t.Errorf("expected cancel to be called once, got %d", cancelled)
	}
	if cmd != nil {
		t.Error("ctrl+c should not quit before the task returns")
	}
	if !strings.Contains(sm.View(), "Cancelling") {
		t.Errorf("expected cancelling view, got %q", sm.View())
	}
}

func TestRunWithSpinner_NonTerminal(t *testing.T) {
	out, err := os.Create(filepath.Join(t.TempDir(), "stderr.txt"))
	if err != nil {
		t.Fatalf("failed to create output file: %v", err)
	}
	defer out.Close()

	ran := false
	err = runWithSpinner(context.Background(), out, "Uploading image...", func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("expected task to run")
	}

	data, err := os.ReadFile(out.Name())
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(data), "Uploading image...") {
		t.Errorf("expected title in output, got %q", string(data))
	}
}
