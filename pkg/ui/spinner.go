package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

type taskDoneMsg struct{ err error }

type spinnerModel struct {
	spinner    spinner.Model
	title      string
	run        func() error
	cancel     context.CancelFunc
	cancelling bool
	done       bool
	err        error
}

func newSpinnerModel(title string, run func() error, cancel context.CancelFunc) spinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(StylePrimary),
	)
	return spinnerModel{
		spinner: s,
		title:   title,
		run:     run,
		cancel:  cancel,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return taskDoneMsg{err: m.run()}
	})
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		// Cancel the request but keep waiting for it to unwind
		if msg.String() == "ctrl+c" && !m.cancelling {
			m.cancelling = true
			m.cancel()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	title := m.title
	if m.cancelling {
		title = "Cancelling..."
	}
	return m.spinner.View() + " " + StyleInfo.Render(title) + "\n"
}

// RunWithSpinner runs task while showing a spinner on stderr. When stderr is
// not a terminal the title is printed once and the task runs directly.
func RunWithSpinner(ctx context.Context, title string, task func(ctx context.Context) error) error {
	return runWithSpinner(ctx, os.Stderr, title, task)
}

func runWithSpinner(ctx context.Context, out *os.File, title string, task func(ctx context.Context) error) error {
	if !isTerminal(out) {
		fmt.Fprintln(out, FormatUpload(title))
		return task(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newSpinnerModel(title, func() error { return task(ctx) }, cancel)
	final, err := tea.NewProgram(model, tea.WithOutput(out)).Run()
	if err != nil {
		return fmt.Errorf("failed to run spinner: %w", err)
	}

	return final.(spinnerModel).err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
