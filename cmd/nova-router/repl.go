// ABOUTME: "repl" subcommand: bubbletea prompt that classifies each submitted line
// ABOUTME: Reloads the classifier when a watched config file changes

package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/mauromedda/nova-router/internal/config"
	"github.com/mauromedda/nova-router/internal/intent"
)

const maxReplHistory = 200

type replOptions struct {
	selection bool
	noAI      bool
	model     string
	baseURL   string
}

func newReplCmd(root *rootOptions) *cobra.Command {
	opts := &replOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively classify lines; tab toggles selection, esc quits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.selection, "selection", false, "start with the selection flag on")
	f.BoolVar(&opts.noAI, "no-ai", false, "skip the model and use the rule cascade only")
	f.StringVar(&opts.model, "model", "", "model ID or provider:model (overrides config)")
	f.StringVar(&opts.baseURL, "base-url", "", "API base URL (overrides config)")

	return cmd
}

func runRepl(cmd *cobra.Command, root *rootOptions, opts *replOptions) error {
	s, err := root.loadSettings()
	if err != nil {
		return err
	}
	build := func(s *config.Settings) (*intent.Classifier, string, error) {
		return buildClassifier(s, classifierOptions{noAI: opts.noAI, model: opts.model, baseURL: opts.baseURL})
	}
	clf, backend, err := build(s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	watcher := config.NewWatcher(root.configPaths(), root.reloadSettings)
	m := newReplModel(ctx, clf, backend, build)
	m.selection = opts.selection
	m.reloads = watcher.Watch(ctx)
	m.styled, _ = terminalWidth(cmd.OutOrStdout())

	_, err = tea.NewProgram(m, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())).Run()
	return err
}

type replEntry struct {
	input  string
	result intent.Result
}

type classifiedMsg replEntry

type reloadMsg config.Reload

type replModel struct {
	ctx     context.Context
	clf     *intent.Classifier
	backend string
	build   func(*config.Settings) (*intent.Classifier, string, error)
	reloads <-chan config.Reload

	input     []rune
	selection bool
	history   []replEntry
	pending   int
	status    string
	width     int
	styled    bool
}

func newReplModel(ctx context.Context, clf *intent.Classifier, backend string, build func(*config.Settings) (*intent.Classifier, string, error)) replModel {
	return replModel{
		ctx:     ctx,
		clf:     clf,
		backend: backend,
		build:   build,
		width:   defaultWidth,
	}
}

func (m replModel) Init() tea.Cmd {
	return waitForReload(m.reloads)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	case classifiedMsg:
		m.pending--
		m.history = append(m.history, replEntry(msg))
		if len(m.history) > maxReplHistory {
			m.history = m.history[len(m.history)-maxReplHistory:]
		}
	case reloadMsg:
		m.applyReload(config.Reload(msg))
		return m, waitForReload(m.reloads)
	}
	return m, nil
}

func (m replModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
		return m, tea.Quit
	case tea.KeyTab:
		m.selection = !m.selection
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyCtrlU:
		m.input = nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	case tea.KeyEnter:
		text := string(m.input)
		m.input = nil
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.pending++
		return m, classifyCmd(m.ctx, m.clf, text, m.selection)
	}
	return m, nil
}

func (m *replModel) applyReload(r config.Reload) {
	if r.Err != nil {
		m.status = "config reload failed: " + r.Err.Error()
		return
	}
	clf, backend, err := m.build(r.Settings)
	if err != nil {
		m.status = "config reload failed: " + err.Error()
		return
	}
	m.clf, m.backend = clf, backend
	m.status = "config reloaded"
}

func (m replModel) View() string {
	var b strings.Builder

	sel := "off"
	if m.selection {
		sel = "on"
	}
	header := fmt.Sprintf("nova-router repl · %s · selection %s", m.backend, sel)
	b.WriteString(truncate(header, m.width))
	b.WriteString("\n\n")

	for _, e := range m.history {
		room := m.width - 9 - runewidth.StringWidth(formatSource(e.result, false)) - 1
		fmt.Fprintf(&b, "%s %s %s\n",
			formatLabel(e.result.Intent, m.styled),
			formatSource(e.result, m.styled),
			truncate(e.input, max(room, 10)))
	}
	if m.pending > 0 {
		fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("classifying %d…", m.pending)))
	}
	if m.status != "" {
		fmt.Fprintf(&b, "%s\n", dimStyle.Render(truncate(m.status, m.width)))
	}

	b.WriteString("\n> ")
	b.WriteString(string(m.input))
	b.WriteString("█\n")
	return b.String()
}

// truncate shortens s to width terminal columns.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func classifyCmd(ctx context.Context, clf *intent.Classifier, text string, selection bool) tea.Cmd {
	return func() tea.Msg {
		return classifiedMsg{input: text, result: clf.Classify(ctx, text, selection)}
	}
}

func waitForReload(ch <-chan config.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg(r)
	}
}
