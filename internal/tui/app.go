package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/sharpen/internal/clarify"
	"github.com/sant0-9/sharpen/internal/config"
	"github.com/sant0-9/sharpen/internal/diagnose"
	"github.com/sant0-9/sharpen/internal/llm"
	"github.com/sant0-9/sharpen/internal/refine"
	"github.com/sant0-9/sharpen/internal/style"
	"github.com/sant0-9/sharpen/internal/tokens"
	"github.com/sirupsen/logrus"
)

type view int

const (
	viewSetup view = iota
	viewEditor
	viewDiagnosis
	viewAnswer
	viewRefining
	viewResult
	viewSettings
	viewHelp
	viewError
)

const pingTimeout = 5 * time.Second

// Options wires the app to its collaborators. Nil funcs fall back to the
// real provider and config file.
type Options struct {
	Config     *config.Config
	NeedsSetup bool
	Counter    *tokens.Counter
	Styles     *style.Index
	Logger     logrus.FieldLogger

	NewRefiner func(*config.Config) (*refine.Refiner, error)
	Ping       func(context.Context, *config.Config) error
	Save       func(*config.Config) error
}

type App struct {
	width    int
	height   int
	view     view
	back     view
	state    *state
	quitting bool

	counter    *tokens.Counter
	styles     *style.Index
	logger     logrus.FieldLogger
	newRefiner func(*config.Config) (*refine.Refiner, error)
	ping       func(context.Context, *config.Config) error
	save       func(*config.Config) error

	cancelRefine context.CancelFunc
}

func NewApp(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
		opts.NeedsSetup = true
	}
	if opts.Counter == nil {
		opts.Counter = tokens.NewCounter(nil, opts.Logger)
	}

	a := &App{
		state:      newState(),
		counter:    opts.Counter,
		styles:     opts.Styles,
		logger:     opts.Logger,
		newRefiner: opts.NewRefiner,
		ping:       opts.Ping,
		save:       opts.Save,
	}
	if a.newRefiner == nil {
		a.newRefiner = func(cfg *config.Config) (*refine.Refiner, error) {
			p, err := llm.NewProvider(cfg)
			if err != nil {
				return nil, err
			}
			return refine.NewRefiner(p, cfg.Model, opts.Logger).WithStyles(opts.Styles), nil
		}
	}
	if a.ping == nil {
		a.ping = func(ctx context.Context, cfg *config.Config) error {
			p, err := llm.NewProvider(cfg)
			if err != nil {
				return err
			}
			return p.Ping(ctx)
		}
	}
	if a.save == nil {
		a.save = func(cfg *config.Config) error { return cfg.Save() }
	}

	a.state.config = opts.Config
	a.state.needsSetup = opts.NeedsSetup
	if opts.NeedsSetup {
		a.view = viewSetup
	} else {
		a.view = viewEditor
		a.state.editor.Focus()
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}
	return tea.Batch(tea.WindowSize(), textarea.Blink, a.testProvider())
}

func (a *App) testProvider() tea.Cmd {
	cfg := a.state.config
	ping := a.ping
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()

		if err := ping(ctx, cfg); err != nil {
			return providerErrorMsg{err}
		}
		return providerReadyMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.state.providerReady = false
		a.state.providerError = nil
		a.view = viewEditor
		a.state.editor.Focus()
		return a, tea.Batch(textarea.Blink, a.testProvider())

	case setupErrorMsg:
		a.showError(msg.error)
		return a, nil

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = nil
		return a, nil

	case providerErrorMsg:
		a.state.providerReady = false
		a.state.providerError = msg.error
		a.logger.WithError(msg.error).Warn("provider not reachable")
		return a, nil

	case refineDoneMsg:
		if !a.state.refining {
			return a, nil
		}
		a.finishRefine()
		a.state.result = msg.result
		a.state.resultView.SetContent(a.resultContent())
		a.state.resultView.GotoTop()
		a.view = viewResult
		return a, nil

	case refineErrorMsg:
		if !a.state.refining {
			return a, nil
		}
		a.finishRefine()
		a.showError(msg.error)
		return a, nil

	case tokenCountMsg:
		if msg.text == a.state.editor.Value() {
			a.state.tokenCount = msg.count
		}
		return a, nil

	case spinner.TickMsg:
		if !a.state.refining {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd
	}

	// Update the focused component
	switch {
	case a.view == viewSetup && a.state.setupStep == 1:
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewEditor:
		before := a.state.editor.Value()
		var cmd tea.Cmd
		a.state.editor, cmd = a.state.editor.Update(msg)
		cmds = append(cmds, cmd)
		if a.state.editor.Value() != before {
			cmds = append(cmds, a.countCmd())
		}
	case a.view == viewAnswer:
		var cmd tea.Cmd
		a.state.answerInput, cmd = a.state.answerInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewResult:
		var cmd tea.Cmd
		a.state.resultView, cmd = a.state.resultView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) resize() {
	w := min(70, a.width-4)
	if w < 20 {
		w = 20
	}
	a.state.editor.SetWidth(w)
	a.state.editor.SetHeight(max(5, a.height-14))
	a.state.answerInput.Width = w - 4
	a.state.resultView.Width = w
	a.state.resultView.Height = max(5, a.height-12)
	if a.state.result != nil {
		a.state.resultView.SetContent(a.resultContent())
	}
}

// handleKey reports whether the key was consumed
func (a *App) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if a.cancelRefine != nil {
			a.cancelRefine()
		}
		a.quitting = true
		return true, tea.Quit
	}

	if key.Matches(msg, keys.Help) && a.view != viewSetup && a.view != viewHelp {
		a.back = a.view
		a.view = viewHelp
		return true, nil
	}

	switch a.view {
	case viewSetup:
		return true, a.handleSetupKey(msg)
	case viewEditor:
		return a.handleEditorKey(msg)
	case viewDiagnosis:
		return true, a.handleDiagnosisKey(msg)
	case viewAnswer:
		return a.handleAnswerKey(msg)
	case viewRefining:
		if key.Matches(msg, keys.Quit) {
			a.finishRefine()
			a.view = viewDiagnosis
		}
		return true, nil
	case viewResult:
		return a.handleResultKey(msg)
	case viewSettings:
		return true, a.handleSettingsKey(msg)
	case viewHelp:
		if key.Matches(msg, keys.Quit) || key.Matches(msg, keys.Enter) {
			a.view = a.back
		}
		return true, nil
	case viewError:
		return true, a.handleErrorKey(msg)
	}
	return false, nil
}

func (a *App) handleEditorKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return true, tea.Quit
	case key.Matches(msg, keys.Diagnose):
		a.runDiagnosis()
		return true, nil
	case key.Matches(msg, keys.Settings):
		a.state.editor.Blur()
		a.view = viewSettings
		return true, nil
	}
	return false, nil
}

func (a *App) runDiagnosis() {
	text := strings.TrimSpace(a.state.editor.Value())
	if text == "" {
		a.state.notice = "Nothing to diagnose yet"
		return
	}

	d := diagnose.Diagnose(text)
	a.state.original = text
	a.state.diagnosis = d
	a.state.questions = clarify.Generate(d, a.state.config.MaxQuestions)
	a.state.answers = make([]string, len(a.state.questions))
	a.state.questionIndex = 0
	a.state.notice = ""
	a.state.editor.Blur()
	a.view = viewDiagnosis

	a.logger.WithFields(logrus.Fields{
		"score":   d.Score(),
		"missing": len(d.Missing()),
	}).Info("prompt diagnosed")
}

func (a *App) handleDiagnosisKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return a.openEditor()
	case key.Matches(msg, keys.Enter):
		if len(a.state.questions) == 0 {
			return a.startRefine()
		}
		a.state.questionIndex = 0
		a.state.answerInput.SetValue(a.state.answers[0])
		a.view = viewAnswer
		return a.state.answerInput.Focus()
	}

	switch msg.String() {
	case "r":
		return a.startRefine()
	case "e":
		return a.openEditor()
	}
	return nil
}

func (a *App) handleAnswerKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		a.state.answerInput.Blur()
		a.view = viewDiagnosis
		return true, nil
	case key.Matches(msg, keys.Enter):
		return true, a.nextQuestion(true)
	case key.Matches(msg, keys.Tab):
		return true, a.nextQuestion(false)
	case msg.Type == tea.KeyShiftTab:
		if a.state.questionIndex > 0 {
			a.state.questionIndex--
			a.state.answerInput.SetValue(a.state.answers[a.state.questionIndex])
		}
		return true, nil
	}
	return false, nil
}

func (a *App) nextQuestion(save bool) tea.Cmd {
	i := a.state.questionIndex
	if save {
		a.state.answers[i] = strings.TrimSpace(a.state.answerInput.Value())
	} else {
		a.state.answers[i] = ""
	}

	a.state.questionIndex++
	if a.state.questionIndex >= len(a.state.questions) {
		a.state.answerInput.Blur()
		a.state.answerInput.Reset()
		return a.startRefine()
	}
	a.state.answerInput.SetValue(a.state.answers[a.state.questionIndex])
	return nil
}

func (a *App) startRefine() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelRefine = cancel
	a.state.refining = true
	a.view = viewRefining

	req := &refine.Request{
		Original: a.state.original,
		Answers:  a.state.answered(),
		Style:    a.state.config.Style,
	}
	return tea.Batch(a.state.spinner.Tick, a.refineCmd(ctx, req))
}

func (a *App) refineCmd(ctx context.Context, req *refine.Request) tea.Cmd {
	cfg := a.state.config
	newRefiner := a.newRefiner
	return func() tea.Msg {
		r, err := newRefiner(cfg)
		if err != nil {
			return refineErrorMsg{err}
		}
		res, err := r.Refine(ctx, req)
		if err != nil {
			return refineErrorMsg{err}
		}
		return refineDoneMsg{res}
	}
}

func (a *App) finishRefine() {
	if a.cancelRefine != nil {
		a.cancelRefine()
		a.cancelRefine = nil
	}
	a.state.refining = false
}

func (a *App) handleResultKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return true, a.openEditor()
	}

	res := a.state.result
	switch msg.String() {
	case "e":
		a.state.editor.SetValue(res.Prompt)
		return true, a.openEditor()
	case "d":
		a.state.editor.SetValue(res.Prompt)
		a.runDiagnosis()
		return true, a.countCmd()
	case "c":
		if err := clipboard.WriteAll(res.Prompt); err != nil {
			a.logger.WithError(err).Warn("clipboard unavailable")
			a.state.notice = "Clipboard unavailable"
		} else {
			a.state.notice = "Copied to clipboard"
		}
		return true, nil
	}
	return false, nil
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Quit) {
		return a.openEditor()
	}
	if msg.String() == "p" {
		for i, p := range config.Providers {
			if p.ID == a.state.config.Provider {
				a.state.selectedProvider = i
			}
		}
		a.state.setupStep = 0
		a.view = viewSetup
	}
	if msg.String() == "t" {
		a.cycleStyle()
	}
	return nil
}

// cycleStyle moves the default style to the next of: none, auto, then each
// style by name. The choice is saved right away.
func (a *App) cycleStyle() {
	choices := append([]string{"", style.Auto}, a.styles.Names()...)
	cfg := a.state.config

	next := choices[0]
	for i, c := range choices {
		if c == cfg.Style {
			next = choices[(i+1)%len(choices)]
			break
		}
	}

	prev := cfg.Style
	cfg.Style = next
	if err := a.save(cfg); err != nil {
		a.logger.WithError(err).Error("failed to save style")
		cfg.Style = prev
		a.state.notice = "Could not save config"
		return
	}
	a.state.notice = ""
}

func (a *App) handleErrorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit), key.Matches(msg, keys.Enter):
		a.state.err = nil
		return a.openEditor()
	}
	switch msg.String() {
	case "r":
		if a.state.original != "" {
			a.state.err = nil
			return a.startRefine()
		}
	case "s":
		a.state.err = nil
		a.view = viewSettings
	}
	return nil
}

func (a *App) openEditor() tea.Cmd {
	a.view = viewEditor
	return tea.Batch(a.state.editor.Focus(), a.countCmd())
}

// countCmd counts the editor text off the UI loop. The first exact count
// may download the encoding.
func (a *App) countCmd() tea.Cmd {
	text := a.state.editor.Value()
	counter := a.counter
	return func() tea.Msg {
		return tokenCountMsg{text: text, count: counter.Count(text)}
	}
}

func (a *App) showError(err error) {
	a.state.err = err
	a.view = viewError
	if !errors.Is(err, context.Canceled) {
		a.logger.WithError(err).Error("request failed")
	}
}

func (a *App) handleSetupKey(msg tea.KeyMsg) tea.Cmd {
	switch a.state.setupStep {
	case 0: // Provider selection
		switch {
		case key.Matches(msg, keys.Quit):
			if a.state.needsSetup {
				a.quitting = true
				return tea.Quit
			}
			a.view = viewSettings
		case key.Matches(msg, keys.Up):
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if a.state.selectedProvider < len(config.Providers)-1 {
				a.state.selectedProvider++
			}
		case key.Matches(msg, keys.Enter):
			provider := config.Providers[a.state.selectedProvider]
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel
			a.state.config.APIKey = ""

			if provider.NeedsAPIKey {
				a.state.setupStep = 1
				return a.state.apiKeyInput.Focus()
			}
			return a.finishSetup()
		}

	case 1: // API key entry
		switch {
		case key.Matches(msg, keys.Quit):
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
			a.state.apiKeyInput.Blur()
		case key.Matches(msg, keys.Enter):
			a.state.config.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			a.state.apiKeyInput.Reset()
			a.state.apiKeyInput.Blur()
			a.state.setupStep = 0
			return a.finishSetup()
		default:
			var cmd tea.Cmd
			a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
			return cmd
		}
	}

	return nil
}

func (a *App) finishSetup() tea.Cmd {
	cfg := a.state.config
	save := a.save
	return func() tea.Msg {
		if err := save(cfg); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct{}
type providerErrorMsg struct{ error }
type refineDoneMsg struct{ result *refine.Result }
type refineErrorMsg struct{ error }
type tokenCountMsg struct {
	text  string
	count int
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewEditor:
		return a.renderEditor()
	case viewDiagnosis:
		return a.renderDiagnosis()
	case viewAnswer:
		return a.renderAnswer()
	case viewRefining:
		return a.renderRefining()
	case viewResult:
		return a.renderResult()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderEditor()
	}
}
