package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/termfolio/pixelsmash/internal/config"
	"github.com/termfolio/pixelsmash/internal/core"
	"github.com/termfolio/pixelsmash/internal/games/pixelsmash"
	"github.com/termfolio/pixelsmash/internal/leaderboard"
	"github.com/termfolio/pixelsmash/internal/storage"
)

const defaultSubmitTimeout = 10 * time.Second

// Backend is where finished matches are reported. Every field is optional:
// without a Board scores are not submitted, without History matches are
// not recorded locally.
type Backend struct {
	Board    leaderboard.Store
	Location leaderboard.LocationService
	History  *storage.Store
}

// Options configure a Model.
type Options struct {
	Game      config.Game
	Runtime   core.RuntimeConfig
	Backend   Backend
	Audio     pixelsmash.AudioSink
	Logger    *log.Logger
	HoldTicks int
}

// submitResultMsg carries a finished score submission.
type submitResultMsg struct {
	matchID string
	result  leaderboard.Result
	err     error
}

// matchSavedMsg carries the outcome of recording a match locally.
type matchSavedMsg struct {
	matchID string
	best    int
	err     error
}

type gameOverEvent struct {
	matchID string
	score   int
	level   int
}

// matchEvents collects game-over hook calls made during a tick.
type matchEvents struct {
	over []gameOverEvent
}

func (e *matchEvents) drain() []gameOverEvent {
	out := e.over
	e.over = nil
	return out
}

// Model is the Bubble Tea model for one PixelSmash player.
type Model struct {
	game       *pixelsmash.Manager
	submission *leaderboard.Submission
	backend    Backend
	audio      pixelsmash.AudioSink
	log        *log.Logger
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	events     *matchEvents
	board      *scoreboard
	matchID    string
	timeout    time.Duration
	quitting   bool
}

// NewModel creates a new Bubble Tea model on the title screen.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	audio := opts.Audio
	if audio == nil {
		audio = pixelsmash.NopAudio{}
	}

	game := pixelsmash.NewManager(opts.Game, cfg, pixelsmash.Deps{
		Audio:  audio,
		Logger: logger,
	})
	events := &matchEvents{}
	game.OnGameOver(func(score, level int) {
		events.over = append(events.over, gameOverEvent{
			matchID: game.MatchID(),
			score:   score,
			level:   level,
		})
	})

	var submission *leaderboard.Submission
	if opts.Backend.Board != nil {
		submission = leaderboard.NewSubmission(opts.Backend.Board, opts.Backend.Location, logger)
	}

	timeout := time.Duration(opts.Game.Leaderboard.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}

	keys := NewKeyMapper(opts.HoldTicks)
	return Model{
		game:       game,
		submission: submission,
		backend:    opts.Backend,
		audio:      audio,
		log:        logger,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keys:       keys,
		inputFrame: core.NewInputFrame(),
		events:     events,
		board:      newScoreboard(keys.Keys(), cfg.ScreenW, cfg.ScreenH),
		timeout:    timeout,
	}
}

// Game returns the match driven by the model.
func (m Model) Game() *pixelsmash.Manager {
	return m.game
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.board.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case submitResultMsg:
		m.handleSubmitResult(msg)
		return m, nil

	case matchSavedMsg:
		if msg.err != nil {
			m.log.Warn("could not record match", "match", msg.matchID, "err", msg.err)
			return m, nil
		}
		m.board.best = msg.best
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.Press(msg)
	if isQuit {
		m.shutdown()
		return m, tea.Quit
	}

	switch action {
	case core.ActionLaunch:
		m.game.Send(pixelsmash.IntentLaunch)
	case core.ActionPause:
		m.game.Send(pixelsmash.IntentTogglePause)
	case core.ActionRestart:
		m.keys.Release()
		m.game.Send(pixelsmash.IntentRestart)
	case core.ActionRetry:
		return m, m.retry()
	}
	return m, nil
}

// handleTick advances the match one step and reacts to its outcome.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	m.keys.Advance(&m.inputFrame)
	m.game.Tick(pixelsmash.InputFromFrame(m.inputFrame))
	m.inputFrame.Clear()

	if id := m.game.MatchID(); id != m.matchID {
		m.startMatch(id)
	}

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	for _, ev := range m.events.drain() {
		cmds = append(cmds, m.finishMatch(ev))
	}
	return m, tea.Batch(cmds...)
}

// startMatch forgets everything reported about the previous match.
func (m *Model) startMatch(id string) {
	m.matchID = id
	m.board.reset()
	if m.submission != nil {
		m.submission.Reset(id)
	}
}

// finishMatch reports a match that just ended.
func (m *Model) finishMatch(ev gameOverEvent) tea.Cmd {
	var cmds []tea.Cmd
	if m.backend.History != nil {
		cmds = append(cmds, m.saveMatchCmd(ev))
	}
	if ev.score > 0 && m.submission != nil {
		m.board.submitting()
		cmds = append(cmds, m.submitCmd(ev.score))
	}
	return tea.Batch(cmds...)
}

// retry resubmits the score of a finished match after a failure.
func (m *Model) retry() tea.Cmd {
	if m.submission == nil || m.game.Mode() != pixelsmash.ModeGameOver {
		return nil
	}
	if m.submission.State() != leaderboard.StateFailed {
		return nil
	}
	m.board.submitting()
	return m.submitCmd(m.game.State().Score)
}

func (m *Model) submitCmd(score int) tea.Cmd {
	sub, matchID, timeout := m.submission, m.matchID, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := sub.Submit(ctx, score)
		return submitResultMsg{matchID: matchID, result: res, err: err}
	}
}

func (m *Model) handleSubmitResult(msg submitResultMsg) {
	if msg.matchID != m.matchID {
		return
	}
	switch {
	case errors.Is(msg.err, leaderboard.ErrInFlight):
		// The running submission reports on its own.
	case msg.err != nil:
		m.board.setError(msg.err)
	default:
		m.board.setResult(msg.result)
	}
}

func (m *Model) saveMatchCmd(ev gameOverEvent) tea.Cmd {
	history, location, timeout := m.backend.History, m.backend.Location, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		country := leaderboard.FallbackCountry
		if location != nil {
			if code, err := location.Country(ctx); err == nil {
				country = leaderboard.NormalizeCountry(code)
			}
		}

		rec := storage.MatchRecord{
			MatchID: ev.matchID,
			Country: country,
			Score:   ev.score,
			Level:   ev.level,
		}
		if _, err := history.SaveMatch(ctx, rec); err != nil {
			return matchSavedMsg{matchID: ev.matchID, err: err}
		}
		best, err := history.HighScore(ctx)
		return matchSavedMsg{matchID: ev.matchID, best: best, err: err}
	}
}

// shutdown stops the match and releases audio.
func (m *Model) shutdown() {
	m.quitting = true
	m.game.Close()
	if closer, ok := m.audio.(interface{ Close() }); ok {
		closer.Close()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.HomeDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("pixelsmash_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("could not save screenshot", "err", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.game.Mode() == pixelsmash.ModeGameOver && (m.submission != nil || m.board.active()) {
		s := m.game.State()
		return m.board.View(s.Score, s.Level)
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a local player.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
