package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/fwojciec/compass"
	"github.com/fwojciec/compass/playback"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the compass TUI. It orchestrates one
// session at a time: the transport call, the chunk playback, the phase
// mirror, and the ritual/crisis overlays. At most one backend call is in
// flight per user action; the send control is disabled while a request or
// playback sequence runs.
type Model struct {
	// Input is the message input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable transcript area. Exported for test access.
	Viewport viewport.Model

	backend compass.Backend
	auth    compass.Auth
	theme   compass.Theme
	styles  Styles
	logger  *zap.Logger
	cfg     Config

	session *compass.Session
	blocks  []MessageBlock

	// Playback state. The typing flag is a single shared boolean: rapid
	// consecutive chunks fully clear and re-enter it. playGen invalidates
	// timer messages scheduled before a sequence reset.
	player  playback.Player
	playing bool
	typing  bool
	playGen int
	spin    spinner.Model

	requesting bool

	crisisVisible bool
	crisisModal   CrisisModal

	selector   RitualSelector
	overlay    *RitualOverlay
	overlayGen int

	history        *HistoryView
	historyVisible bool

	fatal error
	ready bool
}

// New creates a TUI Model. A nil logger defaults to a no-op.
func New(backend compass.Backend, auth compass.Auth, theme compass.Theme, logger *zap.Logger, cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Share what's on your mind..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	styles := NewStyles(theme)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.Typing

	if logger == nil {
		logger = zap.NewNop()
	}

	return Model{
		Input:       ti,
		backend:     backend,
		auth:        auth,
		theme:       theme,
		styles:      styles,
		logger:      logger,
		cfg:         cfg,
		spin:        sp,
		crisisModal: NewCrisisModal(styles),
		selector:    NewRitualSelector(styles),
	}
}

// Busy reports whether a request, playback sequence, or ritual animation
// is in flight. The send control is disabled while Busy.
func (m Model) Busy() bool { return m.requesting || m.playing || m.overlay != nil }

// Typing reports whether the typing indicator is visible.
func (m Model) Typing() bool { return m.typing }

// CrisisVisible reports whether the crisis modal is on screen.
func (m Model) CrisisVisible() bool { return m.crisisVisible }

// HistoryVisible reports whether the history view is on screen.
func (m Model) HistoryVisible() bool { return m.historyVisible }

// Session returns a copy of the active session, or a zero value when no
// session has started.
func (m Model) Session() compass.Session {
	if m.session == nil {
		return compass.Session{}
	}
	return *m.session
}

// Err returns the fatal error that ended the program, if any. Callers
// check it for compass.ErrUnauthenticated to route back to login.
func (m Model) Err() error { return m.fatal }

// Init implements tea.Model: it opens the daily check-in immediately.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startCheckinCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.typing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		m.refreshViewport()
		return m, cmd

	case SessionStartedMsg:
		return m.handleStarted(msg)

	case ResponseMsg:
		return m.handleResponse(msg)

	case CompletedMsg:
		return m.handleCompleted(msg)

	case PhaseSavedMsg:
		return m.handlePhaseSaved(msg)

	case HistoryMsg:
		return m.handleHistory(msg)

	case playTickMsg:
		if msg.gen != m.playGen {
			return m, nil
		}
		return m.advancePlayback()

	case ritualFrameMsg:
		if msg.gen != m.overlayGen || m.overlay == nil {
			return m, nil
		}
		m.overlay.Advance()
		gen := m.overlayGen
		return m, tea.Tick(ritualFrameInterval, func(time.Time) tea.Msg {
			return ritualFrameMsg{gen: gen}
		})

	case ritualDoneMsg:
		return m.handleRitualDone(msg)
	}

	// Pass remaining messages to sub-components. The viewport always
	// receives them for scrolling.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if !m.Busy() {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	switch {
	case m.crisisVisible:
		b.WriteString(m.crisisModal.View(m.Viewport.Width, m.Viewport.Height))
	case m.overlay != nil:
		b.WriteString(m.overlay.View(m.Viewport.Width, m.Viewport.Height))
	default:
		b.WriteString(m.Viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := max(msg.Height-inputH-statusHeight-borderHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.refreshViewport()
	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		switch {
		case m.crisisVisible:
			// Dismissal is client-side only. The gate re-arms on the next
			// flagged response; there is no per-session de-duplication.
			m.crisisVisible = false
			m.refreshViewport()
		case m.historyVisible:
			m.historyVisible = false
			m.refreshViewport()
		}
		return m, nil

	case tea.KeyEnter:
		if m.Busy() || m.crisisVisible {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)
	}

	if m.crisisVisible || m.overlay != nil {
		return m, nil
	}

	// When idle, pass keys to both input (typing) and viewport (scrolling).
	// Only non-character keys go to the viewport to avoid conflicts (e.g.
	// 'j'/'k' are viewport scroll AND text characters).
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !m.Busy() {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	if strings.HasPrefix(text, "/") {
		return m.handleCommand(text)
	}

	m.Input.SetValue("")
	if m.session == nil || m.session.CanSend() != nil {
		m.pushNotice("No active session. Start one with /checkin or /memory <topic>.")
		m.refreshViewport()
		return m, nil
	}
	if m.historyVisible {
		m.historyVisible = false
	}

	m.session.Append(compass.NewMessage(compass.RoleUser, text))
	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles))
	m.refreshViewport()

	m.requesting = true
	m.Input.Blur()
	return m, m.sendCmd(text)
}

func (m Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	fields := strings.Fields(input)
	name, args := fields[0], fields[1:]

	switch name {
	case "/checkin":
		return m.startSession(compass.KindCheckin, "")

	case "/memory":
		topic := strings.TrimSpace(strings.TrimPrefix(input, "/memory"))
		if topic == "" {
			m.pushNotice("Usage: /memory <what you want to process>")
			m.refreshViewport()
			return m, nil
		}
		return m.startSession(compass.KindMemory, topic)

	case "/ritual":
		return m.chooseRitual(args)

	case "/done":
		return m.completeSession()

	case "/history":
		return m.toggleHistory()

	case "/logout":
		return m.logout()

	case "/quit":
		return m, tea.Quit

	default:
		m.pushNotice(fmt.Sprintf("Unknown command %s", name))
		m.refreshViewport()
		return m, nil
	}
}

func (m Model) startSession(kind compass.SessionKind, topic string) (tea.Model, tea.Cmd) {
	// Retire any pending playback from the previous session.
	m.playGen++
	m.playing = false
	m.typing = false
	m.historyVisible = false

	m.requesting = true
	m.Input.Blur()
	m.refreshViewport()
	if kind == compass.KindMemory {
		return m, m.startMemoryCmd(topic)
	}
	return m, m.startCheckinCmd()
}

func (m Model) handleStarted(msg SessionStartedMsg) (tea.Model, tea.Cmd) {
	m.requesting = false
	if msg.Err != nil {
		return m.handleTransportError(msg.Err)
	}

	m.session = &compass.Session{
		ID:     msg.Result.SessionID,
		UserID: m.auth.User.ID,
		Kind:   msg.Kind,
		Phase:  msg.Result.Phase,
	}
	m.blocks = nil
	if msg.Kind == compass.KindMemory {
		m.pushNotice("Memory processing · " + msg.Topic)
	} else {
		m.pushNotice("Daily check-in")
	}
	m.refreshViewport()
	m.logger.Info("session started",
		zap.String("session_id", msg.Result.SessionID),
		zap.String("kind", string(msg.Kind)))

	return m.startPlayback(msg.Result.Chunks)
}

func (m Model) handleResponse(msg ResponseMsg) (tea.Model, tea.Cmd) {
	m.requesting = false
	if msg.Err != nil {
		return m.handleTransportError(msg.Err)
	}

	// Crisis is a first-class signal, not an error. Modal visibility
	// tracks exactly the latest response's flag.
	m.crisisVisible = msg.Result.CrisisDetected
	if m.session != nil {
		m.session.Crisis = msg.Result.CrisisDetected
		if msg.Result.Phase != "" {
			m.session.AdvancePhase(msg.Result.Phase)
		}
		if msg.Result.SessionComplete {
			m.session.Completed = true
		}
	}
	return m.startPlayback(msg.Result.Chunks)
}

// handleTransportError routes an error by kind. Collapsing these into one
// generic failure at the session boundary is the defect the taxonomy
// exists to prevent.
func (m Model) handleTransportError(err error) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(err, compass.ErrUnauthenticated):
		// Leave the chat entirely; the caller routes back to login. Never
		// rendered as an in-chat error.
		m.fatal = err
		m.logger.Warn("unauthenticated", zap.Error(err))
		return m, tea.Quit

	case errors.Is(err, compass.ErrSessionNotFound):
		m.logger.Warn("stale session", zap.Error(err))
		if m.session != nil {
			m.session.Completed = true
		}
		m.pushNotice("That session has expired. Start a fresh one with /checkin.")

	default:
		// Transient: log it, clear the loading state, wait for a manual
		// resend. No automatic retry.
		m.logger.Error("request failed", zap.Error(err))
		m.blocks = append(m.blocks, NewErrorBlock(err, m.styles))
	}
	m.refreshViewport()
	return m, m.Input.Focus()
}

func (m Model) startPlayback(chunks []compass.Chunk) (tea.Model, tea.Cmd) {
	m.playGen++
	m.player = playback.New(chunks)
	m.playing = !m.player.Done()
	if !m.playing {
		// Empty chunk list: no typing indicator, nothing to schedule.
		m.refreshViewport()
		return m, m.Input.Focus()
	}
	model, cmd := m.advancePlayback()
	return model, tea.Batch(cmd, m.spin.Tick)
}

// advancePlayback applies playback steps until it reaches a wait. Reveals
// carry no wait and are applied inline, so chunk N+1's delay never starts
// before chunk N's append is complete.
func (m Model) advancePlayback() (tea.Model, tea.Cmd) {
	for {
		step, next, ok := m.player.Next()
		if !ok {
			m.playing = false
			m.typing = false
			m.refreshViewport()
			if !m.requesting && m.overlay == nil {
				return m, m.Input.Focus()
			}
			return m, nil
		}
		m.player = next

		switch s := step.(type) {
		case playback.StepTyping:
			m.typing = true
			m.refreshViewport()
			return m, tea.Batch(m.playTick(s.Wait), m.spin.Tick)

		case playback.StepPause:
			m.typing = false
			m.refreshViewport()
			return m, m.playTick(s.Wait)

		case playback.StepReveal:
			m.typing = false
			if m.session != nil {
				m.session.Append(compass.NewMessage(compass.RoleAssistant, s.Content))
			}
			m.blocks = append(m.blocks, NewAssistantBlock(s.Content, m.theme))
			m.refreshViewport()
		}
	}
}

func (m Model) chooseRitual(args []string) (tea.Model, tea.Cmd) {
	if m.session == nil || !m.session.RitualOffered() {
		m.pushNotice("No ritual to choose right now.")
		m.refreshViewport()
		return m, nil
	}
	if len(args) != 1 {
		m.pushNotice("Usage: /ritual fire|water|earth|air|archive")
		m.refreshViewport()
		return m, nil
	}
	ritual, err := compass.ParseRitual(args[0])
	if err != nil {
		m.pushNotice(fmt.Sprintf("Unknown ritual %q. Options: fire, water, earth, air, archive.", args[0]))
		m.refreshViewport()
		return m, nil
	}
	if err := m.session.ChooseRitual(ritual); err != nil {
		m.pushNotice("A ritual has already been chosen.")
		m.refreshViewport()
		return m, nil
	}

	// The selector disappears with this choice. Persist it and await the
	// ack before the animation starts.
	m.requesting = true
	m.Input.Blur()
	m.refreshViewport()
	m.logger.Info("ritual chosen",
		zap.String("session_id", m.session.ID),
		zap.String("ritual", string(ritual)))
	return m, m.updatePhaseCmd(compass.PhaseData{RitualChosen: ritual})
}

func (m Model) handlePhaseSaved(msg PhaseSavedMsg) (tea.Model, tea.Cmd) {
	m.requesting = false
	if msg.Err != nil {
		// Phase metadata is fire-and-forget: the ritual continues locally
		// and the failure only gets logged.
		m.logger.Error("update-phase failed", zap.Error(msg.Err))
	}

	if msg.Data.RitualChosen != "" {
		m.overlayGen++
		m.overlay = NewRitualOverlay(msg.Data.RitualChosen, m.styles)
		return m, m.ritualTimers()
	}

	// Ack of the completion record; nothing left to advance.
	if !m.playing {
		return m, m.Input.Focus()
	}
	return m, nil
}

func (m Model) handleRitualDone(msg ritualDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.overlayGen || m.overlay == nil {
		// Stale timer from a torn-down overlay.
		return m, nil
	}
	completion := m.overlay.Completion()
	ritual := m.overlay.Ritual()
	m.overlay = nil
	m.overlayGen++ // retires the frame timer as well

	// Exactly one synthetic completion message per ritual activation. The
	// phase stays release; the session's work is done.
	if m.session != nil {
		m.session.Append(compass.NewMessage(compass.RoleAssistant, completion))
	}
	m.blocks = append(m.blocks, NewAssistantBlock(completion, m.theme))
	m.refreshViewport()
	m.logger.Info("ritual completed", zap.String("ritual", string(ritual)))

	m.requesting = true
	return m, m.updatePhaseCmd(compass.PhaseData{RitualCompleted: true, ClosureAchieved: true})
}

func (m Model) completeSession() (tea.Model, tea.Cmd) {
	if m.session == nil || m.session.Completed {
		m.pushNotice("No active session to complete.")
		m.refreshViewport()
		return m, nil
	}
	if m.session.Kind == compass.KindMemory {
		m.pushNotice("Memory sessions close through their ritual.")
		m.refreshViewport()
		return m, nil
	}
	m.requesting = true
	m.Input.Blur()
	return m, m.completeCmd()
}

func (m Model) handleCompleted(msg CompletedMsg) (tea.Model, tea.Cmd) {
	m.requesting = false
	if msg.Err != nil {
		return m.handleTransportError(msg.Err)
	}
	if m.session != nil {
		m.session.Completed = true
	}
	m.blocks = append(m.blocks, NewSummaryBlock(msg.Summary, m.styles))
	m.pushNotice("Session complete. /checkin starts another; /history shows trends.")
	m.refreshViewport()
	m.logger.Info("session completed", zap.String("session_id", msg.Summary.SessionID))
	return m, m.Input.Focus()
}

func (m Model) toggleHistory() (tea.Model, tea.Cmd) {
	if m.historyVisible {
		m.historyVisible = false
		m.refreshViewport()
		return m, nil
	}
	m.requesting = true
	return m, m.historyCmd()
}

func (m Model) handleHistory(msg HistoryMsg) (tea.Model, tea.Cmd) {
	m.requesting = false
	if msg.Err != nil {
		return m.handleTransportError(msg.Err)
	}
	m.history = NewHistoryView(msg.Entries, msg.Digests, m.cfg.historyDays(), m.styles)
	m.historyVisible = true
	m.refreshViewport()
	return m, m.Input.Focus()
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	logoutFn := m.auth.Logout
	logger := m.logger
	return m, tea.Sequence(func() tea.Msg {
		if logoutFn != nil {
			if err := logoutFn(context.Background()); err != nil {
				logger.Error("logout failed", zap.Error(err))
			}
		}
		return nil
	}, tea.Quit)
}

// pushNotice appends a muted system line to the transcript.
func (m *Model) pushNotice(text string) {
	m.blocks = append(m.blocks, NewNoticeBlock(text, m.styles))
}

// refreshViewport re-renders the viewport's content for the current state.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	if m.historyVisible && m.history != nil {
		m.Viewport.SetContent(m.history.View(m.Viewport.Width))
		m.Viewport.GotoTop()
		return
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
}

func (m Model) renderContent() string {
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	if m.typing {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.styles.Typing.Render(m.spin.View() + " typing"))
	}
	if m.session != nil && m.session.RitualOffered() && !m.playing && !m.requesting {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.selector.View(m.Viewport.Width))
	}
	return b.String()
}

func (m Model) statusLine() string {
	if m.historyVisible {
		return m.styles.Muted.Render("esc to return to the conversation")
	}
	if m.session != nil && m.session.Kind == compass.KindMemory {
		return m.phaseTracker()
	}
	if m.requesting {
		return m.styles.Muted.Render("Thinking...")
	}
	return m.styles.Muted.Render("Enter to send · /memory /history /done · Ctrl+C to quit")
}

// phaseTracker renders the four-stage flow with the current phase
// highlighted. The client only mirrors the backend's value here.
func (m Model) phaseTracker() string {
	parts := make([]string, 0, len(compass.Phases))
	for _, p := range compass.Phases {
		if p == m.session.Phase {
			parts = append(parts, m.styles.Phase.Render(string(p)))
		} else {
			parts = append(parts, m.styles.PhaseDim.Render(string(p)))
		}
	}
	return strings.Join(parts, m.styles.Muted.Render(" → "))
}

func (m Model) playTick(d time.Duration) tea.Cmd {
	gen := m.playGen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return playTickMsg{gen: gen}
	})
}

func (m Model) ritualTimers() tea.Cmd {
	gen := m.overlayGen
	return tea.Batch(
		tea.Tick(ritualDuration, func(time.Time) tea.Msg {
			return ritualDoneMsg{gen: gen}
		}),
		tea.Tick(ritualFrameInterval, func(time.Time) tea.Msg {
			return ritualFrameMsg{gen: gen}
		}),
	)
}

func (m Model) startCheckinCmd() tea.Cmd {
	backend, userID := m.backend, m.auth.User.ID
	return func() tea.Msg {
		res, err := backend.StartCheckin(context.Background(), userID)
		return SessionStartedMsg{Kind: compass.KindCheckin, Result: res, Err: err}
	}
}

func (m Model) startMemoryCmd(topic string) tea.Cmd {
	backend, userID := m.backend, m.auth.User.ID
	return func() tea.Msg {
		res, err := backend.StartMemory(context.Background(), userID, topic)
		return SessionStartedMsg{Kind: compass.KindMemory, Topic: topic, Result: res, Err: err}
	}
}

func (m Model) sendCmd(text string) tea.Cmd {
	backend, s := m.backend, *m.session
	return func() tea.Msg {
		var res compass.SendResult
		var err error
		if s.Kind == compass.KindMemory {
			res, err = backend.SendMemory(context.Background(), s.ID, s.UserID, text)
		} else {
			res, err = backend.SendCheckin(context.Background(), s.ID, s.UserID, text)
		}
		return ResponseMsg{Result: res, Err: err}
	}
}

func (m Model) completeCmd() tea.Cmd {
	backend, s := m.backend, *m.session
	return func() tea.Msg {
		summary, err := backend.CompleteCheckin(context.Background(), s.ID, s.UserID)
		return CompletedMsg{Summary: summary, Err: err}
	}
}

func (m Model) updatePhaseCmd(data compass.PhaseData) tea.Cmd {
	backend, s := m.backend, *m.session
	return func() tea.Msg {
		err := backend.UpdatePhase(context.Background(), s.ID, s.UserID, data)
		return PhaseSavedMsg{Data: data, Err: err}
	}
}

func (m Model) historyCmd() tea.Cmd {
	backend, userID := m.backend, m.auth.User.ID
	days, limit := m.cfg.historyDays(), m.cfg.recentLimit()
	return func() tea.Msg {
		// Sequential on purpose: one request pending at a time.
		entries, err := backend.EmotionHistory(context.Background(), userID, days)
		if err != nil {
			return HistoryMsg{Err: err}
		}
		digests, err := backend.RecentSessions(context.Background(), userID, limit)
		if err != nil {
			return HistoryMsg{Err: err}
		}
		return HistoryMsg{Entries: entries, Digests: digests}
	}
}
