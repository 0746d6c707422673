package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"tinygo.org/x/bluetooth"

	"github.com/openair/airwake/internal/ble"
	"github.com/openair/airwake/internal/wake"
)

// phase tracks where the wake flow is on screen.
type phase int

const (
	phaseIdle phase = iota
	phaseConnecting
	phaseAuth
	phaseWaiting
	phasePower
	phaseDone
	phaseFailed
)

// Model is the main Bubbletea model for the wake TUI.
type Model struct {
	phase phase
	delay time.Duration

	// BLE session, valid from a successful connectMsg until disconnect.
	device        bluetooth.Device
	connected     bool
	everConnected bool
	cancel        context.CancelFunc
	events        chan tea.Msg

	result    wake.Result
	err       error
	waitStart time.Time

	width  int
	height int

	// Components
	passcode textinput.Model
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model
	styles   Styles
}

// --- Custom messages for async operations ---

// connectMsg signals scan/connect/discovery result.
type connectMsg struct {
	device    bluetooth.Device
	transport *ble.Characteristic
	err       error
}

// stageMsg reports a frame that was written successfully.
type stageMsg struct {
	stage wake.Stage
}

// wakeDoneMsg delivers the final sequencer outcome.
type wakeDoneMsg struct {
	res wake.Result
	err error
}

// tickMsg drives the delay progress bar.
type tickMsg time.Time

// NewModel creates the wake TUI model.
func NewModel(passcode string, delay time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "passcode (leave empty to skip auth)"
	ti.CharLimit = 16
	ti.Width = 32
	ti.SetValue(passcode)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if delay <= 0 {
		delay = wake.DefaultDelay
	}

	return Model{
		phase:    phaseIdle,
		delay:    delay,
		passcode: ti,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		styles:   DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		typing := m.phase == phaseIdle && m.passcode.Focused()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// While the passcode field is focused, plain "q" is input.
			if typing && msg.String() == "q" {
				break
			}
			m.teardown()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			if typing {
				break
			}
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Start):
			if m.phase == phaseIdle {
				return m.start()
			}

		case key.Matches(msg, m.keys.Retry):
			if m.phase == phaseFailed || m.phase == phaseDone {
				m.teardown()
				m.phase = phaseIdle
				m.err = nil
				m.result = wake.Result{}
				m.passcode.Focus()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case connectMsg:
		if msg.err != nil {
			m.phase = phaseFailed
			m.err = msg.err
			return m, nil
		}
		m.device = msg.device
		m.connected = true
		m.everConnected = true
		return m.startSequence(msg.transport)

	case stageMsg:
		switch msg.stage {
		case wake.StageAuth:
			m.phase = phaseWaiting
			m.waitStart = time.Now()
			return m, tea.Batch(listen(m.events), tick())
		case wake.StagePowerOn:
			m.phase = phasePower
			return m, listen(m.events)
		}

	case wakeDoneMsg:
		m.result = msg.res
		m.err = msg.err
		if msg.err != nil {
			m.phase = phaseFailed
		} else {
			m.phase = phaseDone
		}
		m.teardown()
		return m, nil

	case tickMsg:
		if m.phase == phaseWaiting {
			return m, tick()
		}
		return m, nil
	}

	if m.phase == phaseIdle {
		var cmd tea.Cmd
		m.passcode, cmd = m.passcode.Update(msg)
		return m, cmd
	}

	return m, nil
}

// start kicks off the scan and connect.
func (m Model) start() (tea.Model, tea.Cmd) {
	m.phase = phaseConnecting
	m.err = nil
	m.result = wake.Result{}
	m.everConnected = false
	m.passcode.Blur()
	return m, tea.Batch(m.spinner.Tick, connectCmd())
}

// startSequence launches the sequencer against the discovered
// characteristic and begins listening for stage events.
func (m Model) startSequence(transport *ble.Characteristic) (tea.Model, tea.Cmd) {
	passcode := m.passcode.Value()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.events = make(chan tea.Msg, 4)

	t := &notifyingTransport{
		inner:      transport,
		events:     m.events,
		expectAuth: passcode != "",
	}

	seq := wake.NewSequencer()
	seq.Delay = m.delay

	events := m.events
	go func() {
		res, err := seq.Run(ctx, t, passcode)
		events <- wakeDoneMsg{res: res, err: err}
	}()

	if passcode != "" {
		m.phase = phaseAuth
	} else {
		m.phase = phasePower
	}
	return m, tea.Batch(m.spinner.Tick, listen(m.events))
}

// teardown cancels an in-flight sequence and drops the BLE connection.
func (m *Model) teardown() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.connected {
		m.device.Disconnect()
		m.connected = false
	}
}

// connectCmd scans for the camera and discovers the wake
// characteristic.
func connectCmd() tea.Cmd {
	return func() tea.Msg {
		device, err := ble.Dial(ble.ConnectOptions{})
		if err != nil {
			return connectMsg{err: err}
		}
		char, err := ble.WakeCharacteristic(device)
		if err != nil {
			device.Disconnect()
			return connectMsg{err: err}
		}
		return connectMsg{device: device, transport: ble.NewCharacteristic(char)}
	}
}

// listen relays the next event from the sequencer goroutine.
func listen(events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// notifyingTransport forwards writes to the BLE transport and reports
// each successful frame back to the TUI.
type notifyingTransport struct {
	inner      wake.Transport
	events     chan<- tea.Msg
	expectAuth bool
	writes     int
}

func (t *notifyingTransport) Write(p []byte) error {
	if err := t.inner.Write(p); err != nil {
		return err
	}
	t.writes++
	stage := wake.StagePowerOn
	if t.expectAuth && t.writes == 1 {
		stage = wake.StageAuth
	}
	t.events <- stageMsg{stage: stage}
	return nil
}

// --- View ---

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("airwake"))
	b.WriteString("\n")

	switch m.phase {
	case phaseIdle:
		b.WriteString(m.styles.Subtitle.Render("Power on an Olympus Air over BLE"))
		b.WriteString("\n\n")
		b.WriteString(m.passcode.View())
		b.WriteString("\n\n")
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Inter-frame delay: %s", m.delay)))
		b.WriteString("\n")

	default:
		b.WriteString(m.viewSteps())
	}

	b.WriteString(m.viewStatusBar())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return m.styles.App.Render(b.String())
}

// stepState is the render state of one checklist row.
type stepState int

const (
	stepPending stepState = iota
	stepActive
	stepDone
	stepFailed
)

func (m Model) viewSteps() string {
	withAuth := m.passcode.Value() != ""

	type flowStep struct {
		p     phase
		label string
	}

	flow := []flowStep{{phaseConnecting, "Scan and connect"}}
	if withAuth {
		flow = append(flow,
			flowStep{phaseAuth, "Write passcode frame"},
			flowStep{phaseWaiting, fmt.Sprintf("Wait %s", m.delay)},
		)
	}
	flow = append(flow, flowStep{phasePower, "Write power-on frame"})

	// Index of the currently active row, len(flow) when the whole flow
	// completed, or the failing row's index after a failure.
	active := len(flow)
	switch m.phase {
	case phaseDone:
		active = len(flow)
	case phaseFailed:
		active = m.failedIndex(withAuth, len(flow))
	default:
		for i, f := range flow {
			if f.p == m.phase {
				active = i
				break
			}
		}
	}

	var b strings.Builder
	for i, f := range flow {
		state := stepPending
		switch {
		case i < active:
			state = stepDone
		case i == active && m.phase == phaseFailed:
			state = stepFailed
		case i == active:
			state = stepActive
		}
		b.WriteString(m.renderStep(state, f.label))
	}

	if m.phase == phaseWaiting {
		pct := float64(time.Since(m.waitStart)) / float64(m.delay)
		if pct > 1 {
			pct = 1
		}
		b.WriteString("\n")
		b.WriteString(m.progress.ViewAs(pct))
		b.WriteString("\n")
	}

	switch m.phase {
	case phaseDone:
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render("Camera is powering on."))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Its WiFi access point takes a few seconds to come up."))
		b.WriteString("\n")
	case phaseFailed:
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Failed: %v", m.err)))
		b.WriteString("\n")
		if m.result.AuthWritten && !m.result.PowerWritten {
			b.WriteString(m.styles.Muted.Render("Passcode frame was written; power-on frame was not sent."))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// failedIndex locates the checklist row a failed sequence stopped on.
func (m Model) failedIndex(withAuth bool, flowLen int) int {
	if !m.everConnected {
		return 0
	}

	var trErr *wake.TransportError
	if errors.As(m.err, &trErr) {
		if trErr.Stage == wake.StagePowerOn {
			return flowLen - 1
		}
		return 1 // auth write
	}

	if withAuth && m.result.AuthWritten {
		return 2 // cancelled during the wait
	}
	if withAuth {
		return 1 // passcode never made it onto the wire
	}
	return flowLen - 1
}

func (m Model) renderStep(state stepState, label string) string {
	switch state {
	case stepActive:
		return m.styles.StepActive.Render(m.spinner.View()+" "+label) + "\n"
	case stepDone:
		return m.styles.StepDone.Render("✓ "+label) + "\n"
	case stepFailed:
		return m.styles.StepFailed.Render("✗ "+label) + "\n"
	}
	return m.styles.StepPending.Render("• "+label) + "\n"
}

func (m Model) viewStatusBar() string {
	var parts []string

	parts = append(parts,
		m.styles.StatusKey.Render("delay")+m.styles.StatusValue.Render(m.delay.String()))

	auth := "power-on only"
	if m.passcode.Value() != "" {
		auth = "passcode + power-on"
	}
	parts = append(parts,
		m.styles.StatusKey.Render("mode")+m.styles.StatusValue.Render(auth))

	return "\n" + m.styles.StatusBar.Render(strings.Join(parts, " "))
}
