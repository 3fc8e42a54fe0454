package undofsm

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/comalice/undofsm/internal/core"
	"github.com/comalice/undofsm/internal/primitives"
	"github.com/comalice/undofsm/internal/production"
)

type (
	StateID = primitives.StateID
	EventID = primitives.EventID

	// Config is the declarative machine description. The order of States
	// is the order reported by Machine.States.
	Config = primitives.MachineConfig

	// State declares one state and its event-to-destination mapping.
	State = primitives.StateConfig

	// Change describes a completed state change delivered to listeners.
	Change = primitives.Change
	Op     = primitives.Op
)

const (
	OpChange  = primitives.OpChange
	OpTrigger = primitives.OpTrigger
	OpReset   = primitives.OpReset
	OpUndo    = primitives.OpUndo
	OpRedo    = primitives.OpRedo
)

// Machine tracks the current state of a finite-state machine together with
// a linear undo/redo history of visited states.
//
// The transition table is deep-copied from the Config at construction;
// changes to the caller's Config afterwards are not observed.
//
// A Machine is not safe for concurrent use.
type Machine struct {
	id      string
	config  Config
	index   map[StateID]int
	current StateID
	history *core.History

	logger    *slog.Logger
	listeners []Listener
}

// New builds a Machine from cfg and records the initial state in history.
// The initial state is not required to be declared in cfg.States.
func New(cfg *Config, opts ...Option) (*Machine, error) {
	if cfg == nil {
		return nil, configError(errors.New("no configuration provided"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}

	m := &Machine{
		id:      cfg.ID,
		config:  cfg.Clone(),
		current: cfg.Initial,
		history: core.NewHistory(),
		logger:  Logger,
	}
	m.index = make(map[StateID]int, len(m.config.States))
	for i, s := range m.config.States {
		m.index[s.ID] = i
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.id == "" {
		m.id = uuid.NewString()
	}

	m.history.Record(m.current)
	m.logger.Debug("machine created", "machine", m.id, "initial", m.current, "states", len(m.config.States))
	return m, nil
}

// ID returns the machine identifier.
func (m *Machine) ID() string {
	return m.id
}

// State returns the current state.
func (m *Machine) State() StateID {
	return m.current
}

// Initial returns the configured initial state.
func (m *Machine) Initial() StateID {
	return m.config.Initial
}

// States returns every declared state in declaration order.
func (m *Machine) States() []StateID {
	return m.config.StateIDs()
}

// StatesFor returns, in declaration order, the states that declare a
// transition for event. An empty event returns all states.
func (m *Machine) StatesFor(event EventID) []StateID {
	if event == "" {
		return m.States()
	}
	var states []StateID
	for i := range m.config.States {
		if _, ok := m.config.States[i].Target(event); ok {
			states = append(states, m.config.States[i].ID)
		}
	}
	return states
}

// ChangeState jumps directly to state without consulting transitions.
func (m *Machine) ChangeState(state StateID) error {
	if _, ok := m.index[state]; !ok {
		m.logger.Debug("unknown state", "machine", m.id, "state", state)
		return &UnknownStateError{State: state}
	}
	m.move(OpChange, "", state, true)
	return nil
}

// Trigger follows the transition declared for event by the current state.
func (m *Machine) Trigger(event EventID) error {
	to, ok := m.target(event)
	if !ok {
		m.logger.Debug("no transition", "machine", m.id, "state", m.current, "event", event)
		return &InvalidTransitionError{State: m.current, Event: event}
	}
	m.move(OpTrigger, event, to, true)
	return nil
}

// Reset returns to the initial state. History is extended, not rewound.
func (m *Machine) Reset() {
	m.move(OpReset, "", m.config.Initial, true)
}

// Undo steps back to the previous history entry. It reports false, and
// changes nothing, when history holds fewer than two entries.
func (m *Machine) Undo() bool {
	prev, ok := m.history.Undo()
	if !ok {
		return false
	}
	m.move(OpUndo, "", prev, false)
	return true
}

// Redo restores the most recently undone state. It reports false when there
// is nothing to redo.
func (m *Machine) Redo() bool {
	next, ok := m.history.Redo()
	if !ok {
		return false
	}
	m.move(OpRedo, "", next, false)
	return true
}

// ClearHistory empties the history. The current state and the redo stack
// are left as they are.
func (m *Machine) ClearHistory() {
	m.history.Clear()
	m.logger.Debug("history cleared", "machine", m.id, "state", m.current)
}

// CanUndo reports whether Undo would succeed.
func (m *Machine) CanUndo() bool {
	return m.history.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (m *Machine) CanRedo() bool {
	return m.history.CanRedo()
}

// History returns a copy of the visited states, oldest first.
func (m *Machine) History() []StateID {
	return m.history.Entries()
}

// RedoStack returns a copy of the redo stack, bottom first.
func (m *Machine) RedoStack() []StateID {
	return m.history.Removed()
}

// Config returns a deep copy of the configuration the machine was built from.
func (m *Machine) Config() Config {
	return m.config.Clone()
}

// DOT renders the transition table as Graphviz source with the current
// state highlighted.
func (m *Machine) DOT() string {
	return production.ExportDOT(m.config, m.current)
}

func (m *Machine) target(event EventID) (StateID, bool) {
	i, ok := m.index[m.current]
	if !ok {
		return "", false
	}
	return m.config.States[i].Target(event)
}

func (m *Machine) move(op Op, event EventID, to StateID, record bool) {
	from := m.current
	m.current = to
	if record {
		m.history.Record(to)
	}

	m.logger.Debug("state changed", "machine", m.id, "op", op, "event", event, "from", from, "to", to)

	if len(m.listeners) == 0 {
		return
	}
	c := Change{
		MachineID: m.id,
		Op:        op,
		Event:     event,
		From:      from,
		To:        to,
		Time:      time.Now(),
	}
	for _, fn := range m.listeners {
		fn(c)
	}
}
