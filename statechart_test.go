package undofsm_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/comalice/undofsm"
)

// pingPong is the two-state machine used by most tests:
// A --go--> B, B --back--> A.
func pingPong() *Config {
	return &Config{
		Initial: "A",
		States: []State{
			{ID: "A", Transitions: map[EventID]StateID{"go": "B"}},
			{ID: "B", Transitions: map[EventID]StateID{"back": "A"}},
		},
	}
}

func newMachine(t *testing.T, cfg *Config, opts ...Option) *Machine {
	t.Helper()
	m, err := New(cfg, opts...)
	require.NoError(t, err)
	return m
}

func TestNew_NilConfig(t *testing.T) {
	m, err := New(nil)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNew_PresenceChecks(t *testing.T) {
	tests := map[string]*Config{
		"empty initial":   {States: []State{{ID: "A"}}},
		"empty state ID":  {Initial: "A", States: []State{{ID: "A"}, {ID: ""}}},
		"duplicate state": {Initial: "A", States: []State{{ID: "A"}, {ID: "A"}}},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(cfg)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestNew_InitialState(t *testing.T) {
	m := newMachine(t, pingPong())

	assert.Equal(t, StateID("A"), m.State())
	assert.Equal(t, StateID("A"), m.Initial())
	assert.Equal(t, []StateID{"A"}, m.History())
	assert.Empty(t, m.RedoStack())
}

func TestNew_UndeclaredInitial(t *testing.T) {
	m := newMachine(t, &Config{Initial: "ghost", States: []State{{ID: "A"}}})
	assert.Equal(t, StateID("ghost"), m.State())

	err := m.Trigger("go")
	assert.True(t, IsInvalidTransitionError(err))
	require.NoError(t, m.ChangeState("A"))
	assert.Equal(t, []StateID{"ghost", "A"}, m.History())
}

func TestNew_ID(t *testing.T) {
	m := newMachine(t, pingPong())
	_, err := uuid.Parse(m.ID())
	assert.NoError(t, err, "default ID is a UUID")

	cfg := pingPong()
	cfg.ID = "from-config"
	assert.Equal(t, "from-config", newMachine(t, cfg).ID())

	assert.Equal(t, "explicit", newMachine(t, cfg, WithID("explicit")).ID())
}

func TestNew_CopiesConfig(t *testing.T) {
	cfg := pingPong()
	m := newMachine(t, cfg)

	cfg.States[0].Transitions["go"] = "A"
	cfg.States[1].ID = "renamed"
	cfg.States = append(cfg.States, State{ID: "C"})

	assert.Equal(t, []StateID{"A", "B"}, m.States())
	require.NoError(t, m.Trigger("go"))
	assert.Equal(t, StateID("B"), m.State())

	snapshot := m.Config()
	snapshot.States[0].Transitions["go"] = "nowhere"
	assert.Equal(t, StateID("B"), m.Config().States[0].Transitions["go"])
}

func TestStates_DeclarationOrder(t *testing.T) {
	m := newMachine(t, &Config{
		Initial: "solid",
		States: []State{
			{ID: "solid", Transitions: map[EventID]StateID{"melt": "liquid"}},
			{ID: "liquid", Transitions: map[EventID]StateID{"freeze": "solid", "vaporize": "gas"}},
			{ID: "gas", Transitions: map[EventID]StateID{"condense": "liquid"}},
			{ID: "plasma"},
		},
	})

	all := []StateID{"solid", "liquid", "gas", "plasma"}
	assert.Equal(t, all, m.States())
	assert.Equal(t, all, m.StatesFor(""))

	require.NoError(t, m.Trigger("melt"))
	require.NoError(t, m.Trigger("vaporize"))
	assert.Equal(t, all, m.States(), "listing does not depend on position")
}

func TestStatesFor(t *testing.T) {
	m := newMachine(t, &Config{
		Initial: "a",
		States: []State{
			{ID: "c", Transitions: map[EventID]StateID{"study": "a"}},
			{ID: "a", Transitions: map[EventID]StateID{"study": "b", "eat": "c"}},
			{ID: "b", Transitions: map[EventID]StateID{"eat": "a", "nap": ""}},
		},
	})

	assert.Equal(t, []StateID{"c", "a"}, m.StatesFor("study"))
	assert.Equal(t, []StateID{"a", "b"}, m.StatesFor("eat"))
	assert.Empty(t, m.StatesFor("nap"), "empty target is not a declared transition")
	assert.Empty(t, m.StatesFor("fly"))
	assert.Equal(t, StateID("a"), m.State())
}

func TestChangeState(t *testing.T) {
	m := newMachine(t, pingPong())

	require.NoError(t, m.ChangeState("B"))
	assert.Equal(t, StateID("B"), m.State())

	// B declares no "go" transition, ChangeState ignores the table.
	require.NoError(t, m.ChangeState("B"))
	require.NoError(t, m.ChangeState("B"))
	assert.Equal(t, []StateID{"A", "B"}, m.History())
}

func TestChangeState_Unknown(t *testing.T) {
	m := newMachine(t, pingPong())
	require.NoError(t, m.Trigger("go"))

	err := m.ChangeState("Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownState)
	assert.True(t, IsUnknownStateError(err))

	var use *UnknownStateError
	require.True(t, errors.As(err, &use))
	assert.Equal(t, StateID("Z"), use.State)

	assert.Equal(t, StateID("B"), m.State())
	assert.Equal(t, []StateID{"A", "B"}, m.History())
}

func TestTrigger(t *testing.T) {
	m := newMachine(t, pingPong())

	require.NoError(t, m.Trigger("go"))
	assert.Equal(t, StateID("B"), m.State())
	require.NoError(t, m.Trigger("back"))
	assert.Equal(t, StateID("A"), m.State())
	assert.Equal(t, []StateID{"A", "B", "A"}, m.History())
}

func TestTrigger_Invalid(t *testing.T) {
	m := newMachine(t, pingPong())

	err := m.Trigger("back")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.False(t, IsUnknownStateError(err))

	var ite *InvalidTransitionError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, StateID("A"), ite.State)
	assert.Equal(t, EventID("back"), ite.Event)

	assert.Equal(t, StateID("A"), m.State())
	assert.Equal(t, []StateID{"A"}, m.History())
}

func TestTrigger_SelfLoopDedup(t *testing.T) {
	m := newMachine(t, &Config{
		Initial: "idle",
		States: []State{
			{ID: "idle", Transitions: map[EventID]StateID{"tick": "idle", "start": "run"}},
			{ID: "run"},
		},
	})

	require.NoError(t, m.Trigger("tick"))
	require.NoError(t, m.Trigger("tick"))
	assert.Equal(t, []StateID{"idle"}, m.History())
	assert.False(t, m.Undo())
}

func TestTrigger_EmptyTargetIsInvalid(t *testing.T) {
	m := newMachine(t, &Config{
		Initial: "a",
		States:  []State{{ID: "a", Transitions: map[EventID]StateID{"nop": ""}}},
	})
	assert.ErrorIs(t, m.Trigger("nop"), ErrInvalidTransition)
}

func TestReset(t *testing.T) {
	m := newMachine(t, pingPong())

	m.Reset()
	assert.Equal(t, []StateID{"A"}, m.History(), "reset at initial appends nothing")

	require.NoError(t, m.Trigger("go"))
	m.Reset()
	assert.Equal(t, StateID("A"), m.State())
	assert.Equal(t, []StateID{"A", "B", "A"}, m.History(), "reset extends history")
}

func TestReset_KeepsRedoStack(t *testing.T) {
	m := newMachine(t, pingPong())
	require.NoError(t, m.Trigger("go"))
	require.True(t, m.Undo())

	m.Reset()
	assert.Equal(t, []StateID{"B"}, m.RedoStack())
	assert.True(t, m.Redo())
	assert.Equal(t, StateID("B"), m.State())
}

func TestListener(t *testing.T) {
	var changes []Change
	m := newMachine(t, pingPong(), WithID("lights"), WithListener(func(c Change) {
		changes = append(changes, c)
	}))

	require.NoError(t, m.Trigger("go"))
	require.Error(t, m.Trigger("go"))
	require.NoError(t, m.ChangeState("A"))
	require.True(t, m.Undo())
	require.True(t, m.Redo())
	m.Reset()
	require.False(t, m.Redo())

	require.Len(t, changes, 5)
	assert.Equal(t, OpTrigger, changes[0].Op)
	assert.Equal(t, EventID("go"), changes[0].Event)
	assert.Equal(t, StateID("A"), changes[0].From)
	assert.Equal(t, StateID("B"), changes[0].To)
	assert.Equal(t, "lights", changes[0].MachineID)
	assert.False(t, changes[0].Time.IsZero())

	ops := make([]Op, len(changes))
	for i, c := range changes {
		ops[i] = c.Op
	}
	assert.Equal(t, []Op{OpTrigger, OpChange, OpUndo, OpRedo, OpReset}, ops)
	assert.Equal(t, Change{MachineID: "lights", Op: OpUndo, From: "A", To: "B", Time: changes[2].Time}, changes[2])
}

func TestChannelPublisher(t *testing.T) {
	ch := make(chan Change, 1)
	p := NewChannelPublisher(ch)
	m := newMachine(t, pingPong(), WithListener(p.Publish))

	require.NoError(t, m.Trigger("go"))
	require.NoError(t, m.Trigger("back"))

	got := <-ch
	assert.Equal(t, "A -> B", got.String())
	assert.Equal(t, 1, p.Dropped())
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := newMachine(t, pingPong(), WithID("logged"), WithLogger(logger))

	require.NoError(t, m.Trigger("go"))
	out := buf.String()
	assert.Contains(t, out, "machine=logged")
	assert.Contains(t, out, "op=trigger")
	assert.Contains(t, out, "from=A")
	assert.Contains(t, out, "to=B")
}

func TestDOT(t *testing.T) {
	cfg := pingPong()
	cfg.ID = "pingpong"
	m := newMachine(t, cfg)
	require.NoError(t, m.Trigger("go"))

	dot := m.DOT()
	assert.Contains(t, dot, `digraph "pingpong" {`)
	assert.Contains(t, dot, `"A" -> "B" [label="go"];`)
	assert.Contains(t, dot, `"B" [label="B" style="rounded,filled" fillcolor=lightgreen];`)
}
