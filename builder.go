package undofsm

// MachineBuilder provides a fluent API for assembling a Config in
// declaration order.
type MachineBuilder struct {
	id      string
	initial StateID
	order   []StateID
	states  map[StateID]*State
}

// StateBuilder provides fluent methods for configuring an individual state.
type StateBuilder struct {
	b     *MachineBuilder
	state *State
}

// NewMachineBuilder creates a builder whose machine starts in initial.
func NewMachineBuilder(initial StateID) *MachineBuilder {
	return &MachineBuilder{
		initial: initial,
		states:  make(map[StateID]*State),
	}
}

// ID sets the machine identifier carried by the Config.
func (b *MachineBuilder) ID(id string) *MachineBuilder {
	b.id = id
	return b
}

// State creates or retrieves a state by name. A state keeps the position
// of its first declaration.
func (b *MachineBuilder) State(id StateID) *StateBuilder {
	state, ok := b.states[id]
	if !ok {
		state = &State{ID: id}
		b.states[id] = state
		b.order = append(b.order, id)
	}
	return &StateBuilder{b: b, state: state}
}

// Config returns a fresh Config reflecting the declarations so far.
func (b *MachineBuilder) Config() *Config {
	cfg := &Config{
		ID:      b.id,
		Initial: b.initial,
		States:  make([]State, 0, len(b.order)),
	}
	for _, id := range b.order {
		cfg.States = append(cfg.States, b.states[id].Clone())
	}
	return cfg
}

// Build constructs the Machine.
func (b *MachineBuilder) Build(opts ...Option) (*Machine, error) {
	return New(b.Config(), opts...)
}

// On adds a transition from this state to target when event occurs. A
// second call for the same event replaces the target.
func (sb *StateBuilder) On(event EventID, target StateID) *StateBuilder {
	sb.state.AddTransition(event, target)
	return sb
}

// State switches to declaring another state.
func (sb *StateBuilder) State(id StateID) *StateBuilder {
	return sb.b.State(id)
}

// Config returns the Config of the underlying builder.
func (sb *StateBuilder) Config() *Config {
	return sb.b.Config()
}

// Build constructs the Machine from the underlying builder.
func (sb *StateBuilder) Build(opts ...Option) (*Machine, error) {
	return sb.b.Build(opts...)
}
