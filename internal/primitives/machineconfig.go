// MachineConfig represents the top-level configuration of a state machine:
// an optional machine ID, the initial state and the ordered list of states.
// Validation is limited to presence checks; targets are not resolved and
// reachability is not analysed.

package primitives

import (
	"errors"
	"fmt"
)

// ErrMissingField is returned when a configuration document lacks a required key.
var ErrMissingField = errors.New("missing required field")

// MachineConfig defines the complete machine configuration.
type MachineConfig struct {
	ID      string        `json:"id,omitempty" yaml:"id,omitempty"`
	Initial StateID       `json:"initial" yaml:"initial"`
	States  []StateConfig `json:"states" yaml:"states"`
}

// Validate checks that the initial state is named and that every state has
// a non-empty, unique ID. The initial state is not required to appear in
// States. Empty state IDs are rejected, which is stricter than a plain
// presence check on the states mapping.
func (m *MachineConfig) Validate() error {
	if m.Initial == "" {
		return errors.New("initial state ID is required")
	}
	seen := make(map[StateID]struct{}, len(m.States))
	for i, s := range m.States {
		if s.ID == "" {
			return fmt.Errorf("state %d: state ID is required", i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate state %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// Find returns the state with the given ID.
func (m *MachineConfig) Find(id StateID) (*StateConfig, bool) {
	for i := range m.States {
		if m.States[i].ID == id {
			return &m.States[i], true
		}
	}
	return nil, false
}

// StateIDs returns the state IDs in declaration order.
func (m *MachineConfig) StateIDs() []StateID {
	ids := make([]StateID, len(m.States))
	for i, s := range m.States {
		ids[i] = s.ID
	}
	return ids
}

// Clone returns a deep copy.
func (m MachineConfig) Clone() MachineConfig {
	c := MachineConfig{ID: m.ID, Initial: m.Initial}
	if m.States != nil {
		c.States = make([]StateConfig, len(m.States))
		for i, s := range m.States {
			c.States[i] = s.Clone()
		}
	}
	return c
}
