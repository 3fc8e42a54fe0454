package primitives

import "sort"

// StateID names a state.
type StateID string

// EventID names a transition trigger.
type EventID string

// StateConfig defines one state and its outgoing transitions.
type StateConfig struct {
	ID          StateID             `json:"id" yaml:"id"`
	Transitions map[EventID]StateID `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// NewStateConfig creates a StateConfig with no transitions.
func NewStateConfig(id StateID) *StateConfig {
	return &StateConfig{ID: id}
}

// AddTransition maps event to target, replacing any earlier target for event.
func (s *StateConfig) AddTransition(event EventID, target StateID) *StateConfig {
	if s.Transitions == nil {
		s.Transitions = make(map[EventID]StateID)
	}
	s.Transitions[event] = target
	return s
}

// Target returns the destination for event. Empty targets count as missing.
func (s *StateConfig) Target(event EventID) (StateID, bool) {
	to, ok := s.Transitions[event]
	if !ok || to == "" {
		return "", false
	}
	return to, true
}

// Events returns every event key sorted by name, including keys whose
// target is empty.
func (s *StateConfig) Events() []EventID {
	events := make([]EventID, 0, len(s.Transitions))
	for e := range s.Transitions {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events
}

// Clone returns a deep copy.
func (s StateConfig) Clone() StateConfig {
	c := StateConfig{ID: s.ID}
	if s.Transitions != nil {
		c.Transitions = make(map[EventID]StateID, len(s.Transitions))
		for e, to := range s.Transitions {
			c.Transitions[e] = to
		}
	}
	return c
}
