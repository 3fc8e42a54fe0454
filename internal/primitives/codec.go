package primitives

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a machine document keeping the states mapping in
// document order.
func (m *MachineConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: machine config must be a mapping", node.Line)
	}

	var hasInitial, hasStates bool
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "id":
			if err := val.Decode(&m.ID); err != nil {
				return fmt.Errorf("id: %w", err)
			}
		case "initial":
			if err := val.Decode(&m.Initial); err != nil {
				return fmt.Errorf("initial: %w", err)
			}
			hasInitial = true
		case "states":
			states, err := decodeYAMLStates(val)
			if err != nil {
				return fmt.Errorf("states: %w", err)
			}
			m.States = states
			hasStates = true
		}
	}

	if !hasInitial {
		return fmt.Errorf("%w: initial", ErrMissingField)
	}
	if !hasStates {
		return fmt.Errorf("%w: states", ErrMissingField)
	}
	return nil
}

func decodeYAMLStates(node *yaml.Node) ([]StateConfig, error) {
	if node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: states must be a mapping", node.Line)
	}

	states := make([]StateConfig, 0, len(node.Content)/2)
	seen := make(map[StateID]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		id := StateID(key.Value)
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("line %d: duplicate state %q", key.Line, id)
		}
		seen[id] = struct{}{}

		var body struct {
			Transitions map[EventID]StateID `yaml:"transitions"`
		}
		if err := val.Decode(&body); err != nil {
			return nil, fmt.Errorf("state %q: %w", id, err)
		}
		states = append(states, StateConfig{ID: id, Transitions: body.Transitions})
	}
	return states, nil
}

// MarshalYAML encodes the machine with states in declaration order and
// events sorted by name.
func (m MachineConfig) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	if m.ID != "" {
		root.Content = append(root.Content, yamlString("id"), yamlString(m.ID))
	}
	root.Content = append(root.Content, yamlString("initial"), yamlString(string(m.Initial)))

	states := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range m.States {
		trans := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range s.Events() {
			trans.Content = append(trans.Content, yamlString(string(e)), yamlString(string(s.Transitions[e])))
		}
		body := &yaml.Node{Kind: yaml.MappingNode}
		body.Content = append(body.Content, yamlString("transitions"), trans)
		states.Content = append(states.Content, yamlString(string(s.ID)), body)
	}
	root.Content = append(root.Content, yamlString("states"), states)
	return root, nil
}

func yamlString(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// ParseJSON decodes a machine document keeping the states object in
// document order.
func ParseJSON(data []byte) (MachineConfig, error) {
	var m MachineConfig
	if !gjson.ValidBytes(data) {
		return m, errors.New("invalid JSON document")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return m, errors.New("machine config must be an object")
	}

	if id := doc.Get("id"); id.Exists() {
		m.ID = id.String()
	}

	initial := doc.Get("initial")
	if !initial.Exists() {
		return m, fmt.Errorf("%w: initial", ErrMissingField)
	}
	if initial.Type != gjson.String {
		return m, fmt.Errorf("initial: expected string, got %s", initial.Type)
	}
	m.Initial = StateID(initial.String())

	states := doc.Get("states")
	if !states.Exists() {
		return m, fmt.Errorf("%w: states", ErrMissingField)
	}
	if states.Type == gjson.Null {
		return m, nil
	}
	if !states.IsObject() {
		return m, errors.New("states: expected object")
	}

	var err error
	seen := make(map[StateID]struct{})
	states.ForEach(func(key, value gjson.Result) bool {
		id := StateID(key.String())
		if _, dup := seen[id]; dup {
			err = fmt.Errorf("states: duplicate state %q", id)
			return false
		}
		seen[id] = struct{}{}

		s := StateConfig{ID: id}
		if err = decodeJSONTransitions(&s, value.Get("transitions")); err != nil {
			return false
		}
		m.States = append(m.States, s)
		return true
	})
	return m, err
}

// UnmarshalJSON decodes the document form written by MarshalJSON.
func (m *MachineConfig) UnmarshalJSON(data []byte) error {
	cfg, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*m = cfg
	return nil
}

func decodeJSONTransitions(s *StateConfig, trans gjson.Result) error {
	if !trans.Exists() || trans.Type == gjson.Null {
		return nil
	}
	if !trans.IsObject() {
		return fmt.Errorf("state %q: transitions: expected object", s.ID)
	}
	var err error
	trans.ForEach(func(event, target gjson.Result) bool {
		if target.Type != gjson.String {
			err = fmt.Errorf("state %q: event %q: expected string target, got %s", s.ID, event.String(), target.Type)
			return false
		}
		s.AddTransition(EventID(event.String()), StateID(target.String()))
		return true
	})
	return err
}

// MarshalJSON encodes the machine with states in declaration order.
func (m MachineConfig) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if m.ID != "" {
		if err := writeJSONField(&buf, "id", m.ID); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}
	if err := writeJSONField(&buf, "initial", m.Initial); err != nil {
		return nil, err
	}
	buf.WriteString(`,"states":{`)
	for i, s := range m.States {
		if i > 0 {
			buf.WriteByte(',')
		}
		trans := s.Transitions
		if trans == nil {
			trans = map[EventID]StateID{}
		}
		body := struct {
			Transitions map[EventID]StateID `json:"transitions"`
		}{trans}
		if err := writeJSONField(&buf, string(s.ID), body); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

func writeJSONField(buf *bytes.Buffer, name string, v any) error {
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	val, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}
