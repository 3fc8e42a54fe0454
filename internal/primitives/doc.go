// Package primitives provides the foundational data structures for the
// state machine engine: identifiers, the declarative machine configuration
// and the change record emitted after every state change.
//
// Configuration documents are decoded with gopkg.in/yaml.v3 and
// github.com/tidwall/gjson so that the order of the states mapping survives
// decoding. That order is part of the machine's observable behavior.
//
// Core invariants:
// - State order in MachineConfig.States is document order
// - Clone returns a configuration sharing no maps or slices with the source
package primitives
