// Package undofsm implements a finite-state machine with a linear undo/redo
// history of visited states.
//
// A machine is built once from a Config: an initial state and an ordered
// list of states, each mapping events to destination states.
//
//	m, err := undofsm.NewMachineBuilder("closed").
//		State("closed").On("open", "opened").
//		State("opened").On("close", "closed").
//		Build()
//
// Trigger follows a declared transition and ChangeState jumps to any
// declared state. Both append the new state to the history unless it equals
// the last entry. Undo walks back through the history, pushing the states
// it leaves onto a redo stack that Redo consumes. The redo stack is only
// emptied by Redo itself: ChangeState, Trigger, Reset and ClearHistory all
// leave it in place.
//
// Configs can also be read from YAML or JSON documents (ParseYAML,
// ParseJSON, LoadFile); the order of the states mapping is preserved.
//
// Machines are synchronous and hold no locks. Callers sharing a Machine
// between goroutines must serialise access themselves.
package undofsm
