package primitives

import "time"

// Op identifies the operation that moved a machine.
type Op string

const (
	OpChange  Op = "change"
	OpTrigger Op = "trigger"
	OpReset   Op = "reset"
	OpUndo    Op = "undo"
	OpRedo    Op = "redo"
)

// Change records a completed state change. Event is set only for OpTrigger.
type Change struct {
	MachineID string    `json:"machineID" yaml:"machineID"`
	Op        Op        `json:"op" yaml:"op"`
	Event     EventID   `json:"event,omitempty" yaml:"event,omitempty"`
	From      StateID   `json:"from" yaml:"from"`
	To        StateID   `json:"to" yaml:"to"`
	Time      time.Time `json:"time" yaml:"time"`
}

// String renders the change as "from -> to".
func (c Change) String() string {
	return string(c.From) + " -> " + string(c.To)
}
