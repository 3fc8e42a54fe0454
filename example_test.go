package undofsm_test

import (
	"fmt"

	"github.com/comalice/undofsm"
)

func ExampleMachine_Undo() {
	m, err := undofsm.NewMachineBuilder("draft").
		State("draft").On("submit", "review").
		State("review").On("approve", "published").On("reject", "draft").
		State("published").
		Build()
	if err != nil {
		panic(err)
	}

	_ = m.Trigger("submit")
	_ = m.Trigger("approve")
	fmt.Println(m.State(), m.History())

	m.Undo()
	fmt.Println(m.State(), m.RedoStack())

	m.Redo()
	fmt.Println(m.State(), m.History())
	// Output:
	// published [draft review published]
	// review [published]
	// published [draft review published]
}

func ExampleMachine_Trigger() {
	cfg, err := undofsm.ParseYAML([]byte(`
initial: A
states:
  A:
    transitions:
      go: B
  B:
    transitions:
      back: A
`))
	if err != nil {
		panic(err)
	}
	m, err := undofsm.New(cfg)
	if err != nil {
		panic(err)
	}

	fmt.Println(m.Trigger("back"))
	fmt.Println(m.Trigger("go"), m.State())
	fmt.Println(m.StatesFor("back"))
	// Output:
	// no transition from state "A" for event "back"
	// <nil> B
	// [B]
}
