// Package console drives a machine from line-oriented text commands.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/comalice/undofsm"
)

const help = `commands:
  state            print the current state
  states [event]   list states, optionally only those handling event
  go <state>       jump to state
  fire <event>     trigger event
  reset            return to the initial state
  undo | redo      walk the history
  clear            clear the history
  history          print history and redo stack
  dot              print the Graphviz rendering
  help             show this text
  quit             leave
`

// Run reads commands from in until EOF or quit, writing results to out.
// Command errors are reported and the loop continues; only I/O errors are
// returned.
func Run(m *undofsm.Machine, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprint(out, "> "); err != nil {
			return err
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := Exec(m, fields, out); err != nil {
			if _, werr := fmt.Fprintf(out, "error: %v\n", err); werr != nil {
				return werr
			}
		}
	}
}

// Exec runs a single command given as fields. Command failures and errors
// writing to out are both returned.
func Exec(m *undofsm.Machine, fields []string, out io.Writer) error {
	cmd, args := fields[0], fields[1:]
	var msg string
	switch cmd {
	case "state":
		msg = line(m.State())
	case "states":
		var event undofsm.EventID
		if len(args) > 0 {
			event = undofsm.EventID(args[0])
		}
		msg = line(join(m.StatesFor(event)))
	case "go":
		if len(args) != 1 {
			return fmt.Errorf("usage: go <state>")
		}
		if err := m.ChangeState(undofsm.StateID(args[0])); err != nil {
			return err
		}
		msg = line(m.State())
	case "fire":
		if len(args) != 1 {
			return fmt.Errorf("usage: fire <event>")
		}
		if err := m.Trigger(undofsm.EventID(args[0])); err != nil {
			return err
		}
		msg = line(m.State())
	case "reset":
		m.Reset()
		msg = line(m.State())
	case "undo":
		msg = "nothing to undo\n"
		if m.Undo() {
			msg = line(m.State())
		}
	case "redo":
		msg = "nothing to redo\n"
		if m.Redo() {
			msg = line(m.State())
		}
	case "clear":
		m.ClearHistory()
		msg = "history cleared\n"
	case "history":
		msg = fmt.Sprintf("history: %s\nredo:    %s\n", join(m.History()), join(m.RedoStack()))
	case "dot":
		msg = m.DOT()
	case "help":
		msg = help
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	_, err := io.WriteString(out, msg)
	return err
}

func line[T ~string](s T) string {
	return string(s) + "\n"
}

func join[T ~string](ids []T) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, " ")
}
