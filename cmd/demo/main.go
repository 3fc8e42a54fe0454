package main

import (
	"fmt"
	"os"

	"github.com/comalice/undofsm"
	"github.com/comalice/undofsm/internal/console"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	logger, err := newLogger(s, os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := undofsm.LoadFile(s.ConfigPath)
	if err != nil {
		return err
	}

	opts := []undofsm.Option{
		undofsm.WithLogger(logger),
		undofsm.WithListener(func(c undofsm.Change) {
			logger.Info("transition", "machine", c.MachineID, "op", c.Op, "change", c.String())
		}),
	}
	if s.MachineID != "" {
		opts = append(opts, undofsm.WithID(s.MachineID))
	}
	m, err := undofsm.New(cfg, opts...)
	if err != nil {
		return err
	}

	fmt.Printf("machine %s loaded from %s, starting in %s\n", m.ID(), s.ConfigPath, m.State())
	return console.Run(m, os.Stdin, os.Stdout)
}
