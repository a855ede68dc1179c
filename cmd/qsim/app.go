// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/codec"
	"github.com/katalvlaran/qsim/config"
	"github.com/katalvlaran/qsim/internal/logger"
)

// session carries what the Before hook resolved to every command.
type session struct {
	cfg *config.Config
	log zerolog.Logger
}

func newApp(stdout, stderr io.Writer) *cli.App {
	s := &session{log: zerolog.Nop()}

	circuitFlag := &cli.StringFlag{Name: "circuit", Aliases: []string{"c"}, Usage: "circuit `FILE` (json, yaml or msgpack)"}
	formatFlag := &cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "file `FORMAT`; guessed from the extension when unset"}

	return &cli.App{
		Name:      "qsim",
		Usage:     "quantum circuit simulator",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env", Usage: "load settings from this .env `FILE` instead of ./.env"},
		},
		Before: func(c *cli.Context) error {
			var err error
			if path := c.String("env"); path != "" {
				s.cfg, err = config.LoadFiles(path)
			} else {
				s.cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			s.log = logger.New(logger.Config{Level: s.cfg.LogLevel, Pretty: s.cfg.LogPretty, Output: c.App.ErrWriter})
			s.log.Debug().
				Int("max_qubits", s.cfg.MaxQubits).
				Int("workers", s.cfg.Workers).
				Float64("sparse_ratio", s.cfg.SparseRatio).
				Msg("configuration loaded")
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "apply a circuit to a basis state and print the outcome probabilities",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					circuitFlag,
					formatFlag,
					&cli.Uint64Flag{Name: "input", Aliases: []string{"i"}, Usage: "input basis state as an integer, qubit 0 most significant"},
					&cli.BoolFlag{Name: "impossible", Usage: "also list outcomes of probability 0"},
				},
				Action: s.run,
			},
			{
				Name:      "demo",
				Usage:     "run, draw or export a bundled circuit; lists them without NAME",
				ArgsUsage: "[NAME]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "export", Usage: "write the circuit to stdout in `FORMAT` instead of running it"},
					&cli.BoolFlag{Name: "draw", Usage: "draw the timeline before running"},
				},
				Action: s.demo,
			},
			{
				Name:      "truth",
				Usage:     "print the truth table of a library gate or of a circuit file",
				ArgsUsage: "[GATE]",
				Flags:     []cli.Flag{circuitFlag, formatFlag},
				Action:    s.truth,
			},
			{
				Name:   "show",
				Usage:  "draw the timeline of a circuit file",
				Flags:  []cli.Flag{circuitFlag, formatFlag},
				Action: s.show,
			},
		},
	}
}

// load reads the circuit named by --circuit, honouring --format and the
// configured qubit limit.
func (s *session) load(c *cli.Context) (*circuit.Circuit, error) {
	path := c.String("circuit")
	if path == "" {
		return nil, fmt.Errorf("%s: --circuit is required", c.Command.Name)
	}
	var (
		f   codec.Format
		err error
	)
	if c.IsSet("format") {
		f, err = codec.ParseFormat(c.String("format"))
	} else {
		f, err = codec.FormatFor(path)
	}
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	circ, err := codec.Unmarshal(f, data, s.cfg.CircuitOptions(s.log)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.log.Info().
		Str("file", path).
		Str("format", f.String()).
		Str("circuit", circ.Name()).
		Int("qubits", circ.Inputs()).
		Int("gates", circ.GateCount()).
		Msg("circuit loaded")

	return circ, nil
}
