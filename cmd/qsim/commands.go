// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/qsim/algorithms"
	"github.com/katalvlaran/qsim/analyzer"
	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/codec"
	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/measure"
	"github.com/katalvlaran/qsim/register"
)

func (s *session) run(c *cli.Context) error {
	circ, err := s.load(c)
	if err != nil {
		return err
	}
	n := c.Uint64("input")
	if bits.Len64(n) > circ.Inputs() {
		return fmt.Errorf("input %d needs %d qubits, %s has %d", n, bits.Len64(n), circ.Name(), circ.Inputs())
	}
	return s.report(c, circ, register.FromNumber(n, circ.Inputs()), c.Bool("impossible"), nil)
}

// report runs in through circ and prints the outcome table and the most
// probable value; answer, when set, rewrites that value for the reader.
func (s *session) report(c *cli.Context, circ *circuit.Circuit, in register.Register, impossible bool, answer func(uint64) string) error {
	v, err := in.TransformedVector(circ)
	if err != nil {
		return err
	}
	m, err := measure.New(v, measure.WithSource(s.cfg.Source()))
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s on %s", circ.Name(), strings.TrimSpace(in.String()))))
	renderProbabilities(w, m.ProbabilisticMap(impossible))

	value, p := m.MostProbableIntegerValue()
	line := fmt.Sprintf("most probable: %d (%s) p=%.4f", value, measure.Key(value, m.Qubits()), p)
	if answer != nil {
		line += ", " + answer(value)
	}
	fmt.Fprintln(w, resultStyle.Render(line))

	return nil
}

func (s *session) demo(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		renderDemoList(c.App.Writer)
		return nil
	}
	d, ok := demos[name]
	if !ok {
		return fmt.Errorf("unknown demo %q, try one of %s", name, strings.Join(demoNames(), ", "))
	}
	circ, in, err := d.build(
		algorithms.WithLogger(s.log),
		algorithms.WithMatrixOptions(s.cfg.MatrixOptions()...),
		algorithms.WithSource(s.cfg.Source()),
	)
	if err != nil {
		return err
	}
	if circ.Inputs() > s.cfg.MaxQubits {
		return fmt.Errorf("%s: %d qubits, limit %d: %w", circ.Name(), circ.Inputs(), s.cfg.MaxQubits, circuit.ErrTooManyQubits)
	}

	if f := c.String("export"); f != "" {
		format, err := codec.ParseFormat(f)
		if err != nil {
			return err
		}
		data, err := codec.Marshal(format, circ)
		if err != nil {
			return err
		}
		_, err = c.App.Writer.Write(data)
		return err
	}
	if c.Bool("draw") {
		fmt.Fprintln(c.App.Writer, drawCircuit(circ))
	}
	return s.report(c, circ, in, false, d.answer)
}

func (s *session) truth(c *cli.Context) error {
	var (
		t   gate.Transformer
		err error
	)
	if c.IsSet("circuit") {
		t, err = s.load(c)
	} else {
		t, err = lookupGate(c.Args().First())
	}
	if err != nil {
		return err
	}
	table, err := analyzer.TruthTable(t,
		analyzer.WithWorkers(s.cfg.Workers),
		analyzer.WithMatrixOptions(s.cfg.MatrixOptions()...),
	)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, titleStyle.Render(t.Name()))
	renderTruthTable(c.App.Writer, table)

	return nil
}

func (s *session) show(c *cli.Context) error {
	circ, err := s.load(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, titleStyle.Render(fmt.Sprintf("%s (%d qubits, %d steps)", circ.Name(), circ.Inputs(), circ.Steps())))
	fmt.Fprintln(c.App.Writer, drawCircuit(circ))

	return nil
}
