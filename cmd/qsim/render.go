// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/gate"
)

const barWidth = 30

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	resultStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#9ece6a"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7aa2f7"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	qubitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func bar(p float64) string {
	n := int(math.Round(p * barWidth))
	return barStyle.Render(strings.Repeat("█", n)) + dimStyle.Render(strings.Repeat("·", barWidth-n))
}

// renderProbabilities prints one row per outcome, in state order.
func renderProbabilities(w io.Writer, probs map[string]float64) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"State", "Value", "Probability", ""})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})
	for _, key := range sortedKeys(probs) {
		v, _ := strconv.ParseUint(key, 2, 64)
		p := probs[key]
		table.Append([]string{"|" + key + ">", strconv.FormatUint(v, 10), fmt.Sprintf("%.4f", p), bar(p)})
	}
	table.Render()
}

// renderTruthTable prints every input with its reachable outputs; the
// input is written on its first row only.
func renderTruthTable(w io.Writer, tt map[string]map[string]float64) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Input", "Output", "Probability"})
	table.SetRowLine(true)
	for _, in := range sortedKeys(tt) {
		label := in
		for _, out := range sortedKeys(tt[in]) {
			table.Append([]string{label, out, fmt.Sprintf("%.4f", tt[in][out])})
			label = ""
		}
	}
	table.Render()
}

func renderDemoList(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Demo", "Description"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, name := range demoNames() {
		table.Append([]string{name, demos[name].about})
	}
	table.Render()
}

// drawCircuit renders one wire per qubit and one column per time step. A
// multi-qubit entry shows its name with the operand position on each wire,
// e.g. "C-NOT.0" on the control and "C-NOT.1" on the target.
func drawCircuit(c *circuit.Circuit) string {
	times := c.Times()
	cells := make([][]string, c.Inputs())
	for q := range cells {
		cells[q] = make([]string, len(times))
	}
	widths := make([]int, len(times))
	for col, t := range times {
		for _, e := range c.Entries(t) {
			name := gate.TrimName(e.Transformer.Name())
			for pos, q := range e.Indices {
				label := name
				if len(e.Indices) > 1 {
					label = fmt.Sprintf("%s.%d", name, pos)
				}
				cells[q][col] = label
				widths[col] = max(widths[col], lipgloss.Width(label))
			}
		}
	}

	var sb strings.Builder
	labelW := len(strconv.Itoa(c.Inputs()-1)) + 1
	for q, row := range cells {
		sb.WriteString(qubitLabelStyle.Render(fmt.Sprintf("q%-*d", labelW, q)))
		sb.WriteString(" ─")
		for col, cell := range row {
			w := widths[col] + 2
			if cell == "" {
				sb.WriteString(strings.Repeat("─", w+2))
				continue
			}
			pad := w - lipgloss.Width(cell)
			sb.WriteString("┤" + strings.Repeat(" ", pad/2) + gateStyle.Render(cell) + strings.Repeat(" ", pad-pad/2) + "├")
		}
		sb.WriteString("─")
		if q < len(cells)-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
