// SPDX-License-Identifier: MIT

// Package circuit - the Circuit type and its timeline.
//
// Purpose:
//   - Hold the (time -> entries) schedule with validated, immutable entries.
//   - Keep every mutation behind one mutex and drop the cached operator on change.
//   - Stamp every mutation with a process-wide generation so a parent notices
//     edits made to a nested circuit after it was appended.
//
// AI-Hints:
//   - Append validates in order: cycle, arity, range, duplicates, same-step overlap.
//   - AppendAll stages a copy of the timeline so a failing entry adds nothing.
//   - Times() is the only ordering used anywhere; map iteration never leaks out.

package circuit

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/matrix"
)

// MaxInputs is the widest circuit New accepts; 2^MaxInputs still fits an int.
const MaxInputs = 62

// generation orders mutations across every circuit.
var generation atomic.Uint64

// Entry is one transformer scheduled on the given qubits.
type Entry struct {
	Transformer gate.Transformer
	Indices     []int
}

// Scheduled is an Entry with its time step, the unit of AppendAll.
type Scheduled struct {
	Transformer gate.Transformer
	Time        int
	Indices     []int
}

// Circuit is a named timeline of transformers over a fixed qubit count.
// The zero value is not usable; build circuits with New.
type Circuit struct {
	name    string
	inputs  int
	outputs int
	log     zerolog.Logger
	mopts   []matrix.Option

	mu       sync.Mutex
	timeline map[int][]Entry
	total    *matrix.Matrix // cached operator, nil when stale
	version  uint64         // generation of the last mutation
	stamp    uint64         // revision the cached operator was built at
}

var _ gate.Transformer = (*Circuit)(nil)

// New returns an empty circuit over inputs qubits.
//
// Errors:
//   - ErrInvalidQubitCount if inputs < 1.
//   - ErrTooManyQubits if inputs exceeds WithQubitLimit or MaxInputs.
func New(name string, inputs int, opts ...Option) (*Circuit, error) {
	if inputs < 1 {
		return nil, fmt.Errorf("New(%s, %d): %w", name, inputs, ErrInvalidQubitCount)
	}
	if inputs > MaxInputs {
		return nil, fmt.Errorf("New(%s): %d qubits, limit %d: %w", name, inputs, MaxInputs, ErrTooManyQubits)
	}
	o := gatherOptions(opts...)
	if o.limit > 0 && inputs > o.limit {
		return nil, fmt.Errorf("New(%s): %d qubits, limit %d: %w", name, inputs, o.limit, ErrTooManyQubits)
	}
	outputs := o.outputs
	if outputs == 0 {
		outputs = inputs
	}

	return &Circuit{
		name:     name,
		inputs:   inputs,
		outputs:  outputs,
		log:      o.logger.With().Str("component", "circuit").Str("circuit", name).Logger(),
		mopts:    o.mopts,
		timeline: make(map[int][]Entry),
	}, nil
}

// Name returns the circuit name.
func (c *Circuit) Name() string { return c.name }

// Inputs returns the number of qubits.
func (c *Circuit) Inputs() int { return c.inputs }

// Outputs returns the number of output qubits (Inputs unless overridden).
func (c *Circuit) Outputs() int { return c.outputs }

// Matrix returns a copy of the total operator; see TotalMatrix.
func (c *Circuit) Matrix() *matrix.Matrix { return c.TotalMatrix() }

// Append schedules t on indices at the given time step. Entries at one time
// step keep their insertion order.
//
// Errors:
//   - gate.ErrNilTransformer, ErrCyclicCircuit.
//   - ErrArityMismatch when len(indices) != t.Inputs() or t.Inputs() < 1.
//   - ErrDimensionMismatch when t.Matrix() is not 2^Inputs() square.
//   - ErrIndexOutOfRange for an index outside [0, Inputs()).
//   - ErrOverlappingIndices for a repeated index or a qubit already used at time.
func (c *Circuit) Append(t gate.Transformer, time int, indices ...int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.add(c.timeline, t, time, indices); err != nil {
		return err
	}
	c.invalidate("append", time, indices)

	return nil
}

// AppendAll schedules every entry or none of them.
//
// Errors:
//   - The first Append error, wrapped with the position of the failing entry.
func (c *Circuit) AppendAll(entries ...Scheduled) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	staged := make(map[int][]Entry, len(c.timeline))
	for t, list := range c.timeline {
		staged[t] = slices.Clone(list)
	}
	for i, e := range entries {
		if err := c.add(staged, e.Transformer, e.Time, e.Indices); err != nil {
			return fmt.Errorf("AppendAll: entry %d: %w", i, err)
		}
	}
	c.timeline = staged
	if len(entries) > 0 {
		c.invalidate("append-all", entries[0].Time, entries[0].Indices)
	}

	return nil
}

// add validates one entry and appends it to tl. Caller holds c.mu.
func (c *Circuit) add(tl map[int][]Entry, t gate.Transformer, time int, indices []int) error {
	if t == nil {
		return fmt.Errorf("Append(t=%d): %w", time, gate.ErrNilTransformer)
	}
	if sub, ok := t.(*Circuit); ok && sub.reaches(c) {
		return fmt.Errorf("Append(%s into %s): %w", sub.name, c.name, ErrCyclicCircuit)
	}
	if t.Inputs() < 1 || t.Inputs() > c.inputs || len(indices) != t.Inputs() {
		return fmt.Errorf("Append(%s, t=%d): %d indices for %d inputs on %d qubits: %w",
			t.Name(), time, len(indices), t.Inputs(), c.inputs, ErrArityMismatch)
	}
	if _, nested := t.(*Circuit); !nested {
		side := 1 << t.Inputs()
		if m := t.Matrix(); m == nil || m.Rows() != side || m.Cols() != side {
			return fmt.Errorf("Append(%s, t=%d): matrix does not span %d inputs: %w",
				t.Name(), time, t.Inputs(), ErrDimensionMismatch)
		}
	}
	for _, idx := range indices {
		if idx < 0 || idx >= c.inputs {
			return fmt.Errorf("Append(%s, t=%d): index %d, %d qubits: %w", t.Name(), time, idx, c.inputs, ErrIndexOutOfRange)
		}
	}

	incoming := mapset.NewThreadUnsafeSet(indices...)
	if incoming.Cardinality() != len(indices) {
		return fmt.Errorf("Append(%s, t=%d): repeated index in %v: %w", t.Name(), time, indices, ErrOverlappingIndices)
	}
	used := mapset.NewThreadUnsafeSet[int]()
	for _, e := range tl[time] {
		used.Append(e.Indices...)
	}
	if shared := used.Intersect(incoming); shared.Cardinality() > 0 {
		qs := shared.ToSlice()
		slices.Sort(qs)
		return fmt.Errorf("Append(%s, t=%d): qubits %v already in use: %w", t.Name(), time, qs, ErrOverlappingIndices)
	}

	tl[time] = append(tl[time], Entry{Transformer: t, Indices: slices.Clone(indices)})

	return nil
}

// reaches reports whether target is c or is nested anywhere inside c.
func (c *Circuit) reaches(target *Circuit) bool {
	if c == target {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, list := range c.timeline {
		for _, e := range list {
			if sub, ok := e.Transformer.(*Circuit); ok && sub.reaches(target) {
				return true
			}
		}
	}
	return false
}

// invalidate drops the cached operator. Caller holds c.mu.
func (c *Circuit) invalidate(op string, time int, indices []int) {
	c.total = nil
	c.version = generation.Add(1)
	c.log.Debug().Str("op", op).Int("time", time).Ints("indices", indices).Msg("cache invalidated")
}

// revision returns the newest mutation generation of c and of every circuit
// nested in it. Caller holds c.mu.
func (c *Circuit) revision() uint64 {
	rev := c.version
	for _, list := range c.timeline {
		for _, e := range list {
			if sub, ok := e.Transformer.(*Circuit); ok {
				sub.mu.Lock()
				rev = max(rev, sub.revision())
				sub.mu.Unlock()
			}
		}
	}
	return rev
}

// Remove deletes the entry at position pos of time step time. A time step
// left without entries disappears from the timeline.
//
// Errors:
//   - ErrIndexOutOfRange when the step or the position does not exist.
func (c *Circuit) Remove(time, pos int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, ok := c.timeline[time]
	if !ok || pos < 0 || pos >= len(list) {
		return fmt.Errorf("Remove(t=%d, pos=%d): %w", time, pos, ErrIndexOutOfRange)
	}
	removed := list[pos]
	list = slices.Delete(slices.Clone(list), pos, pos+1)
	if len(list) == 0 {
		delete(c.timeline, time)
	} else {
		c.timeline[time] = list
	}
	c.invalidate("remove", time, removed.Indices)

	return nil
}

// ClearQubit removes every entry that touches qubit index and returns how
// many entries were dropped.
//
// Errors:
//   - ErrIndexOutOfRange for an index outside [0, Inputs()).
func (c *Circuit) ClearQubit(index int) (int, error) {
	if index < 0 || index >= c.inputs {
		return 0, fmt.Errorf("ClearQubit(%d): %w", index, ErrIndexOutOfRange)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for t, list := range c.timeline {
		kept := slices.DeleteFunc(slices.Clone(list), func(e Entry) bool {
			return slices.Contains(e.Indices, index)
		})
		dropped += len(list) - len(kept)
		if len(kept) == 0 {
			delete(c.timeline, t)
		} else {
			c.timeline[t] = kept
		}
	}
	if dropped > 0 {
		c.invalidate("clear-qubit", -1, []int{index})
	}

	return dropped, nil
}

// Times returns the occupied time steps in ascending order.
func (c *Circuit) Times() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.times()
}

func (c *Circuit) times() []int {
	ts := make([]int, 0, len(c.timeline))
	for t := range c.timeline {
		ts = append(ts, t)
	}
	slices.Sort(ts)
	return ts
}

// Entries returns a copy of the entries scheduled at time, in insertion order.
func (c *Circuit) Entries(time int) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneEntries(c.timeline[time])
}

func cloneEntries(list []Entry) []Entry {
	if len(list) == 0 {
		return nil
	}
	out := make([]Entry, len(list))
	for i, e := range list {
		out[i] = Entry{Transformer: e.Transformer, Indices: slices.Clone(e.Indices)}
	}
	return out
}

// Steps returns the number of occupied time steps.
func (c *Circuit) Steps() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timeline)
}

// GateCount returns the number of scheduled entries. A nested circuit counts once.
func (c *Circuit) GateCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, list := range c.timeline {
		n += len(list)
	}
	return n
}

// snapshot returns the timeline as (time, entries) pairs in time order.
func (c *Circuit) snapshot() ([]int, [][]Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ts := c.times()
	steps := make([][]Entry, len(ts))
	for i, t := range ts {
		steps[i] = cloneEntries(c.timeline[t])
	}
	return ts, steps
}

// String lists the timeline, one time step per line:
//
//	|name| (inputs: 2, outputs: 2):
//		0: |H|[0], |X|[1]
func (c *Circuit) String() string {
	ts, steps := c.snapshot()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (inputs: %d, outputs: %d):\n", c.name, c.inputs, c.outputs)
	for i, t := range ts {
		fmt.Fprintf(&sb, "\t%d: ", t)
		for k, e := range steps[i] {
			if k > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s%v", e.Transformer.Name(), e.Indices)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
