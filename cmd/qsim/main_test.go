package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command line and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("QSIM_LOG_LEVEL", "error")
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"qsim"}, args...))
	return stdout.String(), err
}

func TestDemo_List(t *testing.T) {
	out, err := run(t, "demo")
	require.NoError(t, err)
	for _, name := range demoNames() {
		assert.Contains(t, out, name)
	}
}

func TestDemo_Grover7(t *testing.T) {
	out, err := run(t, "demo", "grover7")
	require.NoError(t, err)
	assert.Contains(t, out, "|Grover-4 Oracle-7|")
	assert.Contains(t, out, "|01110>")
	assert.Contains(t, out, "marked value 7")
}

func TestDemo_Answers(t *testing.T) {
	out, err := run(t, "demo", "incrementer5")
	require.NoError(t, err)
	assert.Contains(t, out, "most probable: 14 (01110)")

	out, err = run(t, "demo", "adder2")
	require.NoError(t, err)
	assert.Contains(t, out, "sum 5")

	_, err = run(t, "demo", "shor")
	require.Error(t, err)
}

func TestDemo_ExportThenRun(t *testing.T) {
	for _, format := range []string{"json", "yaml", "msgpack"} {
		data, err := run(t, "demo", "qft4", "--export", format)
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "qft4."+format)
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		out, err := run(t, "run", "--circuit", path, "--input", "0")
		require.NoError(t, err, format)
		assert.GreaterOrEqual(t, strings.Count(out, "0.0625"), 16, format)

		out, err = run(t, "show", "--circuit", path)
		require.NoError(t, err)
		assert.Contains(t, out, "QuFT-4")
		assert.Contains(t, out, "Flip-4.3")
	}
}

func TestRun_Errors(t *testing.T) {
	_, err := run(t, "run")
	require.Error(t, err)

	_, err = run(t, "run", "--circuit", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	data, err := run(t, "demo", "teleport", "--export", "json")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tel.txt")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	_, err = run(t, "run", "--circuit", path)
	require.Error(t, err) // no usable extension
	_, err = run(t, "run", "--circuit", path, "--format", "json", "--input", "8")
	require.Error(t, err) // 4 bits on 3 qubits
	out, err := run(t, "run", "--circuit", path, "--format", "json", "--input", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "|TEL|")
}

func TestTruth(t *testing.T) {
	out, err := run(t, "truth", "cnot")
	require.NoError(t, err)
	assert.Contains(t, out, "|C-NOT|")
	assert.Equal(t, 4, strings.Count(out, "1.0000"))

	_, err = run(t, "truth", "nope")
	require.Error(t, err)
	_, err = run(t, "truth")
	require.Error(t, err)
}

func TestDrawCircuit(t *testing.T) {
	c, _, err := demos["teleport"].build()
	require.NoError(t, err)
	lines := strings.Split(drawCircuit(c), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "q0")
	assert.Contains(t, lines[1], "C-NOT.0")
	assert.Contains(t, lines[2], "C-NOT.1")
}
