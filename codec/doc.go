// Package codec reads and writes circuits in a self-contained document format.
//
// A Document holds the circuit header (name, inputs, outputs), its timeline
// and a dictionary of every distinct leaf transformer with its full matrix:
//
//	{
//	  "name": "|Grover-4 Oracle-7|", "inputs": 5, "outputs": 5,
//	  "timeline": [
//	    {"name": "|H|", "indices": [0], "time": 0},
//	    {"name": "|Oracle-7|", "inputs": 5, "outputs": 5,
//	     "implementation": {"name": "|Oracle-7|", "inputs": 5, "outputs": 5, "timeline": [...]},
//	     "indices": [0, 1, 2, 3, 4], "time": 1}
//	  ],
//	  "transformers": [
//	    {"name": "|H|", "inputs": 1, "outputs": 1,
//	     "matrix": {"rows": 2, "columns": 2, "contents": [{"re": 0.7071067811865474617, "im": 0}, ...]}}
//	  ]
//	}
//
// Nested circuits are written inline as an "implementation" without their
// own dictionary; every leaf anywhere in the tree is resolved by name against
// the top-level "transformers". Decoding never needs a built-in gate registry:
// leaves come back as gate.Universal gates carrying the stored matrix.
//
// Three encodings share the Document model:
//
//   - JSON (encoding/json), amplitudes written with 19 significant digits
//   - YAML (gopkg.in/yaml.v3), amplitudes as flow mappings
//   - MessagePack (github.com/vmihailenco/msgpack/v5), compact binary
//
// Decoding reports a *FieldError naming the offending field path, such as
// "timeline[3].indices", wrapping one of ErrMissingField, ErrUnknownTransformer,
// ErrMatrixShape or the circuit validation error that rejected the entry.
package codec
