// SPDX-License-Identifier: MIT

package analyzer

import "errors"

// ErrTooWide is returned by TruthTable for transformers wider than MaxTruthTableInputs.
var ErrTooWide = errors.New("analyzer: transformer too wide for a truth table")
