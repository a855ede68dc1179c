// SPDX-License-Identifier: MIT

package measure

import "github.com/katalvlaran/qsim/qubit"

// Option configures a Measurer.
type Option func(*Measurer)

// WithSource sets the randomness used to break ties between equally likely
// outcomes. A nil source selects the process-global generator.
func WithSource(src qubit.Source) Option {
	return func(m *Measurer) { m.src = src }
}
