// Package measure extracts classical information from an amplitude vector.
//
// A Measurer wraps one row or column of 2^n amplitudes. Basis state k is
// labelled by its n-bit binary string, most significant bit first, so
// character i of a key is the outcome of qubit i of the register.
//
// ProbabilisticMap turns amplitudes into outcome probabilities and removes
// floating-point ghosts: a certain outcome short-circuits the map, values
// within 1e-12 of 0 or 1 are snapped. The MostProbable* family picks the
// maximum of that map; exact ties are broken with the configured
// qubit.Source over the keys in sorted order, so a seeded source gives
// reproducible results. Per-qubit states carry marginal probabilities.
//
// EntangledQubits is a diagnostic reduction of a (possibly entangled) state
// to one qubit per position; it is not a partial trace.
package measure
