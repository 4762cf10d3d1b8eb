// Package diagnostics computes deterministic summary metrics over chromatic
// and spectral tensors and over dream-cycle histories.
//
// Every metric is a pure function of its inputs. Snapshots of the metrics can
// be compared across runs with ValidateDeterminism, which compares canonical
// float bits: all NaN payloads are equal to each other and -0 equals +0, but
// no tolerance is applied otherwise.
package diagnostics
