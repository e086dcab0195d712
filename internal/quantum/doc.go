// Package quantum provides the shared primitives of the orbital core.
//
// The package defines the quantum state and the error taxonomy used by every
// numeric package:
//
//   - [State]: hydrogen quantum numbers (n, l, m)
//   - [Basis]: complex spherical harmonics or their real orthonormal combinations
//   - [StateError]: domain error carrying the offending state
//
// # Example
//
//	s, err := quantum.New(2, 1, -1)
//	if err != nil {
//	    // errors.Is(err, quantum.ErrInvalidState)
//	}
//
// # Thread Safety
//
// All values are immutable and safe to share between goroutines.
package quantum
