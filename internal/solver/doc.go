// Package solver advances the coupled surface/deep system by one implicit
// step.
//
// Each step solves
//
//	Ms*T' = Rs + Up∘Td'     (surface layer)
//	Md*Td' = Rd + Down∘T'   (deep layer)
//
// where Ms and Md are tridiagonal and Up, Down are pointwise coupling
// coefficients. Both implementations eliminate the deep unknown first,
// solve for the surface temperature, then back-substitute:
//
//   - [Banded]: block Thomas sweep over interleaved (T_i, Td_i) pairs, O(n)
//   - [Dense]: explicit Md inverse and Schur complement with gonum, O(n^3)
//
// [Banded] is the default. [Dense] is the reference used in tests and
// benchmarks.
package solver
