// SPDX-License-Identifier: MIT

// Package distance provides the read-only input model of the Maximum
// Diversity Problem: n elements, a symmetric non-negative pairwise distance
// matrix with a zero diagonal, and the target selection size k.
//
// What:
//   - Model: immutable n×n distances plus k; safe for concurrent readers.
//   - Constructors: NewFromPairs (sparse triples), NewFromRows (dense rows),
//     NewFromSymmetric (any gonum mat.Symmetric).
//   - I/O: Parse / Load / Write for the MDPLIB "n k" + "i j d" text format.
//   - Generators: GKD-, MDG- and SOM-style random instances.
//
// Numeric policy:
//   - NaN/±Inf and negative entries are rejected (ErrNaNInf, ErrNegativeDistance).
//   - Diagonal and symmetry are checked within eps (WithEpsilon, default 1e-9);
//     WithSymmetrize averages asymmetric dense input instead of rejecting it.
//
// Errors are package sentinels (see errors.go), matched with errors.Is.
package distance
