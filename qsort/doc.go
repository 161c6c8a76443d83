// Package qsort implements the in-place recursive partition sort engine
// of the qsapp target.
//
// The algorithm is a deliberately plain Lomuto quicksort: the pivot is
// always the final element of the range and equal elements land on the
// low side of the pivot boundary. Already-sorted and descending inputs
// therefore hit the O(n^2) worst case. That behavior is part of the
// observable contract — host-side harnesses assert on exact comparison
// and swap counts — and must not be "improved" with a smarter pivot.
//
// The comparison and exchange primitives are kept as distinct,
// non-inlined call sites so an external observer can halt on them and
// inspect intermediate array states at any recursion depth.
package qsort
