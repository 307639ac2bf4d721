// Package distance computes the total distance between two columns of
// fixed-width 5-digit integers.
//
// Values live in the bounded domain [Min, Max], so instead of sorting each
// column the package counts occurrences per value (a Histogram of two
// Tables) and pairs same-rank values with a two-pointer Sweep over the
// counts. The result equals sorting both columns and summing |a-b| at
// matching ranks, which SortedDistance does directly.
package distance
