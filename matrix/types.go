// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by Dense and Coo.
package matrix

// Entry is one coordinate triplet (Row, Col, Value) of a sparse matrix.
type Entry struct {
	Row   int     // zero-based row index
	Col   int     // zero-based column index
	Value float64 // stored value; duplicates of (Row,Col) add up
}

// pairKey is an ordered (row, col) pair used to merge duplicate entries.
// Complexity: O(1) to build; used in O(nnz) scans during Compact.
type pairKey struct {
	r int // row index
	c int // column index
}

// Shaped is anything with a row and column count: Dense, Coo.
type Shaped interface {
	Rows() int
	Cols() int
}
