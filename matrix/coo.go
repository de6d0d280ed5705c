// SPDX-License-Identifier: MIT

// Package matrix - Coo: coordinate (triplet) sparse storage.
//
// Purpose:
//   - Hold Jacobian and Hessian entries produced by evaluation without
//     committing to a dense layout.
//   - Allow duplicate coordinates while building; Compact merges them by
//     summation into row-major order.
//   - Export to Dense, either as stored or mirrored from an upper triangle.
//
// Complexity quicksheet:
//   - Append: amortized O(1); Compact: O(nnz log nnz); ToDense: O(r*c + nnz);
//     MulVec: O(nnz); At: O(nnz).

package matrix

import (
	"fmt"
	"math"
	"sort"
)

const (
	ctxAppend    = "Append"
	ctxAddScaled = "AddScaled"
	ctxToDense   = "ToDense"
	ctxSymDense  = "SymmetricDense"
)

// cooErrorf wraps an error with a uniform Coo context.
func cooErrorf(method string, err error) error {
	return fmt.Errorf("Coo.%s: %w", method, err)
}

// Coo is a rows×cols sparse matrix in coordinate format.
// Zero-sized shapes are valid (e.g. the Jacobian of a problem without constraints).
type Coo struct {
	r, c    int     // shape (>= 0)
	entries []Entry // insertion order until Compact
	opts    Options // numeric policy captured at construction
}

// NewCoo creates an empty rows×cols coordinate matrix.
// Returns ErrBadShape for negative dimensions.
// Complexity: O(1).
func NewCoo(rows, cols int, opts ...Option) (*Coo, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewCoo(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Coo{r: rows, c: cols, opts: gatherOptions(opts...)}, nil
}

// Rows returns the number of rows.
func (m *Coo) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Coo) Cols() int { return m.c }

// Len returns the number of stored entries, duplicates included.
func (m *Coo) Len() int { return len(m.entries) }

// Append stores (row, col, v). Duplicates are kept until Compact.
// Returns ErrOutOfRange for bad indices and ErrNaNInf when the policy rejects v.
// Complexity: amortized O(1).
func (m *Coo) Append(row, col int, v float64) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return cooErrorf(ctxAppend, fmt.Errorf("(%d,%d): %w", row, col, ErrOutOfRange))
	}
	if m.opts.validateNaNInf && isNonFinite(v) {
		return cooErrorf(ctxAppend, fmt.Errorf("(%d,%d): %w", row, col, ErrNaNInf))
	}
	m.entries = append(m.entries, Entry{Row: row, Col: col, Value: v})

	return nil
}

// Entries returns a copy of the stored triplets in their current order.
func (m *Coo) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)

	return out
}

// Reset removes every entry and keeps the allocated capacity.
func (m *Coo) Reset() { m.entries = m.entries[:0] }

// Clone returns a deep copy with the same shape and policy.
func (m *Coo) Clone() *Coo {
	return &Coo{r: m.r, c: m.c, entries: m.Entries(), opts: m.opts}
}

// At returns the sum of all entries stored at (row, col).
// Complexity: O(nnz).
func (m *Coo) At(row, col int) (float64, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, cooErrorf(ctxAt, fmt.Errorf("(%d,%d): %w", row, col, ErrOutOfRange))
	}
	s := 0.0
	for _, e := range m.entries {
		if e.Row == row && e.Col == col {
			s += e.Value
		}
	}

	return s, nil
}

// Compact merges duplicate coordinates by summation and sorts entries by
// (row, col). With WithDropZeros, merged entries with |v| ≤ eps are removed.
//
// Implementation:
//   - Stage 1: accumulate values per coordinate, remembering first-seen keys.
//   - Stage 2: sort keys row-major.
//   - Stage 3: rebuild the entry slice in place.
//
// Complexity: O(nnz log nnz) time, O(nnz) space.
func (m *Coo) Compact() {
	// 1) Accumulate.
	sums := make(map[pairKey]float64, len(m.entries))
	keys := make([]pairKey, 0, len(m.entries))
	for _, e := range m.entries {
		k := pairKey{r: e.Row, c: e.Col}
		if _, seen := sums[k]; !seen {
			keys = append(keys, k)
		}
		sums[k] += e.Value
	}

	// 2) Deterministic row-major order.
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].r != keys[b].r {
			return keys[a].r < keys[b].r
		}
		return keys[a].c < keys[b].c
	})

	// 3) Rebuild.
	m.entries = m.entries[:0]
	for _, k := range keys {
		v := sums[k]
		if m.opts.dropZeros && math.Abs(v) <= m.opts.eps {
			continue
		}
		m.entries = append(m.entries, Entry{Row: k.r, Col: k.c, Value: v})
	}
}

// AddScaled appends alpha·other to m without merging.
// Returns ErrNilMatrix or ErrDimensionMismatch on bad operands.
// Complexity: O(nnz(other)).
func (m *Coo) AddScaled(other *Coo, alpha float64) error {
	if other == nil {
		return cooErrorf(ctxAddScaled, ErrNilMatrix)
	}
	if err := ValidateSameShape(m, other); err != nil {
		return cooErrorf(ctxAddScaled, err)
	}
	for _, e := range other.entries {
		m.entries = append(m.entries, Entry{Row: e.Row, Col: e.Col, Value: alpha * e.Value})
	}

	return nil
}

// ToDense materializes the stored entries, summing duplicates.
// Returns ErrBadShape for zero-sized matrices.
// Complexity: O(r*c + nnz).
func (m *Coo) ToDense() (*Dense, error) {
	d, err := m.newDense(ctxToDense)
	if err != nil {
		return nil, err
	}
	for _, e := range m.entries {
		d.add(e.Row, e.Col, e.Value)
	}

	return d, nil
}

// SymmetricDense materializes a symmetric matrix from a triangular store:
// every off-diagonal entry (i,j) also contributes to (j,i).
// Returns ErrNonSquare for non-square shapes.
// Complexity: O(n² + nnz).
func (m *Coo) SymmetricDense() (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, cooErrorf(ctxSymDense, err)
	}
	d, err := m.newDense(ctxSymDense)
	if err != nil {
		return nil, err
	}
	for _, e := range m.entries {
		d.add(e.Row, e.Col, e.Value)
		if e.Row != e.Col {
			d.add(e.Col, e.Row, e.Value)
		}
	}

	return d, nil
}

// MulVec returns y = M·x using the stored entries (duplicates add up).
// Complexity: O(nnz + r).
func (m *Coo) MulVec(x []float64) ([]float64, error) {
	if err := ValidateVecLen(x, m.c); err != nil {
		return nil, cooErrorf(ctxMulVec, err)
	}
	y := make([]float64, m.r)
	for _, e := range m.entries {
		y[e.Row] += e.Value * x[e.Col]
	}

	return y, nil
}

func (m *Coo) newDense(method string) (*Dense, error) {
	d, err := NewDense(m.r, m.c, func(o *Options) { *o = m.opts })
	if err != nil {
		return nil, cooErrorf(method, err)
	}

	return d, nil
}
