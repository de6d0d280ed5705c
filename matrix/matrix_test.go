// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlopt/matrix"
)

func TestNewDense_Shape(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	r, c := m.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
}

func TestDense_AtSet(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 0, 4.5))
	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 4.5, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)

	relaxed, err := matrix.NewDense(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	assert.NoError(t, relaxed.Set(0, 0, math.Inf(1)))
}

func TestDense_String(t *testing.T) {
	m, _ := matrix.NewDense(1, 2)
	require.NoError(t, m.Set(0, 1, 9))
	assert.Equal(t, "[0, 9]\n", m.String())
}

func TestCoo_AppendValidation(t *testing.T) {
	_, err := matrix.NewCoo(-1, 2)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	m, err := matrix.NewCoo(2, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Append(2, 0, 1), matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Append(0, 0, math.Inf(-1)), matrix.ErrNaNInf)
	assert.Zero(t, m.Len())

	empty, err := matrix.NewCoo(0, 3)
	require.NoError(t, err)
	assert.ErrorIs(t, empty.Append(0, 0, 1), matrix.ErrOutOfRange)
}

func TestCoo_Compact(t *testing.T) {
	m, err := matrix.NewCoo(3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Append(2, 1, 1))
	require.NoError(t, m.Append(0, 0, 3))
	require.NoError(t, m.Append(2, 1, 4))
	require.NoError(t, m.Append(0, 2, -1))
	require.NoError(t, m.Append(0, 2, 1))
	require.Equal(t, 5, m.Len())

	m.Compact()
	assert.Equal(t, []matrix.Entry{
		{Row: 0, Col: 0, Value: 3},
		{Row: 0, Col: 2, Value: 0},
		{Row: 2, Col: 1, Value: 5},
	}, m.Entries())

	dz, _ := matrix.NewCoo(3, 3, matrix.WithDropZeros())
	for _, e := range []matrix.Entry{{Row: 0, Col: 2, Value: -1}, {Row: 0, Col: 2, Value: 1}, {Row: 1, Col: 1, Value: 2}} {
		require.NoError(t, dz.Append(e.Row, e.Col, e.Value))
	}
	dz.Compact()
	assert.Equal(t, []matrix.Entry{{Row: 1, Col: 1, Value: 2}}, dz.Entries())
}

func TestCoo_AddScaled(t *testing.T) {
	a, _ := matrix.NewCoo(2, 2)
	b, _ := matrix.NewCoo(2, 2)
	require.NoError(t, a.Append(0, 0, 3))
	require.NoError(t, b.Append(0, 0, 2))
	require.NoError(t, b.Append(1, 1, 1))

	require.NoError(t, a.AddScaled(b, 4))
	a.Compact()
	assert.Equal(t, []matrix.Entry{{Row: 0, Col: 0, Value: 11}, {Row: 1, Col: 1, Value: 4}}, a.Entries())

	c, _ := matrix.NewCoo(2, 3)
	assert.ErrorIs(t, a.AddScaled(c, 1), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, a.AddScaled(nil, 1), matrix.ErrNilMatrix)
}

func TestCoo_DenseExports(t *testing.T) {
	m, _ := matrix.NewCoo(2, 2)
	require.NoError(t, m.Append(0, 0, -7))
	require.NoError(t, m.Append(0, 1, 10))

	d, err := m.ToDense()
	require.NoError(t, err)
	assert.Equal(t, "[-7, 10]\n[0, 0]\n", d.String())

	s, err := m.SymmetricDense()
	require.NoError(t, err)
	assert.Equal(t, "[-7, 10]\n[10, 0]\n", s.String())

	rect, _ := matrix.NewCoo(1, 2)
	_, err = rect.SymmetricDense()
	assert.ErrorIs(t, err, matrix.ErrNonSquare)

	empty, _ := matrix.NewCoo(0, 2)
	_, err = empty.ToDense()
	assert.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestCoo_MulVecAndAt(t *testing.T) {
	m, _ := matrix.NewCoo(2, 3)
	require.NoError(t, m.Append(0, 0, 1))
	require.NoError(t, m.Append(0, 2, 2))
	require.NoError(t, m.Append(1, 1, 3))
	require.NoError(t, m.Append(1, 1, 1))

	y, err := m.MulVec([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 8}, y)

	_, err = m.MulVec([]float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	v, err := m.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
}

func TestCoo_CloneAndReset(t *testing.T) {
	m, _ := matrix.NewCoo(1, 1)
	require.NoError(t, m.Append(0, 0, 1))
	cl := m.Clone()
	m.Reset()

	assert.Zero(t, m.Len())
	assert.Equal(t, 1, cl.Len())
}

func TestOptions_Defaults(t *testing.T) {
	o := matrix.NewMatrixOptions()
	assert.Equal(t, matrix.DefaultEpsilon, o.Epsilon())
	assert.Equal(t, matrix.DefaultValidateNaNInf, o.ValidatesNaNInf())
	assert.Equal(t, matrix.DefaultDropZeros, o.DropsZeros())

	o = matrix.NewMatrixOptions(matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf(), matrix.WithEpsilon(0.1))
	assert.True(t, o.ValidatesNaNInf())
	assert.Equal(t, 0.1, o.Epsilon())

	assert.Panics(t, func() { matrix.WithEpsilon(-1) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
}
