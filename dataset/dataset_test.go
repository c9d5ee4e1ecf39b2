package dataset

import (
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// CONSTRUCTION
// ============================================================================

func TestNewNormalizesCells(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	ds, err := New([]string{"a", "b", "c", "d", "e"}, [][]any{
		{int32(1), float32(2.5), []byte("x"), uint16(7), ts},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), ds.Value(0, "a"))
	assert.Equal(t, 2.5, ds.Value(0, "b"))
	assert.Equal(t, "x", ds.Value(0, "c"))
	assert.Equal(t, int64(7), ds.Value(0, "d"))
	assert.Equal(t, ts, ds.Value(0, "e"))
}

func TestNormalizePointersAndNullTypes(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	yes, f, n := true, 2.5, int64(4)
	var nilTime *time.Time

	cases := []struct {
		in   any
		want any
	}{
		{&yes, true},
		{&ts, ts},
		{&f, 2.5},
		{&n, int64(4)},
		{nilTime, nil},
		{(*string)(nil), nil},
		{sql.NullFloat64{Float64: 1.5, Valid: true}, 1.5},
		{sql.NullFloat64{}, nil},
		{sql.NullString{String: "x", Valid: true}, "x"},
		{sql.NullInt32{Int32: 3, Valid: true}, int64(3)},
		{sql.NullTime{Time: ts, Valid: true}, ts},
		{&sql.NullBool{Bool: true, Valid: true}, true},
		{(*sql.NullInt64)(nil), nil},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in), "%T", c.in)
	}

	assert.True(t, IsMissing(Normalize(sql.NullFloat64{})))
	assert.Equal(t, "2s", Normalize(2*time.Second))
}

func TestNewRejectsBadShape(t *testing.T) {
	_, err := New([]string{"a", "a"}, nil)
	require.Error(t, err)

	_, err = New([]string{"a", "b"}, [][]any{{1}})
	require.Error(t, err)
}

func TestFromColumnsKeepsOrder(t *testing.T) {
	ds, err := FromColumns([]string{"y", "x"}, map[string][]any{
		"x": {1, 2},
		"y": {"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, ds.Columns())
	assert.Equal(t, []any{"b", int64(2)}, ds.Row(1))

	_, err = FromColumns([]string{"x", "y"}, map[string][]any{"x": {1}, "y": {1, 2}})
	require.Error(t, err)
}

// ============================================================================
// COLUMN SET
// ============================================================================

func TestRequireListsMissingColumns(t *testing.T) {
	ds := MustNew([]string{"a"}, nil)

	require.NoError(t, ds.Require("a"))

	err := ds.Require("a", "b", "c")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrColumnNotFound))

	var cnf *ColumnNotFoundError
	require.True(t, errors.As(err, &cnf))
	assert.Equal(t, []string{"b", "c"}, cnf.Columns)
	assert.Equal(t, "columns 'b', 'c' not found in data frame", err.Error())

	assert.Equal(t, "column 'z' not found in data frame", ds.Require("z").Error())
}

func TestSelectProjectsInRequestedOrder(t *testing.T) {
	ds := MustNew([]string{"a", "b", "c"}, [][]any{{1, 2, 3}, {4, 5, 6}})

	got, err := ds.Select([]string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, got.Columns())
	if diff := cmp.Diff([]any{int64(6), int64(4)}, got.Row(1)); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}

	_, err = ds.Select([]string{"a", "nope"})
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

// ============================================================================
// MISSING VALUES
// ============================================================================

func TestDropMissing(t *testing.T) {
	ds := MustNew([]string{"x", "y"}, [][]any{
		{1.0, 2.0},
		{math.NaN(), 3.0},
		{4.0, nil},
		{5.0, 6.0},
	})

	vx, err := ds.DropMissing("x")
	require.NoError(t, err)
	assert.Equal(t, 3, vx.Len())

	vxy, err := ds.DropMissing("x", "y")
	require.NoError(t, err)
	assert.Equal(t, 2, vxy.Len())

	xs, err := vxy.Floats("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 5}, xs)

	_, err = ds.DropMissing("q")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestFloatsRejectsText(t *testing.T) {
	ds := MustNew([]string{"x"}, [][]any{{1}, {"two"}, {true}})

	_, err := ds.All().Floats("x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotNumeric)

	var nn *NotNumericError
	require.True(t, errors.As(err, &nn))
	assert.Equal(t, 1, nn.Row)
	assert.Equal(t, "two", nn.Value)
}

func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(nil))
	assert.True(t, IsMissing(math.NaN()))
	assert.False(t, IsMissing(0.0))
	assert.False(t, IsMissing(""))
	assert.False(t, IsMissing(int64(0)))
}
