package helpers

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/statboard/dataset"
)

// ============================================================================
// CSV HELPER TESTS
// ============================================================================

var housingCSV = []byte("\ufeffCity, Rooms,Price,Listed\n" +
	"Oslo,3,450000.5,true\n" +
	"Bergen,NA,320000,false\n" +
	"broken,row\n" +
	"Trondheim,2,,TRUE\n")

func TestParseCSV(t *testing.T) {
	ds, err := ParseCSV(housingCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"City", "Rooms", "Price", "Listed"}, ds.Columns())
	require.Equal(t, 3, ds.Len())

	want := [][]any{
		{"Oslo", int64(3), 450000.5, true},
		{"Bergen", nil, int64(320000), false},
		{"Trondheim", int64(2), nil, true},
	}
	for i, row := range want {
		if diff := cmp.Diff(row, ds.Row(i)); diff != "" {
			t.Errorf("row %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestParseCSVNoHeader(t *testing.T) {
	_, err := ParseCSV(nil)
	assert.Error(t, err)
}

func TestParseCell(t *testing.T) {
	assert.Nil(t, ParseCell(" "))
	assert.Nil(t, ParseCell("NaN"))
	assert.Nil(t, ParseCell("null"))
	assert.Equal(t, int64(-4), ParseCell("-4"))
	assert.Equal(t, 1.5, ParseCell("1.5"))
	assert.Equal(t, "abc", ParseCell(" abc "))
}

func TestWriteCSVRoundTrip(t *testing.T) {
	ds := dataset.MustNew([]string{"a", "b"}, [][]any{{1, "x"}, {nil, 2.5}})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ds))
	assert.Equal(t, "a,b\n1,x\n,2.5\n", buf.String())

	back, err := ParseCSV(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, ds.Row(1), back.Row(1))
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, NewLogger("debug"))
	assert.NotNil(t, NewLogger("bogus"))
}
