package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatCell(t *testing.T) {
	testCases := []struct {
		in       any
		expected string
	}{
		{in: nil, expected: ""},
		{in: "Bank A", expected: "Bank A"},
		{in: 80.0, expected: "80.0"},
		{in: 8210.0, expected: "8210.0"},
		{in: 93.12, expected: "93.12"},
		{in: 0.0, expected: "0.0"},
		{in: 9999999999999998.0, expected: "9999999999999998.0"},
		{in: 1e16, expected: "1e+16"},
		{in: -2.5e17, expected: "-2.5e+17"},
		{in: 0.00005, expected: "5e-05"},
		{in: int64(7), expected: "7"},
		{in: []byte("raw"), expected: "raw"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, FormatCell(test.in))
	}
}

func TestColumn(t *testing.T) {
	tbl := Table{
		Columns: []string{"Name", "Value"},
		Rows: []Row{
			{"a", "1"},
			{"b"},
		},
	}

	values, err := tbl.Column("Value")
	require.NoError(t, err)
	require.Equal(t, []any{"1", nil}, values)

	_, err = tbl.Column("Missing")
	require.Error(t, err)
}

func TestClone(t *testing.T) {
	tbl := Table{
		Columns: []string{"Name"},
		Rows:    []Row{{"a"}},
	}
	cloned := tbl.Clone()
	cloned.Columns[0] = "Other"
	cloned.Rows[0][0] = "b"

	require.Equal(t, "Name", tbl.Columns[0])
	require.Equal(t, "a", tbl.Rows[0][0])
}

func TestFloat(t *testing.T) {
	v, err := Float("432.92")
	require.NoError(t, err)
	require.Equal(t, 432.92, v)

	v, err = Float(int64(3))
	require.NoError(t, err)
	require.Equal(t, 3.0, v)

	_, err = Float("n/a")
	require.Error(t, err)
	_, err = Float(true)
	require.Error(t, err)
}
