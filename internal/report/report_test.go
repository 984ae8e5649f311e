package report

import (
	"testing"

	"banks-etl/lib/table"

	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	result, err := Summarize(table.Table{
		Columns: []string{"Rank", "Name", "Market cap(US$ billion)", "MC_GBP_Billion"},
		Rows: []table.Row{
			{"1", "Bank A", "100", 80.0},
			{"2", "Bank B", "50", 40.0},
			{"3", "Bank C", "30", 24.0},
		},
	})
	require.NoError(t, err)
	require.Len(t, result, 3)

	require.Equal(t, Stat{Column: "Rank", Count: 3, Min: 1, Max: 3, Mean: 2, Median: 2}, result[0])
	require.Equal(t, "Market cap(US$ billion)", result[1].Column)
	require.Equal(t, 50.0, result[1].Median)
	require.Equal(t, "MC_GBP_Billion", result[2].Column)
	require.InDelta(t, 48.0, result[2].Mean, 1e-9)
}

func TestSummarizeSkipsRaggedAndEmpty(t *testing.T) {
	result, err := Summarize(table.Table{
		Columns: []string{"Value"},
		Rows:    []table.Row{{"1"}, {}},
	})
	require.NoError(t, err)
	require.Empty(t, result)

	result, err = Summarize(table.Table{Columns: []string{"Value"}})
	require.NoError(t, err)
	require.Empty(t, result)
}
