package load

import (
	"os"
	"path/filepath"
	"testing"

	"banks-etl/lib/table"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func finalTable() table.Table {
	return table.Table{
		Columns: []string{"Name", "Market cap(US$ billion)", "MC_GBP_Billion", "MC_EUR_Billion", "MC_INR_Billion"},
		Rows: []table.Row{
			{"Bank A", "100", 80.0, 93.0, 8210.0},
			{"Bank, B", "10.5", 8.4, 9.77, 862.05},
		},
	}
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Largest_banks_data.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale contents that are much longer than the output will be\n\n\n"), 0600))

	require.NoError(t, SaveCSV(finalTable(), path))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(
		t,
		"Name,Market cap(US$ billion),MC_GBP_Billion,MC_EUR_Billion,MC_INR_Billion\n"+
			"Bank A,100,80.0,93.0,8210.0\n"+
			"\"Bank, B\",10.5,8.4,9.77,862.05\n",
		string(contents),
	)
}

func TestSaveCSVMissingDirectory(t *testing.T) {
	err := SaveCSV(finalTable(), filepath.Join(t.TempDir(), "missing", "out.csv"))
	require.Error(t, err)
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.xlsx")
	require.NoError(t, SaveXLSX(finalTable(), path, "Largest_banks"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Largest_banks")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Name", rows[0][0])
	require.Equal(t, "Bank A", rows[1][0])
	require.Equal(t, "80", rows[1][2])
}
