package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hadir-app/hadir/internal/application/query"
)

func TestWriteProducesReadableWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "out.xlsx")
	table := query.Table{
		Sheet:   "تقرير الحضور",
		Headers: []string{"التاريخ", "الحضور"},
		Rows: []query.TableRow{
			{Cells: []string{"2023-01-02", query.PresencePresent}, Tone: query.ToneGood},
			{Cells: []string{"2023-01-04", query.PresenceAbsent}, Tone: query.ToneBad},
		},
		Summary: []string{"حضر: 1 مرة", "غاب: 1 مرة"},
	}

	require.NoError(t, NewExcelExporter().Write(context.Background(), table, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"تقرير الحضور"}, f.GetSheetList())

	header, err := f.GetCellValue("تقرير الحضور", "A1")
	require.NoError(t, err)
	assert.Equal(t, "التاريخ", header)

	cell, err := f.GetCellValue("تقرير الحضور", "B2")
	require.NoError(t, err)
	assert.Equal(t, query.PresencePresent, cell)

	// Summary starts two rows below the table: 2 data rows -> row 5.
	summary, err := f.GetCellValue("تقرير الحضور", "A5")
	require.NoError(t, err)
	assert.Equal(t, "حضر: 1 مرة", summary)
}

func TestWriteEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	err := NewExcelExporter().Write(context.Background(), query.Table{Sheet: "قائمة الطلاب"}, path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"قائمة الطلاب"}, f.GetSheetList())
}
