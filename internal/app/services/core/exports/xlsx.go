package exports

import (
	"bytes"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/weekgrid"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName    = "Lịch học"
	selectedMark = "x"
	headerRow    = 3
)

// buildWorkbook lays the grid out as one row per slot and one column per
// weekday, then lists the runs below it.
func buildWorkbook(grid *weekgrid.Grid, student *models.Student, bitmap *weekgrid.WeeklyBitmap, runs []weekgrid.Run) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, colName(1), colName(weekgrid.DaysPerWeek), 12)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	selectedStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#A9D08E"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s (%s)", student.FullName, student.ID))
	f.MergeCell(sheetName, "A1", cell(colName(weekgrid.DaysPerWeek), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	f.SetCellValue(sheetName, cell("A", headerRow), "Giờ")
	for day := weekgrid.Monday; day <= weekgrid.Sunday; day++ {
		f.SetCellValue(sheetName, cell(colName(int(day)+1), headerRow), day.Label())
	}
	f.SetCellStyle(sheetName, cell("A", headerRow), cell(colName(weekgrid.DaysPerWeek), headerRow), headerStyle)

	row := headerRow + 1
	for slot := 0; slot < grid.TotalSlots(); slot++ {
		f.SetCellValue(sheetName, cell("A", row), grid.SlotToTime(slot)+" - "+grid.SlotToTime(slot+1))
		for day := weekgrid.Monday; day <= weekgrid.Sunday; day++ {
			if !bitmap.Get(day, slot) {
				continue
			}
			ref := cell(colName(int(day)+1), row)
			f.SetCellValue(sheetName, ref, selectedMark)
			f.SetCellStyle(sheetName, ref, ref, selectedStyle)
		}
		row++
	}

	row++
	f.SetCellValue(sheetName, cell("A", row), "Ngày")
	f.SetCellValue(sheetName, cell("B", row), "Bắt đầu")
	f.SetCellValue(sheetName, cell("C", row), "Kết thúc")
	f.SetCellStyle(sheetName, cell("A", row), cell("C", row), headerStyle)
	for _, run := range runs {
		row++
		f.SetCellValue(sheetName, cell("A", row), run.Weekday.Label())
		f.SetCellValue(sheetName, cell("B", row), run.StartTime)
		f.SetCellValue(sheetName, cell("C", row), run.EndTime)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
