package export

import (
	"fmt"

	"meetsched/internal/model"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

var columns = []string{
	"ID", "Name", "Email", "Phone", "Date", "Time",
	"Duration (min)", "Status", "Purpose", "Timezone", "Created At",
}

// Workbook renders the booking ledger as a spreadsheet, one row per
// booking in ledger order.
func Workbook(bookings []model.Booking) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return nil, err
		}
	}

	// Bold header row.
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.SetCellStyle(sheetName, startCell, endCell, style)
	}

	for i, b := range bookings {
		row := i + 2
		values := []any{
			b.ID, b.Name, b.Email, b.Phone, b.Date, b.Time,
			b.Duration, b.Status, b.Purpose, b.Timezone, b.CreatedAt,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	return f, nil
}
