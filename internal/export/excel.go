package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/Git-LeAmaral/reserva-praia/internal/metrics"
	"github.com/Git-LeAmaral/reserva-praia/internal/service"
)

// Exporter writes monthly booking reports as Excel workbooks.
type Exporter struct {
	manager *service.BookingManager
	path    string
	logger  *zerolog.Logger
}

// NewExporter creates an exporter writing into the given directory.
func NewExporter(manager *service.BookingManager, path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{manager: manager, path: path, logger: logger}
}

// MonthWorkbook renders one month of bookings plus a revenue breakdown
// and saves it under the export directory. Returns the written path.
func (e *Exporter) MonthWorkbook(year int, month time.Month) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Reservas"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Reservas %s %d", monthName(month), year))

	headers := []string{"Início", "Fim", "Titular", "Pessoas", "Diárias", "Valor diária", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	bookings := e.manager.BookingsForMonth(year, month)
	for row, b := range bookings {
		values := []interface{}{
			b.StartDate.Format("02/01/2006"),
			b.EndDate.Format("02/01/2006"),
			b.Titular.Name,
			b.People(),
			b.TotalDays,
			b.DailyRate,
			b.TotalPrice,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+3)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	revenueRow := len(bookings) + 4
	_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", revenueRow), "Receita por dia")
	for i, r := range e.manager.DailyRevenue(year, month) {
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", revenueRow+1+i), r.Day)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", revenueRow+1+i), r.Amount)
	}
	_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", revenueRow), "Receita do mês")
	_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", revenueRow), e.manager.MonthRevenue(year, month))

	_ = f.SetColWidth(sheetName, "A", "C", 22)
	_ = f.SetColWidth(sheetName, "D", "G", 14)
	_ = f.MergeCell(sheetName, "A1", "G1")

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(sheetName, "A2", "G2", headerStyle)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("reservas_%04d-%02d.xlsx", year, int(month))
	filePath := filepath.Join(e.path, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	metrics.IncExport()
	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Excel file created")
	return filePath, nil
}

func monthName(m time.Month) string {
	names := [...]string{
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	}
	return names[m-1]
}
