package export

import (
	"fmt"
	"io"

	"shiftserve/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	ShiftsSheet       = "Shifts"
	ApplicationsSheet = "Applications"
)

var (
	shiftHeader = []any{
		"ID", "Date", "Role", "Start", "End", "Duration", "Hourly Rate",
		"Urgency", "Bonus %", "Status", "Applicants", "Assigned Worker", "Address",
	}
	applicationHeader = []any{"Shift ID", "Role", "Date", "Worker", "Status", "Experience", "Rating", "Applied At"}
)

// WriteShifts renders a restaurant dashboard as an XLSX workbook with one
// sheet of shifts and one of applications.
func WriteShifts(w io.Writer, shifts []domain.Shift) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(ShiftsSheet); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if _, err := f.NewSheet(ApplicationsSheet); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if err := writeRow(f, ShiftsSheet, 1, shiftHeader); err != nil {
		return err
	}
	if err := writeRow(f, ApplicationsSheet, 1, applicationHeader); err != nil {
		return err
	}

	appRow := 2
	for i, sh := range shifts {
		worker := ""
		if sh.Assignment != nil {
			worker = sh.Assignment.WorkerName
		}
		address := sh.Address
		if sh.Location != nil && sh.Location.Address != "" {
			address = sh.Location.Address
		}
		date := sh.Date.Format("2006-01-02")
		row := []any{
			sh.ID, date, sh.Role, sh.StartTime, sh.EndTime, sh.Duration(), sh.HourlyRate,
			string(sh.UrgencyLevel), sh.BonusPercentage, string(sh.Status), sh.Applicants(), worker, address,
		}
		if err := writeRow(f, ShiftsSheet, i+2, row); err != nil {
			return err
		}
		for _, a := range sh.Applications {
			exp, rating := "", ""
			if a.WorkerExperience != nil {
				exp = *a.WorkerExperience
			}
			if a.WorkerRating != nil {
				rating = fmt.Sprintf("%.1f", *a.WorkerRating)
			}
			row := []any{sh.ID, sh.Role, date, a.WorkerName, string(a.Status), exp, rating, a.AppliedAt.Format("2006-01-02 15:04")}
			if err := writeRow(f, ApplicationsSheet, appRow, row); err != nil {
				return err
			}
			appRow++
		}
	}

	for _, sheet := range []string{ShiftsSheet, ApplicationsSheet} {
		if err := f.SetCellStyle(sheet, "A1", "M1", bold); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := f.SetColWidth(sheet, "A", "M", 16); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, n int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("export: %s row %d: %w", sheet, n, err)
	}
	return nil
}
