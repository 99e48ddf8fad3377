package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
	"github.com/Rohanpawar9921/Swasthya/internal/repository"
)

// exportListLimit caps the export query; beyond this the workbook would be
// unusable in a spreadsheet anyway.
const exportListLimit = 10000

// reportExportHeader 导出表头。医院报告按条目展开成多行。
var reportExportHeader = []string{
	"Report ID",
	"Submitted At",
	"Role",
	"Name",
	"Email",
	"Area",
	"Symptom",
	"Disease",
	"Patient Count",
	"Category",
	"Status",
}

// ExportXLSX renders every stored report into an Excel workbook for the
// government analytics view.
func (s *reportService) ExportXLSX(ctx context.Context) ([]byte, error) {
	reports, err := s.reports.List(ctx, repository.ReportFilter{Limit: exportListLimit})
	if err != nil {
		return nil, domain.Internal("failed to load reports for export", err)
	}

	f := excelize.NewFile()
	// Don't defer Close(): WriteToBuffer needs the file open.

	sheetName := "Health Reports"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, domain.Internal("failed to create export sheet", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, domain.Internal("failed to create header style", err)
	}

	for col, title := range reportExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, title)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	rowNum := 2
	for i := range reports {
		for _, row := range exportRows(&reports[i]) {
			for col, value := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
				_ = f.SetCellValue(sheetName, cell, value)
			}
			rowNum++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, domain.Internal("failed to render export workbook", err)
	}
	if err := f.Close(); err != nil {
		return nil, domain.Internal("failed to close export workbook", err)
	}
	return buf.Bytes(), nil
}

func exportRows(r *domain.HealthReport) [][]any {
	base := func() []any {
		return []any{
			r.ReportID,
			r.SubmittedAt.Format(time.RFC3339),
			string(r.Submitter.Role),
			r.Submitter.Name,
			r.Submitter.Email,
			r.Location.Area,
		}
	}

	if d := r.HospitalData(); d != nil {
		rows := make([][]any, 0, len(d.Entries))
		for _, entry := range d.Entries {
			row := append(base(),
				entry.Symptom,
				entry.Disease,
				strconv.Itoa(entry.PatientCount),
				string(entry.Category),
				string(r.Status),
			)
			rows = append(rows, row)
		}
		return rows
	}

	symptom, disease := "", ""
	if d := r.UserData(); d != nil {
		symptom, disease = d.Symptom, d.Disease
	}
	row := append(base(), symptom, disease, "", "", string(r.Status))
	return [][]any{row}
}

// ExportFilename names the attachment with the export date.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("health-reports-%s.xlsx", now.Format("2006-01-02"))
}
