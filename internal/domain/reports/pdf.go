package reports

import (
	"context"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"perfeval/internal/domain/evaluation"
)

var columns = []struct {
	title string
	width float64
}{
	{"Employee", 55},
	{"Department", 40},
	{"Self review", 30},
	{"Progress", 30},
	{"Avg score", 25},
}

// CycleReportPDF writes an A4 summary of the cycle: header, completion
// figures and one row per active employee.
func (s *Service) CycleReportPDF(ctx context.Context, cycleID string, w io.Writer) error {
	cycle, err := s.cycles.GetCycle(ctx, cycleID)
	if err != nil {
		return err
	}
	stats, err := s.cycles.CycleStats(ctx, cycleID)
	if err != nil {
		return err
	}
	rows, err := s.cycles.EmployeeRows(ctx, cycleID, "", "")
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(cycle.Title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s", cycle.StartDate.Format("2006-01-02"), cycle.EndDate.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Type: %s    Status: %s", cycle.Type, cycle.Status))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Weights: own %.0f%% / shared %.0f%%", cycle.Weights.Own, cycle.Weights.Shared))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Self reviews: %d of %d submitted (%.1f%%)", stats.CompletedCount, stats.TotalEmployees, stats.CompletionRate))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range columns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		avg := "-"
		if row.Status.AvgScore != nil {
			avg = fmt.Sprintf("%.2f", *row.Status.AvgScore)
		}
		cells := []string{
			tr(row.Name),
			tr(row.Department),
			row.Status.Status,
			fmt.Sprintf("%d/%d", row.Status.Progress.Completed, row.Status.Progress.Total),
			avg,
		}
		for i, col := range columns {
			pdf.CellFormat(col.width, 7, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render cycle report %s: %w", cycleID, err)
	}
	s.logger.Debug("cycle report rendered", zap.String("cycleId", cycleID), zap.Int("rows", len(rows)))
	return nil
}

var _ Cycles = (*evaluation.Service)(nil)
