package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fitcoach/trainer-service/internal/analytics"
	"github.com/xuri/excelize/v2"
)

// ReportExportService turns an analysis result into downloadable files
type ReportExportService interface {
	ExportAnalysisToExcel(ctx context.Context, studentID uint, userID string) ([]byte, error)
	ExportAnalysisToCSV(ctx context.Context, studentID uint, userID string) ([]byte, error)
}

type reportExportService struct {
	analysis AnalysisService
	logger   *slog.Logger
}

func NewReportExportService(analysis AnalysisService, logger *slog.Logger) ReportExportService {
	return &reportExportService{
		analysis: analysis,
		logger:   logger,
	}
}

func (s *reportExportService) ExportAnalysisToExcel(ctx context.Context, studentID uint, userID string) ([]byte, error) {
	result, err := s.analysis.GenerateForStudent(ctx, studentID, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Resumo"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	// Write headers
	headers := []string{
		"Métrica", "Unidade", "Valor atual", "Valor anterior", "Variação", "Variação (%)",
		"Tendência", "Projeção 4 semanas", "Projeção 8 semanas", "Projeção 12 semanas",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, metric := range analytics.TrackedMetrics {
		trend, ok := result.Metrics[metric]
		if !ok {
			continue
		}

		row := []interface{}{
			trend.Label,
			trend.Unit,
			trend.CurrentValue,
		}
		if trend.PreviousValue != nil {
			row = append(row, *trend.PreviousValue)
		} else {
			row = append(row, "")
		}
		row = append(row,
			trend.Delta,
			trend.DeltaPct,
			string(trend.Trend),
			trend.Projection.FourWeeks,
			trend.Projection.EightWeeks,
			trend.Projection.TwelveWeeks,
		)

		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	if err := s.writeSeriesSheet(f, result); err != nil {
		return nil, err
	}
	if err := s.writeInsightsSheet(f, result); err != nil {
		return nil, err
	}

	// Drop the default sheet created by excelize
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Analysis exported to Excel",
		"student_id", studentID,
		"metrics", len(result.Metrics))
	return buf.Bytes(), nil
}

func (s *reportExportService) writeSeriesSheet(f *excelize.File, result *analytics.AnalysisResult) error {
	sheetName := "Histórico"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	f.SetCellValue(sheetName, "A1", "Métrica")
	f.SetCellValue(sheetName, "B1", "Data")
	f.SetCellValue(sheetName, "C1", "Valor")

	row := 2
	for _, metric := range analytics.TrackedMetrics {
		trend, ok := result.Metrics[metric]
		if !ok {
			continue
		}
		for _, point := range trend.Points {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), trend.Label)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), point.Timestamp.Format("2006-01-02"))
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), point.Value)
			row++
		}
	}
	return nil
}

func (s *reportExportService) writeInsightsSheet(f *excelize.File, result *analytics.AnalysisResult) error {
	sheetName := "Insights"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	row := 1
	writeSection := func(title string, items []string) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), title)
		row++
		for _, item := range items {
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), item)
			row++
		}
	}

	writeSection("Pontos positivos", result.Insights.Positives)
	writeSection("Pontos de atenção", result.Insights.Negatives)
	writeSection("Recomendações", result.Insights.Recommendations)
	return nil
}

func (s *reportExportService) ExportAnalysisToCSV(ctx context.Context, studentID uint, userID string) ([]byte, error) {
	result, err := s.analysis.GenerateForStudent(ctx, studentID, userID)
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	headers := []string{"metric", "unit", "current", "previous", "delta", "delta_pct", "trend", "proj_4w", "proj_8w", "proj_12w"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, metric := range analytics.TrackedMetrics {
		trend, ok := result.Metrics[metric]
		if !ok {
			continue
		}

		previous := ""
		if trend.PreviousValue != nil {
			previous = formatFloat(*trend.PreviousValue)
		}
		row := []string{
			string(trend.Metric),
			trend.Unit,
			formatFloat(trend.CurrentValue),
			previous,
			formatFloat(trend.Delta),
			formatFloat(trend.DeltaPct),
			string(trend.Trend),
			formatFloat(trend.Projection.FourWeeks),
			formatFloat(trend.Projection.EightWeeks),
			formatFloat(trend.Projection.TwelveWeeks),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return []byte(buf.String()), nil
}

func formatFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
