package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newExportServiceForTest(t *testing.T) (ReportExportService, *MockRepository) {
	t.Helper()
	repo := newMockRepository()
	analysis := newAnalysisServiceForTest(repo, nil, nil)
	return NewReportExportService(analysis, newTestLogger()), repo
}

func TestReportExportService_ExportAnalysisToCSV(t *testing.T) {
	ctx := context.Background()
	service, repo := newExportServiceForTest(t)

	student, current, history := analysisFixture()
	repo.student.On("CanAccess", ctx, uint(1), "trainer-1").Return(true, nil)
	repo.student.On("GetByID", ctx, uint(1)).Return(student, nil)
	repo.assessment.On("GetLatestByStudent", ctx, uint(1)).Return(current, nil)
	repo.assessment.On("GetHistory", ctx, uint(10)).Return(history, nil)

	data, err := service.ExportAnalysisToCSV(ctx, 1, "trainer-1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "metric,unit,current,previous,delta,delta_pct,trend,proj_4w,proj_8w,proj_12w", lines[0])
	// Header plus one row per tracked metric.
	assert.Len(t, lines, 8)

	assert.Contains(t, lines[1], "weight,kg,80,83,-3")
	assert.Contains(t, lines[1], "improving")
}

func TestReportExportService_ExportAnalysisToExcel(t *testing.T) {
	ctx := context.Background()
	service, repo := newExportServiceForTest(t)

	student, current, history := analysisFixture()
	repo.student.On("CanAccess", ctx, uint(1), "trainer-1").Return(true, nil)
	repo.student.On("GetByID", ctx, uint(1)).Return(student, nil)
	repo.assessment.On("GetLatestByStudent", ctx, uint(1)).Return(current, nil)
	repo.assessment.On("GetHistory", ctx, uint(10)).Return(history, nil)

	data, err := service.ExportAnalysisToExcel(ctx, 1, "trainer-1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Resumo")
	assert.Contains(t, sheets, "Histórico")
	assert.Contains(t, sheets, "Insights")

	label, err := f.GetCellValue("Resumo", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Peso", label)

	header, err := f.GetCellValue("Resumo", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Métrica", header)
}

func TestReportExportService_PermissionPropagates(t *testing.T) {
	ctx := context.Background()
	service, repo := newExportServiceForTest(t)

	repo.student.On("CanAccess", ctx, uint(1), "trainer-2").Return(false, nil)

	_, err := service.ExportAnalysisToCSV(ctx, 1, "trainer-2")
	assert.True(t, IsUnauthorized(err))
}
