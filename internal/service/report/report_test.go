package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"betpromo/internal/domain"
)

func sampleData() Data {
	return Data{
		Stats: domain.GlobalStats{
			ID:               "stats-1",
			TotalVisitors:    1200,
			TotalClicks:      400,
			TotalConversions: 40,
		},
		Partners: []domain.Partner{
			{ID: "p-1", Name: "1xBet", IsActive: true, Clicks: 300, Conversions: 30},
			{ID: "p-2", Name: "Betwinner", IsActive: false, Clicks: 100, Conversions: 10},
		},
		Weekly: []domain.DailyAnalytics{
			{Name: "Lun", DayIndex: 1, Visits: 50, Clicks: 20, Conversions: 2},
			{Name: "Mar", DayIndex: 2, Visits: 70, Clicks: 25, Conversions: 3},
		},
		Monthly: []domain.MonthlyStat{
			{Month: 1, Year: 2026, Visitors: 1200, Clicks: 400, Conversions: 40, Revenue: 600},
		},
		GeneratedAt: time.Date(2026, time.January, 7, 14, 30, 0, 0, time.UTC),
	}
}

func TestRevenueMath(t *testing.T) {
	svc := NewService(15, 655)

	assert.Equal(t, 150.0, svc.Revenue(10))
	assert.Equal(t, 98250.0, svc.RevenueFCFA(10))
	assert.Equal(t, 0.0, svc.Revenue(0))
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, 10.0, conversionRate(400, 40))
	assert.Equal(t, 0.0, conversionRate(0, 5))
	assert.Equal(t, 0.0, conversionRate(100, 0))
}

func TestBuildPDF(t *testing.T) {
	svc := NewService(15, 655)

	data, err := svc.BuildPDF(sampleData())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// Every PDF starts with the %PDF magic header
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestBuildPDFEmptySnapshot(t *testing.T) {
	svc := NewService(15, 655)

	data, err := svc.BuildPDF(Data{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestBuildXLSX(t *testing.T) {
	svc := NewService(15, 655)

	raw, err := svc.BuildXLSX(sampleData())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Résumé", "Partenaires", "Hebdomadaire", "Mensuel"}, f.GetSheetList())

	name, err := f.GetCellValue("Partenaires", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1xBet", name)

	clicks, err := f.GetCellValue("Partenaires", "C2")
	require.NoError(t, err)
	assert.Equal(t, "300", clicks)

	day, err := f.GetCellValue("Hebdomadaire", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Lun", day)

	month, err := f.GetCellValue("Mensuel", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1", month)
}
