// Package report renders the admin analytics exports. Both formats project
// the same snapshot: global totals, the per-partner table, the weekday
// series and the monthly series.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"betpromo/internal/domain"
)

// Data is the snapshot a report is rendered from.
type Data struct {
	Stats       domain.GlobalStats
	Partners    []domain.Partner
	Weekly      []domain.DailyAnalytics
	Monthly     []domain.MonthlyStat
	GeneratedAt time.Time
}

// Service renders PDF and XLSX exports. The monetary columns derive from
// the injected conversion value and exchange rate.
type Service struct {
	revenuePerConversion float64
	currencyRate         float64
}

// NewService creates a report service. revenuePerConversion is the value
// attributed to one conversion; currencyRate converts it to FCFA.
func NewService(revenuePerConversion, currencyRate float64) *Service {
	return &Service{
		revenuePerConversion: revenuePerConversion,
		currencyRate:         currencyRate,
	}
}

// Revenue returns the value attributed to a conversion count.
func (s *Service) Revenue(conversions int64) float64 {
	return float64(conversions) * s.revenuePerConversion
}

// RevenueFCFA returns the FCFA value attributed to a conversion count.
func (s *Service) RevenueFCFA(conversions int64) float64 {
	return s.Revenue(conversions) * s.currencyRate
}

// BuildPDF renders the report as a PDF document.
func (s *Service) BuildPDF(data Data) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Rapport BetPromo", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Rapport d'activité BetPromo")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.Cell(0, 8, fmt.Sprintf("Généré le %s", data.GeneratedAt.Format("02/01/2006 15:04")))
	pdf.Ln(12)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Vue d'ensemble")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	summary := [][2]string{
		{"Visiteurs", fmt.Sprintf("%d", data.Stats.TotalVisitors)},
		{"Clics", fmt.Sprintf("%d", data.Stats.TotalClicks)},
		{"Conversions", fmt.Sprintf("%d", data.Stats.TotalConversions)},
		{"Taux de conversion", fmt.Sprintf("%.2f%%", conversionRate(data.Stats.TotalClicks, data.Stats.TotalConversions))},
		{"Revenus estimés", fmt.Sprintf("%.0f FCFA", s.RevenueFCFA(data.Stats.TotalConversions))},
	}
	for _, row := range summary {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Partenaires")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(55, 7, "Bookmaker", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Clics", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Conversions", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Taux", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Revenus (FCFA)", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	var totalClicks, totalConversions int64
	for _, p := range data.Partners {
		pdf.CellFormat(55, 7, p.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", p.Clicks), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", p.Conversions), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f%%", conversionRate(p.Clicks, p.Conversions)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.0f", s.RevenueFCFA(p.Conversions)), "1", 1, "R", false, 0, "")
		totalClicks += p.Clicks
		totalConversions += p.Conversions
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(55, 7, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, fmt.Sprintf("%d", totalClicks), "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%d", totalConversions), "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, fmt.Sprintf("%.2f%%", conversionRate(totalClicks, totalConversions)), "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.0f", s.RevenueFCFA(totalConversions)), "1", 1, "R", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Semaine")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	for _, day := range data.Weekly {
		pdf.CellFormat(30, 7, day.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%d visites", day.Visits), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%d clics", day.Clicks), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d conversions", day.Conversions), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF report: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildXLSX renders the report as an Excel workbook with one sheet per
// projection.
func (s *Service) BuildXLSX(data Data) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Résumé"
	f.SetSheetName("Sheet1", summarySheet)

	summaryRows := [][]interface{}{
		{"Rapport BetPromo", data.GeneratedAt.Format("02/01/2006 15:04")},
		{},
		{"Visiteurs", data.Stats.TotalVisitors},
		{"Clics", data.Stats.TotalClicks},
		{"Conversions", data.Stats.TotalConversions},
		{"Taux de conversion (%)", conversionRate(data.Stats.TotalClicks, data.Stats.TotalConversions)},
		{"Revenus estimés (FCFA)", s.RevenueFCFA(data.Stats.TotalConversions)},
	}
	if err := writeRows(f, summarySheet, summaryRows); err != nil {
		return nil, err
	}

	const partnerSheet = "Partenaires"
	if _, err := f.NewSheet(partnerSheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet %s: %w", partnerSheet, err)
	}
	partnerRows := [][]interface{}{
		{"Bookmaker", "Actif", "Clics", "Conversions", "Taux (%)", "Revenus (FCFA)"},
	}
	for _, p := range data.Partners {
		partnerRows = append(partnerRows, []interface{}{
			p.Name, p.IsActive, p.Clicks, p.Conversions,
			conversionRate(p.Clicks, p.Conversions), s.RevenueFCFA(p.Conversions),
		})
	}
	if err := writeRows(f, partnerSheet, partnerRows); err != nil {
		return nil, err
	}

	const weeklySheet = "Hebdomadaire"
	if _, err := f.NewSheet(weeklySheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet %s: %w", weeklySheet, err)
	}
	weeklyRows := [][]interface{}{
		{"Jour", "Visites", "Clics", "Conversions"},
	}
	for _, day := range data.Weekly {
		weeklyRows = append(weeklyRows, []interface{}{day.Name, day.Visits, day.Clicks, day.Conversions})
	}
	if err := writeRows(f, weeklySheet, weeklyRows); err != nil {
		return nil, err
	}

	const monthlySheet = "Mensuel"
	if _, err := f.NewSheet(monthlySheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet %s: %w", monthlySheet, err)
	}
	monthlyRows := [][]interface{}{
		{"Mois", "Année", "Visiteurs", "Clics", "Conversions", "Revenus"},
	}
	for _, m := range data.Monthly {
		monthlyRows = append(monthlyRows, []interface{}{m.Month, m.Year, m.Visitors, m.Clicks, m.Conversions, m.Revenue})
	}
	if err := writeRows(f, monthlySheet, monthlyRows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render XLSX report: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of sheet %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func conversionRate(clicks, conversions int64) float64 {
	if clicks == 0 {
		return 0
	}
	return float64(conversions) / float64(clicks) * 100
}
