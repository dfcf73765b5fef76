// Package export writes an assembled dashboard to an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hydromap/internal/viewmodel"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook builds a workbook with one sheet per dashboard panel. The caller
// closes it.
func Workbook(d viewmodel.Dashboard) (*excelize.File, error) {
	f := excelize.NewFile()

	sheets := []struct {
		name string
		rows [][]any
	}{
		{"Summary", summaryRows(d)},
		{"Regions", regionRows(d.Regions)},
		{"Investments", distributionRows(d.Investments)},
		{"Funding", fundingRows(d.Funding)},
		{"Alerts", alertRows(d)},
	}
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("new sheet %s: %w", s.name, err)
		}
		if err := writeRows(f, s.name, s.rows); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// Write streams the dashboard workbook to w.
func Write(w io.Writer, d viewmodel.Dashboard) error {
	f, err := Workbook(d)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func WriteFile(path string, d viewmodel.Dashboard) error {
	f, err := Workbook(d)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func summaryRows(d viewmodel.Dashboard) [][]any {
	s := d.Summary
	return [][]any{
		{"Metric", "Value"},
		{"Plants", s.PlantCount},
		{"Daily capacity (t/day)", s.DailyCapacity},
		{"Total investment", s.TotalInvestment.Display},
		{"Average efficiency (%)", s.AverageEfficiency},
		{"Currency", d.Display.Currency},
		{"Generated at", d.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
}

func regionRows(regions []viewmodel.RegionRow) [][]any {
	rows := [][]any{{"Region", "Plants", "Capacity (t/day)", "Investment"}}
	for _, r := range regions {
		rows = append(rows, []any{r.Region, r.PlantCount, r.TotalCapacity, r.TotalInvestment.Display})
	}
	return rows
}

func distributionRows(slices []viewmodel.DistributionSlice) [][]any {
	rows := [][]any{{"Project type", "Projects", "Required (M)"}}
	for _, s := range slices {
		rows = append(rows, []any{s.ProjectType, s.Count, s.AmountMillions})
	}
	return rows
}

func fundingRows(funding []viewmodel.FundingRow) [][]any {
	rows := [][]any{{"Project", "Investor", "Status", "Required", "Committed", "Gap", "Progress (%)"}}
	for _, r := range funding {
		rows = append(rows, []any{r.ProjectName, r.InvestorName, r.Status, r.Required.Display, r.Committed.Display, r.Gap.Display, r.ProgressPercent})
	}
	return rows
}

func alertRows(d viewmodel.Dashboard) [][]any {
	rows := [][]any{{"Type", "Asset", "Message"}}
	for _, a := range d.Alerts {
		rows = append(rows, []any{string(a.Type), a.AssetName, a.Message})
	}
	rows = append(rows, []any{}, []any{"Recommendation", d.ActionCard.Insight, d.ActionCard.Action})
	return rows
}
