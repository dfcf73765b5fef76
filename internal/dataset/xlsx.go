package dataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"hydromap/internal/logger"
	"hydromap/internal/types"
)

// Sheet names looked up (case-insensitively) in the workbook.
const (
	SheetInfrastructure = "Infrastructure"
	SheetInvestments    = "Investments"
	SheetPerformance    = "Performance"
)

// XLSXSource reads records from a workbook with one sheet per entity. The
// file is reopened on every call so edits show up on the next refresh.
type XLSXSource struct {
	path string
	log  *logger.Logger
}

func NewXLSXSource(path string, log *logger.Logger) *XLSXSource {
	return &XLSXSource{path: path, log: log.Component("dataset.xlsx")}
}

// columns maps a header row to column indices by keyword matching.
type columns map[string]int

// detect finds, for each field, the first free header containing one of its
// keywords. Keywords are tried in order and fields claim columns in order.
func detect(header []string, fields [][2]string) columns {
	cols := columns{}
	taken := map[int]bool{}
	for _, f := range fields {
		field := f[0]
	search:
		for _, k := range strings.Split(f[1], "|") {
			for i, h := range header {
				if taken[i] {
					continue
				}
				if strings.Contains(strings.ToLower(strings.TrimSpace(h)), k) {
					cols[field] = i
					taken[i] = true
					break search
				}
			}
		}
	}
	return cols
}

func (c columns) str(row []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// num returns nil for blank or unparsable cells.
func (c columns) num(row []string, field string) *float64 {
	raw := strings.ReplaceAll(c.str(row, field), ",", "")
	raw = strings.TrimSuffix(raw, "%")
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (c columns) numOrZero(row []string, field string) float64 {
	if v := c.num(row, field); v != nil {
		return types.Finite(*v)
	}
	return 0
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "01-02-06", "1/2/2006"}

func (c columns) date(row []string, field string) time.Time {
	raw := c.str(row, field)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func (s *XLSXSource) rows(ctx context.Context, sheet string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	name := ""
	for _, candidate := range f.GetSheetList() {
		if strings.EqualFold(candidate, sheet) {
			name = candidate
			break
		}
	}
	if name == "" {
		s.log.WithField("sheet", sheet).Warn("sheet not found, treating as empty")
		return nil, nil
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return rows, nil
}

var infrastructureFields = [][2]string{
	{"id", "id"},
	{"name", "name"},
	{"type", "type"},
	{"status", "status"},
	{"capacity", "capacity"},
	{"efficiency", "efficiency"},
	{"source", "energy|source"},
	{"lat", "latitude|lat"},
	{"lng", "longitude|lng|lon"},
	{"city", "city"},
	{"state", "state|region"},
	{"created", "created|date"},
}

func (s *XLSXSource) ListInfrastructure(ctx context.Context, opts ListOptions) ([]types.InfrastructureAsset, error) {
	rows, err := s.rows(ctx, SheetInfrastructure)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return []types.InfrastructureAsset{}, nil
	}
	cols := detect(rows[0], infrastructureFields)
	s.log.WithField("columns", cols).Debug("detected infrastructure columns")

	out := make([]types.InfrastructureAsset, 0, len(rows)-1)
	for i, r := range rows[1:] {
		a := types.InfrastructureAsset{
			ID:           cols.str(r, "id"),
			Name:         cols.str(r, "name"),
			Type:         types.ParseAssetType(cols.str(r, "type")),
			Status:       types.ParseAssetStatus(cols.str(r, "status")),
			Capacity:     cols.numOrZero(r, "capacity"),
			Efficiency:   cols.num(r, "efficiency"),
			EnergySource: types.ParseEnergySource(cols.str(r, "source")),
			Location: types.Location{
				Latitude:  cols.num(r, "lat"),
				Longitude: cols.num(r, "lng"),
				City:      cols.str(r, "city"),
				State:     cols.str(r, "state"),
			},
			CreatedDate: cols.date(r, "created"),
		}
		if a.ID == "" && a.Name == "" {
			continue
		}
		if a.ID == "" {
			a.ID = fmt.Sprintf("row-%d", i+2)
		}
		out = append(out, a)
	}
	return applyAssets(out, opts), nil
}

var investmentFields = [][2]string{
	{"id", "id"},
	{"project", "project name|project"},
	{"investor", "investor"},
	{"type", "type"},
	{"status", "status"},
	{"required", "required"},
	{"committed", "committed"},
	{"city", "city"},
	{"state", "state|region"},
	{"created", "created|date"},
}

func (s *XLSXSource) ListInvestments(ctx context.Context, opts ListOptions) ([]types.Investment, error) {
	rows, err := s.rows(ctx, SheetInvestments)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return []types.Investment{}, nil
	}
	cols := detect(rows[0], investmentFields)

	out := make([]types.Investment, 0, len(rows)-1)
	for i, r := range rows[1:] {
		inv := types.Investment{
			ID:              cols.str(r, "id"),
			ProjectName:     cols.str(r, "project"),
			InvestorName:    cols.str(r, "investor"),
			ProjectType:     types.ParseProjectType(cols.str(r, "type")),
			Status:          types.ParseInvestmentStatus(cols.str(r, "status")),
			AmountRequired:  cols.numOrZero(r, "required"),
			AmountCommitted: cols.numOrZero(r, "committed"),
			Location:        types.Location{City: cols.str(r, "city"), State: cols.str(r, "state")},
			CreatedDate:     cols.date(r, "created"),
		}
		if inv.ID == "" && inv.ProjectName == "" {
			continue
		}
		if inv.ID == "" {
			inv.ID = fmt.Sprintf("row-%d", i+2)
		}
		out = append(out, inv)
	}
	return applyInvestments(out, opts), nil
}

var performanceFields = [][2]string{
	{"plant", "plant"},
	{"id", "id"},
	{"efficiency", "efficiency"},
	{"rate", "production|output"},
	{"energy", "consumption|energy"},
	{"timestamp", "timestamp|time|date"},
}

func (s *XLSXSource) ListPerformance(ctx context.Context, opts ListOptions) ([]types.PlantPerformanceSample, error) {
	rows, err := s.rows(ctx, SheetPerformance)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return []types.PlantPerformanceSample{}, nil
	}
	cols := detect(rows[0], performanceFields)

	out := make([]types.PlantPerformanceSample, 0, len(rows)-1)
	for i, r := range rows[1:] {
		smp := types.PlantPerformanceSample{
			ID:                cols.str(r, "id"),
			PlantID:           cols.str(r, "plant"),
			Efficiency:        cols.numOrZero(r, "efficiency"),
			ProductionRate:    cols.numOrZero(r, "rate"),
			EnergyConsumption: cols.numOrZero(r, "energy"),
			Timestamp:         cols.date(r, "timestamp"),
		}
		if smp.PlantID == "" {
			continue
		}
		if smp.ID == "" {
			smp.ID = fmt.Sprintf("row-%d", i+2)
		}
		out = append(out, smp)
	}
	return applySamples(out, opts), nil
}
