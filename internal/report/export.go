package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/AngelCh415/digmar-dash/internal/models"
)

// Export targets.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"

	TableCampaigns = "campaigns"
	TableRows      = "rows"
)

func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

func Filename(format, table string) string {
	if format == FormatXLSX {
		return "digmar-report.xlsx"
	}
	return fmt.Sprintf("digmar-%s.%s", table, format)
}

// Export writes one table (csv, json) or the whole workbook (xlsx).
func (f Formatter) Export(w io.Writer, res *models.Result, format, table string) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, res, table, true)
	case FormatXLSX:
		return f.WriteXLSX(w, res)
	case FormatJSON:
		return WriteJSON(w, res, table)
	}
	return fmt.Errorf("unknown export format %q", format)
}

func ratioField(r models.Ratio) string {
	if !r.Defined() {
		return ""
	}
	return strconv.FormatFloat(r.Float(), 'f', -1, 64)
}

func floatField(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func intField(n int64) string { return strconv.FormatInt(n, 10) }

// WriteCSV writes unformatted values; undefined ratios are empty cells. The
// BOM helps Excel detect UTF-8.
func WriteCSV(w io.Writer, res *models.Result, table string, bom bool) error {
	if bom {
		if _, err := io.WriteString(w, "\ufeff"); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}
	cw := csv.NewWriter(w)
	headers, records := rawRecords(res, table)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(r); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func rawRecords(res *models.Result, table string) ([]string, [][]string) {
	ratios := func(r models.Ratios) []string {
		return []string{ratioField(r.CTR), ratioField(r.CPC), ratioField(r.CR), ratioField(r.ROI)}
	}
	if table == TableRows {
		out := make([][]string, 0, len(res.Rows))
		for _, r := range res.Rows {
			rec := []string{r.Date, r.CampaignName, intField(r.Impressions), intField(r.Clicks),
				floatField(r.Cost), intField(r.Conversions), floatField(r.Revenue)}
			out = append(out, append(rec, ratios(r.Ratios)...))
		}
		return rowHeaders, out
	}
	out := make([][]string, 0, len(res.Campaigns))
	for _, a := range res.Campaigns {
		rec := []string{a.CampaignName, intField(a.Impressions), intField(a.Clicks),
			floatField(a.Cost), intField(a.Conversions), floatField(a.Revenue)}
		out = append(out, append(rec, ratios(a.Ratios)...))
	}
	return campaignHeaders, out
}

func WriteJSON(w io.Writer, res *models.Result, table string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	switch table {
	case TableRows:
		return enc.Encode(res.Rows)
	case TableCampaigns:
		return enc.Encode(res.Campaigns)
	}
	return enc.Encode(res)
}

const (
	sheetCampaigns = "Campaigns"
	sheetRows      = "Rows"
	sheetKPI       = "KPI"
)

func cellRatio(r models.Ratio) any {
	if !r.Defined() {
		return nil
	}
	return r.Float()
}

// WriteXLSX writes a workbook with KPI, Campaigns and Rows sheets, styled
// like the dashboard table.
func (f Formatter) WriteXLSX(w io.Writer, res *models.Result) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName("Sheet1", sheetCampaigns); err != nil {
		return err
	}
	for _, s := range []string{sheetRows, sheetKPI} {
		if _, err := x.NewSheet(s); err != nil {
			return fmt.Errorf("create sheet %s: %w", s, err)
		}
	}

	pct, err := x.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return err
	}
	moneyFmt := fmt.Sprintf(`"%s"#,##0`, strings.ReplaceAll(f.currency, `"`, `""`))
	money, err := x.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return err
	}

	camp := make([][]any, 0, len(res.Campaigns))
	for _, a := range res.Campaigns {
		camp = append(camp, []any{a.CampaignName, a.Impressions, a.Clicks, a.Cost, a.Conversions, a.Revenue,
			cellRatio(a.CTR), cellRatio(a.CPC), cellRatio(a.CR), cellRatio(a.ROI)})
	}
	if err := writeSheet(x, sheetCampaigns, campaignHeaders, camp); err != nil {
		return err
	}
	// cost, revenue, CPC as money; CTR, CR, ROI as percent
	for _, c := range []struct {
		cols  string
		style int
	}{{"D", money}, {"F", money}, {"H", money}, {"G", pct}, {"I:J", pct}} {
		if err := x.SetColStyle(sheetCampaigns, c.cols, c.style); err != nil {
			return err
		}
	}

	rows := make([][]any, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, []any{r.Date, r.CampaignName, r.Impressions, r.Clicks, r.Cost, r.Conversions, r.Revenue,
			cellRatio(r.CTR), cellRatio(r.CPC), cellRatio(r.CR), cellRatio(r.ROI)})
	}
	if err := writeSheet(x, sheetRows, rowHeaders, rows); err != nil {
		return err
	}
	for _, c := range []struct {
		cols  string
		style int
	}{{"E", money}, {"G", money}, {"I", money}, {"H", pct}, {"J:K", pct}} {
		if err := x.SetColStyle(sheetRows, c.cols, c.style); err != nil {
			return err
		}
	}

	k := res.KPI
	kpi := [][]any{
		{"Total Impressions", k.TotalImpressions},
		{"Total Clicks", k.TotalClicks},
		{"Total Cost", k.TotalCost},
		{"Total Conversions", k.TotalConversions},
		{"Total Revenue", k.TotalRevenue},
		{"CTR", cellRatio(k.OverallCTR)},
		{"Conversion Rate", cellRatio(k.OverallConversion)},
		{"ROI", cellRatio(k.OverallROI)},
	}
	if err := writeSheet(x, sheetKPI, []string{"kpi", "value"}, kpi); err != nil {
		return err
	}
	for _, c := range []struct {
		cell  string
		style int
	}{{"B4", money}, {"B6", money}, {"B7", pct}, {"B8", pct}, {"B9", pct}} {
		if err := x.SetCellStyle(sheetKPI, c.cell, c.cell, c.style); err != nil {
			return err
		}
	}

	if _, err := x.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeSheet(x *excelize.File, sheet string, headers []string, rows [][]any) error {
	head := make([]any, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	if err := x.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := r
		if err := x.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
