package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/digmar-dash/internal/models"
)

const sample = `date,campaign_name,impressions,clicks,cost,conversions,revenue
2025-08-01,A,100,10,50,2,200
2025-08-02,A,200,20,100,4,400
2025-08-01,B,50,5,25,1,50
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, models.RequiredColumns, tbl.Columns)
	require.Len(t, tbl.Records, 3)
	assert.Equal(t, models.InputRecord{
		Date: "2025-08-02", CampaignName: "A",
		Impressions: 200, Clicks: 20, Cost: 100, Conversions: 4, Revenue: 400,
	}, tbl.Records[1])
}

func TestReadCSVExtraColumnsAnyOrder(t *testing.T) {
	in := "\ufeffrevenue,channel,conversions,cost,clicks,impressions,campaign_name,date\n" +
		"12.5,search,1,2.25,3,40,Promo Q3,2025-08-01\n"
	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tbl.Records, 1)

	r := tbl.Records[0]
	assert.Equal(t, "Promo Q3", r.CampaignName)
	assert.Equal(t, int64(40), r.Impressions)
	assert.Equal(t, int64(3), r.Clicks)
	assert.Equal(t, 2.25, r.Cost)
	assert.Equal(t, 12.5, r.Revenue)
	assert.Equal(t, "revenue", tbl.Columns[0], "BOM stripped")
}

func TestReadCSVHeaderOnly(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("date,campaign_name,impressions,clicks,cost,conversions,revenue\n"))
	require.NoError(t, err)
	assert.Empty(t, tbl.Records)
}

func TestReadCSVEmpty(t *testing.T) {
	for _, in := range []string{"", "\n\n"} {
		_, err := ReadCSV(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
}

func TestReadCSVMissingColumns(t *testing.T) {
	in := "date,campaign_name,impressions,clicks,cost\n2025-08-01,A,1,1,1\n"
	_, err := ReadCSV(strings.NewReader(in))
	require.ErrorIs(t, err, ErrMissingColumns)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"conversions", "revenue"}, se.Missing)
}

func TestReadCSVParseErrors(t *testing.T) {
	header := "date,campaign_name,impressions,clicks,cost,conversions,revenue\n"
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{name: "text in integer column", row: "d,A,many,1,1,1,1", column: "impressions"},
		{name: "fraction in integer column", row: "d,A,10,1.5,1,1,1", column: "clicks"},
		{name: "empty integer cell", row: "d,A,10,1,1,,1", column: "conversions"},
		{name: "text in money column", row: "d,A,10,1,Rp5,1,1", column: "cost"},
		{name: "infinite money", row: "d,A,10,1,1,1,Inf", column: "revenue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := header + "d,A,1,1,1,1,1\n" + tt.row + "\n"
			_, err := ReadCSV(strings.NewReader(in))

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.column, pe.Column)
			assert.Equal(t, 3, pe.Line)
		})
	}
}

func TestReadCSVRaggedRow(t *testing.T) {
	in := "date,campaign_name,impressions,clicks,cost,conversions,revenue\nd,A,1,1\n"
	_, err := ReadCSV(strings.NewReader(in))
	assert.Error(t, err)
}

func TestReadCSVSignedRevenue(t *testing.T) {
	in := "date,campaign_name,impressions,clicks,cost,conversions,revenue\nd,A,1,1,10, 0 ,-3.5\n"
	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, -3.5, tbl.Records[0].Revenue)
	assert.Equal(t, int64(0), tbl.Records[0].Conversions)
}
