package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/digmar-dash/internal/ingest"
)

const sample = `date,campaign_name,impressions,clicks,cost,conversions,revenue
2025-08-01,A,100,10,50,2,200
2025-08-02,A,200,20,100,4,400
2025-08-01,B,50,5,25,1,50
`

func writeInput(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ads.csv")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestRunCSV(t *testing.T) {
	in := writeInput(t, sample)
	out := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, run("", in, "csv", out, "campaigns"))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	recs, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "A", recs[1][0])
	assert.Equal(t, "300", recs[1][1])
}

func TestRunText(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, run("", writeInput(t, sample), "text", out, "campaigns"))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "271.43%")
}

func TestRunErrors(t *testing.T) {
	assert.ErrorIs(t, run("", "", "text", "", "campaigns"), ingest.ErrEmptyInput)
	assert.ErrorIs(t, run("", writeInput(t, "date,clicks\n"), "text", "", "campaigns"), ingest.ErrMissingColumns)
	assert.Error(t, run("", writeInput(t, sample), "pdf", "", "campaigns"))
	assert.Error(t, run("", writeInput(t, sample), "csv", "", "ads"))
	assert.Error(t, run("", writeInput(t, sample), "xlsx", "", "campaigns"))
}
