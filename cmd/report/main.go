package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/AngelCh415/digmar-dash/internal/config"
	"github.com/AngelCh415/digmar-dash/internal/ingest"
	"github.com/AngelCh415/digmar-dash/internal/metrics"
	"github.com/AngelCh415/digmar-dash/internal/report"
	"github.com/AngelCh415/digmar-dash/internal/utils"
)

func main() {
	file := flag.String("file", "", "CSV path, http(s) URL, or - for stdin")
	format := flag.String("format", "text", "text | json | csv | xlsx")
	out := flag.String("out", "", "output file (defaults to stdout, required for xlsx)")
	table := flag.String("table", report.TableCampaigns, "campaigns | rows (csv, json)")
	cfgPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	if err := run(*cfgPath, *file, *format, *out, *table); err != nil {
		fmt.Fprintln(os.Stderr, "report:", err)
		os.Exit(1)
	}
}

func run(cfgPath, file, format, out, table string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	switch format {
	case "text", report.FormatJSON, report.FormatCSV, report.FormatXLSX:
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if table != report.TableCampaigns && table != report.TableRows {
		return fmt.Errorf("unknown table %q", table)
	}
	if format == report.FormatXLSX && out == "" {
		return errors.New("-out is required for xlsx")
	}

	t, err := load(cfg, file)
	if err != nil {
		return err
	}
	res := metrics.NewService(logger, nil).AnalyzeTable(t)

	w := io.Writer(os.Stdout)
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	fm := report.NewFormatter(cfg.Currency)
	if format == "text" {
		return fm.WriteText(w, res)
	}
	return fm.Export(w, res, format, table)
}

func load(cfg config.Config, file string) (*ingest.Table, error) {
	switch {
	case file == "":
		return nil, ingest.ErrEmptyInput
	case strings.HasPrefix(file, "http://"), strings.HasPrefix(file, "https://"):
		f := ingest.NewFetcher(ingest.NewHTTPClient(cfg.HTTPTimeout),
			utils.NewBackoff(cfg.FetchBackoff, cfg.FetchRetries), cfg.MaxUploadBytes)
		return f.Fetch(context.Background(), file)
	case file == "-":
		return ingest.ReadCSV(os.Stdin)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ReadCSV(f)
}
