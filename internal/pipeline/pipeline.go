// Package pipeline composes ingestion, ledger merging and reporting into
// one run: raw export in, updated ledger and report files out.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Raphaelsan/csv/internal/access"
	"github.com/Raphaelsan/csv/internal/ledger"
	"github.com/Raphaelsan/csv/internal/report"
)

// Config holds the directory layout for one pipeline instance.
type Config struct {
	InputDir   string // where raw device exports are picked from
	LedgerPath string // the consolidated history file
	OutputDir  string // where the report files are written
}

// DefaultConfig lays everything out inside a single data directory, using
// the historical file names of the consolidated spreadsheets.
func DefaultConfig(dataDir string) Config {
	return Config{
		InputDir:   dataDir,
		LedgerPath: filepath.Join(dataDir, "acessos_consolidados.csv"),
		OutputDir:  dataDir,
	}
}

// MonthlyReportPath is where the monthly visit report is written.
func (c Config) MonthlyReportPath() string {
	return filepath.Join(c.OutputDir, "relatorio_acessos.csv")
}

// WeekdayReportPath is where the per-weekday report is written.
func (c Config) WeekdayReportPath() string {
	return filepath.Join(c.OutputDir, "relatorio_acessos_dia.csv")
}

// LastSeenReportPath is where the last-access report is written.
func (c Config) LastSeenReportPath() string {
	return filepath.Join(c.OutputDir, "ultimo_acesso.csv")
}

// Result summarizes one run for the operator.
type Result struct {
	Ingested     int      // valid records read from the export
	Merged       int      // ledger size after the merge
	Duplicates   int      // incoming records discarded as already known
	FlaggedUsers int      // monthly rows with the SIM control flag
	Warnings     []string // non-fatal conditions, e.g. an empty report group
}

// Processor runs the consolidation pipeline for one configured layout.
type Processor struct {
	cfg Config
	log *slog.Logger
}

// New builds a Processor. A nil logger silences diagnostics.
func New(cfg Config, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Processor{cfg: cfg, log: log}
}

// Process ingests one raw export, merges it into the ledger and rewrites
// the report files. Parse and validation failures abort before anything is
// written; the ledger is locked for the load-merge-save sequence.
func (p *Processor) Process(path string) (Result, error) {
	var res Result

	batch, err := access.Ingest(path)
	if err != nil {
		return res, err
	}
	res.Ingested = len(batch)
	p.log.Info("export ingested", "file", path, "records", len(batch))

	lock, err := ledger.Acquire(p.cfg.LedgerPath)
	if err != nil {
		return res, err
	}
	defer func() { _ = lock.Release() }()

	existing, err := ledger.Load(p.cfg.LedgerPath)
	if err != nil {
		return res, err
	}

	merged := ledger.Merge(existing, batch)
	res.Merged = len(merged)
	res.Duplicates = len(existing) + len(batch) - len(merged)
	if err := ledger.Save(p.cfg.LedgerPath, merged); err != nil {
		return res, err
	}
	p.log.Info("ledger updated",
		"path", p.cfg.LedgerPath,
		"records", res.Merged,
		"duplicates", res.Duplicates)

	return p.writeReports(merged, res)
}

// Reports rebuilds the report files from the current ledger without
// ingesting anything new.
func (p *Processor) Reports() (Result, error) {
	var res Result

	records, err := ledger.Load(p.cfg.LedgerPath)
	if err != nil {
		return res, err
	}
	if len(records) == 0 {
		return res, fmt.Errorf("ledger %s has no records", p.cfg.LedgerPath)
	}
	res.Merged = len(records)

	return p.writeReports(records, res)
}

// MonthlyRows builds the monthly report from the current ledger without
// touching any file, for export paths that render it elsewhere.
func (p *Processor) MonthlyRows() ([]report.MonthlyRow, error) {
	records, err := ledger.Load(p.cfg.LedgerPath)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ledger %s has no records", p.cfg.LedgerPath)
	}
	return report.Monthly(records), nil
}

func (p *Processor) writeReports(records []access.Record, res Result) (Result, error) {
	monthly := report.Monthly(records)
	res.FlaggedUsers = report.CountFlagged(monthly)
	if err := report.WriteMonthlyCSV(p.cfg.MonthlyReportPath(), monthly); err != nil {
		return res, err
	}

	weekday, err := report.Weekday(records)
	if errors.Is(err, report.ErrDegenerate) {
		res.Warnings = append(res.Warnings, "weekday report is empty; check the input data")
		p.log.Warn("weekday report is empty")
	} else if err != nil {
		return res, err
	}
	if err := report.WriteWeekdayCSV(p.cfg.WeekdayReportPath(), weekday); err != nil {
		return res, err
	}

	if err := report.WriteLastSeenCSV(p.cfg.LastSeenReportPath(), report.LastSeen(records)); err != nil {
		return res, err
	}

	p.log.Info("reports written",
		"monthly", p.cfg.MonthlyReportPath(),
		"weekday", p.cfg.WeekdayReportPath(),
		"last_seen", p.cfg.LastSeenReportPath(),
		"flagged_users", res.FlaggedUsers)
	return res, nil
}
