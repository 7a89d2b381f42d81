package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raphaelsan/csv/internal/access"
	"github.com/Raphaelsan/csv/internal/ledger"
)

const exportHeader = "Usuario;Credencial;Codigo Cartao;Nome Ponto de Acesso;Dispositivo;Data;Detalhe;Observacoes;RG;CPF;Matricula;Departamento;Placa;Modelo;Cor;Marca;Status;Sentido"

func exportRow(user, ts string) string {
	fields := make([]string, 18)
	fields[0] = user
	fields[5] = ts
	return strings.Join(fields, ";")
}

func writeExport(t *testing.T, dir, name string, rows ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := exportHeader + "\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestProcessor(t *testing.T) (*Processor, Config) {
	t.Helper()
	cfg := DefaultConfig(t.TempDir())
	return New(cfg, nil), cfg
}

func TestProcessConsolidatesAndReports(t *testing.T) {
	proc, cfg := newTestProcessor(t)
	file := writeExport(t, cfg.InputDir, "acessos.csv",
		exportRow("joao", "05/01/2024 09:00"),
		exportRow("joao", "05/01/2024 18:00"),
		exportRow("Usuario Desconhecido", "06/01/2024 10:00"),
	)

	res, err := proc.Process(file)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Ingested)
	assert.Equal(t, 2, res.Merged)
	assert.Equal(t, 0, res.Duplicates)
	assert.Equal(t, 0, res.FlaggedUsers)
	assert.Empty(t, res.Warnings)

	// Only joao's two badge-ins reach the ledger.
	records, err := ledger.Load(cfg.LedgerPath)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "joao", r.Usuario)
	}

	// Two badge-ins on the same day roll up into one monthly visit.
	monthly, err := os.ReadFile(cfg.MonthlyReportPath())
	require.NoError(t, err)
	assert.Contains(t, string(monthly), "joao;2024-01;1;NÃO")

	weekday, err := os.ReadFile(cfg.WeekdayReportPath())
	require.NoError(t, err)
	assert.Contains(t, string(weekday), "joao;sexta-feira;2")

	lastSeen, err := os.ReadFile(cfg.LastSeenReportPath())
	require.NoError(t, err)
	assert.Contains(t, string(lastSeen), "joao;05/01/2024 18:00")
}

func TestProcessRerunIsIdempotent(t *testing.T) {
	proc, cfg := newTestProcessor(t)
	file := writeExport(t, cfg.InputDir, "acessos.csv",
		exportRow("joao", "05/01/2024 09:00"),
		exportRow("joao", "05/01/2024 18:00"),
	)

	first, err := proc.Process(file)
	require.NoError(t, err)

	second, err := proc.Process(file)
	require.NoError(t, err)

	assert.Equal(t, first.Merged, second.Merged)
	assert.Equal(t, 2, second.Duplicates)

	records, err := ledger.Load(cfg.LedgerPath)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestProcessMergesAcrossFiles(t *testing.T) {
	proc, cfg := newTestProcessor(t)
	fileA := writeExport(t, cfg.InputDir, "janeiro.csv", exportRow("joao", "05/01/2024 09:00"))
	fileB := writeExport(t, cfg.InputDir, "fevereiro.csv", exportRow("joao", "05/02/2024 09:00"))

	_, err := proc.Process(fileA)
	require.NoError(t, err)
	res, err := proc.Process(fileB)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Merged)
}

func TestProcessKeepsStoredRecordOnConflict(t *testing.T) {
	proc, cfg := newTestProcessor(t)

	first := writeExport(t, cfg.InputDir, "a.csv",
		"joao;;;;;05/01/2024 09:00;entrada original;;;;;;;;;;;")
	_, err := proc.Process(first)
	require.NoError(t, err)

	second := writeExport(t, cfg.InputDir, "b.csv",
		"joao;;;;;05/01/2024 09:00;entrada reimportada;;;;;;;;;;;")
	_, err = proc.Process(second)
	require.NoError(t, err)

	records, err := ledger.Load(cfg.LedgerPath)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "entrada original", records[0].Detalhe)
}

func TestProcessValidationFailureLeavesNoLedger(t *testing.T) {
	proc, cfg := newTestProcessor(t)
	file := writeExport(t, cfg.InputDir, "acessos.csv",
		exportRow("joao", "sem data"),
	)

	_, err := proc.Process(file)

	assert.ErrorIs(t, err, access.ErrValidation)
	_, statErr := os.Stat(cfg.LedgerPath)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestProcessParseFailureLeavesNoLedger(t *testing.T) {
	proc, cfg := newTestProcessor(t)
	path := filepath.Join(cfg.InputDir, "acessos.csv")
	require.NoError(t, os.WriteFile(path, []byte("Usuario;Credencial\njoao;123\n"), 0644))

	_, err := proc.Process(path)

	assert.ErrorIs(t, err, access.ErrParse)
	_, statErr := os.Stat(cfg.LedgerPath)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestProcessFailsWhenLedgerLocked(t *testing.T) {
	proc, cfg := newTestProcessor(t)
	file := writeExport(t, cfg.InputDir, "acessos.csv", exportRow("joao", "05/01/2024 09:00"))

	held, err := ledger.Acquire(cfg.LedgerPath)
	require.NoError(t, err)
	defer func() { _ = held.Release() }()

	_, err = proc.Process(file)

	assert.ErrorContains(t, err, "locked by another run")
}

func TestProcessReleasesLock(t *testing.T) {
	proc, cfg := newTestProcessor(t)
	file := writeExport(t, cfg.InputDir, "acessos.csv", exportRow("joao", "05/01/2024 09:00"))

	_, err := proc.Process(file)
	require.NoError(t, err)

	lock, err := ledger.Acquire(cfg.LedgerPath)
	require.NoError(t, err)
	require.NoError(t, lock.Release())
}

func TestProcessFlagsFrequentVisitors(t *testing.T) {
	proc, cfg := newTestProcessor(t)
	rows := make([]string, 0, 6)
	for day := 1; day <= 6; day++ {
		rows = append(rows, exportRow("assiduo", fmt.Sprintf("%02d/01/2024 09:00", day)))
	}
	file := writeExport(t, cfg.InputDir, "acessos.csv", rows...)

	res, err := proc.Process(file)

	require.NoError(t, err)
	assert.Equal(t, 1, res.FlaggedUsers)

	monthly, err := os.ReadFile(cfg.MonthlyReportPath())
	require.NoError(t, err)
	assert.Contains(t, string(monthly), "assiduo;2024-01;6;SIM")
}

func TestReportsRegeneratesFromLedger(t *testing.T) {
	proc, cfg := newTestProcessor(t)
	file := writeExport(t, cfg.InputDir, "acessos.csv", exportRow("joao", "05/01/2024 09:00"))

	_, err := proc.Process(file)
	require.NoError(t, err)
	require.NoError(t, os.Remove(cfg.MonthlyReportPath()))

	res, err := proc.Reports()

	require.NoError(t, err)
	assert.Equal(t, 1, res.Merged)
	_, statErr := os.Stat(cfg.MonthlyReportPath())
	assert.NoError(t, statErr)
}

func TestReportsFailsWithoutLedger(t *testing.T) {
	proc, _ := newTestProcessor(t)

	_, err := proc.Reports()

	assert.ErrorContains(t, err, "no records")
}

func TestMonthlyRows(t *testing.T) {
	proc, cfg := newTestProcessor(t)
	file := writeExport(t, cfg.InputDir, "acessos.csv", exportRow("joao", "05/01/2024 09:00"))

	_, err := proc.Process(file)
	require.NoError(t, err)

	rows, err := proc.MonthlyRows()

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "joao", rows[0].Usuario)
}
