package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"strconv"

	"github.com/Raphaelsan/csv/internal/access"
)

// WriteMonthlyCSV writes the monthly report, replacing any previous file.
func WriteMonthlyCSV(path string, rows []MonthlyRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Usuario, r.Mes, strconv.Itoa(r.Acessos), r.Controle})
	}
	return writeCSV(path, []string{"Usuario", "Mes", "Nº de Acessos", "Controle"}, out)
}

// WriteWeekdayCSV writes the per-weekday report, replacing any previous file.
func WriteWeekdayCSV(path string, rows []WeekdayRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Usuario, r.DiaSemana, strconv.Itoa(r.Acessos)})
	}
	return writeCSV(path, []string{"Usuario", "Dia da Semana", "Acessos Semana"}, out)
}

// WriteLastSeenCSV writes the last-access report, replacing any previous file.
func WriteLastSeenCSV(path string, rows []LastSeenRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Usuario, r.UltimoAcesso.Format(access.TimestampLayout)})
	}
	return writeCSV(path, []string{"Usuario", "Ultimo Acesso"}, out)
}

func writeCSV(path string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
