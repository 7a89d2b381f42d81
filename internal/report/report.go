// Package report derives the summary tables from the consolidated ledger:
// monthly visits per user with the control flag, visits per user by
// weekday, and the last access seen per user.
package report

import (
	"errors"
	"sort"
	"time"

	"github.com/Raphaelsan/csv/internal/access"
)

// ErrDegenerate reports an empty report group. It is a warning condition,
// not a failure: the run completes, but an empty weekday table usually
// means the input data is wrong upstream.
var ErrDegenerate = errors.New("report has no rows")

// flagThreshold is the distinct-active-day count at which a user's month
// is flagged for review.
const flagThreshold = 6

// MonthlyRow is one user-month with its distinct-active-day count and the
// SIM/NÃO control flag.
type MonthlyRow struct {
	Usuario  string
	Mes      string
	Acessos  int
	Controle string
}

// WeekdayRow is the raw record count for one user on one weekday.
type WeekdayRow struct {
	Usuario   string
	DiaSemana string
	Acessos   int
}

// LastSeenRow is the most recent access per user.
type LastSeenRow struct {
	Usuario      string
	UltimoAcesso time.Time
}

// Monthly counts distinct active days per user and month. A user badging
// three times on one day still counts that day once; the month's count is
// the number of such days, and the control flag is SIM at six or more.
func Monthly(records []access.Record) []MonthlyRow {
	type bucket struct {
		user, month string
	}
	days := make(map[bucket]map[string]struct{})
	for _, r := range records {
		b := bucket{r.Usuario, r.Month}
		if days[b] == nil {
			days[b] = make(map[string]struct{})
		}
		days[b][r.Day] = struct{}{}
	}

	rows := make([]MonthlyRow, 0, len(days))
	for b, d := range days {
		flag := "NÃO"
		if len(d) >= flagThreshold {
			flag = "SIM"
		}
		rows = append(rows, MonthlyRow{Usuario: b.user, Mes: b.month, Acessos: len(d), Controle: flag})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Usuario != rows[j].Usuario {
			return rows[i].Usuario < rows[j].Usuario
		}
		return rows[i].Mes < rows[j].Mes
	})
	return rows
}

// CountFlagged returns how many monthly rows carry the SIM control flag.
// This is the summary number reported to the operator after each run.
func CountFlagged(rows []MonthlyRow) int {
	n := 0
	for _, r := range rows {
		if r.Controle == "SIM" {
			n++
		}
	}
	return n
}

// Weekday counts raw records per user and weekday, ordered by user and
// then by the Monday-first week, not lexically. An empty result returns
// ErrDegenerate alongside the (nil) rows.
func Weekday(records []access.Record) ([]WeekdayRow, error) {
	type bucket struct {
		user, day string
	}
	counts := make(map[bucket]int)
	for _, r := range records {
		counts[bucket{r.Usuario, r.Weekday}]++
	}

	rows := make([]WeekdayRow, 0, len(counts))
	for b, n := range counts {
		rows = append(rows, WeekdayRow{Usuario: b.user, DiaSemana: b.day, Acessos: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Usuario != rows[j].Usuario {
			return rows[i].Usuario < rows[j].Usuario
		}
		return access.WeekdayIndex(rows[i].DiaSemana) < access.WeekdayIndex(rows[j].DiaSemana)
	})

	if len(rows) == 0 {
		return nil, ErrDegenerate
	}
	return rows, nil
}

// LastSeen returns the most recent timestamp per user, one row per user,
// sorted by user. Records with no user or no timestamp are skipped.
func LastSeen(records []access.Record) []LastSeenRow {
	last := make(map[string]time.Time)
	for _, r := range records {
		if r.Usuario == "" || r.Timestamp.IsZero() {
			continue
		}
		if ts, ok := last[r.Usuario]; !ok || r.Timestamp.After(ts) {
			last[r.Usuario] = r.Timestamp
		}
	}

	rows := make([]LastSeenRow, 0, len(last))
	for user, ts := range last {
		rows = append(rows, LastSeenRow{Usuario: user, UltimoAcesso: ts})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Usuario < rows[j].Usuario
	})
	return rows
}
