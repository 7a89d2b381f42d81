package access

import "time"

const (
	// TimestampLayout is the fixed format the reader device uses in its
	// exports: day/month/year hour:minute.
	TimestampLayout = "02/01/2006 15:04"

	// UnknownUser is the sentinel name the device writes when a badge could
	// not be matched to a registered person. Matched case-insensitively.
	UnknownUser = "usuario desconhecido"
)

// Record is one access event: a raw export row plus the parsed timestamp
// and the derived bucketing fields used by the reports.
type Record struct {
	Usuario      string
	Credencial   string
	CodigoCartao string
	PontoAcesso  string
	Dispositivo  string
	Data         string // raw timestamp text as exported
	Detalhe      string
	Observacoes  string
	RG           string
	CPF          string
	Matricula    string
	Departamento string
	Placa        string
	Modelo       string
	Cor          string
	Marca        string
	Status       string
	Sentido      string

	Timestamp time.Time
	Month     string // "2006-01"
	Day       string // "2006-01-02"
	Weekday   string // Portuguese day name
}

// SetTimestamp stores ts and recomputes the derived month, day and weekday
// fields from it. Derived fields are never trusted from disk; loading the
// ledger calls this again so they always agree with the timestamp.
func (r *Record) SetTimestamp(ts time.Time) {
	r.Timestamp = ts
	r.Data = ts.Format(TimestampLayout)
	r.Month = ts.Format("2006-01")
	r.Day = ts.Format("2006-01-02")
	r.Weekday = WeekdayName(ts.Weekday())
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
	time.Sunday:    "domingo",
}

// weekdayOrder maps day names to their slot in the Monday-first week.
var weekdayOrder = map[string]int{
	"segunda-feira": 0,
	"terça-feira":   1,
	"quarta-feira":  2,
	"quinta-feira":  3,
	"sexta-feira":   4,
	"sábado":        5,
	"domingo":       6,
}

// WeekdayName returns the Portuguese name for a weekday.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// WeekdayIndex returns the Monday-first position of a day name, so reports
// sort segunda-feira before domingo instead of lexically. Unknown names
// sort last.
func WeekdayIndex(name string) int {
	if i, ok := weekdayOrder[name]; ok {
		return i
	}
	return len(weekdayOrder)
}
