package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetTimestampDerivesFields(t *testing.T) {
	var r Record
	r.SetTimestamp(time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC)) // a Friday

	assert.Equal(t, "05/01/2024 09:30", r.Data)
	assert.Equal(t, "2024-01", r.Month)
	assert.Equal(t, "2024-01-05", r.Day)
	assert.Equal(t, "sexta-feira", r.Weekday)
}

func TestWeekdayNameCoversFullWeek(t *testing.T) {
	expected := map[time.Weekday]string{
		time.Monday:    "segunda-feira",
		time.Tuesday:   "terça-feira",
		time.Wednesday: "quarta-feira",
		time.Thursday:  "quinta-feira",
		time.Friday:    "sexta-feira",
		time.Saturday:  "sábado",
		time.Sunday:    "domingo",
	}
	for d, name := range expected {
		assert.Equal(t, name, WeekdayName(d))
	}
}

func TestWeekdayIndexMondayFirst(t *testing.T) {
	assert.Less(t, WeekdayIndex("segunda-feira"), WeekdayIndex("domingo"))
	assert.Less(t, WeekdayIndex("sábado"), WeekdayIndex("domingo"))
	assert.Equal(t, 0, WeekdayIndex("segunda-feira"))
}

func TestWeekdayIndexUnknownSortsLast(t *testing.T) {
	assert.Greater(t, WeekdayIndex("feriado"), WeekdayIndex("domingo"))
}

func TestRowRoundTrip(t *testing.T) {
	var r Record
	r.Usuario = "joao"
	r.Departamento = "TI"
	r.SetTimestamp(time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC))

	row := r.Row()
	assert.Len(t, row, len(Columns))

	back := FromRow(row)
	assert.Equal(t, "joao", back.Usuario)
	assert.Equal(t, "TI", back.Departamento)
	assert.Equal(t, "05/01/2024 09:00", back.Data)
}
