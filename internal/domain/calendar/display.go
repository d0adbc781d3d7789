package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// monthAbbr es la tabla de abreviaturas usada en la agenda ("14 mar 2024").
var monthAbbr = [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// FormatDisplay produce "DD mon YYYY". Solo para presentación.
func FormatDisplay(d Date) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d %s %d", d.Day, monthAbbr[d.Month-1], d.Year)
}

// ParseDisplay acepta "DD mon YYYY" (mayúsculas/minúsculas indistintas, punto final opcional en el mes).
func ParseDisplay(s string) (Date, error) {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("display date %q: want DD mon YYYY", s)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("display date %q: bad day", s)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("display date %q: bad year", s)
	}

	abbr := strings.TrimSuffix(parts[1], ".")
	month := time.Month(0)
	for i, m := range monthAbbr {
		if m == abbr {
			month = time.Month(i + 1)
			break
		}
	}
	if month == 0 {
		return Date{}, fmt.Errorf("display date %q: unknown month %q", s, abbr)
	}

	d := NewDate(year, month, day)
	if d.Day != day || d.Month != month {
		return Date{}, fmt.Errorf("display date %q: day out of range", s)
	}
	return d, nil
}

// ParseAny acepta ISO (YYYY-MM-DD) o el formato de agenda.
func ParseAny(s string) (Date, error) {
	if d, err := ParseISO(s); err == nil {
		return d, nil
	}
	return ParseDisplay(s)
}
