// Package calendar implementa la ventana semanal de la agenda:
// cálculo de la semana lunes-domingo, navegación y ubicación de citas en la grilla.
package calendar

import "time"

const DaysPerWeek = 7

// isoWeekday trata el domingo como 7 (no 0) para que el lunes sea siempre el primer día.
func isoWeekday(d Date) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WeekOf devuelve los 7 días (lunes a domingo) de la semana que contiene ref.
func WeekOf(ref Date) []Date {
	monday := ref.AddDays(-(isoWeekday(ref) - 1))

	out := make([]Date, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		out = append(out, monday.AddDays(i))
	}
	return out
}

func PreviousWeek(ref Date) Date { return ref.AddDays(-DaysPerWeek) }
func NextWeek(ref Date) Date     { return ref.AddDays(DaysPerWeek) }

func CurrentWeek(now time.Time) Date { return Today(now) }

// Navigate aplica "prev", "next" o "current"; cualquier otro valor deja ref igual.
func Navigate(ref Date, nav string, now time.Time) Date {
	switch nav {
	case "prev":
		return PreviousWeek(ref)
	case "next":
		return NextWeek(ref)
	case "current":
		return CurrentWeek(now)
	default:
		return ref
	}
}

// Contains indica si d es alguno de los días de la ventana.
func Contains(days []Date, d Date) bool {
	for _, day := range days {
		if day == d {
			return true
		}
	}
	return false
}
