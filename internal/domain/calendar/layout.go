package calendar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Slots es la tabla fija de horas de la grilla (08:00 a 17:00).
var Slots = []string{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}

const firstSlotHour = 8

// DefaultSlotHeight es la altura en px de cada hora en la grilla.
const DefaultSlotHeight = 60

// Entry es lo mínimo que la grilla necesita de una cita.
type Entry struct {
	ID   string `json:"id"`
	Date Date   `json:"date"`
	Time string `json:"time"` // "HH:MM"
}

type Placement struct {
	ID   string  `json:"id"`
	Time string  `json:"time"`
	Top  float64 `json:"top"`
}

type DayColumn struct {
	Date    Date        `json:"date"`
	Display string      `json:"display"`
	Entries []Placement `json:"entries"`
}

// WeekView es la agenda semanal. Unslotted contiene las citas de la semana
// cuya hora cae fuera de la tabla de slots (no se pierden de la vista).
type WeekView struct {
	Days      []DayColumn `json:"days"`
	Unslotted []Entry     `json:"unslotted"`
}

func parseClock(hhmm string) (int, int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok {
		return 0, 0, fmt.Errorf("time %q: want HH:MM", hhmm)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("time %q: bad hour", hhmm)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q: bad minutes", hhmm)
	}
	return hour, minute, nil
}

// ValidClock valida "HH:MM".
func ValidClock(hhmm string) bool {
	_, _, err := parseClock(hhmm)
	return err == nil
}

// Position calcula top = hourIndex*slotHeight + (min/60)*slotHeight.
// ok=false si la hora no está en la tabla de slots.
func Position(hhmm string, slotHeight float64) (top float64, ok bool) {
	hour, minute, err := parseClock(hhmm)
	if err != nil {
		return 0, false
	}
	idx := hour - firstSlotHour
	if idx < 0 || idx >= len(Slots) {
		return 0, false
	}
	return float64(idx)*slotHeight + (float64(minute)/60)*slotHeight, true
}

// InWindow filtra las entradas cuya fecha coincide exactamente con algún día de la ventana.
func InWindow(entries []Entry, days []Date) []Entry {
	out := make([]Entry, 0)
	for _, e := range entries {
		if Contains(days, e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// Layout arma la vista semanal.
func Layout(days []Date, entries []Entry, slotHeight float64) WeekView {
	if slotHeight <= 0 {
		slotHeight = DefaultSlotHeight
	}

	view := WeekView{
		Days:      make([]DayColumn, 0, len(days)),
		Unslotted: make([]Entry, 0),
	}
	index := make(map[Date]int, len(days))
	for i, d := range days {
		index[d] = i
		view.Days = append(view.Days, DayColumn{Date: d, Display: FormatDisplay(d), Entries: make([]Placement, 0)})
	}

	for _, e := range InWindow(entries, days) {
		top, ok := Position(e.Time, slotHeight)
		if !ok {
			view.Unslotted = append(view.Unslotted, e)
			continue
		}
		col := &view.Days[index[e.Date]]
		col.Entries = append(col.Entries, Placement{ID: e.ID, Time: e.Time, Top: top})
	}

	for i := range view.Days {
		entries := view.Days[i].Entries
		sort.SliceStable(entries, func(a, b int) bool { return entries[a].Top < entries[b].Top })
	}
	return view
}
