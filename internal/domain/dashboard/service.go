package dashboard

import (
	"context"
	"time"

	"equine-clinic/internal/domain/appointments"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/events"
	"equine-clinic/internal/domain/horses"
	"equine-clinic/internal/domain/inventory"
	"equine-clinic/internal/domain/invoices"
	"equine-clinic/internal/domain/owners"

	"golang.org/x/sync/errgroup"
)

const (
	upcomingAppointments = 5
	upcomingEvents       = 3
	revenueMonths        = 6
)

type Sources struct {
	Appointments interface {
		Pending(ctx context.Context, clinicID string, from calendar.Date) ([]appointments.Appointment, error)
	}
	Inventory interface {
		LowStock(ctx context.Context, clinicID string) ([]inventory.Item, error)
	}
	Events interface {
		Upcoming(ctx context.Context, clinicID string, n int) ([]events.Event, error)
	}
	Horses interface {
		List(ctx context.Context, clinicID string) ([]horses.Horse, error)
	}
	Owners interface {
		Search(ctx context.Context, clinicID, q string) ([]owners.Owner, error)
	}
	Histories interface {
		Count(ctx context.Context, clinicID string) (int, error)
	}
	Invoices interface {
		List(ctx context.Context, clinicID string) ([]invoices.Invoice, error)
	}
}

type Service struct {
	src Sources
	now func() time.Time
}

func NewService(src Sources) *Service {
	return &Service{src: src, now: time.Now}
}

type Counts struct {
	Horses    int `json:"horses"`
	Owners    int `json:"owners"`
	Histories int `json:"histories"`
}

type Summary struct {
	Today             calendar.Date
	AppointmentsToday []appointments.Appointment
	Upcoming          []appointments.Appointment
	LowStock          []inventory.Item
	UpcomingEvents    []events.Event
	Counts            Counts
}

// Summary carga en paralelo lo que muestra la pantalla de inicio.
// today vacío = hoy.
func (s *Service) Summary(ctx context.Context, clinicID string, today calendar.Date) (Summary, error) {
	if today.IsZero() {
		today = calendar.Today(s.now())
	}
	out := Summary{Today: today}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pending, err := s.src.Appointments.Pending(gctx, clinicID, today)
		if err != nil {
			return err
		}
		out.AppointmentsToday = make([]appointments.Appointment, 0)
		for _, a := range pending {
			if a.Date == today {
				out.AppointmentsToday = append(out.AppointmentsToday, a)
			}
		}
		if len(pending) > upcomingAppointments {
			pending = pending[:upcomingAppointments]
		}
		out.Upcoming = pending
		return nil
	})
	g.Go(func() error {
		items, err := s.src.Inventory.LowStock(gctx, clinicID)
		out.LowStock = items
		return err
	})
	g.Go(func() error {
		evs, err := s.src.Events.Upcoming(gctx, clinicID, upcomingEvents)
		out.UpcomingEvents = evs
		return err
	})
	g.Go(func() error {
		hs, err := s.src.Horses.List(gctx, clinicID)
		out.Counts.Horses = len(hs)
		return err
	})
	g.Go(func() error {
		os, err := s.src.Owners.Search(gctx, clinicID, "")
		out.Counts.Owners = len(os)
		return err
	})
	g.Go(func() error {
		n, err := s.src.Histories.Count(gctx, clinicID)
		out.Counts.Histories = n
		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return out, nil
}

type MonthRevenue struct {
	Month   string  `json:"month"` // "2024-03"
	Label   string  `json:"label"` // "mar 2024"
	Revenue float64 `json:"revenue"`
}

type Analytics struct {
	TotalRevenue   float64        `json:"total_revenue"`
	InvoiceCount   int            `json:"invoice_count"`
	MonthlyRevenue []MonthRevenue `json:"monthly_revenue"`
}

// Analytics suma el total con IVA de las facturas no anuladas y arma la serie
// de los últimos seis meses (el actual incluido) por fecha de factura.
func (s *Service) Analytics(ctx context.Context, clinicID string, now time.Time) (Analytics, error) {
	items, err := s.src.Invoices.List(ctx, clinicID)
	if err != nil {
		return Analytics{}, err
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(revenueMonths - 1), 0)
	months := make([]MonthRevenue, revenueMonths)
	index := make(map[string]int, revenueMonths)
	for i := range months {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		months[i] = MonthRevenue{Month: key, Label: monthLabel(m)}
		index[key] = i
	}

	var out Analytics
	for _, inv := range items {
		if inv.Status == invoices.StatusVoid {
			continue
		}
		out.TotalRevenue += inv.TotalWithTax
		out.InvoiceCount++
		if i, ok := index[inv.Date.Time().Format("2006-01")]; ok {
			months[i].Revenue += inv.TotalWithTax
		}
	}
	out.MonthlyRevenue = months
	return out, nil
}

// monthLabel reusa el formato de agenda sin el día ("mar 2024").
func monthLabel(m time.Time) string {
	d := calendar.FormatDisplay(calendar.FromTime(m))
	for i := 0; i < len(d); i++ {
		if d[i] == ' ' {
			return d[i+1:]
		}
	}
	return d
}
