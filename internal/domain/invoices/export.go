package invoices

import (
	"context"
	"fmt"
	"io"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/billing"
	"equine-clinic/internal/domain/calendar"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Facturas"

var exportHeaders = []string{"Número", "Fecha", "Caballo", "Propietario", "Subtotal", "IVA", "Total", "Estado"}

// ExportXLSX escribe un libro con una fila por factura (el mismo orden que List).
func (s *Service) ExportXLSX(ctx context.Context, clinicID string, w io.Writer) error {
	items, err := s.List(ctx, clinicID)
	if err != nil {
		return err
	}
	horses, err := s.horses.Names(ctx, clinicID)
	if err != nil {
		return err
	}
	owners, err := s.owners.Names(ctx, clinicID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return apperr.Collaborator("invoices.export", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return apperr.Collaborator("invoices.export", err)
	}
	for i, inv := range items {
		row := []any{
			inv.Number,
			calendar.FormatDisplay(inv.Date),
			horses[inv.HorseID],
			owners[inv.OwnerID],
			billing.Round2(inv.NetTotal),
			billing.Round2(inv.Tax),
			billing.Round2(inv.TotalWithTax),
			string(inv.Status),
		}
		if err := f.SetSheetRow(exportSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return apperr.Collaborator("invoices.export", err)
		}
	}

	if err := f.Write(w); err != nil {
		return apperr.Collaborator("invoices.export", err)
	}
	return nil
}
