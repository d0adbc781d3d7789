package horses

import "context"

// OwnerOf expone el propietario de un caballo.
// Lo usa invoices para sellar la factura sin importar el repo de caballos.
func (s *Service) OwnerOf(ctx context.Context, clinicID, horseID string) (string, error) {
	h, err := s.Get(ctx, clinicID, horseID)
	if err != nil {
		return "", err
	}
	return h.OwnerID, nil
}

// Dependent es una colección con registros que referencian a un caballo
// (historias, citas, facturas). Se borran en cascada con el caballo.
type Dependent interface {
	DeleteByHorse(ctx context.Context, horseID string) error
}

// RegisterDependent agrega una colección a la cascada de Delete.
// Se llama al armar el router, antes de servir tráfico.
func (s *Service) RegisterDependent(name string, d Dependent) {
	s.dependents = append(s.dependents, namedDependent{name: name, d: d})
}

type namedDependent struct {
	name string
	d    Dependent
}
