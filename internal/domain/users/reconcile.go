package users

import (
	"context"
	"sort"
	"strings"

	"equine-clinic/internal/domain/apperr"
)

// DuplicateReport resume un grupo de usuarios con el mismo email.
type DuplicateReport struct {
	Email   string   `json:"email"`
	Kept    string   `json:"kept"`
	Deleted []string `json:"deleted"`
	Error   string   `json:"error,omitempty"`
}

// ReconcileDuplicates agrupa por email exacto y, en cada grupo con más de un
// registro, conserva el más reciente por CreatedAt (sin fecha = epoch 0; empates
// en el orden del listado) y borra el resto.
// Un borrado fallido queda en Error y se sigue con los demás. Es idempotente.
func (s *Service) ReconcileDuplicates(ctx context.Context) ([]DuplicateReport, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Collaborator("users.list_all", err)
	}

	groups := make(map[string][]User)
	for _, u := range all {
		groups[u.Email] = append(groups[u.Email], u)
	}

	reports := make([]DuplicateReport, 0)
	for email, group := range groups {
		if len(group) < 2 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].createdUnix() > group[j].createdUnix() })

		rep := DuplicateReport{Email: email, Kept: group[0].ID, Deleted: make([]string, 0, len(group)-1)}
		var failures []string
		for _, u := range group[1:] {
			if err := s.repo.Delete(ctx, u.ID); err != nil {
				failures = append(failures, u.ID+": "+err.Error())
				continue
			}
			rep.Deleted = append(rep.Deleted, u.ID)
			s.deleted.Inc()
		}
		rep.Error = strings.Join(failures, "; ")
		reports = append(reports, rep)

		s.log.Info("duplicate users reconciled", map[string]any{
			"email":   email,
			"kept":    rep.Kept,
			"deleted": len(rep.Deleted),
			"failed":  len(failures),
		})
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Email < reports[j].Email })
	return reports, nil
}
