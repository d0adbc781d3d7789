// Package search implementa la búsqueda por substring usada en todos los listados.
package search

import "strings"

// Matches indica si q (sin distinguir mayúsculas) está contenido en alguno de los campos.
// q vacío coincide siempre.
func Matches(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter aplica Matches sobre items usando fields para extraer los campos de cada uno.
func Filter[T any](items []T, q string, fields func(T) []string) []T {
	if strings.TrimSpace(q) == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Matches(q, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}
