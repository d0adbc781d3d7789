package memory

import (
	"errors"
	"strings"
	"sync"

	"equine-clinic/internal/domain/apperr"
)

var errIDRequired = errors.New("id required")

// table es la colección in-memory genérica que usan todos los repos:
// map por id protegido con RWMutex. Los valores se copian al entrar y salir.
type table[T any] struct {
	mu     sync.RWMutex
	entity string
	idOf   func(T) string
	byID   map[string]T
	order  []string // orden de inserción, para listados estables
}

func newTable[T any](entity string, idOf func(T) string) *table[T] {
	return &table[T]{
		entity: entity,
		idOf:   idOf,
		byID:   make(map[string]T),
	}
}

func (t *table[T]) insert(v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.idOf(v)
	if strings.TrimSpace(id) == "" {
		return errIDRequired
	}
	if _, exists := t.byID[id]; exists {
		return apperr.ErrAlreadyExists
	}
	t.byID[id] = v
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) update(v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.idOf(v)
	if _, exists := t.byID[id]; !exists {
		return apperr.NotFound(t.entity, id)
	}
	t.byID[id] = v
	return nil
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.byID[id]
	if !ok {
		var zero T
		return zero, apperr.NotFound(t.entity, id)
	}
	return v, nil
}

func (t *table[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[id]; !ok {
		return apperr.NotFound(t.entity, id)
	}
	t.removeLocked(id)
	return nil
}

func (t *table[T]) removeLocked(id string) {
	delete(t.byID, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// filter devuelve, en orden de inserción, los valores que cumplen keep.
func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0)
	for _, id := range t.order {
		v := t.byID[id]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// mutate aplica fn sobre el valor bajo lock exclusivo (compare-and-swap in-memory).
// Si fn devuelve error no se guarda nada.
func (t *table[T]) mutate(id string, fn func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.byID[id]
	if !ok {
		var zero T
		return zero, apperr.NotFound(t.entity, id)
	}
	if err := fn(&v); err != nil {
		var zero T
		return zero, err
	}
	t.byID[id] = v
	return v, nil
}

// mutateWhere aplica fn a todos los que cumplen match. Devuelve cuántos cambió.
func (t *table[T]) mutateWhere(match func(T) bool, fn func(*T)) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for id, v := range t.byID {
		if !match(v) {
			continue
		}
		fn(&v)
		t.byID[id] = v
		n++
	}
	return n
}

func (t *table[T]) removeWhere(match func(T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	var ids []string
	for id, v := range t.byID {
		if match(v) {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		t.removeLocked(id)
	}
	return len(ids)
}
