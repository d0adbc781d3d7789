// Package memory implementa un blob.Store en memoria del proceso.
// Es el driver por defecto en desarrollo y en los tests.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"sync"
	"time"

	"equine-clinic/internal/ports/blob"
)

type entry struct {
	info blob.Info
	data []byte
}

type Store struct {
	mu   sync.RWMutex
	objs map[string]entry
}

func New() *Store { return &Store{objs: make(map[string]entry)} }

func (s *Store) Driver() blob.Driver { return blob.DriverMemory }

// Put guarda un blob nuevo; falla si la clave ya existe.
func (s *Store) Put(_ context.Context, key string, r io.Reader, opts blob.PutOptions) (blob.Info, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return blob.Info{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objs[key]; exists {
		return blob.Info{}, fmt.Errorf("%w: %s", blob.ErrExists, key)
	}
	info := blob.Info{
		Key:          key,
		Size:         int64(len(b)),
		ContentType:  opts.ContentType,
		Metadata:     maps.Clone(opts.Metadata),
		LastModified: time.Now().UTC(),
	}
	s.objs[key] = entry{info: info, data: b}
	return info, nil
}

func (s *Store) Get(_ context.Context, key string) (blob.Info, io.ReadCloser, error) {
	s.mu.RLock()
	obj, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return blob.Info{}, nil, fmt.Errorf("%w: %s", blob.ErrNotFound, key)
	}
	info := obj.info
	info.Metadata = maps.Clone(info.Metadata)
	return info, io.NopCloser(bytes.NewReader(bytes.Clone(obj.data))), nil
}

// Delete devuelve true si el blob existía.
func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objs[key]
	delete(s.objs, key)
	return ok, nil
}

// PresignURL no está soportado en memoria: el handler sirve el contenido.
func (s *Store) PresignURL(context.Context, string, time.Duration) (string, error) {
	return "", blob.ErrUnsupported
}
