package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/ports/blob"

	"github.com/google/uuid"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// AddImage guarda la imagen en el blob store bajo events/<id>/ y agrega
// la clave al evento.
func (s *Service) AddImage(ctx context.Context, clinicID, id, filename, contentType string, r io.Reader) (string, error) {
	if s.blobs == nil {
		return "", apperr.Collaborator("events.add_image", blob.ErrUnsupported)
	}
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return "", err
	}

	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := allowedImageTypes[ct]
	if !ok {
		return "", apperr.Invalid("file", "must be a jpeg, png, webp or gif image")
	}
	if e := strings.ToLower(path.Ext(filename)); e != "" && e != ".jpeg" {
		ext = e
	}

	key := fmt.Sprintf("events/%s/%s%s", id, uuid.NewString(), ext)
	if _, err := s.blobs.Put(ctx, key, r, blob.PutOptions{
		ContentType: ct,
		Metadata:    map[string]string{"event_id": id, "filename": path.Base(filename)},
	}); err != nil {
		return "", apperr.Collaborator("events.add_image", err)
	}
	if err := s.repo.AddImage(ctx, id, key); err != nil {
		_, _ = s.blobs.Delete(ctx, key)
		return "", apperr.Collaborator("events.add_image", err)
	}
	return key, nil
}

// ImageRef es una imagen resuelta: URL prefirmada o contenido directo.
type ImageRef struct {
	URL  string
	Info blob.Info
	Body io.ReadCloser
}

// Image resuelve la imagen n (base 0) del evento. Con S3 devuelve una URL
// prefirmada; con drivers sin presign devuelve el contenido.
func (s *Service) Image(ctx context.Context, clinicID, id string, n int) (ImageRef, error) {
	if s.blobs == nil {
		return ImageRef{}, apperr.Collaborator("events.image", blob.ErrUnsupported)
	}
	e, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return ImageRef{}, err
	}
	if n < 0 || n >= len(e.Images) {
		return ImageRef{}, apperr.NotFound("event image", fmt.Sprintf("%s/%d", id, n))
	}
	key := e.Images[n]

	url, err := s.blobs.PresignURL(ctx, key, s.presignTTL)
	if err == nil {
		return ImageRef{URL: url}, nil
	}
	if !errors.Is(err, blob.ErrUnsupported) {
		return ImageRef{}, apperr.Collaborator("events.image", err)
	}

	info, body, err := s.blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return ImageRef{}, apperr.NotFound("event image", key)
		}
		return ImageRef{}, apperr.Collaborator("events.image", err)
	}
	return ImageRef{Info: info, Body: body}, nil
}
