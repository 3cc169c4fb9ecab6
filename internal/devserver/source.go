package devserver

import (
	"context"
	"fmt"

	"github.com/erlandsona/elm-store-pattern/pkg/data"
)

// ErrImageNotFound is returned by image sources for unknown ids.
var ErrImageNotFound = fmt.Errorf("devserver: image not found")

// ImageSource resolves image metadata by id. The default is in-memory;
// S3Source serves a bucket.
type ImageSource interface {
	Image(ctx context.Context, id data.ImageID) (data.Image, error)
}

// MemorySource serves images from a fixed map.
type MemorySource struct {
	images map[data.ImageID]data.Image
}

// NewMemorySource indexes the given images by id.
func NewMemorySource(images ...data.Image) *MemorySource {
	m := &MemorySource{images: make(map[data.ImageID]data.Image, len(images))}
	for _, img := range images {
		m.images[img.ID] = img
	}
	return m
}

// Image implements ImageSource.
func (m *MemorySource) Image(_ context.Context, id data.ImageID) (data.Image, error) {
	img, ok := m.images[id]
	if !ok {
		return data.Image{}, ErrImageNotFound
	}
	return img, nil
}
