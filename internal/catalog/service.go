package catalog

import (
	"context"
	"errors"
	"fmt"

	"booklend/internal/apperror"
	"booklend/internal/platform/googlebooks"
)

var ErrVolumeNotFound = apperror.NotFound("catalog item not found")

type Service struct {
	client Client
}

func NewService(client Client) *Service {
	return &Service{client: client}
}

// Search queries the catalog, rewriting ISBN-looking queries first.
func (s *Service) Search(ctx context.Context, query string) (SearchResult, error) {
	res, err := s.client.Search(ctx, NormalizeQuery(query))
	if err != nil {
		return SearchResult{}, fmt.Errorf("catalog search: %w", err)
	}
	out := SearchResult{TotalItems: res.TotalItems, Items: make([]Volume, 0, len(res.Items))}
	for _, v := range res.Items {
		out.Items = append(out.Items, fromAPI(v))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Volume, error) {
	v, err := s.client.GetVolume(ctx, id)
	if errors.Is(err, googlebooks.ErrNotFound) {
		return Volume{}, ErrVolumeNotFound
	}
	if err != nil {
		return Volume{}, fmt.Errorf("catalog get %s: %w", id, err)
	}
	return fromAPI(*v), nil
}
