package catalog

import (
	"context"

	"booklend/internal/platform/googlebooks"
)

//go:generate mockgen -source=ports.go -destination=mock_client.go -package=catalog

// Client is the external catalog API.
type Client interface {
	Search(ctx context.Context, query string) (*googlebooks.SearchResponse, error)
	GetVolume(ctx context.Context, id string) (*googlebooks.Volume, error)
}
