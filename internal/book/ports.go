package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for the books collection.
type Repository interface {
	Find(ctx context.Context, f Filter, opts FindOptions) ([]Book, error)
	FindOneByTitle(ctx context.Context, title string) (Book, error)
	SetPriceByTitle(ctx context.Context, title string, price float64) (matched, modified int64, err error)
	Insert(ctx context.Context, b *Book) error
	DeleteByTitle(ctx context.Context, title string) (int64, error)
	AveragePriceByGenre(ctx context.Context) ([]GenreAverage, error)
	AuthorsByBookCount(ctx context.Context, limit int64) ([]AuthorCount, error)
	GroupByDecade(ctx context.Context) ([]DecadeBucket, error)
	CreateIndex(ctx context.Context, keys []IndexKey) (string, error)
	ExplainFind(ctx context.Context, f Filter) (ExplainStats, error)
}

// IndexKey is one field of an index; Order is 1 or -1.
type IndexKey struct {
	Field string
	Order int
}
