package queries

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"bookstore/internal/book"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T) (*Runner, *book.MockRepository, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := book.NewMockRepository(ctrl)
	var out bytes.Buffer
	return NewRunner(repo, &out), repo, &out
}

func TestRunner_FindByGenre(t *testing.T) {
	r, repo, out := newTestRunner(t)
	ctx := context.Background()

	orwell := book.Book{Title: "1984", Author: "George Orwell", Genre: "Fiction"}
	repo.EXPECT().Find(gomock.Any(), book.Filter{Genre: "Fiction"}, book.FindOptions{}).Return([]book.Book{orwell}, nil)

	books, err := r.FindByGenre(ctx)
	require.NoError(t, err)
	assert.Equal(t, []book.Book{orwell}, books)
	assert.Contains(t, out.String(), "Found 1 fiction books:")
	assert.Contains(t, out.String(), `- "1984" by George Orwell`)
}

func TestRunner_FindPublishedAfter(t *testing.T) {
	r, repo, out := newTestRunner(t)

	year := 1950
	repo.EXPECT().Find(gomock.Any(), book.Filter{PublishedAfter: &year}, book.FindOptions{}).
		Return([]book.Book{{Title: "The Alchemist", PublishedYear: 1988}}, nil)

	_, err := r.FindPublishedAfter(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), `- "The Alchemist" (1988)`)
}

func TestRunner_FindInStockAfter(t *testing.T) {
	r, repo, _ := newTestRunner(t)

	year, inStock := 2010, true
	repo.EXPECT().Find(gomock.Any(), book.Filter{InStock: &inStock, PublishedAfter: &year}, book.FindOptions{}).Return(nil, nil)

	books, err := r.FindInStockAfter(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestRunner_FindWithProjection(t *testing.T) {
	r, repo, out := newTestRunner(t)

	want := book.FindOptions{Fields: []string{"title", "author", "price"}}
	repo.EXPECT().Find(gomock.Any(), book.Filter{Genre: "Fiction"}, want).
		Return([]book.Book{{Title: "1984", Author: "George Orwell", Price: 10.99}}, nil)

	_, err := r.FindWithProjection(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), `- "1984" by George Orwell - $10.99`)
}

func TestRunner_UpdatePrice(t *testing.T) {
	t.Run("updates and re-reads", func(t *testing.T) {
		r, repo, out := newTestRunner(t)

		gomock.InOrder(
			repo.EXPECT().SetPriceByTitle(gomock.Any(), "1984", 13.99).Return(int64(1), int64(1), nil),
			repo.EXPECT().FindOneByTitle(gomock.Any(), "1984").Return(book.Book{Title: "1984", Price: 13.99}, nil),
		)

		res, err := r.UpdatePrice(context.Background())
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.Modified)
		assert.Equal(t, 13.99, res.Book.Price)
		assert.Contains(t, out.String(), "Matched 1, modified 1 document(s)")
		assert.Contains(t, out.String(), `New price for "1984": $13.99`)
	})

	t.Run("missing document", func(t *testing.T) {
		r, repo, _ := newTestRunner(t)

		repo.EXPECT().SetPriceByTitle(gomock.Any(), "1984", 13.99).Return(int64(0), int64(0), nil)
		repo.EXPECT().FindOneByTitle(gomock.Any(), "1984").Return(book.Book{}, book.ErrNotFound)

		res, err := r.UpdatePrice(context.Background())
		assert.ErrorIs(t, err, book.ErrNotFound)
		assert.Zero(t, res.Modified)
	})

	t.Run("price already set", func(t *testing.T) {
		r, repo, out := newTestRunner(t)

		repo.EXPECT().SetPriceByTitle(gomock.Any(), "1984", 13.99).Return(int64(1), int64(0), nil)
		repo.EXPECT().FindOneByTitle(gomock.Any(), "1984").Return(book.Book{Title: "1984", Price: 13.99}, nil)

		res, err := r.UpdatePrice(context.Background())
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.Matched)
		assert.Zero(t, res.Modified)
		assert.Contains(t, out.String(), "Matched 1, modified 0 document(s)")
	})

	t.Run("update error", func(t *testing.T) {
		r, repo, _ := newTestRunner(t)

		repo.EXPECT().SetPriceByTitle(gomock.Any(), "1984", 13.99).Return(int64(0), int64(0), errors.New("server selection timeout"))

		_, err := r.UpdatePrice(context.Background())
		assert.Error(t, err)
	})
}

func TestRunner_InsertAndDelete(t *testing.T) {
	r, repo, out := newTestRunner(t)

	gomock.InOrder(
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *book.Book) error {
			assert.Equal(t, NewTestBook(), *b)
			return nil
		}),
		repo.EXPECT().DeleteByTitle(gomock.Any(), "Test Book").Return(int64(1), nil),
	)

	deleted, err := r.InsertAndDelete(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
	assert.Contains(t, out.String(), "Deleted 1 document(s)")
}

func TestRunner_InsertFailureSkipsDelete(t *testing.T) {
	r, repo, _ := newTestRunner(t)

	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("duplicate key"))

	_, err := r.InsertAndDelete(context.Background())
	assert.ErrorContains(t, err, "insert test book")
}

func TestRunner_SortByPrice(t *testing.T) {
	r, repo, out := newTestRunner(t)

	asc := []book.Book{{Title: "Pride and Prejudice", Price: 7.99}}
	desc := []book.Book{{Title: "The Lord of the Rings", Price: 19.99}}
	repo.EXPECT().Find(gomock.Any(), book.Filter{}, book.FindOptions{SortPrice: 1, Limit: 5}).Return(asc, nil)
	repo.EXPECT().Find(gomock.Any(), book.Filter{}, book.FindOptions{SortPrice: -1, Limit: 5}).Return(desc, nil)

	res, err := r.SortByPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, asc, res.Ascending)
	assert.Equal(t, desc, res.Descending)
	assert.Contains(t, out.String(), `- "The Lord of the Rings" - $19.99`)
}

func TestRunner_Paginate(t *testing.T) {
	r, repo, out := newTestRunner(t)

	page1 := []book.Book{{Title: "A"}, {Title: "B"}}
	page2 := []book.Book{{Title: "F"}}
	repo.EXPECT().Find(gomock.Any(), book.Filter{}, book.FindOptions{Limit: 5, Skip: 0}).Return(page1, nil)
	repo.EXPECT().Find(gomock.Any(), book.Filter{}, book.FindOptions{Limit: 5, Skip: 5}).Return(page2, nil)

	res, err := r.Paginate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, page1, res.Page1)
	assert.Equal(t, page2, res.Page2)
	assert.Contains(t, out.String(), "1. \"A\"\n2. \"B\"")
	assert.Contains(t, out.String(), "6. \"F\"")
}

func TestRunner_Aggregations(t *testing.T) {
	t.Run("average price by genre", func(t *testing.T) {
		r, repo, out := newTestRunner(t)
		repo.EXPECT().AveragePriceByGenre(gomock.Any()).Return([]book.GenreAverage{
			{Genre: "Fantasy", AveragePrice: 17.49, BookCount: 2},
		}, nil)

		_, err := r.AveragePriceByGenre(context.Background())
		require.NoError(t, err)
		assert.Contains(t, out.String(), "- Fantasy: $17.49 (2 books)")
	})

	t.Run("top author", func(t *testing.T) {
		r, repo, out := newTestRunner(t)
		repo.EXPECT().AuthorsByBookCount(gomock.Any(), int64(1)).Return([]book.AuthorCount{
			{Author: "George Orwell", BookCount: 2, Books: []string{"1984", "Animal Farm"}},
		}, nil)

		_, err := r.TopAuthor(context.Background())
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Author with most books: George Orwell (2 books)")
		assert.Contains(t, out.String(), "Books: 1984, Animal Farm")
	})

	t.Run("top author on empty collection", func(t *testing.T) {
		r, repo, out := newTestRunner(t)
		repo.EXPECT().AuthorsByBookCount(gomock.Any(), int64(1)).Return(nil, nil)

		rows, err := r.TopAuthor(context.Background())
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.NotContains(t, out.String(), "Author with most books")
	})

	t.Run("group by decade", func(t *testing.T) {
		r, repo, out := newTestRunner(t)
		repo.EXPECT().GroupByDecade(gomock.Any()).Return([]book.DecadeBucket{
			{Decade: 1940, BookCount: 1, Books: []book.DecadeEntry{{Title: "1984", Year: 1949}}},
		}, nil)

		_, err := r.GroupByDecade(context.Background())
		require.NoError(t, err)
		assert.Contains(t, out.String(), "1940s: 1 books")
		assert.Contains(t, out.String(), `  - "1984" (1949)`)
	})
}

func TestRunner_Indexing(t *testing.T) {
	t.Run("title index", func(t *testing.T) {
		r, repo, out := newTestRunner(t)
		repo.EXPECT().CreateIndex(gomock.Any(), []book.IndexKey{{Field: "title", Order: 1}}).Return("title_1", nil)

		name, err := r.CreateTitleIndex(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "title_1", name)
		assert.Contains(t, out.String(), "Index created: title_1")
	})

	t.Run("compound index", func(t *testing.T) {
		r, repo, _ := newTestRunner(t)
		keys := []book.IndexKey{{Field: "author", Order: 1}, {Field: "published_year", Order: -1}}
		repo.EXPECT().CreateIndex(gomock.Any(), keys).Return("author_1_published_year_-1", nil)

		name, err := r.CreateAuthorYearIndex(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "author_1_published_year_-1", name)
	})

	t.Run("explain", func(t *testing.T) {
		r, repo, out := newTestRunner(t)
		repo.EXPECT().ExplainFind(gomock.Any(), book.Filter{Title: "1984"}).Return(book.ExplainStats{
			ExecutionTimeMillis: 2,
			TotalDocsExamined:   1,
			TotalKeysExamined:   1,
			Stage:               "FETCH",
			IndexName:           "title_1",
		}, nil)

		stats, err := r.ExplainTitleQuery(context.Background())
		require.NoError(t, err)
		assert.EqualValues(t, 1, stats.TotalDocsExamined)
		assert.Contains(t, out.String(), "Execution time: 2ms")
		assert.Contains(t, out.String(), "Documents examined: 1")
		assert.Contains(t, out.String(), "Index used: title_1")
	})

	t.Run("explain without index", func(t *testing.T) {
		r, repo, out := newTestRunner(t)
		repo.EXPECT().ExplainFind(gomock.Any(), gomock.Any()).Return(book.ExplainStats{Stage: "COLLSCAN", TotalDocsExamined: 14}, nil)

		_, err := r.ExplainTitleQuery(context.Background())
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Index used: none (COLLSCAN)")
	})
}
