// Package queries runs the fixed set of bookstore queries against the books
// collection and prints a readable summary of each.
package queries

import (
	"context"
	"fmt"
	"io"
	"strings"

	"bookstore/internal/book"
)

const (
	Genre          = "Fiction"
	PublishedAfter = 1950
	Author         = "George Orwell"
	TargetTitle    = "1984"
	NewPrice       = 13.99
	RecentAfter    = 2010
	PageSize       = 5
	TestTitle      = "Test Book"
)

// NewTestBook returns the document inserted and then deleted by InsertAndDelete.
func NewTestBook() book.Book {
	return book.Book{
		Title:         TestTitle,
		Author:        "Test Author",
		Genre:         "Test Genre",
		PublishedYear: 2023,
		Price:         9.99,
		InStock:       true,
		Pages:         100,
		Publisher:     "Test Publisher",
	}
}

// PriceUpdate is the outcome of UpdatePrice.
type PriceUpdate struct {
	Matched  int64
	Modified int64
	Book     book.Book
}

type SortedBooks struct {
	Ascending  []book.Book
	Descending []book.Book
}

type Pages struct {
	Page1 []book.Book
	Page2 []book.Book
}

// Runner issues each query through the repository and reports to out.
type Runner struct {
	repo      book.Repository
	out       io.Writer
	limiter   Limiter
	observers []Observer
}

func NewRunner(repo book.Repository, out io.Writer, opts ...Option) *Runner {
	r := &Runner{repo: repo, out: out}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) FindByGenre(ctx context.Context) ([]book.Book, error) {
	r.printf("\n=== Finding books by genre (%s) ===\n", Genre)
	books, err := r.repo.Find(ctx, book.Filter{Genre: Genre}, book.FindOptions{})
	if err != nil {
		return nil, fmt.Errorf("find by genre: %w", err)
	}
	r.printf("Found %d fiction books:\n", len(books))
	for _, b := range books {
		r.printf("- %q by %s\n", b.Title, b.Author)
	}
	return books, nil
}

func (r *Runner) FindPublishedAfter(ctx context.Context) ([]book.Book, error) {
	r.printf("\n=== Finding books published after %d ===\n", PublishedAfter)
	year := PublishedAfter
	books, err := r.repo.Find(ctx, book.Filter{PublishedAfter: &year}, book.FindOptions{})
	if err != nil {
		return nil, fmt.Errorf("find published after: %w", err)
	}
	r.printf("Found %d books published after %d:\n", len(books), PublishedAfter)
	r.printTitlesWithYear(books)
	return books, nil
}

func (r *Runner) FindByAuthor(ctx context.Context) ([]book.Book, error) {
	r.printf("\n=== Finding books by %s ===\n", Author)
	books, err := r.repo.Find(ctx, book.Filter{Author: Author}, book.FindOptions{})
	if err != nil {
		return nil, fmt.Errorf("find by author: %w", err)
	}
	r.printf("Found %d books by %s:\n", len(books), Author)
	r.printTitlesWithYear(books)
	return books, nil
}

// UpdatePrice sets the price of TargetTitle and re-reads it. A missing
// document surfaces as book.ErrNotFound.
func (r *Runner) UpdatePrice(ctx context.Context) (PriceUpdate, error) {
	r.printf("\n=== Updating price of %q ===\n", TargetTitle)
	matched, modified, err := r.repo.SetPriceByTitle(ctx, TargetTitle, NewPrice)
	if err != nil {
		return PriceUpdate{}, fmt.Errorf("update price: %w", err)
	}
	r.printf("Matched %d, modified %d document(s)\n", matched, modified)

	updated, err := r.repo.FindOneByTitle(ctx, TargetTitle)
	if err != nil {
		return PriceUpdate{Matched: matched, Modified: modified}, fmt.Errorf("verify price of %q: %w", TargetTitle, err)
	}
	r.printf("New price for %q: $%.2f\n", TargetTitle, updated.Price)
	return PriceUpdate{Matched: matched, Modified: modified, Book: updated}, nil
}

// InsertAndDelete inserts the NewTestBook document and deletes it again by title.
func (r *Runner) InsertAndDelete(ctx context.Context) (int64, error) {
	r.printf("\n=== Attempting to delete %q (if exists) ===\n", TestTitle)
	tb := NewTestBook()
	if err := r.repo.Insert(ctx, &tb); err != nil {
		return 0, fmt.Errorf("insert test book: %w", err)
	}
	deleted, err := r.repo.DeleteByTitle(ctx, TestTitle)
	if err != nil {
		return 0, fmt.Errorf("delete test book: %w", err)
	}
	r.printf("Deleted %d document(s)\n", deleted)
	return deleted, nil
}

func (r *Runner) FindInStockAfter(ctx context.Context) ([]book.Book, error) {
	r.printf("\n=== Finding books in stock AND published after %d ===\n", RecentAfter)
	year, inStock := RecentAfter, true
	books, err := r.repo.Find(ctx, book.Filter{InStock: &inStock, PublishedAfter: &year}, book.FindOptions{})
	if err != nil {
		return nil, fmt.Errorf("find in stock: %w", err)
	}
	r.printf("Found %d books in stock published after %d:\n", len(books), RecentAfter)
	r.printTitlesWithYear(books)
	return books, nil
}

func (r *Runner) FindWithProjection(ctx context.Context) ([]book.Book, error) {
	r.printf("\n=== Finding books with projection (title, author, price only) ===\n")
	books, err := r.repo.Find(ctx, book.Filter{Genre: Genre}, book.FindOptions{
		Fields: []string{"title", "author", "price"},
	})
	if err != nil {
		return nil, fmt.Errorf("find with projection: %w", err)
	}
	r.printf("Found %d fiction books (limited fields):\n", len(books))
	for _, b := range books {
		r.printf("- %q by %s - $%.2f\n", b.Title, b.Author, b.Price)
	}
	return books, nil
}

func (r *Runner) SortByPrice(ctx context.Context) (SortedBooks, error) {
	r.printf("\n=== Finding books sorted by price (ascending) ===\n")
	asc, err := r.repo.Find(ctx, book.Filter{}, book.FindOptions{SortPrice: 1, Limit: PageSize})
	if err != nil {
		return SortedBooks{}, fmt.Errorf("sort ascending: %w", err)
	}
	r.printPrices(asc)

	r.printf("\n=== Finding books sorted by price (descending) ===\n")
	desc, err := r.repo.Find(ctx, book.Filter{}, book.FindOptions{SortPrice: -1, Limit: PageSize})
	if err != nil {
		return SortedBooks{}, fmt.Errorf("sort descending: %w", err)
	}
	r.printPrices(desc)
	return SortedBooks{Ascending: asc, Descending: desc}, nil
}

func (r *Runner) Paginate(ctx context.Context) (Pages, error) {
	r.printf("\n=== Implementing pagination (%d books per page) ===\n", PageSize)
	page1, err := r.repo.Find(ctx, book.Filter{}, book.FindOptions{Limit: PageSize, Skip: 0})
	if err != nil {
		return Pages{}, fmt.Errorf("page 1: %w", err)
	}
	page2, err := r.repo.Find(ctx, book.Filter{}, book.FindOptions{Limit: PageSize, Skip: PageSize})
	if err != nil {
		return Pages{}, fmt.Errorf("page 2: %w", err)
	}

	r.printf("Page 1:\n")
	for i, b := range page1 {
		r.printf("%d. %q\n", i+1, b.Title)
	}
	r.printf("\nPage 2:\n")
	for i, b := range page2 {
		r.printf("%d. %q\n", i+1+PageSize, b.Title)
	}
	return Pages{Page1: page1, Page2: page2}, nil
}

func (r *Runner) AveragePriceByGenre(ctx context.Context) ([]book.GenreAverage, error) {
	r.printf("\n=== Calculating average price by genre ===\n")
	rows, err := r.repo.AveragePriceByGenre(ctx)
	if err != nil {
		return nil, fmt.Errorf("average price by genre: %w", err)
	}
	r.printf("Average prices by genre:\n")
	for _, g := range rows {
		r.printf("- %s: $%.2f (%d books)\n", g.Genre, g.AveragePrice, g.BookCount)
	}
	return rows, nil
}

func (r *Runner) TopAuthor(ctx context.Context) ([]book.AuthorCount, error) {
	r.printf("\n=== Finding author with most books ===\n")
	rows, err := r.repo.AuthorsByBookCount(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("top author: %w", err)
	}
	if len(rows) > 0 {
		top := rows[0]
		r.printf("Author with most books: %s (%d books)\n", top.Author, top.BookCount)
		r.printf("Books: %s\n", strings.Join(top.Books, ", "))
	}
	return rows, nil
}

func (r *Runner) GroupByDecade(ctx context.Context) ([]book.DecadeBucket, error) {
	r.printf("\n=== Grouping books by publication decade ===\n")
	rows, err := r.repo.GroupByDecade(ctx)
	if err != nil {
		return nil, fmt.Errorf("group by decade: %w", err)
	}
	r.printf("Books by decade:\n")
	for _, d := range rows {
		r.printf("\n%ds: %d books\n", d.Decade, d.BookCount)
		for _, b := range d.Books {
			r.printf("  - %q (%d)\n", b.Title, b.Year)
		}
	}
	return rows, nil
}

func (r *Runner) CreateTitleIndex(ctx context.Context) (string, error) {
	r.printf("\n=== Creating index on title field ===\n")
	name, err := r.repo.CreateIndex(ctx, []book.IndexKey{{Field: "title", Order: 1}})
	if err != nil {
		return "", fmt.Errorf("create title index: %w", err)
	}
	r.printf("Index created: %s\n", name)
	return name, nil
}

func (r *Runner) CreateAuthorYearIndex(ctx context.Context) (string, error) {
	r.printf("\n=== Creating compound index on author and published_year ===\n")
	name, err := r.repo.CreateIndex(ctx, []book.IndexKey{
		{Field: "author", Order: 1},
		{Field: "published_year", Order: -1},
	})
	if err != nil {
		return "", fmt.Errorf("create compound index: %w", err)
	}
	r.printf("Compound index created: %s\n", name)
	return name, nil
}

func (r *Runner) ExplainTitleQuery(ctx context.Context) (book.ExplainStats, error) {
	r.printf("\n=== Demonstrating index performance with explain() ===\n")
	stats, err := r.repo.ExplainFind(ctx, book.Filter{Title: TargetTitle})
	if err != nil {
		return book.ExplainStats{}, fmt.Errorf("explain title query: %w", err)
	}
	r.printf("\nQuery performance analysis:\n")
	r.printf("Execution time: %dms\n", stats.ExecutionTimeMillis)
	r.printf("Documents examined: %d\n", stats.TotalDocsExamined)
	if stats.UsedIndex() {
		r.printf("Index used: %s (%d keys examined)\n", stats.IndexName, stats.TotalKeysExamined)
	} else {
		r.printf("Index used: none (%s)\n", stats.Stage)
	}
	return stats, nil
}

func (r *Runner) printTitlesWithYear(books []book.Book) {
	for _, b := range books {
		r.printf("- %q (%d)\n", b.Title, b.PublishedYear)
	}
}

func (r *Runner) printPrices(books []book.Book) {
	for _, b := range books {
		r.printf("- %q - $%.2f\n", b.Title, b.Price)
	}
}
