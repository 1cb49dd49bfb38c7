package book

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

var validate = validator.New()

// Book is a document in the books collection.
type Book struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string        `bson:"title" json:"title" validate:"required"`
	Author        string        `bson:"author" json:"author,omitempty" validate:"required"`
	Genre         string        `bson:"genre" json:"genre,omitempty"`
	PublishedYear int           `bson:"published_year" json:"published_year,omitempty" validate:"gte=0"`
	Price         float64       `bson:"price" json:"price,omitempty" validate:"gte=0"`
	InStock       bool          `bson:"in_stock" json:"in_stock,omitempty"`
	Pages         int           `bson:"pages" json:"pages,omitempty" validate:"gte=0"`
	Publisher     string        `bson:"publisher" json:"publisher,omitempty"`
}

// Validate checks the fields required before a book is written.
func (b Book) Validate() error {
	return validate.Struct(b)
}

// Filter selects documents. Zero fields are ignored.
type Filter struct {
	Genre          string
	Author         string
	Title          string
	PublishedAfter *int
	InStock        *bool
}

// FindOptions shapes a find: projection, price ordering and a bounded page.
type FindOptions struct {
	Fields    []string
	SortPrice int
	Limit     int64
	Skip      int64
}

// GenreAverage is one row of the average-price-by-genre pipeline.
type GenreAverage struct {
	Genre        string  `bson:"_id" json:"genre"`
	AveragePrice float64 `bson:"averagePrice" json:"average_price"`
	BookCount    int     `bson:"bookCount" json:"book_count"`
}

// AuthorCount is one row of the books-per-author pipeline.
type AuthorCount struct {
	Author    string   `bson:"_id" json:"author"`
	BookCount int      `bson:"bookCount" json:"book_count"`
	Books     []string `bson:"books" json:"books"`
}

type DecadeEntry struct {
	Title string `bson:"title" json:"title"`
	Year  int    `bson:"year" json:"year"`
}

// DecadeBucket is one row of the group-by-decade pipeline.
type DecadeBucket struct {
	Decade    int           `bson:"_id" json:"decade"`
	BookCount int           `bson:"bookCount" json:"book_count"`
	Books     []DecadeEntry `bson:"books" json:"books"`
}

// ExplainStats summarises an explain("executionStats") reply.
type ExplainStats struct {
	ExecutionTimeMillis int64
	TotalDocsExamined   int64
	TotalKeysExamined   int64
	NReturned           int64
	Stage               string
	IndexName           string
}

// UsedIndex reports whether the winning plan scanned an index.
func (s ExplainStats) UsedIndex() bool {
	return s.IndexName != ""
}

// Decade maps a publication year to the start of its decade.
func Decade(year int) int {
	d := year / 10
	if year < 0 && year%10 != 0 {
		d--
	}
	return d * 10
}
