package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"bookstore/internal/book"
	"bookstore/internal/config"
)

func main() {
	var (
		drop  = flag.Bool("drop", false, "Drop the books collection before seeding")
		extra = flag.Int("extra", 0, "Number of generated books to add after the sample set")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	repo, err := book.Open(ctx, cfg.Mongo, time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close(ctx)

	if *drop {
		log.Println("Dropping books collection...")
		if err := repo.Drop(ctx); err != nil {
			log.Fatalf("Failed to drop books: %v", err)
		}
	}

	books := book.SampleBooks()
	if *extra > 0 {
		log.Printf("Generating %d books...", *extra)
		books = append(books, generateBooks(*extra, rand.New(rand.NewSource(time.Now().UnixNano())))...)
	}

	log.Println("Inserting books into database...")
	n, err := repo.InsertMany(ctx, books)
	if err != nil {
		log.Fatalf("Failed to insert books: %v", err)
	}
	log.Printf("Successfully inserted %d books!", n)
}

var (
	genres     = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Fantasy"}
	publishers = []string{"Penguin", "HarperCollins", "Oxford", "Cambridge", "MIT Press", "Springer", "Wiley", "Elsevier"}
	words      = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
)

func generateBooks(count int, rng *rand.Rand) []book.Book {
	out := make([]book.Book, count)
	for i := range out {
		out[i] = book.Book{
			Title:         fmt.Sprintf("Book Title %d - %s", i+1, words[rng.Intn(len(words))]),
			Author:        fmt.Sprintf("Author %d", rng.Intn(count/4+1)+1),
			Genre:         genres[rng.Intn(len(genres))],
			PublishedYear: 1950 + rng.Intn(75),
			Price:         float64(499+rng.Intn(2500)) / 100,
			InStock:       rng.Intn(4) != 0,
			Pages:         100 + rng.Intn(800),
			Publisher:     publishers[rng.Intn(len(publishers))],
		}
		if (i+1)%1000 == 0 {
			log.Printf("Generated %d/%d books", i+1, count)
		}
	}
	return out
}
