package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore/internal/config"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const pingTimeout = 5 * time.Second

type MongoRepo struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// Open connects with the given profile, pings the primary and returns a
// repository over the books collection. The caller must Close it.
func Open(ctx context.Context, p config.Profile, timeout time.Duration) (*MongoRepo, error) {
	client, err := mongo.Connect(p.ClientOptions())
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo (%s profile): %w", p.Name, err)
	}

	return NewMongoRepo(client.Database(p.Database).Collection(config.CollectionName), timeout), nil
}

func NewMongoRepo(coll *mongo.Collection, timeout time.Duration) *MongoRepo {
	return &MongoRepo{client: coll.Database().Client(), coll: coll, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Close disconnects the underlying client.
func (r *MongoRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoRepo) Find(ctx context.Context, f Filter, fo FindOptions) ([]Book, error) {
	opts := options.Find()
	if p := projection(fo.Fields); p != nil {
		opts.SetProjection(p)
	}
	if fo.SortPrice != 0 {
		opts.SetSort(bson.D{{Key: "price", Value: fo.SortPrice}})
	}
	if fo.Limit > 0 {
		opts.SetLimit(fo.Limit)
	}
	if fo.Skip > 0 {
		opts.SetSkip(fo.Skip)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	cur, err := r.coll.Find(timeoutCtx, f.document(), opts)
	if err != nil {
		return nil, err
	}
	var out []Book
	if err := cur.All(timeoutCtx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) FindOneByTitle(ctx context.Context, title string) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	err := r.coll.FindOne(timeoutCtx, Filter{Title: title}.document()).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *MongoRepo) SetPriceByTitle(ctx context.Context, title string, price float64) (int64, int64, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{{Key: "price", Value: price}}}}
	res, err := r.coll.UpdateOne(timeoutCtx, Filter{Title: title}.document(), update)
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (r *MongoRepo) Insert(ctx context.Context, b *Book) error {
	if err := b.Validate(); err != nil {
		return err
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(timeoutCtx, b)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		b.ID = id
	}
	return nil
}

// InsertMany validates and inserts books in one round trip.
func (r *MongoRepo) InsertMany(ctx context.Context, books []Book) (int, error) {
	docs := make([]any, len(books))
	for i := range books {
		if err := books[i].Validate(); err != nil {
			return 0, fmt.Errorf("book %q: %w", books[i].Title, err)
		}
		docs[i] = books[i]
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertMany(timeoutCtx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// Drop removes the whole collection, indexes included.
func (r *MongoRepo) Drop(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.coll.Drop(timeoutCtx)
}

func (r *MongoRepo) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(timeoutCtx, Filter{Title: title}.document())
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoRepo) AveragePriceByGenre(ctx context.Context) ([]GenreAverage, error) {
	var out []GenreAverage
	if err := r.aggregate(ctx, averagePriceByGenrePipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) AuthorsByBookCount(ctx context.Context, limit int64) ([]AuthorCount, error) {
	var out []AuthorCount
	if err := r.aggregate(ctx, authorsByBookCountPipeline(limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) GroupByDecade(ctx context.Context) ([]DecadeBucket, error) {
	var out []DecadeBucket
	if err := r.aggregate(ctx, groupByDecadePipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Aggregate(timeoutCtx, pipeline)
	if err != nil {
		return err
	}
	return cur.All(timeoutCtx, out)
}

func (r *MongoRepo) CreateIndex(ctx context.Context, keys []IndexKey) (string, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.coll.Indexes().CreateOne(timeoutCtx, mongo.IndexModel{Keys: indexKeys(keys)})
}

func (r *MongoRepo) ExplainFind(ctx context.Context, f Filter) (ExplainStats, error) {
	cmd := bson.D{
		{Key: "explain", Value: bson.D{
			{Key: "find", Value: r.coll.Name()},
			{Key: "filter", Value: f.document()},
		}},
		{Key: "verbosity", Value: "executionStats"},
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	raw, err := r.coll.Database().RunCommand(timeoutCtx, cmd).Raw()
	if err != nil {
		return ExplainStats{}, err
	}
	return decodeExplain(raw)
}
