package book

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func (f Filter) document() bson.D {
	var clauses []bson.D
	if f.Genre != "" {
		clauses = append(clauses, bson.D{{Key: "genre", Value: f.Genre}})
	}
	if f.Author != "" {
		clauses = append(clauses, bson.D{{Key: "author", Value: f.Author}})
	}
	if f.Title != "" {
		clauses = append(clauses, bson.D{{Key: "title", Value: f.Title}})
	}
	if f.InStock != nil {
		clauses = append(clauses, bson.D{{Key: "in_stock", Value: *f.InStock}})
	}
	if f.PublishedAfter != nil {
		clauses = append(clauses, bson.D{{Key: "published_year", Value: bson.D{{Key: "$gt", Value: *f.PublishedAfter}}}})
	}

	switch len(clauses) {
	case 0:
		return bson.D{}
	case 1:
		return clauses[0]
	}
	and := make(bson.A, len(clauses))
	for i, c := range clauses {
		and[i] = c
	}
	return bson.D{{Key: "$and", Value: and}}
}

func projection(fields []string) bson.D {
	if len(fields) == 0 {
		return nil
	}
	p := make(bson.D, 0, len(fields)+1)
	for _, f := range fields {
		p = append(p, bson.E{Key: f, Value: 1})
	}
	return append(p, bson.E{Key: "_id", Value: 0})
}

func indexKeys(keys []IndexKey) bson.D {
	d := make(bson.D, len(keys))
	for i, k := range keys {
		d[i] = bson.E{Key: k.Field, Value: k.Order}
	}
	return d
}

func averagePriceByGenrePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$genre"},
			{Key: "averagePrice", Value: bson.D{{Key: "$avg", Value: "$price"}}},
			{Key: "bookCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "averagePrice", Value: -1}}}},
	}
}

func authorsByBookCountPipeline(limit int64) mongo.Pipeline {
	p := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$author"},
			{Key: "bookCount", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "books", Value: bson.D{{Key: "$push", Value: "$title"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "bookCount", Value: -1}}}},
	}
	if limit > 0 {
		p = append(p, bson.D{{Key: "$limit", Value: limit}})
	}
	return p
}

// decade = floor(published_year / 10) * 10
func groupByDecadePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$addFields", Value: bson.D{
			{Key: "decade", Value: bson.D{{Key: "$multiply", Value: bson.A{
				bson.D{{Key: "$floor", Value: bson.D{{Key: "$divide", Value: bson.A{"$published_year", 10}}}}},
				10,
			}}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$decade"},
			{Key: "bookCount", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "books", Value: bson.D{{Key: "$push", Value: bson.D{
				{Key: "title", Value: "$title"},
				{Key: "year", Value: "$published_year"},
			}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}
