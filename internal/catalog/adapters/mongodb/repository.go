// Package mongodb is the MongoDB adapter for the catalog repository port.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jcmexdev/shoply-api/internal/catalog/domain"
	"github.com/jcmexdev/shoply-api/internal/pkg/paging"
)

const collectionName = "products"

// productDocument is the persistence shape of a product. Kept separate from
// the domain entity so bson concerns never leak out of this package.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Slug        string             `bson:"slug"`
	Title       string             `bson:"title"`
	Price       int64              `bson:"price"`
	Stock       int                `bson:"stock"`
	Brand       string             `bson:"brand,omitempty"`
	Category    string             `bson:"category,omitempty"`
	Images      []string           `bson:"images,omitempty"`
	Description string             `bson:"description,omitempty"`
	Rating      float64            `bson:"rating,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{col: db.Collection(collectionName)}
}

// EnsureIndexes creates the unique slug index and the createdAt index used
// by listings. Safe to call on every startup.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("mongodb: ensure product indexes: %w", err)
	}
	return nil
}

func (r *Repository) Insert(ctx context.Context, p domain.Product) (domain.Product, error) {
	now := time.Now().UTC()
	doc := toDocument(p)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return domain.Product{}, fmt.Errorf("mongodb: insert product: %w", err)
	}
	return toDomain(doc), nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, domain.ErrNotFound
	}

	var doc productDocument
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Product{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("mongodb: find product %s: %w", id, err)
	}
	return toDomain(doc), nil
}

func (r *Repository) FindBySlugs(ctx context.Context, slugs []string) ([]domain.Product, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"slug": bson.M{"$in": slugs}})
	if err != nil {
		return nil, fmt.Errorf("mongodb: find products by slug: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb: decode slug matches: %w", err)
	}

	out := make([]domain.Product, len(docs))
	for i, doc := range docs {
		out[i] = toDomain(doc)
	}
	return out, nil
}

func (r *Repository) List(ctx context.Context, query string, page paging.Params) ([]domain.Product, int64, error) {
	filter := bson.M{}
	if query != "" {
		// Substring, case-insensitive, over the three searchable fields.
		// QuoteMeta keeps user input from being interpreted as a pattern.
		re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"title": re},
			bson.M{"brand": re},
			bson.M{"category": re},
		}}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("mongodb: count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(page.Skip())).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("mongodb: list products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("mongodb: decode product page: %w", err)
	}

	out := make([]domain.Product, len(docs))
	for i, doc := range docs {
		out[i] = toDomain(doc)
	}
	return out, total, nil
}

func (r *Repository) Update(ctx context.Context, id string, patch domain.Patch) (domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, domain.ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Slug != nil {
		set["slug"] = *patch.Slug
	}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}
	if patch.Brand != nil {
		set["brand"] = *patch.Brand
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Images != nil {
		set["images"] = *patch.Images
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc productDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Product{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("mongodb: update product %s: %w", id, err)
	}
	return toDomain(doc), nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongodb: delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toDocument(p domain.Product) productDocument {
	return productDocument{
		Slug:        p.Slug,
		Title:       p.Title,
		Price:       p.Price,
		Stock:       p.Stock,
		Brand:       p.Brand,
		Category:    p.Category,
		Images:      p.Images,
		Description: p.Description,
		Rating:      p.Rating,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toDomain(doc productDocument) domain.Product {
	return domain.Product{
		ID:          doc.ID.Hex(),
		Slug:        doc.Slug,
		Title:       doc.Title,
		Price:       doc.Price,
		Stock:       doc.Stock,
		Brand:       doc.Brand,
		Category:    doc.Category,
		Images:      doc.Images,
		Description: doc.Description,
		Rating:      doc.Rating,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}
