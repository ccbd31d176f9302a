// Package mongodb is the MongoDB adapter for the orders repository port.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jcmexdev/shoply-api/internal/orders/domain"
	"github.com/jcmexdev/shoply-api/internal/pkg/paging"
)

const collectionName = "orders"

type orderItemDocument struct {
	ProductID string `bson:"productId"`
	Title     string `bson:"title"`
	UnitPrice int64  `bson:"unitPrice"`
	Quantity  int    `bson:"quantity"`
}

type orderDocument struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty"`
	Reference       string              `bson:"reference"`
	CustomerName    string              `bson:"customerName"`
	CustomerPhone   string              `bson:"customerPhone,omitempty"`
	CustomerAddress string              `bson:"customerAddress"`
	PaymentMethod   string              `bson:"paymentMethod"`
	Note            string              `bson:"note,omitempty"`
	Items           []orderItemDocument `bson:"items"`
	Subtotal        int64               `bson:"subtotal"`
	ShippingFee     int64               `bson:"shippingFee"`
	Total           int64               `bson:"total"`
	Status          string              `bson:"status"`
	CreatedAt       time.Time           `bson:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt"`
}

type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{col: db.Collection(collectionName)}
}

// EnsureIndexes creates the createdAt index backing the admin listing and a
// unique index on the customer-facing reference code.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{
			Keys:    bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("mongodb: ensure order indexes: %w", err)
	}
	return nil
}

func (r *Repository) Insert(ctx context.Context, o domain.Order) (domain.Order, error) {
	now := time.Now().UTC()
	doc := toDocument(o)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return domain.Order{}, fmt.Errorf("mongodb: insert order: %w", err)
	}
	return toDomain(doc), nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Order{}, domain.ErrNotFound
	}

	var doc orderDocument
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("mongodb: find order %s: %w", id, err)
	}
	return toDomain(doc), nil
}

func (r *Repository) List(ctx context.Context, page paging.Params) ([]domain.Order, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("mongodb: count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(page.Skip())).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("mongodb: list orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("mongodb: decode order page: %w", err)
	}

	out := make([]domain.Order, len(docs))
	for i, doc := range docs {
		out[i] = toDomain(doc)
	}
	return out, total, nil
}

func (r *Repository) Update(ctx context.Context, id string, patch domain.Patch) (domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Order{}, domain.ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.CustomerName != nil {
		set["customerName"] = *patch.CustomerName
	}
	if patch.CustomerPhone != nil {
		set["customerPhone"] = *patch.CustomerPhone
	}
	if patch.CustomerAddress != nil {
		set["customerAddress"] = *patch.CustomerAddress
	}
	if patch.Note != nil {
		set["note"] = *patch.Note
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc orderDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("mongodb: update order %s: %w", id, err)
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
		return fmt.Errorf("mongodb: delete order %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toDocument(o domain.Order) orderDocument {
	items := make([]orderItemDocument, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemDocument{
			ProductID: it.ProductID,
			Title:     it.Title,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		}
	}
	return orderDocument{
		Reference:       o.Reference,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		PaymentMethod:   string(o.PaymentMethod),
		Note:            o.Note,
		Items:           items,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		Total:           o.Total,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toDomain(doc orderDocument) domain.Order {
	items := make([]domain.OrderItem, len(doc.Items))
	for i, it := range doc.Items {
		items[i] = domain.OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		}
	}
	return domain.Order{
		ID:              doc.ID.Hex(),
		Reference:       doc.Reference,
		CustomerName:    doc.CustomerName,
		CustomerPhone:   doc.CustomerPhone,
		CustomerAddress: doc.CustomerAddress,
		PaymentMethod:   domain.PaymentMethod(doc.PaymentMethod),
		Note:            doc.Note,
		Items:           items,
		Subtotal:        doc.Subtotal,
		ShippingFee:     doc.ShippingFee,
		Total:           doc.Total,
		Status:          domain.Status(doc.Status),
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}
