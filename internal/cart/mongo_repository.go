package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository is the deployable alternative to file snapshots for
// gateways serving many sessions. Same snapshot semantics: one document
// per owner, replaced wholesale on every save.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection("carts"),
	}
}

type cartDoc struct {
	OwnerID   string        `bson:"owner_id"`
	Items     []cartItemDoc `bson:"items"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

type cartItemDoc struct {
	ID        string    `bson:"id"`
	ProductID string    `bson:"product_id"`
	VariantID string    `bson:"variant_id,omitempty"`
	Quantity  int       `bson:"quantity"`
	UnitPrice string    `bson:"unit_price"`
	Stock     int       `bson:"stock"`
	Name      string    `bson:"name"`
	ImageURL  string    `bson:"image_url,omitempty"`
	AddedAt   time.Time `bson:"added_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (r *MongoRepository) Load(ctx context.Context, ownerID string) (domain.Cart, error) {
	var doc cartDoc

	filter := bson.M{"owner_id": ownerID}
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Cart{}, ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}

	return docToCart(doc), nil
}

func (r *MongoRepository) Save(ctx context.Context, cart domain.Cart) error {
	filter := bson.M{"owner_id": cart.OwnerID}
	update := bson.M{"$set": cartToDoc(cart)}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, ownerID string) error {
	filter := bson.M{"owner_id": ownerID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

// CreateIndexes sets up the unique owner index and a TTL on stale carts.
func (r *MongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60),
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

func cartToDoc(c domain.Cart) cartDoc {
	doc := cartDoc{
		OwnerID:   c.OwnerID,
		Items:     make([]cartItemDoc, 0, len(c.Items)),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for _, item := range c.Items {
		doc.Items = append(doc.Items, cartItemDoc{
			ID:        item.ID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
			Stock:     item.Stock,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			AddedAt:   item.AddedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return doc
}

func docToCart(doc cartDoc) domain.Cart {
	cart := domain.Cart{
		OwnerID:   doc.OwnerID,
		Items:     make([]domain.CartItem, 0, len(doc.Items)),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	for _, item := range doc.Items {
		ci := domain.CartItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Stock:     item.Stock,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			AddedAt:   item.AddedAt,
			UpdatedAt: item.UpdatedAt,
		}
		if price := domain.ParsePrice(item.UnitPrice); price != nil {
			ci.UnitPrice = *price
		}
		cart.Items = append(cart.Items, ci)
	}
	return cart
}
