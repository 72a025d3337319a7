package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
)

const collectionItems = "items"

// ItemRepository implements ports.ItemRepository using MongoDB.
type ItemRepository struct {
	col *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{col: db.Collection(collectionItems)}
}

type ownerDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"organization_name"`
	AccountName string             `bson:"account_name"`
}

type itemDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID         primitive.ObjectID `bson:"owner_id"`
	Name            string             `bson:"name"`
	Category        string             `bson:"category"`
	Description     string             `bson:"description"`
	Condition       string             `bson:"condition"`
	Quantity        int64              `bson:"quantity"`
	StorageLocation string             `bson:"storage_location"`
	PhotoURL        string             `bson:"photo_url"`
	ContactName     string             `bson:"contact_name"`
	ContactPhone    string             `bson:"contact_phone"`
	Disposition     string             `bson:"disposition"`
	Price           float64            `bson:"price"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`

	// Owner is only filled by the $lookup stage and never written.
	Owner []ownerDoc `bson:"owner,omitempty"`
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toItemDoc(item)
	if err != nil {
		return nil, err
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	items, err := r.aggregate(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrItemNotFound
	}
	return items[0], nil
}

func (r *ItemRepository) List(ctx context.Context) ([]*domain.Item, error) {
	return r.aggregate(ctx, bson.M{})
}

func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []*domain.Item{}, nil
	}
	return r.aggregate(ctx, bson.M{"owner_id": oid})
}

// aggregate matches items newest first and joins the owner's public profile.
func (r *ItemRepository) aggregate(ctx context.Context, match bson.M) ([]*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, itemPipeline(match))
	if err != nil {
		return nil, fmt.Errorf("aggregate items: %w", err)
	}
	defer cur.Close(ctx)

	var docs []itemDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	items := make([]*domain.Item, len(docs))
	for i := range docs {
		items[i] = docs[i].toDomain()
	}
	return items, nil
}

func itemPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionOrganizations},
			{Key: "localField", Value: "owner_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "owner.password_hash", Value: 0},
			{Key: "owner.email", Value: 0},
		}}},
	}
}

// Update overwrites the mutable fields. Owner and creation time never change.
func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":             item.Name,
		"category":         item.Category,
		"description":      item.Description,
		"condition":        item.Condition,
		"quantity":         item.Quantity,
		"storage_location": item.StorageLocation,
		"photo_url":        item.PhotoURL,
		"contact_name":     item.ContactName,
		"contact_phone":    item.ContactPhone,
		"disposition":      string(item.Disposition),
		"price":            item.Price,
		"updated_at":       item.UpdatedAt.UTC(),
	}}

	updateCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	res, err := r.col.UpdateByID(updateCtx, oid, update)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrItemNotFound
	}

	return r.FindByID(ctx, item.ID)
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes used by the listing queries.
func (r *ItemRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toItemDoc(i *domain.Item) (*itemDoc, error) {
	owner, err := primitive.ObjectIDFromHex(i.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("item owner id %q: %w", i.OwnerID, err)
	}
	return &itemDoc{
		OwnerID:         owner,
		Name:            i.Name,
		Category:        i.Category,
		Description:     i.Description,
		Condition:       i.Condition,
		Quantity:        i.Quantity,
		StorageLocation: i.StorageLocation,
		PhotoURL:        i.PhotoURL,
		ContactName:     i.ContactName,
		ContactPhone:    i.ContactPhone,
		Disposition:     string(i.Disposition),
		Price:           i.Price,
		CreatedAt:       i.CreatedAt.UTC(),
		UpdatedAt:       i.UpdatedAt.UTC(),
	}, nil
}

func (d *itemDoc) toDomain() *domain.Item {
	item := &domain.Item{
		ID:              d.ID.Hex(),
		OwnerID:         d.OwnerID.Hex(),
		Name:            d.Name,
		Category:        d.Category,
		Description:     d.Description,
		Condition:       d.Condition,
		Quantity:        d.Quantity,
		StorageLocation: d.StorageLocation,
		PhotoURL:        d.PhotoURL,
		ContactName:     d.ContactName,
		ContactPhone:    d.ContactPhone,
		Disposition:     domain.Disposition(d.Disposition),
		Price:           d.Price,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
	if len(d.Owner) > 0 {
		o := d.Owner[0]
		item.Owner = &domain.OrganizationSummary{ID: o.ID.Hex(), Name: o.Name, AccountName: o.AccountName}
	}
	return item
}
