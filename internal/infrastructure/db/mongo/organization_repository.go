package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
)

const collectionOrganizations = "organizations"

// OrganizationRepository implements ports.OrganizationRepository using MongoDB.
type OrganizationRepository struct {
	col *mongo.Collection
}

func NewOrganizationRepository(db *mongo.Database) *OrganizationRepository {
	return &OrganizationRepository{col: db.Collection(collectionOrganizations)}
}

type organizationDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"organization_name"`
	AccountName  string             `bson:"account_name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash,omitempty"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *OrganizationRepository) Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toOrganizationDoc(org)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrOrganizationExists
		}
		return nil, fmt.Errorf("insert organization: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// ExistsByAccountOrEmail runs a single $or count, mirroring the unique indexes.
func (r *OrganizationRepository) ExistsByAccountOrEmail(ctx context.Context, accountName, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"account_name": accountName},
		bson.M{"email": email},
	}}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count organizations: %w", err)
	}
	return n > 0, nil
}

func (r *OrganizationRepository) FindByAccountName(ctx context.Context, accountName string) (*domain.Organization, error) {
	return r.findOne(ctx, bson.M{"account_name": accountName})
}

// FindByID projects the password hash away so it never leaves the store.
func (r *OrganizationRepository) FindByID(ctx context.Context, id string) (*domain.Organization, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrganizationNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{"password_hash": 0}))
}

func (r *OrganizationRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc organizationDoc
	if err := r.col.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("find organization: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique indexes registration relies on.
func (r *OrganizationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "account_name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toOrganizationDoc(o *domain.Organization) *organizationDoc {
	doc := &organizationDoc{
		Name:         o.Name,
		AccountName:  o.AccountName,
		Email:        o.Email,
		PasswordHash: o.PasswordHash,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt.UTC(),
		UpdatedAt:    o.UpdatedAt.UTC(),
	}
	if oid, err := primitive.ObjectIDFromHex(o.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func (d *organizationDoc) toDomain() *domain.Organization {
	return &domain.Organization{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		AccountName:  d.AccountName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Status:       domain.OrganizationStatus(d.Status),
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}
