package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workboard/taskboard/internal/core/domain"
)

const collectionCredentials = "credentials"

// CredentialRepository stores password credentials keyed by lower-cased email.
type CredentialRepository struct {
	col *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{col: db.Collection(collectionCredentials)}
}

type credentialDoc struct {
	Email        string `bson:"_id"`
	EmployeeID   string `bson:"employee_id,omitempty"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func (r *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toCredentialDoc(cred)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert credential: %w", err)
	}
	return fromCredentialDoc(doc), nil
}

func (r *CredentialRepository) Replace(ctx context.Context, cred *domain.Credential, prevEmployeeID string) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toCredentialDoc(cred)
	res, err := r.col.ReplaceOne(ctx, replaceFilter(doc.Email, prevEmployeeID), doc)
	if err != nil {
		return nil, fmt.Errorf("replace credential: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserExists
	}
	return fromCredentialDoc(doc), nil
}

// replaceFilter matches the credential only while it still points at
// employeeID, so two registrations cannot both take over the same address.
func replaceFilter(email, employeeID string) bson.M {
	return bson.M{"_id": normalizeEmail(email), "employee_id": employeeID}
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc credentialDoc
	err := r.col.FindOne(ctx, bson.M{"_id": normalizeEmail(email)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	return fromCredentialDoc(doc), nil
}

// EnsureIndexes indexes credentials by employee id.
func (r *CredentialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "employee_id", Value: 1}},
		Options: options.Index().SetSparse(true),
	})
	return err
}

func toCredentialDoc(c *domain.Credential) credentialDoc {
	return credentialDoc{
		Email:        normalizeEmail(c.Email),
		EmployeeID:   c.EmployeeID,
		PasswordHash: c.PasswordHash,
		Role:         string(c.Role),
		CreatedAt:    c.CreatedAt.Unix(),
		UpdatedAt:    c.UpdatedAt.Unix(),
	}
}

func fromCredentialDoc(d credentialDoc) *domain.Credential {
	return &domain.Credential{
		EmployeeID:   d.EmployeeID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		CreatedAt:    unixToTime(d.CreatedAt),
		UpdatedAt:    unixToTime(d.UpdatedAt),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
