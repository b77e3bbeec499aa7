package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-otp-mailer/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OTPRepo stores one OTP document per email address; the email is the _id.
type OTPRepo struct {
	collection *mongo.Collection
}

func NewOTPRepo(db *mongo.Database, collection string) *OTPRepo {
	return &OTPRepo{collection: db.Collection(collection)}
}

// EnsureIndexes installs the TTL index on purge_at. Safe to call on every startup.
func (r *OTPRepo) EnsureIndexes(ctx context.Context) error {
	name, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "purge_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("create ttl index: %w", err)
	}
	slog.Info("ensured index", "collection", r.collection.Name(), "index", name)
	return nil
}

// Put replaces any existing document for rec.Email.
func (r *OTPRepo) Put(ctx context.Context, rec *domain.OTPRecord) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": rec.Email}, rec, options.Replace().SetUpsert(true))
	return err
}

// Get returns domain.ErrNotFound when no document exists for email.
func (r *OTPRepo) Get(ctx context.Context, email string) (*domain.OTPRecord, error) {
	var rec domain.OTPRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": email}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// MarkConsumed flips consumed to true only while the document is unconsumed
// and still holds code. Returns domain.ErrConflict otherwise.
func (r *OTPRepo) MarkConsumed(ctx context.Context, email, code string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": email, "consumed": false, "code": code},
		bson.M{"$set": bson.M{"consumed": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrConflict
	}
	return nil
}

// DeleteIssue removes the document for email only if it still belongs to issueID.
func (r *OTPRepo) DeleteIssue(ctx context.Context, email, issueID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": email, "issue_id": issueID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrConflict
	}
	return nil
}
