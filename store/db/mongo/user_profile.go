package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hrygo/chatrelay/store"
)

type userProfileDocument struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	UserID      string        `bson:"user_id"`
	Name        string        `bson:"nome,omitempty"`
	Preferences string        `bson:"gostos,omitempty"`
	CreatedTs   int64         `bson:"created_ts,omitempty"`
	UpdatedTs   int64         `bson:"updated_ts,omitempty"`
}

func (doc *userProfileDocument) toStore() *store.UserProfile {
	return &store.UserProfile{
		UserID:      doc.UserID,
		Name:        doc.Name,
		Preferences: doc.Preferences,
		CreatedTs:   doc.CreatedTs,
		UpdatedTs:   doc.UpdatedTs,
	}
}

func (d *DB) UpsertUserProfile(ctx context.Context, upsert *store.UpsertUserProfile) (*store.UserProfile, error) {
	now := time.Now().Unix()

	set := bson.M{"updated_ts": now}
	if upsert.Name != nil {
		set["nome"] = *upsert.Name
	}
	if upsert.Preferences != nil {
		set["gostos"] = *upsert.Preferences
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_ts": now},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	doc := &userProfileDocument{}
	if err := d.userProfiles().FindOneAndUpdate(ctx, bson.M{"user_id": upsert.UserID}, update, opts).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to upsert user profile: %w", err)
	}
	return doc.toStore(), nil
}

func (d *DB) GetUserProfile(ctx context.Context, find *store.FindUserProfile) (*store.UserProfile, error) {
	if find.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	doc := &userProfileDocument{}
	err := d.userProfiles().FindOne(ctx, bson.M{"user_id": find.UserID}).Decode(doc)
	switch {
	case err == nil:
		return doc.toStore(), nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
}
