package mongo

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hrygo/chatrelay/internal/profile"
	"github.com/hrygo/chatrelay/store"
)

// Collection names match the ones of the original deployment so existing
// data stays readable.
const (
	userProfileCollection  = "usuarios"
	conversationCollection = "conversas"
)

const connectTimeout = 10 * time.Second

type DB struct {
	client  *mongo.Client
	db      *mongo.Database
	profile *profile.Profile
}

func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(profile.DSN))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to ping mongo")
	}
	slog.Info("mongo connected", slog.String("database", profile.Database))

	var driver store.Driver = &DB{
		client:  client,
		db:      client.Database(profile.Database),
		profile: profile,
	}
	return driver, nil
}

func (d *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return d.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique profile key and the per-user conversation index.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	if _, err := d.userProfiles().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return errors.Wrapf(err, "failed to create index on %s", userProfileCollection)
	}
	if _, err := d.conversations().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "_id", Value: -1}},
	}); err != nil {
		return errors.Wrapf(err, "failed to create index on %s", conversationCollection)
	}
	return nil
}

func (d *DB) userProfiles() *mongo.Collection {
	return d.db.Collection(userProfileCollection)
}

func (d *DB) conversations() *mongo.Collection {
	return d.db.Collection(conversationCollection)
}
