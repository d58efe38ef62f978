package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hrygo/chatrelay/store"
)

type messageDocument struct {
	Role    string `bson:"role"`
	Content string `bson:"content"`
}

type conversationDocument struct {
	ID          bson.ObjectID     `bson:"_id,omitempty"`
	UserID      string            `bson:"user_id"`
	Messages    []messageDocument `bson:"messages"`
	BotResponse string            `bson:"bot_response"`
	CreatedTs   int64             `bson:"created_ts,omitempty"`
}

func (doc *conversationDocument) toStore() *store.Conversation {
	messages := make([]store.ConversationMessage, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		messages = append(messages, store.ConversationMessage{Role: m.Role, Content: m.Content})
	}
	createdTs := doc.CreatedTs
	if createdTs == 0 {
		// Records written by the original deployment carry no timestamp.
		createdTs = doc.ID.Timestamp().Unix()
	}
	return &store.Conversation{
		ID:          doc.ID.Hex(),
		UserID:      doc.UserID,
		Messages:    messages,
		BotResponse: doc.BotResponse,
		CreatedTs:   createdTs,
	}
}

func (d *DB) CreateConversation(ctx context.Context, create *store.Conversation) (*store.Conversation, error) {
	doc := &conversationDocument{
		ID:          bson.NewObjectID(),
		UserID:      create.UserID,
		Messages:    make([]messageDocument, 0, len(create.Messages)),
		BotResponse: create.BotResponse,
		CreatedTs:   create.CreatedTs,
	}
	if doc.CreatedTs == 0 {
		doc.CreatedTs = time.Now().Unix()
	}
	for _, m := range create.Messages {
		doc.Messages = append(doc.Messages, messageDocument{Role: m.Role, Content: m.Content})
	}

	if _, err := d.conversations().InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	create.ID = doc.ID.Hex()
	create.CreatedTs = doc.CreatedTs
	return create, nil
}

func (d *DB) ListConversations(ctx context.Context, find *store.FindConversation) ([]*store.Conversation, error) {
	filter := bson.M{}
	if find.ID != nil {
		objectID, err := bson.ObjectIDFromHex(*find.ID)
		if err != nil {
			// A malformed identifier cannot match any record.
			return []*store.Conversation{}, nil
		}
		filter["_id"] = objectID
	}
	if find.UserID != nil {
		filter["user_id"] = *find.UserID
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if find.Limit != nil {
		opts.SetLimit(int64(*find.Limit))
	}

	cursor, err := d.conversations().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*conversationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %w", err)
	}

	list := make([]*store.Conversation, 0, len(docs))
	for _, doc := range docs {
		list = append(list, doc.toStore())
	}
	return list, nil
}
