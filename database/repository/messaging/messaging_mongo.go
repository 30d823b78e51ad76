package messagingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourbook/database"
	"tourbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no conversation matches the query.
var ErrNotFound = errors.New("conversation not found")

// ErrConversationExists is returned when the unique (parentId, schoolId)
// index rejects a second conversation between the same parties.
var ErrConversationExists = errors.New("conversation already exists")

// Unread counter fields, selected by the sender's role.
const (
	UnreadFieldParent = "parentUnread"
	UnreadFieldAdmin  = "adminUnread"
)

// MongoMessagingRepo implements MessagingRepository using MongoDB.
type MongoMessagingRepo struct {
	convColl *mongo.Collection
	msgColl  *mongo.Collection
}

// NewMongoMessagingRepo creates a new instance of MessagingRepository using MongoDB.
func NewMongoMessagingRepo() MessagingRepository {
	repo := &MongoMessagingRepo{
		convColl: database.Collection("conversations"),
		msgColl:  database.Collection("messages"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// CreateConversation inserts a new conversation document.
func (r *MongoMessagingRepo) CreateConversation(conv *models.Conversation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	if _, err := r.convColl.InsertOne(ctx, conv); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConversationExists
		}
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// GetConversationByID retrieves a conversation by its unique ID.
func (r *MongoMessagingRepo) GetConversationByID(id string) (*models.Conversation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var conv models.Conversation
	if err := r.convColl.FindOne(ctx, bson.M{"id": id}).Decode(&conv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch conversation %s: %w", id, err)
	}
	return &conv, nil
}

// GetConversationByParties retrieves the conversation between a parent
// and a school, if any.
func (r *MongoMessagingRepo) GetConversationByParties(parentID, schoolID string) (*models.Conversation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var conv models.Conversation
	filter := bson.M{"parentId": parentID, "schoolId": schoolID}
	if err := r.convColl.FindOne(ctx, filter).Decode(&conv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}
	return &conv, nil
}

// ListByParent retrieves a parent's conversations, most recent first.
func (r *MongoMessagingRepo) ListByParent(parentID string) ([]models.Conversation, error) {
	return r.listConversations(bson.M{"parentId": parentID})
}

// ListBySchool retrieves a school's conversations, most recent first.
func (r *MongoMessagingRepo) ListBySchool(schoolID string) ([]models.Conversation, error) {
	return r.listConversations(bson.M{"schoolId": schoolID})
}

func (r *MongoMessagingRepo) listConversations(query bson.M) ([]models.Conversation, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.convColl.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var convs []models.Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %w", err)
	}
	return convs, nil
}

// AppendMessage inserts the message, refreshes the conversation preview
// and bumps the recipient's unread counter.
func (r *MongoMessagingRepo) AppendMessage(msg *models.Message, unreadField string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	msg.CreatedAt = time.Now()
	if _, err := r.msgColl.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	update := bson.M{
		"$set": bson.M{
			"lastMessage": models.LastMessage{
				Body:     msg.Body,
				SenderID: msg.SenderID,
				SentAt:   msg.CreatedAt,
			},
			"updatedAt": msg.CreatedAt,
		},
		"$inc": bson.M{unreadField: 1},
	}
	result, err := r.convColl.UpdateOne(ctx, bson.M{"id": msg.ConversationID}, update)
	if err != nil {
		return fmt.Errorf("failed to update conversation %s: %w", msg.ConversationID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMessages retrieves a conversation's messages in send order.
func (r *MongoMessagingRepo) ListMessages(conversationID string) ([]models.Message, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.msgColl.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return msgs, nil
}

// ResetUnread zeroes the reader's unread counter.
func (r *MongoMessagingRepo) ResetUnread(conversationID, unreadField string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{unreadField: 0}}
	result, err := r.convColl.UpdateOne(ctx, bson.M{"id": conversationID}, update)
	if err != nil {
		return fmt.Errorf("failed to reset unread for conversation %s: %w", conversationID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
