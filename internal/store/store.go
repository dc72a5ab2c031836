// Package store provides read access to the Gaia document store.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Nouh2/gaia-admin-tui/internal/config"
	"github.com/Nouh2/gaia-admin-tui/internal/models"
)

const (
	usersCollection         = "users"
	conversationsCollection = "conversations"
)

// Store is the read-only document store handle. It is constructed once
// per process by the services manager and shared by all actions; it is
// never mutated after construction.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the document store and verifies the connection.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	opts := options.Client().ApplyURI(cfg.MongoURI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, &DataAccessError{Op: "connect", Err: err}
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, &DataAccessError{Op: "ping", Err: err}
	}

	return &Store{
		client: client,
		db:     client.Database(cfg.DatabaseName),
	}, nil
}

func (s *Store) users() *mongo.Collection         { return s.db.Collection(usersCollection) }
func (s *Store) conversations() *mongo.Collection { return s.db.Collection(conversationsCollection) }

// ListUsers performs a full cross-partition scan of the user
// collection. No ordering guarantee beyond store-native order.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	cur, err := s.users().Find(ctx, bson.M{})
	if err != nil {
		return nil, &DataAccessError{Op: "list users", Err: err}
	}

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, &DataAccessError{Op: "decode users", Err: err}
	}
	return users, nil
}

// ListConversations performs a full cross-partition scan of the
// conversation collection, ordered by creation timestamp descending.
func (s *Store) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.conversations().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &DataAccessError{Op: "list conversations", Err: err}
	}

	var convs []models.Conversation
	if err := cur.All(ctx, &convs); err != nil {
		return nil, &DataAccessError{Op: "decode conversations", Err: err}
	}
	return convs, nil
}

// ListUserConversations returns the conversations owned by a user,
// ordered by creation timestamp descending. This lookup is always
// live; it is never cached.
func (s *Store) ListUserConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.conversations().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, &DataAccessError{Op: fmt.Sprintf("list conversations for user %s", userID), Err: err}
	}

	var convs []models.Conversation
	if err := cur.All(ctx, &convs); err != nil {
		return nil, &DataAccessError{Op: "decode user conversations", Err: err}
	}
	return convs, nil
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return &DataAccessError{Op: "ping", Err: err}
	}
	return nil
}

// Close disconnects from the document store.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
