package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// Client represents a MongoDB client
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient creates a new MongoDB client
func NewClient(uri string) (*Client, error) {
	// Create client options
	clientOptions := options.Client().ApplyURI(uri)

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, err
	}

	// Check the connection
	err = client.Ping(context.Background(), nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: client,
	}, nil
}

// Database returns a database
func (c *Client) Database(name string) *mongo.Database {
	if c.db == nil || c.db.Name() != name {
		c.db = c.client.Database(name)
	}
	return c.db
}

// Disconnect disconnects from MongoDB
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// WithTransaction runs fn inside a multi-document transaction. Collection
// operations join the transaction through the session-bound context passed
// to fn. Snapshot read concern plus majority write concern isolate the
// ledger operations: a conflicting writer aborts with a transient error and
// the driver re-runs fn against the committed state.
func (c *Client) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := c.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, txOpts)
	return err
}

// EnsureIndexes creates the unique indexes the ledger invariants depend on.
// Idempotent; called once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		"wallets": {
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		"users": {
			Keys:    bson.D{{Key: "discordId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		"promo_codes": {
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		"notifications": {
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
		},
		"admin_users": {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	for collection, model := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	return nil
}
