package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/afenda/taskgraph/pkg/errors"
	"github.com/afenda/taskgraph/pkg/task"
)

// MongoSource reads tasks from the task manager's MongoDB collection.
//
// Documents are expected to carry the same fields as [task.Task] bson
// tags; extra fields are ignored. Tasks are returned sorted by id so
// repeated loads produce the same order and therefore the same layout.
type MongoSource struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoOptions configures a MongoDB task source.
type MongoOptions struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "afenda"
	Collection string // defaults to "tasks"
}

// NewMongoSource connects to MongoDB and verifies the connection.
func NewMongoSource(ctx context.Context, opts MongoOptions) (*MongoSource, error) {
	if opts.Database == "" {
		opts.Database = "afenda"
	}
	if opts.Collection == "" {
		opts.Collection = "tasks"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoSource{
		client:     client,
		collection: client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Load fetches all tasks sorted by id.
func (s *MongoSource) Load(ctx context.Context) ([]task.Task, error) {
	cursor, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "query tasks")
	}
	defer cursor.Close(ctx)

	var tasks []task.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode tasks")
	}
	if err := errors.ValidateTasks(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Close disconnects from MongoDB.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Source = (*MongoSource)(nil)
