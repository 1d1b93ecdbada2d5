package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// tasksCollection is the MongoDB collection holding task documents.
const tasksCollection = "tasks"

// MongoStore is a MongoDB-backed implementation of the Store interface.
// Update and delete ride on single-document find-and-modify commands, so
// the (id, owner) predicate is checked atomically with the mutation.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a task store on db and ensures the owner index
// exists for list queries.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection(tasksCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create owner index: %w", err)
	}

	return &MongoStore{coll: coll}, nil
}

// ownerFilter builds the compound (id, owner) predicate. A malformed task
// ID yields no filter and behaves as a miss, same as an unknown ID.
func ownerFilter(userID, taskID string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "user_id": userID}, true
}

// Create persists task and assigns its ID.
func (s *MongoStore) Create(ctx context.Context, task *Task) error {
	now := time.Now().UTC()
	task.ID = primitive.NewObjectID()
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// ListByOwner returns every task owned by userID.
func (s *MongoStore) ListByOwner(ctx context.Context, userID string) ([]Task, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	return tasks, nil
}

// GetByOwner returns the task matching (taskID, userID).
func (s *MongoStore) GetByOwner(ctx context.Context, userID, taskID string) (*Task, error) {
	filter, ok := ownerFilter(userID, taskID)
	if !ok {
		return nil, ErrNotFound
	}

	var task Task
	err := s.coll.FindOne(ctx, filter).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return &task, nil
}

// UpdateByOwner applies patch atomically and returns the updated record.
func (s *MongoStore) UpdateByOwner(ctx context.Context, userID, taskID string, patch Patch) (*Task, error) {
	filter, ok := ownerFilter(userID, taskID)
	if !ok {
		return nil, ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Deadline != nil {
		set["deadline"] = *patch.Deadline
	}

	var task Task
	err := s.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &task, nil
}

// DeleteByOwner removes the task matching (taskID, userID).
func (s *MongoStore) DeleteByOwner(ctx context.Context, userID, taskID string) error {
	filter, ok := ownerFilter(userID, taskID)
	if !ok {
		return ErrNotFound
	}

	err := s.coll.FindOneAndDelete(ctx, filter).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
