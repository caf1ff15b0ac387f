package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/topology"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
)

// classify maps driver failures onto the apperrors taxonomy so the HTTP
// layer can tell an unreachable server from a broken connection.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var sse topology.ServerSelectionError
	var sseP *topology.ServerSelectionError
	switch {
	case errors.As(err, &sse), errors.As(err, &sseP), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %w", apperrors.ErrServiceUnavailable, err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return fmt.Errorf("%w: %w", apperrors.ErrNetwork, err)
	}
	return err
}

// findByID decodes the document with the given hex id. A malformed id or a
// missing document yields found == false with a nil error.
func findByID[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, bool, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, nil
	}

	var doc T
	if err := coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, classify(err)
	}
	return &doc, true, nil
}

// updateByID applies set to the document and returns it as stored afterwards.
// uniqueField names the field reported when the write hits a unique index.
func updateByID[T any](ctx context.Context, coll *mongo.Collection, entity, uniqueField, id string, set bson.M) (*T, bool, error) {
	if len(set) == 0 {
		return findByID[T](ctx, coll, id)
	}

	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, nil
	}

	var doc T
	err = coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, false, nil
		case mongo.IsDuplicateKeyError(err):
			return nil, false, apperrors.NewDuplicateError(entity, uniqueField)
		}
		return nil, false, classify(err)
	}
	return &doc, true, nil
}

// deleteByID removes the document if present. Absence is not reported.
func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = coll.DeleteOne(ctx, bson.M{"_id": objID})
	return classify(err)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any) ([]T, error) {
	cur, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, classify(err)
	}
	defer cur.Close(ctx)

	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify(err)
	}
	return docs, nil
}

func insert(ctx context.Context, coll *mongo.Collection, entity, uniqueField string, doc any) (bson.ObjectID, error) {
	result, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bson.NilObjectID, apperrors.NewDuplicateError(entity, uniqueField)
		}
		return bson.NilObjectID, classify(err)
	}

	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, errors.New("failed to convert inserted ID to ObjectID")
	}
	return id, nil
}

func uniqueIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}
