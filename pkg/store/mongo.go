package store

import (
	"context"
	goerrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Hanzzh/mindmap/pkg/errors"
)

// MongoStore persists documents in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Create stores a new document.
func (s *MongoStore) Create(ctx context.Context, title, outline, treeHash string) (Document, error) {
	doc, err := newDocument(title, outline, treeHash)
	if err != nil {
		return Document{}, err
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInternal, err, "insert document")
	}
	return doc, nil
}

// Get fetches a document by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (Document, error) {
	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if goerrors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, errors.New(errors.ErrCodeDocumentNotFound, "document %s", id)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInternal, err, "fetch document %s", id)
	}
	return doc, nil
}

// Update replaces a document's content.
func (s *MongoStore) Update(ctx context.Context, id, title, outline, treeHash string) (Document, error) {
	if err := errors.ValidateDocumentTitle(title); err != nil {
		return Document{}, err
	}
	update := bson.M{"$set": bson.M{
		"title":      title,
		"outline":    outline,
		"tree_hash":  treeHash,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc Document
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc)
	if goerrors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, errors.New(errors.ErrCodeDocumentNotFound, "document %s", id)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInternal, err, "update document %s", id)
	}
	return doc, nil
}

// Delete removes a document.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete document %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeDocumentNotFound, "document %s", id)
	}
	return nil
}

// List returns all documents, newest first.
func (s *MongoStore) List(ctx context.Context) ([]Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list documents")
	}
	defer cur.Close(ctx)

	var docs []Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode documents")
	}
	return docs, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
