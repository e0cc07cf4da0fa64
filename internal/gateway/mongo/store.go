// Package mongo implements the gateway collaborators directly over the
// marketplace MongoDB database.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/gateway"
	"marketplace-admin-backend/internal/logger"
	"marketplace-admin-backend/internal/security"
)

const backendName = "mongo"

// Collections names the physical collections of the marketplace database.
type Collections struct {
	Users       string
	Jobs        string
	PendingJobs string
	Bookings    string
}

type Store struct {
	db     *mongo.Database
	names  Collections
	tokens security.TokenManager
	now    func() time.Time
}

// Connect dials uri and pings the primary before returning.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	logger.Info("Connected to MongoDB", "database_uri_host", hostOf(uri))
	return client, nil
}

func NewStore(db *mongo.Database, names Collections, tokens security.TokenManager) *Store {
	return &Store{db: db, names: names, tokens: tokens, now: time.Now}
}

// Gateway exposes the store as a full set of collaborators.
func (s *Store) Gateway() gateway.Gateway {
	return gateway.Gateway{
		Users:    &userGateway{s: s},
		Jobs:     &jobGateway{s: s},
		Bookings: &bookingGateway{s: s},
		Auth:     &authGateway{s: s},
	}
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// idFilter matches an ObjectId when id is one, else the raw string id.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": id}
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var gwErr *domain.GatewayError
	var unauth *domain.UnauthorizedError
	var vErr *domain.ValidationError
	if errors.As(err, &gwErr) || errors.As(err, &unauth) || errors.As(err, &vErr) {
		return err
	}
	return &domain.GatewayError{Op: op, Err: err}
}

func notFound(op, what string) error {
	return &domain.GatewayError{Op: op, Status: 404, Message: what + " not found", Err: domain.ErrNotFound}
}

// findAll decodes every document of the cursor. A document that fails to
// decode is logged and skipped.
func findAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			logger.Warn("Skipping undecodable document", "collection", c.Name(), "error", err)
			continue
		}
		out = append(out, doc)
	}
	return out, cur.Err()
}

// updateOne sets fields on the document with id and reports a miss as not found.
func (s *Store) updateOne(ctx context.Context, op, collection, what, id string, set bson.M) (err error) {
	logger.GatewayCall(backendName, op, "collection", collection, "id", id)
	defer func() { logger.GatewayResult(backendName, op, err, "id", id) }()

	set["updatedAt"] = s.now().UTC()
	res, err := s.coll(collection).UpdateOne(ctx, idFilter(id), bson.M{"$set": set})
	if err != nil {
		return wrap(op, err)
	}
	if res.MatchedCount == 0 {
		return notFound(op, what)
	}
	return nil
}

func (s *Store) deleteOne(ctx context.Context, op, collection, what, id string) (err error) {
	logger.GatewayCall(backendName, op, "collection", collection, "id", id)
	defer func() { logger.GatewayResult(backendName, op, err, "id", id) }()

	res, err := s.coll(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return wrap(op, err)
	}
	if res.DeletedCount == 0 {
		return notFound(op, what)
	}
	return nil
}

// lookupField maps ids to one string field of the documents in collection.
func (s *Store) lookupField(ctx context.Context, collection, field string, ids []string) (map[string]string, error) {
	out := map[string]string{}
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]any, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			keys = append(keys, oid)
		} else {
			keys = append(keys, id)
		}
	}

	proj := options.Find().SetProjection(bson.M{field: 1})
	docs, err := findAll[bson.M](ctx, s.coll(collection), bson.M{"_id": bson.M{"$in": keys}}, proj)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if v, ok := d[field].(string); ok {
			out[idString(d["_id"])] = v
		}
	}
	return out, nil
}

func hostOf(uri string) string {
	opts := options.Client().ApplyURI(uri)
	if len(opts.Hosts) > 0 {
		return opts.Hosts[0]
	}
	return ""
}
