package users

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo serves the registry from a MongoDB collection.
type MongoRepo struct {
	Coll *mongo.Collection
}

type mongoUser struct {
	ID           uint64 `bson:"id"`
	Username     string `bson:"username"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	IsDeleted    bool   `bson:"is_deleted"`
}

// NewMongoRepo connects to uri and uses collection <prefix>users of db.
func NewMongoRepo(ctx context.Context, uri, db, prefix string) (*MongoRepo, error) {
	if prefix == "" {
		prefix = defaultPrefix
	}
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	return &MongoRepo{Coll: cli.Database(db).Collection(prefix + "users")}, nil
}

// ExistsByEmail reports whether a non deleted user has exactly this email.
func (r *MongoRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if r == nil || r.Coll == nil {
		return false, errNotInitialized
	}
	n, err := r.Coll.CountDocuments(ctx,
		bson.M{"email": email, "is_deleted": bson.M{"$ne": true}},
		options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts u. Mongo has no sequences, so a missing id is derived from
// the insertion time.
func (r *MongoRepo) Create(ctx context.Context, u User) (uint64, error) {
	if r == nil || r.Coll == nil {
		return 0, errNotInitialized
	}
	if err := validNew(u); err != nil {
		return 0, err
	}
	if u.ID == 0 {
		u.ID = uint64(time.Now().UnixNano())
	}
	_, err := r.Coll.InsertOne(ctx, mongoUser{ID: u.ID, Username: u.Username, Email: u.Email, PasswordHash: u.PasswordHash})
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// List returns users that are not deleted, ordered by id.
func (r *MongoRepo) List(ctx context.Context) ([]User, error) {
	if r == nil || r.Coll == nil {
		return nil, errNotInitialized
	}
	cur, err := r.Coll.Find(ctx, bson.M{"is_deleted": bson.M{"$ne": true}}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]User, len(docs))
	for i, d := range docs {
		out[i] = User{ID: d.ID, Username: d.Username, Email: d.Email}
	}
	return out, nil
}

// Delete marks the user with email as deleted.
func (r *MongoRepo) Delete(ctx context.Context, email string) error {
	if r == nil || r.Coll == nil {
		return errNotInitialized
	}
	res, err := r.Coll.UpdateMany(ctx,
		bson.M{"email": email, "is_deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"is_deleted": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects the underlying client.
func (r *MongoRepo) Close(ctx context.Context) error {
	if r == nil || r.Coll == nil {
		return nil
	}
	return r.Coll.Database().Client().Disconnect(ctx)
}
