package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/changhyeonkim/gym-member-api/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// memberDocument is the stored shape: the record fields inlined next to the ObjectID.
type memberDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	model.Member `bson:",inline"`
}

func (d *memberDocument) toMember() *model.Member {
	m := d.Member
	m.ID = d.ID.Hex()
	return &m
}

// MongoRepository stores members in a single collection.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: collection}
}

func (r *MongoRepository) Backend() string {
	return BackendMongo
}

// EnsureIndexes creates the unique mId index and the lookup indexes. It is idempotent.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "mId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("mId_1"),
		},
		{Keys: bson.D{{Key: "mobile", Value: 1}}, Options: options.Index().SetName("mobile_1")},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("name_1")},
		{Keys: bson.D{{Key: "expiryDate", Value: 1}}, Options: options.Index().SetName("expiryDate_1")},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, models); err != nil {
		return mongoError("create indexes", err)
	}
	return nil
}

func (r *MongoRepository) HealthCheck(ctx context.Context) error {
	if err := r.collection.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping: %w: %w", ErrBackendUnavailable, err)
	}
	return nil
}

func (r *MongoRepository) Close(ctx context.Context) error {
	return r.collection.Database().Client().Disconnect(ctx)
}

func (r *MongoRepository) ValidateID(id string) error {
	_, err := objectID(id)
	return err
}

func (r *MongoRepository) List(ctx context.Context, page, perPage int) ([]model.Member, error) {
	skip, limit := skipLimit(page, perPage)

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, mongoError("find members", err)
	}

	var docs []memberDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mongoError("decode members", err)
	}

	members := make([]model.Member, 0, len(docs))
	for i := range docs {
		members = append(members, *docs[i].toMember())
	}
	return members, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*model.Member, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc memberDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("member id=%s: %w", id, ErrMemberNotFound)
		}
		return nil, mongoError("find member", err)
	}

	return doc.toMember(), nil
}

func (r *MongoRepository) Insert(ctx context.Context, member *model.Member) (*model.Member, error) {
	doc := memberDocument{ID: primitive.NewObjectID(), Member: *member}
	doc.Member.ID = ""

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, withDuplicateValue(mongoError("insert member", err), member)
	}

	return doc.toMember(), nil
}

func (r *MongoRepository) Replace(ctx context.Context, id string, member *model.Member) (*model.Member, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	replacement := memberDocument{Member: *member}
	replacement.Member.ID = ""

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)

	var doc memberDocument
	err = r.collection.FindOneAndReplace(ctx, bson.M{"_id": oid}, replacement, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("member id=%s: %w", id, ErrMemberNotFound)
		}
		return nil, withDuplicateValue(mongoError("replace member", err), member)
	}

	return doc.toMember(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, mongoError("delete member", err)
	}
	return res.DeletedCount > 0, nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("member id %q: %w", id, ErrInvalidMemberID)
	}
	return oid, nil
}

// mongoError classifies a driver error: duplicate key, unreachable server, or anything else.
func mongoError(op string, err error) error {
	if dup := TranslateDuplicateKey(err); dup != nil {
		return dup
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%s: %w: %w", op, ErrBackendUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// withDuplicateValue fills in the value when the driver only reported the field.
func withDuplicateValue(err error, member *model.Member) error {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) && dup.Value == "" && dup.Field == fieldMID {
		dup.Value = member.MID
	}
	return err
}
