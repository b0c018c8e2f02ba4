package repository

import (
	"context"

	"crewtravel-service/internal/domain/entity"
	"crewtravel-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTicketSnapshotRepository implements TicketSnapshotRepository
type MongoTicketSnapshotRepository struct {
	collection *mongo.Collection
}

// NewMongoTicketSnapshotRepository creates a new MongoDB ticket snapshot repository
func NewMongoTicketSnapshotRepository(db *mongo.Database) repository.TicketSnapshotRepository {
	collection := db.Collection("ticketUploads")

	ctx := context.Background()
	uploadedAtIndex := mongo.IndexModel{
		Keys: bson.M{"uploadedAt": -1},
	}
	collection.Indexes().CreateOne(ctx, uploadedAtIndex)

	return &MongoTicketSnapshotRepository{
		collection: collection,
	}
}

// Insert stores a snapshot and returns its generated ID.
func (r *MongoTicketSnapshotRepository) Insert(ctx context.Context, upload *entity.TicketUpload) (string, error) {
	if upload.ID == "" {
		upload.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, upload)
	if err != nil {
		return "", err
	}
	return upload.ID, nil
}

// FindByID finds a snapshot by ID.
func (r *MongoTicketSnapshotRepository) FindByID(ctx context.Context, id string) (*entity.TicketUpload, error) {
	var upload entity.TicketUpload
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&upload)
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

// FindLatest returns the newest snapshots first.
func (r *MongoTicketSnapshotRepository) FindLatest(ctx context.Context, limit int) ([]*entity.TicketUpload, error) {
	opts := options.Find().
		SetSort(bson.M{"uploadedAt": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var uploads []*entity.TicketUpload
	for cursor.Next(ctx) {
		var upload entity.TicketUpload
		if err := cursor.Decode(&upload); err != nil {
			return nil, err
		}
		uploads = append(uploads, &upload)
	}
	return uploads, cursor.Err()
}

// PruneKeep deletes every snapshot beyond the newest keep. The diff only
// ever compares the latest two, so older snapshots are dead weight.
func (r *MongoTicketSnapshotRepository) PruneKeep(ctx context.Context, keep int) error {
	return pruneKeep(ctx, r.collection, keep)
}

// MongoHotelSnapshotRepository implements HotelSnapshotRepository
type MongoHotelSnapshotRepository struct {
	collection *mongo.Collection
}

// NewMongoHotelSnapshotRepository creates a new MongoDB hotel block snapshot repository
func NewMongoHotelSnapshotRepository(db *mongo.Database) repository.HotelSnapshotRepository {
	collection := db.Collection("hotelBlockUploads")

	ctx := context.Background()
	uploadedAtIndex := mongo.IndexModel{
		Keys: bson.M{"uploadedAt": -1},
	}
	collection.Indexes().CreateOne(ctx, uploadedAtIndex)

	return &MongoHotelSnapshotRepository{
		collection: collection,
	}
}

// Insert stores a snapshot and returns its generated ID.
func (r *MongoHotelSnapshotRepository) Insert(ctx context.Context, upload *entity.HotelBlockUpload) (string, error) {
	if upload.ID == "" {
		upload.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, upload)
	if err != nil {
		return "", err
	}
	return upload.ID, nil
}

// FindByID finds a snapshot by ID.
func (r *MongoHotelSnapshotRepository) FindByID(ctx context.Context, id string) (*entity.HotelBlockUpload, error) {
	var upload entity.HotelBlockUpload
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&upload)
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

// FindLatest returns the newest snapshots first.
func (r *MongoHotelSnapshotRepository) FindLatest(ctx context.Context, limit int) ([]*entity.HotelBlockUpload, error) {
	opts := options.Find().
		SetSort(bson.M{"uploadedAt": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var uploads []*entity.HotelBlockUpload
	for cursor.Next(ctx) {
		var upload entity.HotelBlockUpload
		if err := cursor.Decode(&upload); err != nil {
			return nil, err
		}
		uploads = append(uploads, &upload)
	}
	return uploads, cursor.Err()
}

// PruneKeep deletes every snapshot beyond the newest keep.
func (r *MongoHotelSnapshotRepository) PruneKeep(ctx context.Context, keep int) error {
	return pruneKeep(ctx, r.collection, keep)
}

func pruneKeep(ctx context.Context, collection *mongo.Collection, keep int) error {
	opts := options.Find().
		SetSort(bson.M{"uploadedAt": -1}).
		SetSkip(int64(keep)).
		SetProjection(bson.M{"_id": 1})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var stale []interface{}
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return err
		}
		stale = append(stale, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}
	_, err = collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": stale}})
	return err
}
