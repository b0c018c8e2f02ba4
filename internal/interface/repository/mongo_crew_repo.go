package repository

import (
	"context"

	"crewtravel-service/internal/domain/entity"
	"crewtravel-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCrewRepository implements the CrewRepository interface
type MongoCrewRepository struct {
	collection *mongo.Collection
}

// NewMongoCrewRepository creates a new MongoDB crew repository
func NewMongoCrewRepository(db *mongo.Database) repository.CrewRepository {
	return &MongoCrewRepository{
		collection: db.Collection("crewMembers"),
	}
}

// FindAll returns the full crew roster. Rosters are small (hundreds of
// people); matching builds an in-memory index per upload.
func (r *MongoCrewRepository) FindAll(ctx context.Context) ([]*entity.CrewMember, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []*entity.CrewMember
	for cursor.Next(ctx) {
		var member entity.CrewMember
		if err := cursor.Decode(&member); err != nil {
			return nil, err
		}
		members = append(members, &member)
	}
	return members, cursor.Err()
}
