package claimevents

import (
	"context"

	"claimswitch-service/internal/app/contracts"
	"claimswitch-service/internal/app/models"
	"claimswitch-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const claimEventsCollection = "claim_events"

type claimEventMongoRepository struct {
	Collection *mongo.Collection
}

func NewClaimEventMongoRepository(client *mongo.Client, dbName string) contracts.ClaimEventRepository {
	return &claimEventMongoRepository{
		Collection: client.Database(dbName).Collection(claimEventsCollection),
	}
}

func (repo *claimEventMongoRepository) AppendEvent(ctx context.Context, event *models.ClaimEvent) error {
	_, err := repo.Collection.InsertOne(ctx, event)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *claimEventMongoRepository) FindByClaimNumber(ctx context.Context, claimNumber string) ([]models.ClaimEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{"claim_number": claimNumber}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var events []models.ClaimEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return events, nil
}
