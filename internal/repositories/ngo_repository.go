package repositories

import (
	"context"
	"time"

	"github.com/graceworks/grace-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NGORepository defines the interface for NGO profile operations
type NGORepository interface {
	Create(ctx context.Context, ngo *models.NGO) error
	GetByID(ctx context.Context, id string) (*models.NGO, error)
	List(ctx context.Context) ([]models.NGO, error)
	Update(ctx context.Context, id string, update bson.M) (*models.NGO, error)
	Delete(ctx context.Context, id string) error
}

type ngoRepository struct {
	collection *mongo.Collection
}

// NewMongoNGORepository creates an NGORepository backed by MongoDB
func NewMongoNGORepository(db *mongo.Database) NGORepository {
	return &ngoRepository{collection: db.Collection("ngos")}
}

func (r *ngoRepository) Create(ctx context.Context, ngo *models.NGO) error {
	ngo.ID = primitive.NewObjectID()
	ngo.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, ngo)
	return err
}

func (r *ngoRepository) GetByID(ctx context.Context, id string) (*models.NGO, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var ngo models.NGO
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&ngo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNGONotFound
		}
		return nil, err
	}
	return &ngo, nil
}

func (r *ngoRepository) List(ctx context.Context) ([]models.NGO, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ngos := []models.NGO{}
	if err = cursor.All(ctx, &ngos); err != nil {
		return nil, err
	}
	return ngos, nil
}

func (r *ngoRepository) Update(ctx context.Context, id string, update bson.M) (*models.NGO, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	if len(update) == 0 {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ngo models.NGO
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": update}, opts).Decode(&ngo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNGONotFound
		}
		return nil, err
	}
	return &ngo, nil
}

func (r *ngoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNGONotFound
	}
	return nil
}
