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

// PostFilter narrows list and count queries. Nil fields match everything.
type PostFilter struct {
	User     *primitive.ObjectID
	Category *primitive.ObjectID
}

// PostUpdate carries the mutable post fields. Nil fields are left untouched.
type PostUpdate struct {
	Caption *string
	Size    *string
	Tags    []string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Find(ctx context.Context, filter PostFilter) ([]models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	Update(ctx context.Context, id string, update PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, postID string, userID primitive.ObjectID) (*models.Post, error)
	AddComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error)
	IncrementShares(ctx context.Context, postID string) (*models.Post, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// Create inserts a new post
func (r *MongoPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetByID retrieves a post by ID
func (r *MongoPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Find retrieves all posts matching the filter, newest first. No pagination
// is applied; the full matching result set is returned.
func (r *MongoPostRepository) Find(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filterQuery(filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the number of posts matching the filter
func (r *MongoPostRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, filterQuery(filter))
}

// Update applies the mutable fields and returns the updated post
func (r *MongoPostRepository) Update(ctx context.Context, id string, update PostUpdate) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{}
	if update.Caption != nil {
		set["caption"] = *update.Caption
	}
	if update.Size != nil {
		set["size"] = *update.Size
	}
	if update.Tags != nil {
		set["tags"] = update.Tags
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	return r.findOneAndUpdate(ctx, objID, bson.M{"$set": set})
}

// Delete removes a post by ID
func (r *MongoPostRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// ToggleLike adds userID to the like set if absent and removes it if
// present, as a single conditional document update. Two concurrent toggles
// by different users can never lose each other's write.
func (r *MongoPostRepository) ToggleLike(ctx context.Context, postID string, userID primitive.ObjectID) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrInvalidID
	}

	likes := bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"likes": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{userID, likes}},
				bson.M{"$setDifference": bson.A{likes, bson.A{userID}}},
				bson.M{"$concatArrays": bson.A{likes, bson.A{userID}}},
			}},
		}},
	}

	return r.findOneAndUpdate(ctx, objID, pipeline)
}

// AddComment appends a comment to the post's ordered comment sequence
func (r *MongoPostRepository) AddComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrInvalidID
	}

	return r.findOneAndUpdate(ctx, objID, bson.M{"$push": bson.M{"comments": comment}})
}

// IncrementShares increases the share counter by one
func (r *MongoPostRepository) IncrementShares(ctx context.Context, postID string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrInvalidID
	}

	return r.findOneAndUpdate(ctx, objID, bson.M{"$inc": bson.M{"shares": 1}})
}

func (r *MongoPostRepository) findOneAndUpdate(ctx context.Context, objID primitive.ObjectID, update interface{}) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func filterQuery(filter PostFilter) bson.M {
	query := bson.M{}
	if filter.User != nil {
		query["user"] = *filter.User
	}
	if filter.Category != nil {
		query["category"] = *filter.Category
	}
	return query
}
