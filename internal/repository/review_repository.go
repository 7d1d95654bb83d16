package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nimko_store/internal/models"
)

// MaxReviewsPerProduct caps stored reviews at the most recent entries.
const MaxReviewsPerProduct = 100

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByProduct(ctx context.Context, productID string) ([]models.Review, error)
}

type reviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepository{coll: db.Collection("reviews")}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return err
	}
	return r.trimOldest(ctx, review.ProductID)
}

func (r *reviewRepository) GetByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"productId": productID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// trimOldest deletes reviews beyond the storage cap, oldest first.
func (r *reviewRepository) trimOldest(ctx context.Context, productID string) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"productId": productID})
	if err != nil {
		return err
	}
	if count <= MaxReviewsPerProduct {
		return nil
	}

	cur, err := r.coll.Find(ctx,
		bson.M{"productId": productID},
		options.Find().
			SetSort(bson.D{{Key: "date", Value: 1}}).
			SetLimit(count-MaxReviewsPerProduct),
	)
	if err != nil {
		return err
	}
	var oldest []models.Review
	if err := cur.All(ctx, &oldest); err != nil {
		return err
	}

	ids := make([]string, 0, len(oldest))
	for _, review := range oldest {
		ids = append(ids, review.ID)
	}
	_, err = r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}
