package migrations

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nimko_store/internal/models"
)

// RunMigrations ensures collection indexes and creates the default catalog.
func RunMigrations(db *mongo.Database) error {
	log.Println("Running database migrations...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Orders are always served newest-first
	_, err := db.Collection("orders").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	// Reviews are fetched per product, newest-first
	_, err = db.Collection("reviews").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "productId", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		return err
	}

	if err := createDefaultCatalog(ctx, db); err != nil {
		log.Printf("Warning: Failed to create default catalog: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultCatalog seeds the product collection when it is empty.
func createDefaultCatalog(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("products")

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Product catalog already exists")
		return nil
	}

	log.Println("Seeding default product catalog...")
	for _, product := range DefaultCatalog() {
		_, err := coll.UpdateOne(ctx,
			bson.M{"_id": product.ID},
			bson.M{"$set": product},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}

	log.Println("Default catalog created successfully!")
	return nil
}

// DefaultCatalog is the packaged-food lineup shown on the storefront.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{
			ID:          "1",
			Name:        "Nimko",
			Price:       1399,
			Weight:      "500g",
			Image:       "/images/nimko-classic.jpg",
			Description: "Classic crunchy nimko mix, slow-fried in small batches.",
		},
		{
			ID:          "2",
			Name:        "Nimko Family Pack",
			Price:       2598,
			Weight:      "1kg",
			Image:       "/images/nimko-family.jpg",
			Description: "Double helping of the classic mix for the whole house.",
		},
		{
			ID:          "3",
			Name:        "Spicy Daal Moth",
			Price:       999,
			Weight:      "400g",
			Image:       "/images/daal-moth.jpg",
			Description: "Extra-spicy daal moth with roasted peanuts.",
		},
	}
}
