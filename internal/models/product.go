package models

type Product struct {
	ID          string  `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Weight      string  `bson:"weight,omitempty" json:"weight,omitempty"`
	Image       string  `bson:"image,omitempty" json:"image,omitempty"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}
