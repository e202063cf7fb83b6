package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name         TEXT,
//     description  TEXT,
//     category     TEXT,
//     brand        TEXT,
//     price        NUMERIC,
//     rating       NUMERIC,
//     num_reviews  INTEGER,
//     popularity   INTEGER,
//     stock        INTEGER,
//     discount     NUMERIC,
//     tags         JSONB,
//     features     JSONB,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string                      `gorm:"column:name;type:text" json:"name"`
	Description string                      `gorm:"column:description;type:text" json:"description"`
	Category    string                      `gorm:"column:category;type:text" json:"category"`
	Brand       string                      `gorm:"column:brand;type:text" json:"brand"`
	Price       float64                     `gorm:"column:price;type:numeric" json:"price"`
	Rating      float64                     `gorm:"column:rating;type:numeric" json:"rating"`
	NumReviews  int                         `gorm:"column:num_reviews" json:"num_reviews"`
	Popularity  int                         `gorm:"column:popularity" json:"popularity"`
	Stock       int                         `gorm:"column:stock" json:"stock"`
	Discount    float64                     `gorm:"column:discount;type:numeric" json:"discount"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Features    datatypes.JSONSlice[string] `gorm:"column:features" json:"features"`
	CreatedAt   time.Time                   `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
