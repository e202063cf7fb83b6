package domain

import (
	"time"

	"gorm.io/datatypes"
)

// InteractionEvent is one row of a user's browsing or purchase history.
type InteractionEvent struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    uint              `gorm:"column:user_id;not null" json:"user_id"`
	ProductID uint64            `gorm:"column:product_id;not null" json:"product_id"`
	EventType string            `gorm:"column:event_type;not null" json:"event_type"`
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InteractionEvent) TableName() string {
	return "interaction_events"
}

// Event types stored in interaction_events.
const (
	EventView     = "view"
	EventPurchase = "purchase"
)

// UserHistory is the engine's view of a user's past activity, most recent
// first. It is fetched fresh per personalization request and never cached
// by the engine.
type UserHistory struct {
	Browsing  []InteractionEvent `json:"browsing"`
	Purchases []InteractionEvent `json:"purchases"`
}

type UserPreferences struct {
	UserID      uint                        `gorm:"column:user_id;primaryKey" json:"user_id"`
	Categories  datatypes.JSONSlice[string] `gorm:"column:categories" json:"categories"`
	Brands      datatypes.JSONSlice[string] `gorm:"column:brands" json:"brands"`
	MinPrice    float64                     `gorm:"column:min_price;type:numeric" json:"min_price"`
	MaxPrice    float64                     `gorm:"column:max_price;type:numeric" json:"max_price"`
	WPrice      float64                     `gorm:"column:w_price;type:numeric" json:"w_price"`
	WBrand      float64                     `gorm:"column:w_brand;type:numeric" json:"w_brand"`
	WCategory   float64                     `gorm:"column:w_category;type:numeric" json:"w_category"`
	WPopularity float64                     `gorm:"column:w_popularity;type:numeric" json:"w_popularity"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

// Weights returns the stored recommendation weights, falling back to the
// defaults when the row carries no explicit weights.
func (p UserPreferences) Weights() RecommendationWeights {
	if p.WPrice == 0 && p.WBrand == 0 && p.WCategory == 0 && p.WPopularity == 0 {
		return DefaultRecommendationWeights()
	}
	return RecommendationWeights{
		Price:      p.WPrice,
		Brand:      p.WBrand,
		Category:   p.WCategory,
		Popularity: p.WPopularity,
	}
}
