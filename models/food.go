package models

import "time"

// FoodStatus is the lifecycle state of a menu item
type FoodStatus string

const (
	FoodStatusAvailable    FoodStatus = "AVAILABLE"
	FoodStatusOutOfStock   FoodStatus = "OUT_OF_STOCK"
	FoodStatusDiscontinued FoodStatus = "DISCONTINUED"
)

// IsValid reports whether s is one of the known statuses
func (s FoodStatus) IsValid() bool {
	switch s {
	case FoodStatusAvailable, FoodStatusOutOfStock, FoodStatusDiscontinued:
		return true
	}
	return false
}

type FoodCategory struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// FoodSize is one priced variant of a food (e.g. small / large)
type FoodSize struct {
	ID     int     `json:"id" gorm:"primaryKey"`
	FoodID int     `json:"-" gorm:"index;not null"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Weight float64 `json:"weight"`
	Note   string  `json:"note"`
}

type Food struct {
	ID          int          `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"not null"`
	Description string       `json:"description"`
	Images      []string     `json:"images" gorm:"serializer:json"`
	IsDeleted   bool         `json:"isDeleted" gorm:"default:false;index"`
	FoodSizes   []FoodSize   `json:"foodSizes" gorm:"foreignKey:FoodID;constraint:OnDelete:CASCADE"`
	CategoryID  int          `json:"-" gorm:"index"`
	Category    FoodCategory `json:"category" gorm:"foreignKey:CategoryID"`
	Rating      float64      `json:"rating" gorm:"default:0"` // average of feedback ratings, server-owned
	Tags        []string     `json:"tags" gorm:"serializer:json"`
	Status      FoodStatus   `json:"status" gorm:"not null;default:'AVAILABLE'"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"-"`
}

// IsPersisted reports whether the server has assigned an identity
func (f Food) IsPersisted() bool {
	return f.ID > 0
}
