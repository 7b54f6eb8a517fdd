package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	Name      string    `json:"name"      gorm:"column:name;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`

	// Marker used when caching lookups of non-existent projects. It must
	// survive the JSON round trip through the cache.
	IsNotExists bool `json:"isNotExists" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}
