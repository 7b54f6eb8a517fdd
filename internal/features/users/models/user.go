package users_models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	Username       string    `json:"username"  gorm:"column:username;uniqueIndex;not null"`
	Email          string    `json:"email"     gorm:"column:email;uniqueIndex;not null"`
	HashedPassword string    `json:"-"         gorm:"column:hashed_password;not null"`
	CreatedAt      time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}
