package database

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID               uuid.UUID
	OriginalFilename string
	ObjectKey        string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
