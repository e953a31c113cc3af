package model

import (
	"time"

	"gorm.io/gorm"
)

type Job struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Slug         string         `gorm:"not null;uniqueIndex" json:"slug"`
	Status       string         `gorm:"not null;default:'active'" json:"status"` // "active", "archived", "draft", "closed"
	Tags         string         `json:"tags"`                                    // comma separated, mirrored as a list in DTOs
	DisplayOrder int            `gorm:"not null;index" json:"displayOrder"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
