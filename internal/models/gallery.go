package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Gallery groups the images of one parish event. CloudinaryFolder is the
// remote folder holding the uploaded assets.
type Gallery struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	EventName        string    `gorm:"type:varchar(255)" json:"event_name"`
	EventDate        time.Time `json:"event_date"`
	CloudinaryFolder string    `gorm:"type:varchar(300)" json:"cloudinary_folder"`

	// Relationships
	Images []GalleryImage `gorm:"foreignKey:GalleryID" json:"images,omitempty"`
}

// FolderName builds the remote folder path for an event
func FolderName(eventName, eventDate string) string {
	return fmt.Sprintf("%s - %s", eventName, eventDate)
}

// GalleryImage is a single uploaded image with its liked-by set
type GalleryImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	GalleryID    uint   `gorm:"index" json:"gallery_id"`
	URL          string `gorm:"type:text" json:"url"`
	UploadedByID *uint  `gorm:"index" json:"uploaded_by_id,omitempty"`
	LikedBy      IDList `gorm:"type:jsonb" json:"liked_by"`

	// Relationships
	Gallery    Gallery `gorm:"foreignKey:GalleryID" json:"gallery,omitempty"`
	UploadedBy *User   `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}

// Likes is the derived like count
func (i GalleryImage) Likes() int {
	return len(i.LikedBy)
}
