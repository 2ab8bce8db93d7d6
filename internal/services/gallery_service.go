package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"parish_app_echo/internal/models"
)

var (
	// ErrGalleryNotFound is returned for unknown gallery ids
	ErrGalleryNotFound = errors.New("gallery not found")
	// ErrImageNotFound is returned for unknown image ids
	ErrImageNotFound = errors.New("image not found")
)

const previewCacheTTL = 10 * time.Minute

// GalleryService implements gallery uploads, folder listing with previews,
// and like toggling
type GalleryService struct {
	db    *gorm.DB
	media MediaLibrary
	cache *RedisCache
}

func NewGalleryService(db *gorm.DB, media MediaLibrary, cache *RedisCache) *GalleryService {
	return &GalleryService{db: db, media: media, cache: cache}
}

// FolderView is a gallery folder with its computed preview image
type FolderView struct {
	ID               uint      `json:"id"`
	EventName        string    `json:"event_name"`
	EventDate        time.Time `json:"event_date"`
	CloudinaryFolder string    `json:"cloudinary_folder"`
	PreviewImage     *string   `json:"preview_image"`
}

// ListFolders returns all galleries, newest event first, each with the
// earliest-uploaded remote asset as preview. A failed remote lookup nulls
// only that folder's preview; the rest of the listing is unaffected.
func (s *GalleryService) ListFolders(ctx context.Context) ([]FolderView, error) {
	var galleries []models.Gallery
	if err := s.db.Order("event_date desc").Find(&galleries).Error; err != nil {
		return nil, err
	}

	folders := make([]FolderView, 0, len(galleries))
	for _, g := range galleries {
		view := FolderView{
			ID:               g.ID,
			EventName:        g.EventName,
			EventDate:        g.EventDate,
			CloudinaryFolder: g.CloudinaryFolder,
		}

		preview, err := s.folderPreview(ctx, g.CloudinaryFolder)
		if err != nil {
			log.Printf("Failed to fetch preview for %q: %v", g.CloudinaryFolder, err)
		} else if preview != "" {
			view.PreviewImage = &preview
		}

		folders = append(folders, view)
	}
	return folders, nil
}

// folderPreview resolves the preview URL for one folder, through the cache
// when one is configured. The preview is the first asset by upload time.
func (s *GalleryService) folderPreview(ctx context.Context, folder string) (string, error) {
	key := fmt.Sprintf("gallery:preview:%s", folder)
	return GetOrSet(s.cache, ctx, key, previewCacheTTL, func() (string, error) {
		resources, err := s.media.ListByPrefix(ctx, folder)
		if err != nil {
			return "", err
		}
		if len(resources) == 0 {
			return "", nil
		}
		sort.Slice(resources, func(i, j int) bool {
			return resources[i].CreatedAt.Before(resources[j].CreatedAt)
		})
		return resources[0].URL, nil
	})
}

// UploadGallery uploads the images to the media host and records the new
// gallery with one row per image. Uploads run concurrently and wait all-of;
// the first failure aborts the batch and nothing is recorded locally.
// Already uploaded remote assets are not cleaned up.
func (s *GalleryService) UploadGallery(ctx context.Context, eventName, eventDate string, images []string, uploadedByID uint) (*models.Gallery, error) {
	date, err := time.Parse("2006-01-02", eventDate)
	if err != nil {
		return nil, fmt.Errorf("invalid event date %q: %w", eventDate, err)
	}

	folder := models.FolderName(eventName, eventDate)

	urls := make([]string, len(images))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, image := range images {
		i, image := i, image
		group.Go(func() error {
			url, err := s.media.Upload(groupCtx, folder, image)
			if err != nil {
				return fmt.Errorf("upload %d/%d failed: %w", i+1, len(images), err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	gallery := models.Gallery{
		EventName:        eventName,
		EventDate:        date,
		CloudinaryFolder: folder,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&gallery).Error; err != nil {
			return err
		}
		for _, url := range urls {
			img := models.GalleryImage{
				GalleryID:    gallery.ID,
				URL:          url,
				UploadedByID: &uploadedByID,
				LikedBy:      models.IDList{},
			}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &gallery, nil
}

// ImageView is one gallery image with its like state for the viewer
type ImageView struct {
	ID         uint         `json:"id"`
	URL        string       `json:"url"`
	Likes      int          `json:"likes"`
	UploadedBy *models.User `json:"uploaded_by"`
	IsLiked    *bool        `json:"is_liked"` // nil for anonymous viewers
}

// ImagesByGallery lists a gallery's images, newest first. viewerID is nil
// for anonymous requests, which leaves IsLiked unset.
func (s *GalleryService) ImagesByGallery(galleryID uint, viewerID *uint) ([]ImageView, error) {
	var gallery models.Gallery
	if err := s.db.Select("id").First(&gallery, galleryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}

	var images []models.GalleryImage
	err := s.db.Preload("UploadedBy").
		Where("gallery_id = ?", gallery.ID).
		Order("created_at desc").
		Find(&images).Error
	if err != nil {
		return nil, err
	}

	views := make([]ImageView, 0, len(images))
	for _, img := range images {
		view := ImageView{
			ID:         img.ID,
			URL:        img.URL,
			Likes:      img.Likes(),
			UploadedBy: img.UploadedBy,
		}
		if viewerID != nil {
			liked := img.LikedBy.Contains(*viewerID)
			view.IsLiked = &liked
		}
		views = append(views, view)
	}
	return views, nil
}

// ToggleLike flips the user's membership in the image's liked-by set and
// returns the new count and membership. Plain read-modify-write; concurrent
// toggles on the same image are last write wins, accepted at this scale.
func (s *GalleryService) ToggleLike(imageID, userID uint) (likes int, isLiked bool, err error) {
	var image models.GalleryImage
	if err := s.db.First(&image, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, ErrImageNotFound
		}
		return 0, false, err
	}

	image.LikedBy = image.LikedBy.Toggle(userID)
	if err := s.db.Save(&image).Error; err != nil {
		return 0, false, err
	}

	return len(image.LikedBy), image.LikedBy.Contains(userID), nil
}
