package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"parish_app_echo/internal/models"
)

// fakeMedia serves canned resources per prefix and records uploads
type fakeMedia struct {
	resources map[string][]MediaResource
	listErr   map[string]error
	uploadErr error
	uploaded  int
}

func (f *fakeMedia) Upload(ctx context.Context, folder, file string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded++
	return fmt.Sprintf("https://media.example.com/%s/%d.jpg", folder, f.uploaded), nil
}

func (f *fakeMedia) ListByPrefix(ctx context.Context, prefix string) ([]MediaResource, error) {
	if err := f.listErr[prefix]; err != nil {
		return nil, err
	}
	return f.resources[prefix], nil
}

func seedGallery(t *testing.T, svc *GalleryService, name, date string) models.Gallery {
	t.Helper()
	gallery := models.Gallery{
		EventName:        name,
		CloudinaryFolder: models.FolderName(name, date),
	}
	var err error
	gallery.EventDate, err = time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad seed date %q: %v", date, err)
	}
	if err := svc.db.Create(&gallery).Error; err != nil {
		t.Fatalf("failed to seed gallery: %v", err)
	}
	return gallery
}

func TestListFoldersPreviewIsEarliestAsset(t *testing.T) {
	db := newTestDB(t)
	folder := models.FolderName("Easter Vigil", "2025-04-19")
	media := &fakeMedia{
		resources: map[string][]MediaResource{
			folder: {
				{URL: "https://media.example.com/late.jpg", CreatedAt: time.Date(2025, 4, 20, 10, 0, 0, 0, time.UTC)},
				{URL: "https://media.example.com/first.jpg", CreatedAt: time.Date(2025, 4, 19, 22, 0, 0, 0, time.UTC)},
				{URL: "https://media.example.com/mid.jpg", CreatedAt: time.Date(2025, 4, 20, 8, 0, 0, 0, time.UTC)},
			},
		},
	}
	svc := NewGalleryService(db, media, nil)
	seedGallery(t, svc, "Easter Vigil", "2025-04-19")

	folders, err := svc.ListFolders(context.Background())
	if err != nil {
		t.Fatalf("ListFolders returned error: %v", err)
	}
	if len(folders) != 1 {
		t.Fatalf("ListFolders returned %d folders; want 1", len(folders))
	}
	if folders[0].PreviewImage == nil || *folders[0].PreviewImage != "https://media.example.com/first.jpg" {
		t.Errorf("preview = %v; want the earliest uploaded asset", folders[0].PreviewImage)
	}
}

func TestListFoldersSoftFailsPerFolder(t *testing.T) {
	db := newTestDB(t)
	okFolder := models.FolderName("Christmas Mass", "2024-12-25")
	badFolder := models.FolderName("Parish Feast", "2025-03-19")
	media := &fakeMedia{
		resources: map[string][]MediaResource{
			okFolder: {
				{URL: "https://media.example.com/crib.jpg", CreatedAt: time.Date(2024, 12, 25, 8, 0, 0, 0, time.UTC)},
			},
		},
		listErr: map[string]error{
			badFolder: errors.New("remote listing failed"),
		},
	}
	svc := NewGalleryService(db, media, nil)
	seedGallery(t, svc, "Christmas Mass", "2024-12-25")
	seedGallery(t, svc, "Parish Feast", "2025-03-19")

	folders, err := svc.ListFolders(context.Background())
	if err != nil {
		t.Fatalf("ListFolders returned error: %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("ListFolders returned %d folders; want 2", len(folders))
	}

	// eventDate desc puts the failing folder first
	if folders[0].PreviewImage != nil {
		t.Errorf("failing folder preview = %q; want nil", *folders[0].PreviewImage)
	}
	if folders[1].PreviewImage == nil || *folders[1].PreviewImage != "https://media.example.com/crib.jpg" {
		t.Errorf("healthy folder preview = %v; want crib.jpg", folders[1].PreviewImage)
	}
}

func TestUploadGalleryRecordsImages(t *testing.T) {
	db := newTestDB(t)
	media := &fakeMedia{}
	svc := NewGalleryService(db, media, nil)

	gallery, err := svc.UploadGallery(context.Background(), "Confirmation", "2025-06-01",
		[]string{"data:image/jpeg;base64,aaaa", "data:image/jpeg;base64,bbbb"}, 7)
	if err != nil {
		t.Fatalf("UploadGallery returned error: %v", err)
	}

	if gallery.CloudinaryFolder != "Confirmation - 2025-06-01" {
		t.Errorf("folder = %q; want %q", gallery.CloudinaryFolder, "Confirmation - 2025-06-01")
	}
	if media.uploaded != 2 {
		t.Errorf("uploaded %d assets; want 2", media.uploaded)
	}

	var images []models.GalleryImage
	db.Where("gallery_id = ?", gallery.ID).Find(&images)
	if len(images) != 2 {
		t.Fatalf("found %d image rows; want 2", len(images))
	}
	for _, img := range images {
		if img.UploadedByID == nil || *img.UploadedByID != 7 {
			t.Errorf("image uploader = %v; want 7", img.UploadedByID)
		}
		if img.Likes() != 0 {
			t.Errorf("new image has %d likes; want 0", img.Likes())
		}
	}
}

func TestUploadGalleryAbortsBatchOnFailure(t *testing.T) {
	db := newTestDB(t)
	media := &fakeMedia{uploadErr: errors.New("upload refused")}
	svc := NewGalleryService(db, media, nil)

	_, err := svc.UploadGallery(context.Background(), "Confirmation", "2025-06-01",
		[]string{"data:image/jpeg;base64,aaaa"}, 7)
	if err == nil {
		t.Fatal("UploadGallery succeeded despite upload failure")
	}

	var count int64
	db.Model(&models.Gallery{}).Count(&count)
	if count != 0 {
		t.Errorf("found %d gallery rows after aborted batch; want 0", count)
	}
}

func TestUploadGalleryRejectsBadDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewGalleryService(db, &fakeMedia{}, nil)

	_, err := svc.UploadGallery(context.Background(), "Confirmation", "June 1st",
		[]string{"data:image/jpeg;base64,aaaa"}, 7)
	if err == nil {
		t.Fatal("UploadGallery accepted an unparseable date")
	}
}

func TestToggleLikeTwiceRestoresState(t *testing.T) {
	db := newTestDB(t)
	svc := NewGalleryService(db, &fakeMedia{}, nil)
	gallery := seedGallery(t, svc, "Lent Retreat", "2025-03-05")

	image := models.GalleryImage{
		GalleryID: gallery.ID,
		URL:       "https://media.example.com/retreat.jpg",
		LikedBy:   models.IDList{3},
	}
	if err := db.Create(&image).Error; err != nil {
		t.Fatalf("failed to seed image: %v", err)
	}

	likes, isLiked, err := svc.ToggleLike(image.ID, 9)
	if err != nil {
		t.Fatalf("first ToggleLike returned error: %v", err)
	}
	if likes != 2 || !isLiked {
		t.Errorf("after like: likes=%d isLiked=%v; want 2 true", likes, isLiked)
	}

	likes, isLiked, err = svc.ToggleLike(image.ID, 9)
	if err != nil {
		t.Fatalf("second ToggleLike returned error: %v", err)
	}
	if likes != 1 || isLiked {
		t.Errorf("after unlike: likes=%d isLiked=%v; want 1 false", likes, isLiked)
	}

	var reloaded models.GalleryImage
	db.First(&reloaded, image.ID)
	if !reloaded.LikedBy.Contains(3) {
		t.Error("other user's like was lost by the toggle")
	}
}

func TestToggleLikeUnknownImage(t *testing.T) {
	db := newTestDB(t)
	svc := NewGalleryService(db, &fakeMedia{}, nil)

	_, _, err := svc.ToggleLike(42, 9)
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("ToggleLike error = %v; want ErrImageNotFound", err)
	}
}

func TestImagesByGallery(t *testing.T) {
	db := newTestDB(t)
	svc := NewGalleryService(db, &fakeMedia{}, nil)
	gallery := seedGallery(t, svc, "Palm Sunday", "2025-04-13")

	image := models.GalleryImage{
		GalleryID: gallery.ID,
		URL:       "https://media.example.com/palms.jpg",
		LikedBy:   models.IDList{5, 8},
	}
	if err := db.Create(&image).Error; err != nil {
		t.Fatalf("failed to seed image: %v", err)
	}

	// anonymous viewer: likes visible, membership unset
	views, err := svc.ImagesByGallery(gallery.ID, nil)
	if err != nil {
		t.Fatalf("ImagesByGallery returned error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d images; want 1", len(views))
	}
	if views[0].Likes != 2 {
		t.Errorf("likes = %d; want 2", views[0].Likes)
	}
	if views[0].IsLiked != nil {
		t.Errorf("anonymous IsLiked = %v; want nil", *views[0].IsLiked)
	}

	// logged-in viewer who liked the image
	viewer := uint(5)
	views, err = svc.ImagesByGallery(gallery.ID, &viewer)
	if err != nil {
		t.Fatalf("ImagesByGallery returned error: %v", err)
	}
	if views[0].IsLiked == nil || !*views[0].IsLiked {
		t.Errorf("viewer 5 IsLiked = %v; want true", views[0].IsLiked)
	}
}

func TestImagesByGalleryUnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := NewGalleryService(db, &fakeMedia{}, nil)

	_, err := svc.ImagesByGallery(404, nil)
	if !errors.Is(err, ErrGalleryNotFound) {
		t.Fatalf("ImagesByGallery error = %v; want ErrGalleryNotFound", err)
	}
}
