package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/Wanderboy007/inksesh-app/instagram"
	"github.com/Wanderboy007/inksesh-app/models"
	"github.com/Wanderboy007/inksesh-app/storage"
	"gorm.io/gorm"
)

// IngestService persists a user-selected set of external media as owned
// Design records seeded with placeholder metadata.
type IngestService struct {
	DB       *gorm.DB
	Uploader storage.Uploader
}

// ImportSelected uploads every selected image to durable storage, drops the
// failures, and creates one Design row per survivor in a single transaction.
// It returns the new design IDs in input order.
//
// Storage writes are not transactional with the row creates: a crash between
// the two leaves orphaned files behind, which is accepted.
func (s *IngestService) ImportSelected(ctx context.Context, userID string, posts []instagram.Post) ([]string, error) {
	if userID == "" || len(posts) == 0 {
		return nil, ErrInvalidInput
	}

	reqs := make([]storage.UploadRequest, len(posts))
	for i, post := range posts {
		reqs[i] = storage.UploadRequest{Ref: strconv.Itoa(i), SourceURL: post.URL}
	}

	uploaded := make(map[string]string, len(posts))
	for _, res := range s.Uploader.UploadFromURLs(ctx, reqs) {
		if res.Err != nil {
			log.Printf("upload failed for item %s: %v", res.Ref, res.Err)
			continue
		}
		uploaded[res.Ref] = res.URL
	}

	if len(uploaded) == 0 {
		return nil, ErrAllUploadsFailed
	}

	designs := make([]*models.Design, 0, len(uploaded))
	for i, post := range posts {
		url, ok := uploaded[strconv.Itoa(i)]
		if !ok {
			continue
		}

		designs = append(designs, &models.Design{
			UserID:      userID,
			ImageURL:    url,
			IgMediaID:   post.ID,
			IgPermalink: post.Permalink,
			Title:       models.DefaultTitle,
			Caption:     "",
			Gender:      models.GenderUnisex,
			Size:        models.SizeMedium,
			BodyPart:    "",
			Styles:      models.StringList{},
			Themes:      models.StringList{},
		})
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, design := range designs {
			if err := tx.Create(design).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	ids := make([]string, len(designs))
	for i, design := range designs {
		ids[i] = design.ID
	}
	return ids, nil
}
