package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Wanderboy007/inksesh-app/ai"
	"github.com/Wanderboy007/inksesh-app/models"
	"gorm.io/gorm"
)

// analysisChunkSize caps how many images go into a single model request.
// Each chunk gets its own write transaction, so a failing chunk never rolls
// back metadata already committed by an earlier one.
const analysisChunkSize = 10

// InferenceService infers and persists structured tattoo metadata for
// previously ingested designs using the vision-model collaborator.
type InferenceService struct {
	DB       *gorm.DB
	Analyzer ai.Analyzer
}

// parseIDList splits a comma-delimited identifier list, dropping empties and
// duplicates while preserving first-seen order.
func parseIDList(raw string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// GenerateMetadata analyzes the given designs and writes the inferred fields
// back. Only designs owned by userID are considered; a design owned by
// someone else is treated as if it does not exist. Returns the number of
// analyzed items.
func (s *InferenceService) GenerateMetadata(ctx context.Context, userID, designIDs string) (int, error) {
	ids := parseIDList(designIDs)
	if userID == "" || len(ids) == 0 {
		return 0, ErrInvalidInput
	}

	// Only id and image URL leave the database; nothing else is sent to
	// the model.
	var designs []ai.DesignImage
	err := s.DB.WithContext(ctx).
		Model(&models.Design{}).
		Select("id", "image_url").
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&designs).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	if len(designs) == 0 {
		return 0, ErrNotFound
	}

	count := 0
	for start := 0; start < len(designs); start += analysisChunkSize {
		end := start + analysisChunkSize
		if end > len(designs) {
			end = len(designs)
		}

		result, err := s.Analyzer.Analyze(ctx, designs[start:end])
		if err != nil {
			return count, err
		}

		if err := s.persistAnalysis(ctx, userID, result.Analysis); err != nil {
			return count, err
		}
		count += len(result.Analysis)
	}

	return count, nil
}

// persistAnalysis writes one chunk of inferred metadata in a single
// transaction. An analysis item whose id matches no owned design rolls the
// whole chunk back, so no design is ever left straddling placeholder and
// inferred values.
func (s *InferenceService) persistAnalysis(ctx context.Context, userID string, items []ai.AnalysisItem) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			res := tx.Model(&models.Design{}).
				Where("id = ? AND user_id = ?", item.ID, userID).
				Updates(map[string]interface{}{
					"title":     models.Truncate(item.Title, models.MaxTitleLen),
					"caption":   models.Truncate(item.Caption, models.MaxCaptionLen),
					"gender":    item.Gender,
					"size":      item.Size,
					"body_part": item.BodyPart,
					// The model reports styles under "style"; the
					// column name wins here.
					"styles": models.StringList(item.Style),
					"themes": models.StringList(item.Themes),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("analysis referenced unknown design %q", item.ID)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return nil
}
