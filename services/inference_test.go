package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Wanderboy007/inksesh-app/ai"
	"github.com/Wanderboy007/inksesh-app/models"
	"github.com/Wanderboy007/inksesh-app/services"
)

// fakeAnalyzer implements ai.Analyzer with a canned response or error.
type fakeAnalyzer struct {
	err   error
	fn    func(designs []ai.DesignImage) *ai.Analysis
	calls [][]ai.DesignImage
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, designs []ai.DesignImage) (*ai.Analysis, error) {
	f.calls = append(f.calls, designs)
	if f.err != nil {
		return nil, f.err
	}
	if f.fn != nil {
		return f.fn(designs), nil
	}
	return echoAnalysis(designs), nil
}

// echoAnalysis produces one plausible analysis item per design.
func echoAnalysis(designs []ai.DesignImage) *ai.Analysis {
	result := &ai.Analysis{Analysis: []ai.AnalysisItem{}}
	for _, design := range designs {
		result.Analysis = append(result.Analysis, ai.AnalysisItem{
			ID:       design.ID,
			Title:    "Koi Sleeve",
			Caption:  "Japanese koi half sleeve",
			Gender:   "MALE",
			Size:     "LARGE",
			BodyPart: "forearm",
			Style:    []string{"Japanese", "Irezumi"},
			Themes:   []string{"Koi", "Water"},
		})
	}
	return result
}

func createTestDesign(t *testing.T, db *gorm.DB, userID string) *models.Design {
	t.Helper()

	design := &models.Design{
		UserID:   userID,
		ImageURL: "https://storage.googleapis.com/ink-test/d.jpg",
		Title:    models.DefaultTitle,
		Gender:   models.GenderUnisex,
		Size:     models.SizeMedium,
		Styles:   models.StringList{},
		Themes:   models.StringList{},
	}
	require.NoError(t, db.Create(design).Error)
	return design
}

func TestGenerateMetadataMissingInput(t *testing.T) {
	db := setupTestDB(t)
	svc := &services.InferenceService{DB: db, Analyzer: &fakeAnalyzer{}}

	_, err := svc.GenerateMetadata(context.Background(), "", "a,b")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.GenerateMetadata(context.Background(), "user", " , ,")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestGenerateMetadataOwnershipScoped(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@x.com", "owner")
	other := createTestUser(t, db, "other@x.com", "other")
	design := createTestDesign(t, db, owner.ID)

	analyzer := &fakeAnalyzer{}
	svc := &services.InferenceService{DB: db, Analyzer: analyzer}

	// A design owned by someone else reads as if it does not exist.
	_, err := svc.GenerateMetadata(context.Background(), other.ID, design.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Empty(t, analyzer.calls)
}

func TestGenerateMetadataDeduplicatesIDs(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@b.com", "a")
	d1 := createTestDesign(t, db, user.ID)
	d2 := createTestDesign(t, db, user.ID)

	analyzer := &fakeAnalyzer{}
	svc := &services.InferenceService{DB: db, Analyzer: analyzer}

	raw := strings.Join([]string{d1.ID, " " + d2.ID, "", d1.ID}, ",")
	count, err := svc.GenerateMetadata(context.Background(), user.ID, raw)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.Len(t, analyzer.calls, 1)
	assert.Len(t, analyzer.calls[0], 2)
}

func TestGenerateMetadataRefusal(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@b.com", "a")
	design := createTestDesign(t, db, user.ID)

	svc := &services.InferenceService{
		DB:       db,
		Analyzer: &fakeAnalyzer{err: &ai.RefusalError{Reason: "unsafe content"}},
	}

	_, err := svc.GenerateMetadata(context.Background(), user.ID, design.ID)

	var refusal *ai.RefusalError
	require.ErrorAs(t, err, &refusal)
	assert.Equal(t, "unsafe content", refusal.Reason)

	// Zero database writes on refusal.
	var after models.Design
	require.NoError(t, db.First(&after, "id = ?", design.ID).Error)
	assert.Equal(t, models.DefaultTitle, after.Title)
	assert.Equal(t, models.GenderUnisex, after.Gender)
}

func TestGenerateMetadataTruncation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@b.com", "a")
	design := createTestDesign(t, db, user.ID)

	longTitle := strings.Repeat("t", 35)
	longCaption := strings.Repeat("c", 300)

	svc := &services.InferenceService{
		DB: db,
		Analyzer: &fakeAnalyzer{fn: func(designs []ai.DesignImage) *ai.Analysis {
			result := echoAnalysis(designs)
			for i := range result.Analysis {
				result.Analysis[i].Title = longTitle
				result.Analysis[i].Caption = longCaption
			}
			return result
		}},
	}

	count, err := svc.GenerateMetadata(context.Background(), user.ID, design.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var after models.Design
	require.NoError(t, db.First(&after, "id = ?", design.ID).Error)
	assert.Equal(t, longTitle[:20], after.Title)
	assert.Equal(t, longCaption[:280], after.Caption)
}

func TestGenerateMetadataUnknownIDRollsBack(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@b.com", "a")
	d1 := createTestDesign(t, db, user.ID)
	d2 := createTestDesign(t, db, user.ID)

	hallucinate := true
	analyzer := &fakeAnalyzer{fn: func(designs []ai.DesignImage) *ai.Analysis {
		result := echoAnalysis(designs)
		if hallucinate {
			result.Analysis[len(result.Analysis)-1].ID = "no-such-design"
		}
		return result
	}}
	svc := &services.InferenceService{DB: db, Analyzer: analyzer}

	_, err := svc.GenerateMetadata(context.Background(), user.ID, d1.ID+","+d2.ID)
	assert.ErrorIs(t, err, services.ErrPersistenceFailure)

	// Nothing in the batch was mutated, including the valid item.
	for _, id := range []string{d1.ID, d2.ID} {
		var after models.Design
		require.NoError(t, db.First(&after, "id = ?", id).Error)
		assert.Equal(t, models.DefaultTitle, after.Title, "design %s must keep placeholder state", id)
	}

	// Failure is idempotent: the corrected call succeeds fully.
	hallucinate = false
	count, err := svc.GenerateMetadata(context.Background(), user.ID, d1.ID+","+d2.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, id := range []string{d1.ID, d2.ID} {
		var after models.Design
		require.NoError(t, db.First(&after, "id = ?", id).Error)
		assert.Equal(t, "Koi Sleeve", after.Title)
		assert.Equal(t, []string{"Japanese", "Irezumi"}, []string(after.Styles))
	}
}

func TestGenerateMetadataChunksLargeBatches(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@b.com", "a")

	var ids []string
	for i := 0; i < 23; i++ {
		ids = append(ids, createTestDesign(t, db, user.ID).ID)
	}

	analyzer := &fakeAnalyzer{}
	svc := &services.InferenceService{DB: db, Analyzer: analyzer}

	count, err := svc.GenerateMetadata(context.Background(), user.ID, strings.Join(ids, ","))
	require.NoError(t, err)
	assert.Equal(t, 23, count)

	// 23 designs at 10 per request means three model calls.
	require.Len(t, analyzer.calls, 3)
	assert.Len(t, analyzer.calls[0], 10)
	assert.Len(t, analyzer.calls[2], 3)
}

func TestGenerateMetadataRoundTripWithGallery(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@b.com", "a")
	design := createTestDesign(t, db, user.ID)

	svc := &services.InferenceService{DB: db, Analyzer: &fakeAnalyzer{}}
	_, err := svc.GenerateMetadata(context.Background(), user.ID, design.ID)
	require.NoError(t, err)

	gallery := &services.GalleryService{DB: db}

	designs, total, _, err := gallery.Filtered(context.Background(), services.FilterGender, "MALE", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, designs, 1)
	assert.Equal(t, design.ID, designs[0].ID)

	designs, _, _, err = gallery.Filtered(context.Background(), services.FilterSize, "LARGE", 0)
	require.NoError(t, err)
	require.Len(t, designs, 1)
	assert.Equal(t, design.ID, designs[0].ID)
}
