package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Wanderboy007/inksesh-app/models"
	"gorm.io/gorm"
)

// GalleryService computes read-only, filtered views over designs for the
// discovery and artist-profile pages. It never writes.
type GalleryService struct {
	DB *gorm.DB
}

type ArtistRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// DesignCard is the display projection of a design.
type DesignCard struct {
	ID       string    `json:"id"`
	ImageURL string    `json:"imageUrl"`
	Title    string    `json:"title"`
	Gender   string    `json:"gender"`
	Size     string    `json:"size"`
	BodyPart string    `json:"bodyPart"`
	Styles   []string  `json:"styles"`
	Themes   []string  `json:"themes"`
	Artist   ArtistRef `json:"artist"`
}

type DiscoverOptions struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

type FilterOptions struct {
	Genders   []string `json:"genders"`
	Sizes     []string `json:"sizes"`
	BodyParts []string `json:"bodyParts"`
}

type FilterType string

const (
	FilterGender   FilterType = "gender"
	FilterSize     FilterType = "size"
	FilterBodyPart FilterType = "bodyPart"
)

const defaultDiscoverLimit = 24

// tagContains matches rows whose JSON list column contains value exactly.
// gorm.io/datatypes has no array-containment expression covering both
// dialects used here, so the predicate switches on the driver.
func (s *GalleryService) tagContains(column, value string) *gorm.DB {
	switch s.DB.Dialector.Name() {
	case "postgres":
		b, _ := json.Marshal([]string{value})
		return s.DB.Where(column+" @> ?::jsonb", string(b))
	default:
		return s.DB.Where(
			fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value = ?)", column),
			value,
		)
	}
}

// Discover returns a filtered, newest-first page of designs, the total match
// count, and the full category universe for the filter UI.
func (s *GalleryService) Discover(ctx context.Context, opts DiscoverOptions) ([]DesignCard, int64, []string, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultDiscoverLimit
	}

	query := s.DB.WithContext(ctx).Model(&models.Design{})

	if opts.Category != "" && opts.Category != "All" && opts.Category != "Trending" {
		query = query.Where(
			s.tagContains("styles", opts.Category).
				Or(s.tagContains("themes", opts.Category)),
		)
	}

	if term := strings.ToLower(strings.TrimSpace(opts.Search)); term != "" {
		like := "%" + term + "%"
		query = query.Where(
			s.DB.Where("LOWER(title) LIKE ?", like).
				Or("LOWER(body_part) LIKE ?", like).
				Or(s.tagContains("styles", term)).
				Or(s.tagContains("themes", term)),
		)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	var designs []models.Design
	err := query.Session(&gorm.Session{}).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(opts.Offset).
		Find(&designs).Error
	if err != nil {
		return nil, 0, nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	categories, err := s.categories(ctx)
	if err != nil {
		return nil, 0, nil, err
	}

	return toCards(designs), total, categories, nil
}

// categories computes the distinct style/theme universe across all designs,
// sorted, prefixed with the two pseudo-categories.
func (s *GalleryService) categories(ctx context.Context) ([]string, error) {
	var rows []models.Design
	err := s.DB.WithContext(ctx).
		Model(&models.Design{}).
		Select("styles", "themes").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	set := make(map[string]struct{})
	for _, row := range rows {
		for _, tag := range row.Styles {
			set[tag] = struct{}{}
		}
		for _, tag := range row.Themes {
			set[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return append([]string{"All", "Trending"}, tags...), nil
}

// Options returns the filter-value universe for building filter UIs.
func (s *GalleryService) Options(ctx context.Context) (FilterOptions, error) {
	var bodyParts []string
	err := s.DB.WithContext(ctx).
		Model(&models.Design{}).
		Distinct("body_part").
		Where("body_part <> ''").
		Order("body_part").
		Pluck("body_part", &bodyParts).Error
	if err != nil {
		return FilterOptions{}, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	return FilterOptions{
		Genders:   models.Genders(),
		Sizes:     models.TattooSizes(),
		BodyParts: bodyParts,
	}, nil
}

// Filtered returns a newest-first, capped view over one facet.
func (s *GalleryService) Filtered(ctx context.Context, filterType FilterType, value string, limit int) ([]DesignCard, int64, FilterOptions, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.DB.WithContext(ctx).Model(&models.Design{})
	switch filterType {
	case FilterGender:
		query = query.Where("gender = ?", value)
	case FilterSize:
		query = query.Where("size = ?", value)
	case FilterBodyPart:
		query = query.Where("LOWER(body_part) = LOWER(?)", value)
	default:
		return nil, 0, FilterOptions{}, ErrInvalidInput
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, FilterOptions{}, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	var designs []models.Design
	err := query.Session(&gorm.Session{}).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&designs).Error
	if err != nil {
		return nil, 0, FilterOptions{}, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	options, err := s.Options(ctx)
	if err != nil {
		return nil, 0, FilterOptions{}, err
	}

	return toCards(designs), total, options, nil
}

type ArtistProfile struct {
	ID         string       `json:"id"`
	Username   string       `json:"username"`
	ProfileURL string       `json:"profileUrl,omitempty"`
	Designs    []DesignCard `json:"designs"`
}

// ArtistByUsername returns an artist's public profile with their 20 newest
// designs.
func (s *GalleryService) ArtistByUsername(ctx context.Context, username string) (*ArtistProfile, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	var designs []models.Design
	err = s.DB.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(20).
		Find(&designs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	profile := &ArtistProfile{
		ID:         user.ID,
		Username:   user.Username,
		ProfileURL: user.ProfileURL,
		Designs:    toCards(designs),
	}
	for i := range profile.Designs {
		profile.Designs[i].Artist = ArtistRef{ID: user.ID, Username: user.Username}
	}
	return profile, nil
}

func toCards(designs []models.Design) []DesignCard {
	cards := make([]DesignCard, len(designs))
	for i, d := range designs {
		cards[i] = DesignCard{
			ID:       d.ID,
			ImageURL: d.ImageURL,
			Title:    d.Title,
			Gender:   string(d.Gender),
			Size:     string(d.Size),
			BodyPart: d.BodyPart,
			Styles:   []string(d.Styles),
			Themes:   []string(d.Themes),
			Artist:   ArtistRef{ID: d.User.ID, Username: d.User.Username},
		}
	}
	return cards
}
