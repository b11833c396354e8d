package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"tableside/internal/caching"
	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"

	"github.com/google/uuid"
)

// menuCacheTTL bounds how stale a cached menu snapshot can get; mutations
// invalidate eagerly anyway.
const menuCacheTTL = 15 * time.Minute

// imageURLExpiry is the presigned URL lifetime, capped by MinIO at 7 days.
const imageURLExpiry = 7 * 24 * time.Hour

// MenuService serves the public menu snapshot and handles admin catalog
// mutations. Every mutation invalidates the cached snapshots.
type MenuService interface {
	GetMenu(ctx context.Context, includeUnavailable bool) (*models.Menu, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error

	UploadItemImage(ctx context.Context, itemID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.MenuItem, error)
}

type menuService struct {
	categoryRepo repositories.CategoryRepository
	menuItemRepo repositories.MenuItemRepository
	cacheService caching.CacheService
	minioService MinioService
}

func NewMenuService(categoryRepo repositories.CategoryRepository, menuItemRepo repositories.MenuItemRepository, cacheService caching.CacheService, minioService MinioService) MenuService {
	return &menuService{
		categoryRepo: categoryRepo,
		menuItemRepo: menuItemRepo,
		cacheService: cacheService,
		minioService: minioService,
	}
}

// GetMenu returns categories plus items, available items only unless
// includeUnavailable is set. The two variants are cached under separate keys.
func (s *menuService) GetMenu(ctx context.Context, includeUnavailable bool) (*models.Menu, error) {
	key := caching.MenuKey
	if includeUnavailable {
		key = caching.MenuAllKey
	}

	// Try to get from cache first
	if cached, err := s.cacheService.GetMenu(ctx, key); cached != nil {
		return cached, nil
	} else if err != nil {
		fmt.Printf("Cache error for menu: %v\n", err)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var items []*models.MenuItem
	if includeUnavailable {
		items, err = s.menuItemRepo.List(ctx)
	} else {
		items, err = s.menuItemRepo.ListAvailable(ctx)
	}
	if err != nil {
		return nil, err
	}

	// Empty slices, not nil: clients expect [] before the first seed.
	if categories == nil {
		categories = []*models.Category{}
	}
	if items == nil {
		items = []*models.MenuItem{}
	}

	menu := &models.Menu{Categories: categories, Items: items}
	if cacheErr := s.cacheService.SetMenu(ctx, key, menu, menuCacheTTL); cacheErr != nil {
		fmt.Printf("Failed to cache menu: %v\n", cacheErr)
	}
	return menu, nil
}

func (s *menuService) CreateCategory(ctx context.Context, category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return common.NewValidationError("category name is required")
	}

	category.ID = uuid.New()
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return err
	}

	s.invalidateMenu(ctx)
	return nil
}

func (s *menuService) UpdateCategory(ctx context.Context, category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return common.NewValidationError("category name is required")
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return err
	}

	s.invalidateMenu(ctx)
	return nil
}

func (s *menuService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateMenu(ctx)
	return nil
}

func (s *menuService) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}

	item.ID = uuid.New()
	if err := s.menuItemRepo.Create(ctx, item); err != nil {
		return err
	}

	s.invalidateMenu(ctx)
	return nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}

	if err := s.menuItemRepo.Update(ctx, item); err != nil {
		return err
	}

	s.invalidateMenu(ctx)
	return nil
}

func (s *menuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if err := s.menuItemRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateMenu(ctx)
	return nil
}

// UploadItemImage stores the image under the item's id, points the item's
// imageUrl at a presigned link and persists the change.
func (s *menuService) UploadItemImage(ctx context.Context, itemID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.MenuItem, error) {
	item, err := s.menuItemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	fileExt := filepath.Ext(filename)
	baseName := strings.TrimSuffix(filename, fileExt)
	objectKey := fmt.Sprintf("%s/%s%s", itemID.String(), baseName, fileExt)

	if err := s.minioService.UploadImage(ctx, objectKey, reader, size, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload image to storage: %w", err)
	}

	url, err := s.minioService.PresignedImageURL(ctx, objectKey, imageURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image URL: %w", err)
	}

	item.ImageURL = url
	if err := s.menuItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateMenu(ctx)
	return item, nil
}

func validateMenuItem(item *models.MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return common.NewValidationError("item name is required")
	}
	if item.Price < 0 {
		return common.NewValidationError("item price cannot be negative")
	}
	return nil
}

func (s *menuService) invalidateMenu(ctx context.Context) {
	if err := s.cacheService.DeleteMenu(ctx); err != nil {
		fmt.Printf("Failed to invalidate menu cache: %v\n", err)
	}
}
