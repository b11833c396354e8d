package services

import (
	"context"
	"fmt"

	"tableside/internal/caching"
	"tableside/internal/models"
	"tableside/internal/repositories"

	"github.com/google/uuid"
)

const seedTableCount = 20

// SeedResult reports how many records a seed run created.
type SeedResult struct {
	Tables     int `json:"tables"`
	Categories int `json:"categories"`
	MenuItems  int `json:"menuItems"`
}

// SeedService wipes and repopulates the catalog with the demo restaurant
// data set: 20 tables, 5 categories, 20 menu items and default settings.
// Orders are left untouched.
type SeedService interface {
	Seed(ctx context.Context) (*SeedResult, error)
}

type seedService struct {
	tableRepo    repositories.TableRepository
	categoryRepo repositories.CategoryRepository
	menuItemRepo repositories.MenuItemRepository
	settingsRepo repositories.SettingsRepository
	cacheService caching.CacheService
}

func NewSeedService(
	tableRepo repositories.TableRepository,
	categoryRepo repositories.CategoryRepository,
	menuItemRepo repositories.MenuItemRepository,
	settingsRepo repositories.SettingsRepository,
	cacheService caching.CacheService,
) SeedService {
	return &seedService{
		tableRepo:    tableRepo,
		categoryRepo: categoryRepo,
		menuItemRepo: menuItemRepo,
		settingsRepo: settingsRepo,
		cacheService: cacheService,
	}
}

func (s *seedService) Seed(ctx context.Context) (*SeedResult, error) {
	// Items reference categories, so they go first.
	if err := s.menuItemRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear menu items: %w", err)
	}
	if err := s.categoryRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear categories: %w", err)
	}
	if err := s.tableRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear tables: %w", err)
	}

	for i := 1; i <= seedTableCount; i++ {
		table := &models.Table{
			ID:     uuid.New(),
			Number: i,
			Label:  fmt.Sprintf("Table %d", i),
			Active: true,
		}
		if err := s.tableRepo.Create(ctx, table); err != nil {
			return nil, fmt.Errorf("failed to seed table %d: %w", i, err)
		}
	}

	categories := seedCategories()
	for _, category := range categories {
		if err := s.categoryRepo.Create(ctx, category); err != nil {
			return nil, fmt.Errorf("failed to seed category %s: %w", category.Name, err)
		}
	}

	items := seedMenuItems(categories)
	for _, item := range items {
		if err := s.menuItemRepo.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to seed menu item %s: %w", item.Name, err)
		}
	}

	if err := s.settingsRepo.Upsert(ctx, models.DefaultSettings()); err != nil {
		return nil, fmt.Errorf("failed to seed settings: %w", err)
	}

	if err := s.cacheService.DeleteMenu(ctx); err != nil {
		fmt.Printf("Failed to invalidate menu cache: %v\n", err)
	}
	if err := s.cacheService.DeleteSettings(ctx); err != nil {
		fmt.Printf("Failed to invalidate settings cache: %v\n", err)
	}

	return &SeedResult{
		Tables:     seedTableCount,
		Categories: len(categories),
		MenuItems:  len(items),
	}, nil
}

func seedCategories() []*models.Category {
	return []*models.Category{
		{ID: uuid.New(), Name: "Burgers", SortOrder: 1, Icon: "🍔"},
		{ID: uuid.New(), Name: "Sandwiches", SortOrder: 2, Icon: "🥪"},
		{ID: uuid.New(), Name: "Coffee", SortOrder: 3, Icon: "☕"},
		{ID: uuid.New(), Name: "Drinks", SortOrder: 4, Icon: "🥤"},
		{ID: uuid.New(), Name: "Desserts", SortOrder: 5, Icon: "🍰"},
	}
}

// seedMenuItems builds the demo menu. The categories slice must be the one
// returned by seedCategories, in the same order.
func seedMenuItems(categories []*models.Category) []*models.MenuItem {
	burgers := categories[0].ID
	sandwiches := categories[1].ID
	coffee := categories[2].ID
	drinks := categories[3].ID
	desserts := categories[4].ID

	items := []*models.MenuItem{
		{
			CategoryID:  burgers,
			Name:        "Classic Burger",
			Description: "Juicy beef patty with lettuce, tomato, and our special sauce",
			Price:       12.99,
			ImageURL:    "https://images.unsplash.com/photo-1627378378955-a3f4e406c5de?w=400",
			Allergens:   []string{"gluten", "dairy"},
			Modifiers: []models.Modifier{
				{Name: "Size", Options: []models.ModifierOption{{Label: "Regular", Price: 0}, {Label: "Large", Price: 3}}},
				{Name: "Extras", Options: []models.ModifierOption{{Label: "Cheese", Price: 1.5}, {Label: "Bacon", Price: 2}}},
			},
			SortOrder: 1,
		},
		{
			CategoryID:  burgers,
			Name:        "Double Cheeseburger",
			Description: "Two beef patties with melted cheddar cheese",
			Price:       15.99,
			ImageURL:    "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=400",
			Allergens:   []string{"gluten", "dairy"},
			SortOrder:   2,
		},
		{
			CategoryID:  burgers,
			Name:        "Veggie Burger",
			Description: "Plant-based patty with fresh vegetables",
			Price:       13.99,
			ImageURL:    "https://images.unsplash.com/photo-1520072959219-c595dc870360?w=400",
			Allergens:   []string{"gluten"},
			SortOrder:   3,
		},
		{
			CategoryID:  burgers,
			Name:        "BBQ Bacon Burger",
			Description: "Beef patty with crispy bacon and tangy BBQ sauce",
			Price:       14.99,
			ImageURL:    "https://images.unsplash.com/photo-1553979459-d2229ba7433b?w=400",
			Allergens:   []string{"gluten", "dairy"},
			SortOrder:   4,
		},
		{
			CategoryID:  sandwiches,
			Name:        "Club Sandwich",
			Description: "Triple-decker with turkey, bacon, lettuce, and tomato",
			Price:       11.99,
			ImageURL:    "https://images.unsplash.com/photo-1528735602780-2552fd46c7af?w=400",
			Allergens:   []string{"gluten", "eggs"},
			SortOrder:   1,
		},
		{
			CategoryID:  sandwiches,
			Name:        "Grilled Cheese",
			Description: "Melted cheddar and mozzarella on sourdough",
			Price:       8.99,
			ImageURL:    "https://images.unsplash.com/photo-1528736235302-52922df5c122?w=400",
			Allergens:   []string{"gluten", "dairy"},
			SortOrder:   2,
		},
		{
			CategoryID:  sandwiches,
			Name:        "BLT",
			Description: "Crispy bacon, lettuce, tomato, mayo on toasted bread",
			Price:       9.99,
			ImageURL:    "https://images.unsplash.com/photo-1619096252214-ef06c45683e3?w=400",
			Allergens:   []string{"gluten", "eggs"},
			SortOrder:   3,
		},
		{
			CategoryID:  sandwiches,
			Name:        "Chicken Caesar Wrap",
			Description: "Grilled chicken, romaine, parmesan in a flour tortilla",
			Price:       10.99,
			ImageURL:    "https://images.unsplash.com/photo-1626700051175-6818013e1d4f?w=400",
			Allergens:   []string{"gluten", "dairy", "eggs"},
			SortOrder:   4,
		},
		{
			CategoryID:  coffee,
			Name:        "Espresso",
			Description: "Rich, bold single shot espresso",
			Price:       3.50,
			ImageURL:    "https://images.unsplash.com/photo-1510707577719-ae7c14805e3a?w=400",
			Modifiers: []models.Modifier{
				{Name: "Shots", Options: []models.ModifierOption{{Label: "Single", Price: 0}, {Label: "Double", Price: 1.5}}},
			},
			SortOrder: 1,
		},
		{
			CategoryID:  coffee,
			Name:        "Latte",
			Description: "Espresso with steamed milk and light foam",
			Price:       4.99,
			ImageURL:    "https://images.unsplash.com/photo-1630040995437-80b01c5dd52d?w=400",
			Allergens:   []string{"dairy"},
			Modifiers: []models.Modifier{
				{Name: "Milk", Options: []models.ModifierOption{{Label: "Whole", Price: 0}, {Label: "Oat", Price: 0.75}, {Label: "Almond", Price: 0.75}}},
			},
			SortOrder: 2,
		},
		{
			CategoryID:  coffee,
			Name:        "Cappuccino",
			Description: "Equal parts espresso, steamed milk, and foam",
			Price:       4.50,
			ImageURL:    "https://images.unsplash.com/photo-1572442388796-11668a67e53d?w=400",
			Allergens:   []string{"dairy"},
			SortOrder:   3,
		},
		{
			CategoryID:  coffee,
			Name:        "Iced Americano",
			Description: "Espresso shots over ice with cold water",
			Price:       4.25,
			ImageURL:    "https://images.unsplash.com/photo-1517701550927-30cf4ba1dba5?w=400",
			SortOrder:   4,
		},
		{
			CategoryID:  drinks,
			Name:        "Fresh Lemonade",
			Description: "House-made with fresh lemons and mint",
			Price:       4.50,
			ImageURL:    "https://images.unsplash.com/photo-1621263764928-df1444c5e859?w=400",
			SortOrder:   1,
		},
		{
			CategoryID:  drinks,
			Name:        "Iced Tea",
			Description: "Refreshing black tea over ice",
			Price:       3.50,
			ImageURL:    "https://images.unsplash.com/photo-1556679343-c7306c1976bc?w=400",
			SortOrder:   2,
		},
		{
			CategoryID:  drinks,
			Name:        "Mango Smoothie",
			Description: "Blended mango, yogurt, and honey",
			Price:       5.99,
			ImageURL:    "https://images.unsplash.com/photo-1623065422902-30a2d299bbe4?w=400",
			Allergens:   []string{"dairy"},
			SortOrder:   3,
		},
		{
			CategoryID:  drinks,
			Name:        "Sparkling Water",
			Description: "Refreshing carbonated mineral water",
			Price:       2.99,
			ImageURL:    "https://images.unsplash.com/photo-1625772299848-391b6a87d7b3?w=400",
			SortOrder:   4,
		},
		{
			CategoryID:  desserts,
			Name:        "Chocolate Cake",
			Description: "Rich, moist chocolate cake with ganache",
			Price:       7.99,
			ImageURL:    "https://images.unsplash.com/photo-1586985289906-406988974504?w=400",
			Allergens:   []string{"gluten", "dairy", "eggs"},
			SortOrder:   1,
		},
		{
			CategoryID:  desserts,
			Name:        "Cheesecake",
			Description: "Creamy New York style with berry compote",
			Price:       8.50,
			ImageURL:    "https://images.unsplash.com/photo-1565958011703-44f9829ba187?w=400",
			Allergens:   []string{"gluten", "dairy", "eggs"},
			SortOrder:   2,
		},
		{
			CategoryID:  desserts,
			Name:        "Ice Cream Sundae",
			Description: "Vanilla ice cream, hot fudge, whipped cream",
			Price:       6.99,
			ImageURL:    "https://images.unsplash.com/photo-1563805042-7684c019e1cb?w=400",
			Allergens:   []string{"dairy"},
			SortOrder:   3,
		},
		{
			CategoryID:  desserts,
			Name:        "Apple Pie",
			Description: "Warm apple pie with cinnamon and vanilla ice cream",
			Price:       7.50,
			ImageURL:    "https://images.unsplash.com/photo-1568571780765-9276ac8b75a2?w=400",
			Allergens:   []string{"gluten", "dairy", "eggs"},
			SortOrder:   4,
		},
	}

	for _, item := range items {
		item.ID = uuid.New()
		item.IsAvailable = true
	}
	return items
}
