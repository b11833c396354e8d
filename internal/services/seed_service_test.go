package services

import (
	"context"
	"errors"
	"testing"

	"tableside/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, settings *models.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type SeedServiceTestSuite struct {
	suite.Suite
	mockTableRepo    *MockTableRepository
	mockCategoryRepo *MockCategoryRepository
	mockMenuItemRepo *MockMenuItemRepository
	mockSettingsRepo *MockSettingsRepository
	mockCache        *MockCacheService
	service          SeedService
}

func (suite *SeedServiceTestSuite) SetupTest() {
	suite.mockTableRepo = &MockTableRepository{}
	suite.mockCategoryRepo = &MockCategoryRepository{}
	suite.mockMenuItemRepo = &MockMenuItemRepository{}
	suite.mockSettingsRepo = &MockSettingsRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewSeedService(suite.mockTableRepo, suite.mockCategoryRepo, suite.mockMenuItemRepo, suite.mockSettingsRepo, suite.mockCache)
}

func (suite *SeedServiceTestSuite) TearDownTest() {
	suite.mockTableRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
	suite.mockMenuItemRepo.AssertExpectations(suite.T())
	suite.mockSettingsRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestSeedServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SeedServiceTestSuite))
}

func (suite *SeedServiceTestSuite) TestSeed_Success() {
	suite.mockMenuItemRepo.On("DeleteAll", mock.Anything).Return(nil).Once()
	suite.mockCategoryRepo.On("DeleteAll", mock.Anything).Return(nil).Once()
	suite.mockTableRepo.On("DeleteAll", mock.Anything).Return(nil).Once()

	seededTables := make(map[int]bool)
	suite.mockTableRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Table")).Return(nil).Times(20).Run(func(args mock.Arguments) {
		table := args.Get(1).(*models.Table)
		assert.True(suite.T(), table.Active)
		seededTables[table.Number] = true
	})

	suite.mockCategoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil).Times(5)

	var seededItems []*models.MenuItem
	suite.mockMenuItemRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.MenuItem")).Return(nil).Times(20).Run(func(args mock.Arguments) {
		seededItems = append(seededItems, args.Get(1).(*models.MenuItem))
	})

	suite.mockSettingsRepo.On("Upsert", mock.Anything, models.DefaultSettings()).Return(nil).Once()
	suite.mockCache.On("DeleteMenu", mock.Anything).Return(nil).Once()
	suite.mockCache.On("DeleteSettings", mock.Anything).Return(nil).Once()

	result, err := suite.service.Seed(context.Background())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), &SeedResult{Tables: 20, Categories: 5, MenuItems: 20}, result)

	assert.Len(suite.T(), seededTables, 20)
	assert.True(suite.T(), seededTables[1])
	assert.True(suite.T(), seededTables[20])

	assert.Len(suite.T(), seededItems, 20)
	for _, item := range seededItems {
		assert.NotEqual(suite.T(), uuid.Nil, item.ID)
		assert.NotEqual(suite.T(), uuid.Nil, item.CategoryID)
		assert.True(suite.T(), item.IsAvailable)
	}
}

func (suite *SeedServiceTestSuite) TestSeed_ClearFails() {
	suite.mockMenuItemRepo.On("DeleteAll", mock.Anything).Return(errors.New("truncate failed")).Once()

	result, err := suite.service.Seed(context.Background())

	assert.Nil(suite.T(), result)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "failed to clear menu items")
}
