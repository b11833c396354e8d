package services

import (
	"context"
	"testing"

	"tableside/internal/common"
	"tableside/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TableServiceTestSuite struct {
	suite.Suite
	mockTableRepo *MockTableRepository
	service       TableService
}

func (suite *TableServiceTestSuite) SetupTest() {
	suite.mockTableRepo = &MockTableRepository{}
	suite.service = NewTableService(suite.mockTableRepo)
}

func (suite *TableServiceTestSuite) TearDownTest() {
	suite.mockTableRepo.AssertExpectations(suite.T())
}

func TestTableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TableServiceTestSuite))
}

func (suite *TableServiceTestSuite) TestCreate_DefaultsLabelAndActive() {
	var created *models.Table
	suite.mockTableRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Table")).Return(nil).Once().Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.Table)
	})

	err := suite.service.Create(context.Background(), &models.Table{Number: 12})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), created)
	assert.NotEqual(suite.T(), uuid.Nil, created.ID)
	assert.Equal(suite.T(), "Table 12", created.Label)
	assert.True(suite.T(), created.Active)
}

func (suite *TableServiceTestSuite) TestCreate_KeepsProvidedLabel() {
	var created *models.Table
	suite.mockTableRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Table")).Return(nil).Once().Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.Table)
	})

	err := suite.service.Create(context.Background(), &models.Table{Number: 3, Label: "Patio 3"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Patio 3", created.Label)
}

func (suite *TableServiceTestSuite) TestCreate_RejectsNonPositiveNumber() {
	err := suite.service.Create(context.Background(), &models.Table{Number: 0})

	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	suite.mockTableRepo.AssertNumberOfCalls(suite.T(), "Create", 0)
}

func (suite *TableServiceTestSuite) TestUpdate_RejectsNonPositiveNumber() {
	table := &models.Table{ID: uuid.New(), Number: -1, Label: "Table -1"}

	err := suite.service.Update(context.Background(), table)

	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	suite.mockTableRepo.AssertNumberOfCalls(suite.T(), "Update", 0)
}

func (suite *TableServiceTestSuite) TestList_IncludesInactive() {
	tables := []*models.Table{
		{ID: uuid.New(), Number: 1, Label: "Table 1", Active: true},
		{ID: uuid.New(), Number: 2, Label: "Table 2", Active: false},
	}

	suite.mockTableRepo.On("List", mock.Anything).Return(tables, nil).Once()

	result, err := suite.service.List(context.Background())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), tables, result)
}

func (suite *TableServiceTestSuite) TestDelete_PassesThrough() {
	id := uuid.New()
	suite.mockTableRepo.On("Delete", mock.Anything, id).Return(common.ErrNotFound).Once()

	err := suite.service.Delete(context.Background(), id)

	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}
