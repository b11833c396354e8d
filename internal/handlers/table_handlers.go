package handlers

import (
	"net/http"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/services"

	"github.com/labstack/echo/v4"
)

// TableHandlers handles table endpoints. Diners only ever see active tables;
// the admin surface manages the full set.
type TableHandlers struct {
	tableService services.TableService
}

func NewTableHandlers(tableService services.TableService) *TableHandlers {
	return &TableHandlers{
		tableService: tableService,
	}
}

// ListActiveTables handles GET /tables
func (h *TableHandlers) ListActiveTables(c echo.Context) error {
	tables, err := h.tableService.ListActive(c.Request().Context())
	if err != nil {
		return respondError(c, "Table", "Failed to list tables", err)
	}

	if tables == nil {
		tables = []*models.Table{}
	}
	return c.JSON(http.StatusOK, tables)
}

// GetActiveTable handles GET /tables/:id
func (h *TableHandlers) GetActiveTable(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "table id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	table, err := h.tableService.GetActive(c.Request().Context(), id)
	if err != nil {
		return respondError(c, "Table", "Failed to get table", err)
	}

	return c.JSON(http.StatusOK, table)
}

// ListTables handles GET /admin/tables
func (h *TableHandlers) ListTables(c echo.Context) error {
	tables, err := h.tableService.List(c.Request().Context())
	if err != nil {
		return respondError(c, "Table", "Failed to list tables", err)
	}

	if tables == nil {
		tables = []*models.Table{}
	}
	return c.JSON(http.StatusOK, tables)
}

// CreateTable handles POST /admin/tables
func (h *TableHandlers) CreateTable(c echo.Context) error {
	ctx := c.Request().Context()

	var table models.Table
	if err := c.Bind(&table); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.tableService.Create(ctx, &table); err != nil {
		return respondError(c, "Table", "Failed to create table", err)
	}

	return c.JSON(http.StatusCreated, &table)
}

// UpdateTable handles PUT /admin/tables/:id
func (h *TableHandlers) UpdateTable(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "table id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var table models.Table
	if err := c.Bind(&table); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	table.ID = id

	if err := h.tableService.Update(ctx, &table); err != nil {
		return respondError(c, "Table", "Failed to update table", err)
	}

	return c.JSON(http.StatusOK, &table)
}

// DeleteTable handles DELETE /admin/tables/:id
func (h *TableHandlers) DeleteTable(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "table id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.tableService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, "Table", "Failed to delete table", err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Table deleted",
	})
}
