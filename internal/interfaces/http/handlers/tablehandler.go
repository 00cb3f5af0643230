package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	tableApp "dino/internal/application/table"
	"dino/internal/domain/venue"
	"dino/internal/interfaces/http/middleware"
	"dino/internal/shared/logger"
	"dino/internal/shared/utils"
)

// TableHandler handles HTTP requests for table management and public QR
// token resolution.
type TableHandler struct {
	tableService *tableApp.Service
	logger       logger.Interface
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *tableApp.Service, log logger.Interface) *TableHandler {
	return &TableHandler{
		tableService: tableService,
		logger:       log,
	}
}

type CreateTableRequest struct {
	TableNumber int `json:"table_number" binding:"required,min=1"`
}

type UpdateTableStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available occupied maintenance out_of_service"`
}

// ResolvedTableResponse is what a customer scan receives. It deliberately
// omits the QR token and any venue internals.
type ResolvedTableResponse struct {
	VenueID     string `json:"venue_id"`
	TableID     string `json:"table_id"`
	TableNumber int    `json:"table_number"`
	Status      string `json:"status"`
}

// CreateTable handles POST /venues/:venue_id/tables
func (h *TableHandler) CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create table", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	created, err := h.tableService.CreateTable(c.Request.Context(), c.Param("venue_id"), req.TableNumber)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, newTableResponse(created), "Table created successfully")
}

// ListTables handles GET /venues/:venue_id/tables
func (h *TableHandler) ListTables(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	tables, err := h.tableService.ListTables(c.Request.Context(), *principal, c.Param("venue_id"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, newTableResponses(tables))
}

// UpdateStatus handles PUT /venues/:venue_id/tables/:table_id/status
func (h *TableHandler) UpdateStatus(c *gin.Context) {
	var req UpdateTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	status, err := venue.NewTableStatus(req.Status)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.tableService.UpdateStatus(c.Request.Context(), c.Param("venue_id"), c.Param("table_id"), status)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, newTableResponse(updated))
}

// RegenerateQR handles POST /venues/:venue_id/tables/:table_id/qr
func (h *TableHandler) RegenerateQR(c *gin.Context) {
	updated, err := h.tableService.RegenerateQR(c.Request.Context(), c.Param("venue_id"), c.Param("table_id"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, newTableResponse(updated))
}

// ResolveQR handles GET /public/venues/:venue_id/tables/resolve. This is
// the unauthenticated endpoint behind printed QR codes.
func (h *TableHandler) ResolveQR(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid table token")
		return
	}

	resolved, err := h.tableService.ResolveQR(c.Request.Context(), c.Param("venue_id"), token)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, ResolvedTableResponse{
		VenueID:     resolved.VenueID,
		TableID:     resolved.TableID,
		TableNumber: resolved.TableNumber,
		Status:      resolved.Status.String(),
	})
}
