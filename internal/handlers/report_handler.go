package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ispcrm/internal/export"
	"ispcrm/internal/models"
	"ispcrm/internal/services"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// @Summary      Sales performance report
// @Description  Per-salesperson rollup of leads, approved projects, customers and revenue. ?format=xlsx or ?format=pdf downloads a file instead of JSON.
// @Tags         Reports
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        format      query  string  false  "json|xlsx|pdf"
// @Success      200  {array}  models.SalesReportRow
// @Router       /reports/sales [get]
func (h *ReportHandler) Sales(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	rows, err := h.service.SalesSummary(user, startDate, endDate)
	if err != nil {
		writeError(c, err)
		return
	}

	switch c.Query("format") {
	case "xlsx", "pdf":
		h.sendExport(c, rows, startDate, endDate, c.Query("format"))
	default:
		c.JSON(http.StatusOK, rows)
	}
}

// Export is the dedicated download endpoint; defaults to a workbook,
// ?format=pdf switches to a printable table.
func (h *ReportHandler) Export(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	rows, err := h.service.SalesSummary(user, startDate, endDate)
	if err != nil {
		writeError(c, err)
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	h.sendExport(c, rows, startDate, endDate, format)
}

func (h *ReportHandler) sendExport(c *gin.Context, rows []models.SalesReportRow, startDate, endDate, format string) {
	switch format {
	case "pdf":
		data, err := export.SalesReportPDF(rows, startDate, endDate)
		if err != nil {
			writeError(c, err)
			return
		}
		sendAttachment(c, data, "pdf", "application/pdf")
	default:
		data, err := export.SalesReportXLSX(rows)
		if err != nil {
			writeError(c, err)
			return
		}
		sendAttachment(c, data, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	}
}

func (h *ReportHandler) LeadsByStatus(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	buckets, err := h.service.LeadsByStatus(user, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

func sendAttachment(c *gin.Context, data []byte, ext, contentType string) {
	filename := fmt.Sprintf("sales-report-%s.%s", time.Now().Format("2006-01-02"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
