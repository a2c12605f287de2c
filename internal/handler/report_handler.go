package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles the report download endpoints.
type ReportHandler struct {
	reportService service.ReportService
	driverAddress string
}

// NewReportHandler creates a new ReportHandler. driverAddress is the
// default recipient for mailed run sheets.
func NewReportHandler(reportService service.ReportService, driverAddress string) *ReportHandler {
	return &ReportHandler{reportService: reportService, driverAddress: driverAddress}
}

// Driver handles GET /api/v1/reports/driver?date=YYYY-MM-DD
func (h *ReportHandler) Driver(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "date query parameter is required")
		return
	}
	report, err := h.reportService.DriverReport(c.Request.Context(), date)
	if err != nil {
		HandleError(c, err)
		return
	}
	sendWorkbook(c, report)
}

// Finance handles GET /api/v1/reports/finance?start_date=&end_date=
func (h *ReportHandler) Finance(c *gin.Context) {
	report, err := h.reportService.FinanceReport(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		HandleError(c, err)
		return
	}
	sendWorkbook(c, report)
}

// Orders handles GET /api/v1/reports/orders
func (h *ReportHandler) Orders(c *gin.Context) {
	filter := domain.OrderFilter{
		Search:         c.Query("search"),
		PaymentStatus:  c.Query("payment_status"),
		DeliveryStatus: c.Query("delivery_status"),
		Priority:       c.Query("priority"),
		StartDate:      c.Query("start_date"),
		EndDate:        c.Query("end_date"),
	}
	report, err := h.reportService.OrdersExport(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	sendWorkbook(c, report)
}

// EmailDriver handles POST /api/v1/reports/driver/email?date=YYYY-MM-DD
func (h *ReportHandler) EmailDriver(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "date query parameter is required")
		return
	}
	to := c.Query("to")
	if to == "" {
		to = h.driverAddress
	}
	if to == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "no driver email address configured")
		return
	}
	if err := h.reportService.EmailDriverReport(c.Request.Context(), date, to); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"sent": true, "to": to})
}

func sendWorkbook(c *gin.Context, report *service.Report) {
	c.Header("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, report.Data)
}
