package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/port"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Report is a generated workbook ready to download or attach.
type Report struct {
	Filename string
	Data     []byte
}

// ReportService builds the operational workbooks: the driver run sheet for
// one day, the finance report over a date range, and a full ledger export.
type ReportService interface {
	DriverReport(ctx context.Context, date string) (*Report, error)
	FinanceReport(ctx context.Context, startDate, endDate string) (*Report, error)
	OrdersExport(ctx context.Context, filter domain.OrderFilter) (*Report, error)
	// EmailDriverReport generates the run sheet and mails it to the
	// configured driver address.
	EmailDriverReport(ctx context.Context, date, toEmail string) error
}

type reportService struct {
	orders     port.OrderRepository
	storage    port.ObjectStorage
	emailer    port.EmailSender
	bucket     string
	exportsDir string
}

// NewReportService creates a ReportService. storage may be nil (no
// archiving) and emailer may be nil (mailing disabled).
func NewReportService(orders port.OrderRepository, storage port.ObjectStorage, emailer port.EmailSender, bucket, exportsDir string) ReportService {
	return &reportService{
		orders:     orders,
		storage:    storage,
		emailer:    emailer,
		bucket:     bucket,
		exportsDir: exportsDir,
	}
}

func (s *reportService) DriverReport(ctx context.Context, date string) (*Report, error) {
	orders, err := s.orders.List(ctx, domain.OrderFilter{StartDate: date, EndDate: date})
	if err != nil {
		return nil, fmt.Errorf("reportService.DriverReport: %w", err)
	}

	headers := []string{
		"Order ID", "Delivery Date", "Time Window", "District", "Full Address",
		"Google Maps Link", "Bouquet Name", "Size", "Recipient Name", "Notes",
	}
	rows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []interface{}{
			o.OrderID, o.DeliveryDate, o.TimeWindow, o.District, o.FullAddress,
			o.MapsLink, o.BouquetName, o.Size, o.ReceiverName, o.Notes,
		})
	}

	data, err := buildWorkbook("Driver", headers, rows)
	if err != nil {
		return nil, fmt.Errorf("reportService.DriverReport: %w", err)
	}
	report := &Report{Filename: fmt.Sprintf("driver_%s.xlsx", date), Data: data}
	s.persist(ctx, report)
	return report, nil
}

func (s *reportService) FinanceReport(ctx context.Context, startDate, endDate string) (*Report, error) {
	orders, err := s.orders.List(ctx, domain.OrderFilter{StartDate: startDate, EndDate: endDate})
	if err != nil {
		return nil, fmt.Errorf("reportService.FinanceReport: %w", err)
	}

	headers := []string{
		"Order ID", "Delivery Date", "Customer Name", "Items Total",
		"Delivery Fee", "Flowers Cost", "Total Profit", "Payment Status",
	}
	rows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []interface{}{
			o.OrderID, o.DeliveryDate, o.CustomerName, o.ItemsTotal,
			o.DeliveryFee, o.FlowersCost, o.TotalProfit, o.PaymentStatus,
		})
	}

	data, err := buildWorkbook("Finance", headers, rows)
	if err != nil {
		return nil, fmt.Errorf("reportService.FinanceReport: %w", err)
	}
	report := &Report{Filename: fmt.Sprintf("finance_%s.xlsx", rangeLabel(startDate, endDate)), Data: data}
	s.persist(ctx, report)
	return report, nil
}

func (s *reportService) OrdersExport(ctx context.Context, filter domain.OrderFilter) (*Report, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reportService.OrdersExport: %w", err)
	}

	headers := []string{
		"Order ID", "Delivery Date", "Time Window", "Customer Name",
		"Recipient Name", "Phone", "District", "Full Address", "Bouquet Name",
		"Size", "Items Total", "Delivery Fee", "Total Profit",
		"Payment Status", "Delivery Status", "Priority", "Notes",
	}
	rows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []interface{}{
			o.OrderID, o.DeliveryDate, o.TimeWindow, o.CustomerName,
			o.ReceiverName, o.Phone, o.District, o.FullAddress, o.BouquetName,
			o.Size, o.ItemsTotal, o.DeliveryFee, o.TotalProfit,
			o.PaymentStatus, o.DeliveryStatus, o.Priority, o.Notes,
		})
	}

	data, err := buildWorkbook("Orders", headers, rows)
	if err != nil {
		return nil, fmt.Errorf("reportService.OrdersExport: %w", err)
	}
	report := &Report{Filename: "orders_export.xlsx", Data: data}
	s.persist(ctx, report)
	return report, nil
}

func (s *reportService) EmailDriverReport(ctx context.Context, date, toEmail string) error {
	if s.emailer == nil {
		return fmt.Errorf("reportService.EmailDriverReport: email sending not configured")
	}
	report, err := s.DriverReport(ctx, date)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Driver run sheet for %s", date)
	body := fmt.Sprintf("Attached is the delivery run sheet for %s.", date)
	return s.emailer.SendReport(ctx, toEmail, subject, body, &port.ReportAttachment{
		Filename:    report.Filename,
		ContentType: xlsxContentType,
		Data:        report.Data,
	})
}

// persist writes the report to the exports directory and, when a bucket is
// configured, archives a copy in object storage. Failures here never fail
// the request that produced the report.
func (s *reportService) persist(ctx context.Context, report *Report) {
	if s.exportsDir != "" {
		if err := os.MkdirAll(s.exportsDir, 0o755); err == nil {
			path := filepath.Join(s.exportsDir, report.Filename)
			if err := os.WriteFile(path, report.Data, 0o644); err != nil {
				log.Printf("reportService: writing %s: %v", path, err)
			}
		}
	}
	if s.storage != nil && s.bucket != "" {
		_, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.bucket,
			Key:         "reports/" + report.Filename,
			Body:        bytes.NewReader(report.Data),
			ContentType: xlsxContentType,
			Size:        int64(len(report.Data)),
		})
		if err != nil {
			log.Printf("reportService: archiving %s: %v", report.Filename, err)
		}
	}
}

func buildWorkbook(sheet string, headers []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, boldStyle)
	}
	for i, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rangeLabel(startDate, endDate string) string {
	if startDate == "" {
		startDate = "all"
	}
	if endDate == "" {
		endDate = "all"
	}
	return strings.ReplaceAll(startDate+"_"+endDate, "/", "-")
}
