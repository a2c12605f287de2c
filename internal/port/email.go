package port

import "context"

// ReportAttachment is a generated workbook attached to a report email.
type ReportAttachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// EmailSender defines the contract for sending report emails.
type EmailSender interface {
	SendReport(ctx context.Context, toEmail, subject, body string, attachment *ReportAttachment) error
}
