package models

import "time"

// ExportDataset names an exportable admin dataset.
type ExportDataset string

const (
	ExportDatasetAuditLogs ExportDataset = "AUDIT_LOGS"
	ExportDatasetReports   ExportDataset = "REPORTS"
	ExportDatasetFeedback  ExportDataset = "FEEDBACK"
	ExportDatasetAIUsage   ExportDataset = "AI_USAGE"
)

// ExportFormat is the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "CSV"
	ExportFormatPDF ExportFormat = "PDF"
)

// ExportResult points at a generated export file.
type ExportResult struct {
	ID        string    `json:"id"`
	Dataset   string    `json:"dataset"`
	Format    string    `json:"format"`
	RowCount  int       `json:"rowCount"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
