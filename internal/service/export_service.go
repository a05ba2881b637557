package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
	"github.com/noah-isme/studybuddy-api/pkg/export"
	"github.com/noah-isme/studybuddy-api/pkg/storage"
)

// exportRowLimit caps a single export.
const exportRowLimit = 5000

const exportTimeLayout = "2006-01-02 15:04:05"

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type urlSigner interface {
	Generate(id, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (*storage.SignedFile, error)
}

type auditLister interface {
	List(ctx context.Context, filter models.AuditLogFilter) ([]models.AdminAuditLog, int, error)
}

type reportLister interface {
	List(ctx context.Context, filter models.ReportFilter) ([]models.Report, int, error)
}

type feedbackLister interface {
	List(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, int, error)
}

type aiUsageLister interface {
	List(ctx context.Context, filter models.AIUsageFilter) ([]models.AIUsageLog, int, error)
}

// ExportSources are the repositories datasets are read from.
type ExportSources struct {
	AuditLogs auditLister
	Reports   reportLister
	Feedback  feedbackLister
	AIUsage   aiUsageLister
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// CreateExportRequest asks for a rendered dataset.
type CreateExportRequest struct {
	Dataset models.ExportDataset `json:"dataset" validate:"required,oneof=AUDIT_LOGS REPORTS FEEDBACK AI_USAGE"`
	Format  models.ExportFormat  `json:"format" validate:"required,oneof=CSV PDF"`
	From    *time.Time           `json:"from"`
	To      *time.Time           `json:"to"`
}

// ExportFile is a resolved download.
type ExportFile struct {
	File        *os.File
	Name        string
	ContentType string
}

// ExportService renders admin datasets and persists them behind signed links.
type ExportService struct {
	sources   ExportSources
	storage   fileStorage
	signer    urlSigner
	renderers map[models.ExportFormat]export.Renderer
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(sources ExportSources, store fileStorage, signer urlSigner, audit auditRecorder, validate *validator.Validate, logger *zap.Logger, cfg ExportConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		sources: sources,
		storage: store,
		signer:  signer,
		renderers: map[models.ExportFormat]export.Renderer{
			models.ExportFormatCSV: export.NewCSVExporter(),
			models.ExportFormatPDF: export.NewPDFExporter(),
		},
		audit:     audit,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Create renders the dataset, stores it and returns a signed download URL.
func (s *ExportService) Create(ctx context.Context, actor models.Actor, req CreateExportRequest) (*models.ExportResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req, "invalid export request"); err != nil {
		return nil, err
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "to must not be before from")
	}

	dataset, err := s.buildDataset(ctx, req)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load export data")
	}
	renderer := s.renderers[req.Format]
	payload, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}

	id := uuid.NewString()
	filename := fmt.Sprintf("%s_%s_%s.%s", strings.ToLower(string(req.Dataset)), s.now().UTC().Format("20060102_150405"), id[:8], renderer.Extension())
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to store export")
	}
	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to sign export link")
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api"
	}
	result := &models.ExportResult{
		ID:        id,
		Dataset:   string(req.Dataset),
		Format:    string(req.Format),
		RowCount:  len(dataset.Rows),
		URL:       fmt.Sprintf("%s/exports/%s", prefix, token),
		ExpiresAt: expiresAt,
	}
	s.audit.Record(ctx, actor, models.AuditActionExportCreate, models.AuditTargetExport, id, map[string]interface{}{
		"dataset": req.Dataset, "format": req.Format, "rows": result.RowCount,
	})
	return result, nil
}

// Open resolves a download token to the stored file.
func (s *ExportService) Open(token string) (*ExportFile, error) {
	signed, err := s.signer.Parse(token, false)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.New("LINK_EXPIRED", http.StatusGone, "download link has expired")
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}
	file, err := s.storage.Open(signed.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
		}
		return nil, appErrors.Internal(err, "failed to open export")
	}
	name := filepath.Base(signed.Path)
	contentType := "application/octet-stream"
	for _, r := range s.renderers {
		if strings.HasSuffix(name, "."+r.Extension()) {
			contentType = r.ContentType()
		}
	}
	return &ExportFile{File: file, Name: name, ContentType: contentType}, nil
}

// Cleanup removes files older than the result TTL.
func (s *ExportService) Cleanup() ([]string, error) {
	removed, err := s.storage.CleanupOlderThan(s.cfg.ResultTTL)
	if err != nil {
		return removed, err
	}
	if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
	}
	return removed, nil
}

func (s *ExportService) buildDataset(ctx context.Context, req CreateExportRequest) (export.Dataset, error) {
	page := models.PageRequest{Page: 1, PageSize: exportRowLimit}
	switch req.Dataset {
	case models.ExportDatasetAuditLogs:
		items, _, err := s.sources.AuditLogs.List(ctx, models.AuditLogFilter{From: req.From, To: req.To, PageRequest: page})
		if err != nil {
			return export.Dataset{}, err
		}
		ds := export.Dataset{Title: "Admin Audit Log", Headers: []string{"ID", "Admin", "Action", "Target Type", "Target ID", "IP Address", "Created At"}}
		for _, l := range items {
			admin := l.AdminID
			if l.AdminName != nil {
				admin = *l.AdminName
			}
			ds.Rows = append(ds.Rows, []string{l.ID, admin, l.Action, l.TargetType, deref(l.TargetID), deref(l.IPAddress), formatExportTime(l.CreatedAt)})
		}
		return ds, nil
	case models.ExportDatasetReports:
		items, _, err := s.sources.Reports.List(ctx, models.ReportFilter{From: req.From, To: req.To, PageRequest: page})
		if err != nil {
			return export.Dataset{}, err
		}
		ds := export.Dataset{Title: "User Reports", Headers: []string{"ID", "Reporter", "Reported User", "Content Type", "Content ID", "Reason", "Status", "Created At"}}
		for _, r := range items {
			ds.Rows = append(ds.Rows, []string{r.ID, r.ReporterID, deref(r.ReportedUserID), string(r.ContentType), r.ContentID, string(r.Reason), string(r.Status), formatExportTime(r.CreatedAt)})
		}
		return ds, nil
	case models.ExportDatasetFeedback:
		items, _, err := s.sources.Feedback.List(ctx, models.FeedbackFilter{From: req.From, To: req.To, PageRequest: page})
		if err != nil {
			return export.Dataset{}, err
		}
		ds := export.Dataset{Title: "Feedback", Headers: []string{"ID", "User", "Type", "Subject", "Rating", "Status", "Created At"}}
		for _, f := range items {
			rating := ""
			if f.Rating != nil {
				rating = strconv.Itoa(*f.Rating)
			}
			ds.Rows = append(ds.Rows, []string{f.ID, f.UserID, string(f.Type), f.Subject, rating, string(f.Status), formatExportTime(f.CreatedAt)})
		}
		return ds, nil
	case models.ExportDatasetAIUsage:
		items, _, err := s.sources.AIUsage.List(ctx, models.AIUsageFilter{From: req.From, To: req.To, PageRequest: page})
		if err != nil {
			return export.Dataset{}, err
		}
		ds := export.Dataset{Title: "AI Usage", Headers: []string{"ID", "User", "Feature", "Model", "Total Tokens", "Cost USD", "Latency ms", "Success", "Created At"}}
		for _, u := range items {
			ds.Rows = append(ds.Rows, []string{
				u.ID, deref(u.UserID), string(u.Feature), u.Model,
				strconv.Itoa(u.TotalTokens), strconv.FormatFloat(u.CostUSD, 'f', 6, 64), strconv.Itoa(u.LatencyMs),
				strconv.FormatBool(u.Success), formatExportTime(u.CreatedAt),
			})
		}
		return ds, nil
	default:
		return export.Dataset{}, fmt.Errorf("unsupported dataset %s", req.Dataset)
	}
}

func formatExportTime(t time.Time) string {
	return t.UTC().Format(exportTimeLayout)
}
