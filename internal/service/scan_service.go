package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"bilagsky/internal/config"
	"bilagsky/internal/docscan"
	"bilagsky/internal/domain"
	"bilagsky/internal/port"
)

// ScanInput is the DTO for scan upload requests.
type ScanInput struct {
	UserID uuid.UUID
	File   multipart.File
	Header *multipart.FileHeader
}

// ScanService runs the document pipeline: archive the photo, detect text,
// extract a field suggestion, persist the result. Every accepted upload
// produces a stored Scan, even when no text could be read.
type ScanService interface {
	Scan(ctx context.Context, input ScanInput) (*domain.Scan, error)
	GetByID(ctx context.Context, userID, scanID uuid.UUID) (*domain.Scan, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Scan, int, error)
	GetDownloadURL(ctx context.Context, userID, scanID uuid.UUID) (string, error)
	Delete(ctx context.Context, userID, scanID uuid.UUID) error
}

type scanService struct {
	scanRepo  port.ScanRepository
	storage   port.ObjectStorage
	acquirer  port.TextAcquirer
	extractor *docscan.Extractor
	cfg       *config.S3Config
}

// NewScanService creates a new ScanService implementation.
func NewScanService(
	scanRepo port.ScanRepository,
	storage port.ObjectStorage,
	acquirer port.TextAcquirer,
	extractor *docscan.Extractor,
	cfg *config.S3Config,
) ScanService {
	if extractor == nil {
		extractor = docscan.NewExtractor(nil, nil)
	}
	return &scanService{
		scanRepo:  scanRepo,
		storage:   storage,
		acquirer:  acquirer,
		extractor: extractor,
		cfg:       cfg,
	}
}

func (s *scanService) Scan(ctx context.Context, input ScanInput) (*domain.Scan, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	content, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	// Magic-byte check so a renamed file cannot sneak past the extension.
	headLen := len(content)
	if headLen > 512 {
		headLen = 512
	}
	detectedType := http.DetectContentType(content[:headLen])
	if _, valid := domain.AllowedContentTypes[detectedType]; !valid {
		return nil, domain.ErrUnsupportedFileType
	}

	scanID := uuid.New()
	s3Key := fmt.Sprintf("users/%s/scans/%s/%s", input.UserID, scanID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	scan := &domain.Scan{
		ID:           scanID,
		UserID:       input.UserID,
		FileName:     scanID.String() + "." + ext,
		OriginalName: input.Header.Filename,
		FileType:     fileType,
		FileSize:     int64(len(content)),
		S3Bucket:     s.cfg.Bucket,
		S3Key:        s3Key,
		ContentType:  contentType,
	}

	log.Printf("scanService.Scan: processing %s (%s, %d bytes) for user %s",
		input.Header.Filename, contentType, len(content), input.UserID)

	// Archive the original first so a failed detection never loses the
	// document.
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        bytes.NewReader(content),
		ContentType: contentType,
		Size:        scan.FileSize,
	})
	if err != nil {
		log.Printf("scanService.Scan: S3 upload failed for scan %s: %v", scanID, err)
		return nil, domain.ErrUploadFailed
	}

	text, err := s.acquirer.DetectText(ctx, content)
	switch {
	case errors.Is(err, domain.ErrNoTextDetected):
		// An unreadable picture is a normal outcome, not a server error.
		// The user gets an empty form instead of a suggestion.
		scan.Status = domain.ScanStatusNoText
	case err != nil:
		log.Printf("scanService.Scan: text detection failed for scan %s: %v", scanID, err)
		scan.Status = domain.ScanStatusFailed
		scan.ScanError = err.Error()
	default:
		kind, rec := s.extractor.Process(text)
		suggestion, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling suggestion: %w", err)
		}
		scan.Kind = domain.DocumentKind(kind)
		scan.Suggestion = suggestion
		scan.Status = domain.ScanStatusSuggested
	}

	if err := s.scanRepo.Create(ctx, scan); err != nil {
		return nil, fmt.Errorf("creating scan record: %w", err)
	}
	return scan, nil
}

func (s *scanService) GetByID(ctx context.Context, userID, scanID uuid.UUID) (*domain.Scan, error) {
	return s.scanRepo.GetByID(ctx, userID, scanID)
}

func (s *scanService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Scan, int, error) {
	return s.scanRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *scanService) GetDownloadURL(ctx context.Context, userID, scanID uuid.UUID) (string, error) {
	scan, err := s.scanRepo.GetByID(ctx, userID, scanID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, scan.S3Bucket, scan.S3Key, s.cfg.PresignExpiry)
}

func (s *scanService) Delete(ctx context.Context, userID, scanID uuid.UUID) error {
	scan, err := s.scanRepo.GetByID(ctx, userID, scanID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, scan.S3Bucket, scan.S3Key); err != nil {
		log.Printf("scanService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return s.scanRepo.Delete(ctx, userID, scanID)
}
