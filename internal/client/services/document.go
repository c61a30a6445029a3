package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/benbjohnson/clock"

	"github.com/lumina-journal/lumina/internal/client/cache"
	"github.com/lumina-journal/lumina/internal/client/models"
	"github.com/lumina-journal/lumina/internal/client/remote"
	"github.com/lumina-journal/lumina/internal/client/rollover"
	"github.com/lumina-journal/lumina/internal/common"
	"github.com/lumina-journal/lumina/internal/logging"
)

// DocumentService loads the user document at session start and handles
// backup export/import.
type DocumentService interface {
	// Load fetches the document, normalizes it, runs the daily rollover and
	// returns it ready for the state store. The second return value is true
	// when the store was unreachable and the locally cached copy was used.
	Load(ctx context.Context, session *remote.Session) (*models.UserDocument, bool, error)

	// ExportToFile writes the backup file for the document.
	ExportToFile(path string, doc *models.UserDocument, currentUser string) error

	// ReadImportFile reads a backup file; validation and merging happen in
	// the state store.
	ReadImportFile(path string) ([]byte, error)

	// Rollover re-runs the daily task migration against doc, persisting
	// immediately when tasks moved. Used by the midnight trigger.
	Rollover(ctx context.Context, userID string, doc *models.UserDocument) int
}

type documentService struct {
	client remote.Client
	cache  *cache.Cache
	clk    clock.Clock
	log    logging.Logger
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(client remote.Client, c *cache.Cache, clk clock.Clock, log logging.Logger) DocumentService {
	return &documentService{client: client, cache: c, clk: clk, log: log}
}

func (s *documentService) Load(ctx context.Context, session *remote.Session) (*models.UserDocument, bool, error) {
	doc, err := s.client.FetchDocument(ctx, session.UserID)
	fromCache := false
	switch {
	case err == nil:
	case errors.Is(err, common.ErrNotFound):
		// First load for this account: start from defaults.
		doc = models.DefaultDocument()
		doc.DisplayName = session.DisplayName
	case errors.Is(err, common.ErrUnavailable):
		cached, dirty, cerr := s.cache.Get(session.UserID)
		if cerr != nil {
			return nil, false, fmt.Errorf("fetch document: %w", err)
		}
		s.log.Warn(ctx, "store unreachable, using cached document", "dirty", dirty)
		doc = cached
		fromCache = true
	default:
		return nil, false, fmt.Errorf("fetch document: %w", err)
	}

	doc.Normalize()

	// The rollover's own save bypasses the debounce and the stability gate:
	// it is a one-time startup correction. Its failure is logged only; the
	// next normal mutation cycle will carry the moved tasks anyway.
	moved := s.Rollover(ctx, session.UserID, doc)
	if moved > 0 {
		s.log.Info(ctx, "rolled over tasks to today", "count", moved)
	}

	if !fromCache {
		if err := s.cache.Put(session.UserID, doc, false); err != nil {
			s.log.Warn(ctx, "failed to cache document", "error", err)
		}
	}
	return doc, fromCache, nil
}

func (s *documentService) Rollover(ctx context.Context, userID string, doc *models.UserDocument) int {
	moved := rollover.Run(doc, models.Today(s.clk.Now()))
	if moved == 0 {
		return 0
	}
	if err := s.client.UpsertDocument(ctx, userID, doc); err != nil {
		s.log.Warn(ctx, "rollover save failed", "error", err)
	}
	return moved
}

func (s *documentService) ExportToFile(path string, doc *models.UserDocument, currentUser string) error {
	data, err := models.MarshalExport(doc, currentUser)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func (s *documentService) ReadImportFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	return data, nil
}
