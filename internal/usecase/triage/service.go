package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"triagem/internal/bootstrap/logging"
	domaintriage "triagem/internal/domain/triage"
	"triagem/internal/errs"
	"triagem/internal/ports"
)

// ReportColumns is the fixed header row of the export artifact.
var ReportColumns = []string{"Data/Hora", "Código Interno", "Nº Série", "Defeito"}

// Service implements the triage usecases: category registry, defect
// vocabulary, the append-only ledger and the report exporter.
type Service struct {
	categories ports.CategoryRepository
	vocabulary ports.VocabularyRepository
	ledger     ports.LedgerRepository
	uow        ports.UnitOfWork
	cache      ports.Cache
	writer     ports.ReportWriter
	now        func() time.Time
}

func NewService(
	categories ports.CategoryRepository,
	vocabulary ports.VocabularyRepository,
	ledger ports.LedgerRepository,
	uow ports.UnitOfWork,
	cache ports.Cache,
	writer ports.ReportWriter,
) *Service {
	return &Service{
		categories: categories,
		vocabulary: vocabulary,
		ledger:     ledger,
		uow:        uow,
		cache:      cache,
		writer:     writer,
		now:        time.Now,
	}
}

// --- category registry ---

func (s *Service) ListCategories(ctx context.Context) ([]domaintriage.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) GetCategory(ctx context.Context, categoryID uint64) (domaintriage.Category, error) {
	return s.categories.Get(ctx, categoryID)
}

// CreateCategory registers a category together with its initial vocabulary
// in one transaction. Blank seed entries are skipped, duplicates collapse.
func (s *Service) CreateCategory(ctx context.Context, name string, icon string, initialDefects []string) (domaintriage.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domaintriage.Category{}, domaintriage.NewRequiredError("name")
	}
	icon = domaintriage.NormalizeIcon(icon)

	var created domaintriage.Category
	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		category, err := s.categories.Create(txCtx, name, icon)
		if err != nil {
			return err
		}

		for _, label := range initialDefects {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}
			if err := s.vocabulary.Add(txCtx, category.CategoryID, label); err != nil {
				return err
			}
		}

		created = category
		return nil
	})
	if err != nil {
		return domaintriage.Category{}, err
	}

	s.invalidateVocabulary(ctx, created.CategoryID)
	return created, nil
}

func (s *Service) UpdateCategory(ctx context.Context, categoryID uint64, name string, icon string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domaintriage.NewRequiredError("name")
	}
	return s.categories.Update(ctx, categoryID, name, domaintriage.NormalizeIcon(icon))
}

// DeleteCategory removes the category and cascades to its vocabulary in one
// transaction. Ledger rows keep referencing the deleted id (orphan-retain).
func (s *Service) DeleteCategory(ctx context.Context, categoryID uint64) error {
	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.vocabulary.RemoveAll(txCtx, categoryID); err != nil {
			return err
		}
		return s.categories.Delete(txCtx, categoryID)
	})
	if err != nil {
		return err
	}

	s.invalidateVocabulary(ctx, categoryID)
	return nil
}

// --- defect vocabulary ---

// Defects reads the vocabulary through an invalidate-on-write cache. Cache
// failures degrade to a storage read, never to stale data.
func (s *Service) Defects(ctx context.Context, categoryID uint64) ([]string, error) {
	key := vocabularyCacheKey(categoryID)

	if raw, found, err := s.cache.Get(ctx, key); err == nil && found {
		var labels []string
		if err := json.Unmarshal([]byte(raw), &labels); err == nil {
			return labels, nil
		}
		s.invalidateVocabulary(ctx, categoryID)
	} else if err != nil {
		logging.Warn(ctx, "vocabulary cache read failed", slog.Any("err", errs.Loggable(err)))
	}

	labels, err := s.vocabulary.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(labels); err == nil {
		if err := s.cache.Set(ctx, key, string(raw), 0); err != nil {
			logging.Warn(ctx, "vocabulary cache write failed", slog.Any("err", errs.Loggable(err)))
		}
	}
	return labels, nil
}

func (s *Service) AddDefect(ctx context.Context, categoryID uint64, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return domaintriage.NewRequiredError("defect")
	}

	// The scope must resolve at creation time; orphan vocabulary entries
	// are never written.
	if _, err := s.categories.Get(ctx, categoryID); err != nil {
		return err
	}

	if err := s.vocabulary.Add(ctx, categoryID, label); err != nil {
		return err
	}

	s.invalidateVocabulary(ctx, categoryID)
	return nil
}

func (s *Service) RemoveDefect(ctx context.Context, categoryID uint64, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return domaintriage.NewRequiredError("defect")
	}

	if err := s.vocabulary.Remove(ctx, categoryID, label); err != nil {
		return err
	}

	s.invalidateVocabulary(ctx, categoryID)
	return nil
}

func (s *Service) invalidateVocabulary(ctx context.Context, categoryID uint64) {
	if err := s.cache.Delete(ctx, vocabularyCacheKey(categoryID)); err != nil {
		logging.Warn(ctx, "vocabulary cache invalidation failed", slog.Any("err", errs.Loggable(err)))
	}
}

func vocabularyCacheKey(categoryID uint64) string {
	return fmt.Sprintf("defects:%d", categoryID)
}

// --- triage ledger ---

type RecordInput struct {
	CategoryID   uint64
	InternalCode string
	SerialNumber string
	DefectLabel  string
}

// Record validates and appends one triage event. Validation happens before
// any storage mutation; the timestamp is assigned here, truncated to whole
// seconds.
func (s *Service) Record(ctx context.Context, input RecordInput) (domaintriage.Event, error) {
	code := strings.TrimSpace(input.InternalCode)
	if code == "" {
		return domaintriage.Event{}, domaintriage.NewRequiredError("internal_code")
	}

	label := strings.TrimSpace(input.DefectLabel)
	if label == "" {
		return domaintriage.Event{}, domaintriage.NewRequiredError("defect_label")
	}

	labels, err := s.Defects(ctx, input.CategoryID)
	if err != nil {
		return domaintriage.Event{}, err
	}
	if !slices.Contains(labels, label) {
		return domaintriage.Event{}, &domaintriage.ValidationError{
			Field:  "defect_label",
			Reason: fmt.Sprintf("%q is not in the category vocabulary", label),
		}
	}

	event := domaintriage.Event{
		CategoryID:   input.CategoryID,
		InternalCode: code,
		SerialNumber: strings.TrimSpace(input.SerialNumber),
		DefectLabel:  label,
		RecordedAt:   domaintriage.FormatTimestamp(s.now()),
	}
	return s.ledger.Append(ctx, event)
}

func (s *Service) RecentEvents(ctx context.Context, categoryID uint64, limit int) ([]domaintriage.Event, error) {
	return s.ledger.Recent(ctx, categoryID, limit)
}

func (s *Service) AllEvents(ctx context.Context, categoryID uint64) ([]domaintriage.Event, error) {
	return s.ledger.All(ctx, categoryID)
}

func (s *Service) GetEvent(ctx context.Context, eventID uint64) (domaintriage.Event, error) {
	return s.ledger.Get(ctx, eventID)
}

// --- report exporter ---

// ExportTable projects the category's ledger into the fixed report columns,
// newest first. Zero rows is a valid result the caller can detect before
// writing any file.
func (s *Service) ExportTable(ctx context.Context, categoryID uint64) (ports.ReportTable, error) {
	events, err := s.ledger.All(ctx, categoryID)
	if err != nil {
		return ports.ReportTable{}, err
	}

	rows := make([][]string, 0, len(events))
	for _, event := range events {
		rows = append(rows, []string{
			event.RecordedAt,
			event.InternalCode,
			event.SerialNumber,
			event.DefectLabel,
		})
	}

	return ports.ReportTable{
		Columns: ReportColumns,
		Rows:    rows,
	}, nil
}

// ExportFile writes the category's report as a spreadsheet and returns the
// path written. An empty ledger scope yields ErrNothingToExport and no file.
// Writer failures surface as ExportError; the ledger is unaffected.
func (s *Service) ExportFile(ctx context.Context, categoryID uint64, path string) (string, error) {
	table, err := s.ExportTable(ctx, categoryID)
	if err != nil {
		return "", err
	}
	if len(table.Rows) == 0 {
		return "", domaintriage.ErrNothingToExport
	}

	if path == "" {
		category, err := s.categories.Get(ctx, categoryID)
		if err != nil {
			return "", err
		}
		path = fmt.Sprintf("Relatorio_%s_%s.xlsx", category.Name, s.now().Format("20060102"))
	}

	if err := s.writer.Write(ctx, path, table); err != nil {
		return "", &domaintriage.ExportError{Path: path, Err: err}
	}
	return path, nil
}
