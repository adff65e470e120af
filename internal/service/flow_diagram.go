package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/godilite/overlay-server/internal/repository/models"
	"go.uber.org/zap"
)

// FlowDiagramService manages flow diagram metadata.
type FlowDiagramService struct {
	storage   FlowDiagramStore
	logger    *zap.Logger
	dbTimeout time.Duration
	now       func() time.Time
}

func NewFlowDiagramService(storage FlowDiagramStore, logger *zap.Logger, dbTimeout time.Duration) *FlowDiagramService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	if dbTimeout <= 0 {
		dbTimeout = defaultDBTimeout
	}
	return &FlowDiagramService{
		storage:   storage,
		logger:    logger,
		dbTimeout: dbTimeout,
		now:       time.Now,
	}
}

func (s *FlowDiagramService) GetByID(ctx context.Context, id int64) (models.FlowDiagram, error) {
	if id <= 0 {
		return models.FlowDiagram{}, fmt.Errorf("%w: flow diagram id must be positive", ErrInvalidArgument)
	}

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	fd, ok, err := s.storage.GetByID(dbCtx, id)
	if err != nil {
		return models.FlowDiagram{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if !ok {
		return models.FlowDiagram{}, fmt.Errorf("%w: flow diagram %d", ErrNotFound, id)
	}
	return fd, nil
}

func (s *FlowDiagramService) FindByEntityReference(ctx context.Context, ref models.EntityReference) ([]models.FlowDiagram, error) {
	if ref.Kind == "" || ref.ID <= 0 {
		return nil, fmt.Errorf("%w: entity reference %s", ErrInvalidArgument, ref)
	}

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	diagrams, err := s.storage.FindByEntityReference(dbCtx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return diagrams, nil
}

// Create stores a new diagram stamped with the current time and returns its id.
func (s *FlowDiagramService) Create(ctx context.Context, fd models.FlowDiagram) (int64, error) {
	if err := validateFlowDiagram(fd); err != nil {
		return 0, err
	}
	fd.LastUpdatedAt = s.now().UTC()

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	id, err := s.storage.Create(dbCtx, fd)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("created flow diagram",
		zap.Int64("id", id),
		zap.String("name", fd.Name),
		zap.String("by", fd.LastUpdatedBy))
	return id, nil
}

// Update overwrites an existing diagram, reporting whether it was found.
func (s *FlowDiagramService) Update(ctx context.Context, fd models.FlowDiagram) (bool, error) {
	if fd.ID <= 0 {
		return false, fmt.Errorf("%w: flow diagram id must be positive", ErrInvalidArgument)
	}
	if err := validateFlowDiagram(fd); err != nil {
		return false, err
	}
	fd.LastUpdatedAt = s.now().UTC()

	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	updated, err := s.storage.Update(dbCtx, fd)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("updated flow diagram", zap.Int64("id", fd.ID), zap.Bool("updated", updated))
	return updated, nil
}

func validateFlowDiagram(fd models.FlowDiagram) error {
	if strings.TrimSpace(fd.Name) == "" {
		return fmt.Errorf("%w: flow diagram name is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(fd.LastUpdatedBy) == "" {
		return fmt.Errorf("%w: last updated by is required", ErrInvalidArgument)
	}
	return nil
}
