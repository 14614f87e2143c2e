package optimizer

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/distrocart/backend/internal/catalog"
	"github.com/distrocart/backend/pkg/db/models"
)

// WeightRepository loads scoring weight presets.
type WeightRepository interface {
	WithTx(tx *gorm.DB) WeightRepository
	FindActiveByName(ctx context.Context, name string) (*models.OptimizationWeight, error)
	ListActive(ctx context.Context) ([]models.OptimizationWeight, error)
}

// SessionRepository persists optimization audit records.
type SessionRepository interface {
	WithTx(tx *gorm.DB) SessionRepository
	CreateWithChanges(ctx context.Context, session *models.OptimizationSession) (*models.OptimizationSession, error)
}

// CatalogCandidates adapts the catalog repository to the finder's
// candidate fetch so the fetch can join the optimize transaction.
type CatalogCandidates struct {
	repo *catalog.Repository
}

// NewCatalogCandidates builds the candidate source backing the finder.
func NewCatalogCandidates(repo *catalog.Repository) *CatalogCandidates {
	return &CatalogCandidates{repo: repo}
}

// WithTx binds the candidate fetch to a transaction.
func (c *CatalogCandidates) WithTx(tx *gorm.DB) candidateLister {
	if tx == nil {
		return c
	}
	return &CatalogCandidates{repo: c.repo.WithTx(tx)}
}

// ListCandidates returns the purchasable offerings of the given products.
func (c *CatalogCandidates) ListCandidates(ctx context.Context, productIDs []uuid.UUID) ([]models.DistributorProduct, error) {
	return c.repo.ListCandidates(ctx, productIDs)
}

// GormWeightRepository is the GORM-backed WeightRepository.
type GormWeightRepository struct {
	db *gorm.DB
}

// NewWeightRepository builds a weight repository bound to the provided DB.
func NewWeightRepository(db *gorm.DB) *GormWeightRepository {
	return &GormWeightRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormWeightRepository) WithTx(tx *gorm.DB) WeightRepository {
	if tx == nil {
		return r
	}
	return &GormWeightRepository{db: tx}
}

// FindActiveByName loads the active weight preset with the given name.
func (r *GormWeightRepository) FindActiveByName(ctx context.Context, name string) (*models.OptimizationWeight, error) {
	var preset models.OptimizationWeight
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_active = ?", name, true).
		First(&preset).Error
	if err != nil {
		return nil, err
	}
	return &preset, nil
}

// ListActive returns all active presets, default first.
func (r *GormWeightRepository) ListActive(ctx context.Context) ([]models.OptimizationWeight, error) {
	var presets []models.OptimizationWeight
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("is_default DESC, name ASC").
		Find(&presets).Error
	return presets, err
}

// GormSessionRepository is the GORM-backed SessionRepository.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository builds a session repository bound to the provided DB.
func NewSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormSessionRepository) WithTx(tx *gorm.DB) SessionRepository {
	if tx == nil {
		return r
	}
	return &GormSessionRepository{db: tx}
}

// CreateWithChanges inserts the session row and its change rows in one
// batch. GORM cascades the Changes association on create.
func (r *GormSessionRepository) CreateWithChanges(ctx context.Context, session *models.OptimizationSession) (*models.OptimizationSession, error) {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}
