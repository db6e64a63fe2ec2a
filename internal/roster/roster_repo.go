package roster

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=roster_repo.go -destination=mock/roster_repo_mock.go -package=mock
type Repository interface {
	Find(ctx context.Context, id, name string) (*Identity, error)
	FindAll(ctx context.Context) ([]Identity, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, identities []Identity) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Find matches id and name exactly as entered. Returns gorm.ErrRecordNotFound
// when either field differs.
func (r *repository) Find(ctx context.Context, id, name string) (*Identity, error) {
	var identity Identity
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("name = ?", name).
		First(&identity).Error
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Identity, error) {
	var rows []Identity
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Identity{}).Count(&count).Error
	return count, err
}

func (r *repository) CreateBatch(ctx context.Context, identities []Identity) error {
	if len(identities) == 0 {
		return nil
	}
	rows := append([]Identity(nil), identities...)
	return r.db.WithContext(ctx).Create(&rows).Error
}
