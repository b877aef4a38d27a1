package repository

import (
	"errors"
	"notestash/internal/domain/entity"

	"gorm.io/gorm"
)

// DefaultTrashRepository is the trash collection of the owner-scoped store,
// a separate table from the active notes.
type DefaultTrashRepository struct {
	db *gorm.DB
}

func NewTrashRepository(db *gorm.DB) *DefaultTrashRepository {
	return &DefaultTrashRepository{db: db}
}

func (d *DefaultTrashRepository) FindAllByOwner(ownerID string) ([]*entity.TrashedNote, error) {
	var notes []*entity.TrashedNote
	err := d.db.
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultTrashRepository) FindByID(ownerID string, id int64) (*entity.TrashedNote, error) {
	var note entity.TrashedNote
	err := d.db.
		Where("owner_id = ?", ownerID).
		First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

// FindExpired returns trash entries across all owners deleted before the
// cutoff. Used by the retention sweeper only.
func (d *DefaultTrashRepository) FindExpired(cutoff int64) ([]*entity.TrashedNote, error) {
	var notes []*entity.TrashedNote
	err := d.db.
		Where("deleted_at < ?", cutoff).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultTrashRepository) Save(note *entity.TrashedNote) error {
	return d.db.Save(note).Error
}

func (d *DefaultTrashRepository) Delete(ownerID string, id int64) error {
	return d.db.
		Where("owner_id = ?", ownerID).
		Delete(&entity.TrashedNote{}, id).Error
}
