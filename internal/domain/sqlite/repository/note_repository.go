package repository

import (
	"errors"
	"notestash/internal/domain/entity"

	"gorm.io/gorm"
)

// DefaultNoteRepository is the active collection of the owner-scoped store.
// Every query is filtered by owner; there is no way to reach another owner's
// notes through this type.
type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

func (d *DefaultNoteRepository) FindAllByOwner(ownerID string) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.
		Where("owner_id = ?", ownerID).
		Order("id ASC"). // snowflakes are monotonic, so this is insertion order
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindByID(ownerID string, id int64) (*entity.Note, error) {
	var note entity.Note
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

func (d *DefaultNoteRepository) Save(note *entity.Note) error {
	return d.db.Save(note).Error
}

func (d *DefaultNoteRepository) Delete(ownerID string, id int64) error {
	return d.db.
		Where("owner_id = ?", ownerID).
		Delete(&entity.Note{}, id).Error
}
