package jobs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"notestash/internal/domain/entity"
	"notestash/internal/domain/sqlite"
	"notestash/internal/domain/sqlite/repository"
	"notestash/internal/service"
	"notestash/internal/utils"
	"notestash/internal/utils/uid"

	"github.com/go-playground/validator/v10"
)

type nullS3 struct {
	deleted []string
}

func (n *nullS3) UploadFile(_ context.Context, _ []byte, key, _ string) (string, error) {
	return "https://blobs.test/" + key, nil
}

func (n *nullS3) DeleteFile(_ context.Context, key string) error {
	n.deleted = append(n.deleted, key)
	return nil
}

func TestSweepPurgesOnlyExpiredEntries(t *testing.T) {
	uid.Init(1)

	db, err := sqlite.Init(filepath.Join(t.TempDir(), "sweep.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	trashRepo := repository.NewTrashRepository(db)
	s3 := &nullS3{}
	notes := service.NewNoteService(repository.NewNoteRepository(db), trashRepo, s3, validator.New())

	now := utils.NowUTC()
	dayMillis := int64(24 * time.Hour / time.Millisecond)

	expired := &entity.TrashedNote{
		ID:      uid.Generate(),
		OwnerID: "alice",
		Text:    "ancient",
		Kind:    entity.NoteKindPlain,
		Attachment: entity.Attachment{
			Name: "old.png",
			Mime: "image/png",
			Size: 10,
			URL:  "https://blobs.test/attachments/old.png",
		},
		DeletedAt: now - 40*dayMillis,
	}
	fresh := &entity.TrashedNote{
		ID:        uid.Generate(),
		OwnerID:   "alice",
		Text:      "recent",
		Kind:      entity.NoteKindPlain,
		DeletedAt: now - 1*dayMillis,
	}
	if err = trashRepo.Save(expired); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err = trashRepo.Save(fresh); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	sweeper := NewTrashSweeper(notes, trashRepo, 30*24*time.Hour)
	sweeper.sweep()

	remaining, err := trashRepo.FindAllByOwner("alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Text != "recent" {
		t.Fatalf("expected only the recent entry to survive, got %+v", remaining)
	}

	if len(s3.deleted) != 1 || s3.deleted[0] != "attachments/old.png" {
		t.Errorf("expected the expired entry's blob to be deleted, got %v", s3.deleted)
	}
}
