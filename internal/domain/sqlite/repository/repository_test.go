package repository

import (
	"path/filepath"
	"testing"

	"notestash/internal/domain/entity"
	"notestash/internal/domain/sqlite"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "repo.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func TestNoteRepositoryOwnerScoping(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))

	a := &entity.Note{ID: 1, OwnerID: "alice", Text: "a", Kind: entity.NoteKindPlain, CreatedAt: 1, UpdatedAt: 1}
	b := &entity.Note{ID: 2, OwnerID: "bob", Text: "b", Kind: entity.NoteKindPlain, CreatedAt: 2, UpdatedAt: 2}
	if err := repo.Save(a); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := repo.Save(b); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	notes, err := repo.FindAllByOwner("alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(notes) != 1 || notes[0].Text != "a" {
		t.Fatalf("owner scoping broken: %+v", notes)
	}

	// Reading another owner's note by id must miss.
	foreign, err := repo.FindByID("alice", 2)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if foreign != nil {
		t.Fatal("cross-owner read must return nothing")
	}

	// Deleting with the wrong owner must leave the row in place.
	if err = repo.Delete("alice", 2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	still, _ := repo.FindByID("bob", 2)
	if still == nil {
		t.Fatal("cross-owner delete removed the row")
	}
}

func TestNoteRepositoryFindByIDMissing(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))

	note, err := repo.FindByID("alice", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note != nil {
		t.Fatalf("expected nil for missing id, got %+v", note)
	}
}

func TestNoteRepositoryInsertionOrder(t *testing.T) {
	repo := NewNoteRepository(newTestDB(t))

	for _, id := range []int64{5, 9, 7} {
		note := &entity.Note{ID: id, OwnerID: "alice", Kind: entity.NoteKindPlain, CreatedAt: id, UpdatedAt: id}
		if err := repo.Save(note); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	notes, err := repo.FindAllByOwner("alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	var prev int64
	for _, note := range notes {
		if note.ID < prev {
			t.Fatalf("notes not ordered by id: %d after %d", note.ID, prev)
		}
		prev = note.ID
	}
}

func TestTrashRepositoryFindExpired(t *testing.T) {
	repo := NewTrashRepository(newTestDB(t))

	old := &entity.TrashedNote{ID: 1, OwnerID: "alice", Kind: entity.NoteKindPlain, DeletedAt: 100}
	fresh := &entity.TrashedNote{ID: 2, OwnerID: "bob", Kind: entity.NoteKindPlain, DeletedAt: 900}
	if err := repo.Save(old); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := repo.Save(fresh); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	expired, err := repo.FindExpired(500)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != 1 {
		t.Fatalf("expected only the old entry, got %+v", expired)
	}
}

func TestTrashRepositoryDeleteIsIdempotent(t *testing.T) {
	repo := NewTrashRepository(newTestDB(t))

	entry := &entity.TrashedNote{ID: 7, OwnerID: "alice", Kind: entity.NoteKindPlain, DeletedAt: 1}
	if err := repo.Save(entry); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := repo.Delete("alice", 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete("alice", 7); err != nil {
		t.Fatalf("second delete must not error: %v", err)
	}
}
