package service

import (
	"context"
	"notestash/internal/contract"
	"notestash/internal/domain/entity"
	"notestash/internal/infrastructure/aws/storage"
	"notestash/internal/utils"
	"notestash/internal/utils/apierror"
	"notestash/internal/utils/uid"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type NoteRepository interface {
	FindAllByOwner(ownerID string) ([]*entity.Note, error)
	FindByID(ownerID string, id int64) (*entity.Note, error)
	Save(note *entity.Note) error
	Delete(ownerID string, id int64) error
}

type TrashRepository interface {
	FindAllByOwner(ownerID string) ([]*entity.TrashedNote, error)
	FindByID(ownerID string, id int64) (*entity.TrashedNote, error)
	Save(note *entity.TrashedNote) error
	Delete(ownerID string, id int64) error
}

// DefaultNoteService owns the note lifecycle: create, update, and the moves
// between the active and trash collections. Every operation is scoped to the
// owner passed in; the owner id always comes from the verified token, never
// from the request payload.
type DefaultNoteService struct {
	NoteRepo  NoteRepository
	TrashRepo TrashRepository
	S3        storage.S3Client
	Validate  *validator.Validate
}

func NewNoteService(
	noteRepo NoteRepository,
	trashRepo TrashRepository,
	s3 storage.S3Client,
	validate *validator.Validate,
) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo:  noteRepo,
		TrashRepo: trashRepo,
		S3:        s3,
		Validate:  validate,
	}
}

func (n *DefaultNoteService) GetAllNotes(ownerID string) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindAllByOwner(ownerID)
	if err != nil {
		log.Errorf("failed to fetch notes: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp, nil
}

func (n *DefaultNoteService) GetTrash(ownerID string) ([]*contract.TrashedNoteResponse, apierror.ErrorResponse) {
	notes, err := n.TrashRepo.FindAllByOwner(ownerID)
	if err != nil {
		log.Errorf("failed to fetch trash: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.TrashedNoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toTrashedNoteResponse(note)
	}
	return resp, nil
}

func (n *DefaultNoteService) CreateNote(ownerID string, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	// The kind is fixed at creation, never inferred from the text again.
	kind := entity.NoteKind(req.Kind)
	if kind == "" {
		kind = entity.NoteKindPlain
	}

	now := utils.NowUTC()
	note := &entity.Note{
		ID:         uid.Generate(),
		OwnerID:    ownerID,
		Text:       req.Text,
		Kind:       kind,
		Attachment: fromAttachmentPayload(req.Attachment),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save note: %v", err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) UpdateNote(ownerID string, noteID int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note, err := n.NoteRepo.FindByID(ownerID, noteID)
	if err != nil {
		log.Errorf("failed to fetch note: %v", err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NotFoundError
	}

	// Merge, never replace: absent fields keep their stored value.
	if req.Text != nil {
		note.Text = strings.TrimSpace(*req.Text)
	}
	if req.Done != nil {
		note.Done = *req.Done
	}
	if req.Attachment != nil {
		note.Attachment = fromAttachmentPayload(req.Attachment)
	}

	note.UpdatedAt = nextUpdateTime(note.UpdatedAt)
	if err = n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to update note: %v", err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note), nil
}

// SoftDeleteNote moves the note into the trash collection. The trash copy is
// written before the active entry is removed: a crash in between leaves the
// note in both collections, which beats losing it.
func (n *DefaultNoteService) SoftDeleteNote(ownerID string, noteID int64) apierror.ErrorResponse {
	note, err := n.NoteRepo.FindByID(ownerID, noteID)
	if err != nil {
		log.Errorf("failed to fetch note: %v", err)
		return apierror.InternalServerError
	}

	if note == nil {
		return apierror.NotFoundError
	}

	trashed := &entity.TrashedNote{
		ID:         uid.Generate(),
		OwnerID:    ownerID,
		Text:       note.Text,
		Kind:       note.Kind,
		Done:       note.Done,
		Attachment: note.Attachment,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
		DeletedAt:  utils.NowUTC(),
	}

	if err = n.TrashRepo.Save(trashed); err != nil {
		log.Errorf("failed to write trash entry for note %d: %v", noteID, err)
		return apierror.InternalServerError
	}

	if err = n.NoteRepo.Delete(ownerID, noteID); err != nil {
		// Trash entry already persisted; the note now exists in both
		// collections until the caller retries.
		log.Errorf("failed to remove note %d after trashing: %v", noteID, err)
		return apierror.InternalServerError
	}
	return nil
}

// RestoreNote moves a trash entry back to the active collection under a fresh
// id. Same ordering as SoftDeleteNote: create the destination first.
func (n *DefaultNoteService) RestoreNote(ownerID string, trashID int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	trashed, err := n.TrashRepo.FindByID(ownerID, trashID)
	if err != nil {
		log.Errorf("failed to fetch trash entry: %v", err)
		return nil, apierror.InternalServerError
	}

	if trashed == nil {
		return nil, apierror.NotFoundError
	}

	note := &entity.Note{
		ID:         uid.Generate(),
		OwnerID:    ownerID,
		Text:       trashed.Text,
		Kind:       trashed.Kind,
		Done:       trashed.Done,
		Attachment: trashed.Attachment,
		CreatedAt:  trashed.CreatedAt,
		UpdatedAt:  nextUpdateTime(trashed.UpdatedAt),
	}

	if err = n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to restore trash entry %d: %v", trashID, err)
		return nil, apierror.InternalServerError
	}

	if err = n.TrashRepo.Delete(ownerID, trashID); err != nil {
		log.Errorf("failed to remove trash entry %d after restore: %v", trashID, err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note), nil
}

// PermanentDeleteNote removes a trash entry for good, along with its
// attachment blob. Deleting an absent entry succeeds (idempotent).
func (n *DefaultNoteService) PermanentDeleteNote(ownerID string, trashID int64) apierror.ErrorResponse {
	trashed, err := n.TrashRepo.FindByID(ownerID, trashID)
	if err != nil {
		log.Errorf("failed to fetch trash entry: %v", err)
		return apierror.InternalServerError
	}

	if trashed == nil {
		return nil
	}

	if !trashed.Attachment.IsZero() {
		if err = deleteAttachmentBlob(n.S3, trashed.Attachment.URL); err != nil {
			log.Errorf("failed to delete attachment blob for trash entry %d: %v", trashID, err)
			return apierror.InternalServerError
		}
	}

	if err = n.TrashRepo.Delete(ownerID, trashID); err != nil {
		log.Errorf("failed to delete trash entry %d: %v", trashID, err)
		return apierror.InternalServerError
	}
	return nil
}

// nextUpdateTime returns the current time, clamped so a mutation always
// advances updated_at even when it lands in the same millisecond as the
// previous write.
func nextUpdateTime(prev int64) int64 {
	now := utils.NowUTC()
	if now <= prev {
		return prev + 1
	}
	return now
}

// deleteAttachmentBlob removes the object behind an attachment URL. The blob
// store treats missing keys as deleted, which keeps this idempotent even when
// the bucket and the database are out of sync.
func deleteAttachmentBlob(s3 storage.S3Client, url string) error {
	idx := strings.Index(url, storage.PathAttachments)
	if idx < 0 {
		// Reference points outside our attachments prefix, nothing we own.
		return nil
	}

	key := url[idx:]
	return s3.DeleteFile(context.Background(), key)
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	return &contract.NoteResponse{
		ID:         note.ID,
		Text:       note.Text,
		Kind:       string(note.Kind),
		Done:       note.Done,
		Attachment: toAttachmentPayload(note.Attachment),
		CreatedAt:  utils.FormatEpoch(note.CreatedAt),
		UpdatedAt:  utils.FormatEpoch(note.UpdatedAt),
	}
}

func toTrashedNoteResponse(note *entity.TrashedNote) *contract.TrashedNoteResponse {
	return &contract.TrashedNoteResponse{
		NoteResponse: contract.NoteResponse{
			ID:         note.ID,
			Text:       note.Text,
			Kind:       string(note.Kind),
			Done:       note.Done,
			Attachment: toAttachmentPayload(note.Attachment),
			CreatedAt:  utils.FormatEpoch(note.CreatedAt),
			UpdatedAt:  utils.FormatEpoch(note.UpdatedAt),
		},
		DeletedAt: utils.FormatEpoch(note.DeletedAt),
	}
}

func toAttachmentPayload(a entity.Attachment) *contract.AttachmentPayload {
	if a.IsZero() {
		return nil
	}
	return &contract.AttachmentPayload{
		Name: a.Name,
		Mime: a.Mime,
		Size: a.Size,
		URL:  a.URL,
	}
}

func fromAttachmentPayload(p *contract.AttachmentPayload) entity.Attachment {
	if p == nil {
		return entity.Attachment{}
	}
	return entity.Attachment{
		Name: p.Name,
		Mime: p.Mime,
		Size: p.Size,
		URL:  p.URL,
	}
}
