package contract

const MaxAttachmentSizeBytes = 30 * 1024 * 1024

var ValidAttachmentFileTypes = []string{"pdf", "png", "jpg", "jpeg", "jfif", "webp", "gif", "mp4", "mp3", "txt", "md"}

// AttachmentPayload is the wire shape of a blob reference, both as returned
// by the upload route and as embedded into notes by create/update.
type AttachmentPayload struct {
	Name string `json:"name" validate:"required,max=255"`
	Mime string `json:"mime" validate:"required,max=120"`
	Size int64  `json:"size" validate:"min=0"`
	URL  string `json:"url" validate:"required,url,max=2000"`
}

type NoteResponse struct {
	ID         int64              `json:"id"`
	Text       string             `json:"text"`
	Kind       string             `json:"kind"`
	Done       bool               `json:"done"`
	Attachment *AttachmentPayload `json:"attachment,omitempty"`
	CreatedAt  string             `json:"created_at"`
	UpdatedAt  string             `json:"updated_at"`
}

type TrashedNoteResponse struct {
	NoteResponse
	DeletedAt string `json:"deleted_at"`
}

type CreateNoteRequest struct {
	Text       string             `json:"text" validate:"max=1000000"`
	Kind       string             `json:"kind" validate:"omitempty,oneof=PLAIN TODO"`
	Attachment *AttachmentPayload `json:"attachment" validate:"omitempty"`
}

// UpdateNoteRequest carries merge semantics: nil fields are left untouched on
// the stored note.
type UpdateNoteRequest struct {
	Text       *string            `json:"text" validate:"omitempty,max=1000000"`
	Done       *bool              `json:"done"`
	Attachment *AttachmentPayload `json:"attachment" validate:"omitempty"`
}

type OkResponse struct {
	OK bool `json:"ok"`
}
