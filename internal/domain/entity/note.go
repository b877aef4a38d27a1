package entity

type NoteKind string

const (
	NoteKindPlain NoteKind = "PLAIN"
	NoteKindTodo  NoteKind = "TODO"
)

// Attachment references a blob stored externally (S3). The reference is never
// checked for existence here; a dangling URL is a client-visible problem only.
type Attachment struct {
	Name string
	Mime string
	Size int64
	URL  string
}

func (a Attachment) IsZero() bool {
	return a.URL == ""
}

// Note is an entry in the owner's active collection. IDs are snowflakes
// assigned at creation and never reused across the active/trash transition.
type Note struct {
	ID         int64      `gorm:"primaryKey"`
	OwnerID    string     `gorm:"not null;index"`
	Text       string     `gorm:"not null"`
	Kind       NoteKind   `gorm:"not null"`
	Done       bool       `gorm:"not null;default:false"`
	Attachment Attachment `gorm:"embedded;embeddedPrefix:attachment_"`
	CreatedAt  int64      `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  int64      `gorm:"not null;autoUpdateTime:false"`
}

// TrashedNote lives in its own table, with its own id space. Moving a note to
// trash assigns a fresh id; restoring assigns a fresh active id.
type TrashedNote struct {
	ID         int64      `gorm:"primaryKey"`
	OwnerID    string     `gorm:"not null;index"`
	Text       string     `gorm:"not null"`
	Kind       NoteKind   `gorm:"not null"`
	Done       bool       `gorm:"not null;default:false"`
	Attachment Attachment `gorm:"embedded;embeddedPrefix:attachment_"`
	CreatedAt  int64      `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  int64      `gorm:"not null;autoUpdateTime:false"`
	DeletedAt  int64      `gorm:"not null;index"`
}
