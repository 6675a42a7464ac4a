package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Descriptor kinds. A "text" descriptor carries its payload inline in Content;
// a "file" descriptor points at a provider object via URL/PublicID.
const (
	KindFile = "file"
	KindText = "text"
)

// FileDescriptor describes one uploaded artifact or text blob registered under
// an access code. Exactly one of URL/PublicID or Content is meaningfully
// populated. Position preserves upload order within the owning CodeEntry.
type FileDescriptor struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	Code     string `gorm:"index" json:"-"`
	Position int    `json:"-"`
	URL      string `json:"url,omitempty"`
	PublicID string `json:"public_id,omitempty"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Kind     string `json:"type,omitempty"`
	Content  string `json:"content,omitempty"`
	Format   string `json:"format,omitempty"`
}

// CodeEntry maps a 6-character access code to the files registered under it.
// Registering the same code again fully replaces the entry (last-write-wins);
// entries are never merged. Tags mirrors the provider-side tag set
// (e.g. "code_7BL29Y") used by the secondary search index.
type CodeEntry struct {
	Code      string           `gorm:"primaryKey" json:"code"`
	Files     []FileDescriptor `gorm:"foreignKey:Code;references:Code;constraint:OnDelete:CASCADE" json:"files"`
	OwnerID   *uuid.UUID       `gorm:"type:uuid" json:"owner_id,omitempty"`
	Tags      pq.StringArray   `gorm:"type:text[]" json:"-"`
	CreatedAt time.Time        `json:"created_at"`
}
