package models

import "time"

// OrphanedBlob is a stored object whose owning row was never written or was
// deleted, and whose immediate removal failed
type OrphanedBlob struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	StorageKey string    `gorm:"not null;uniqueIndex" json:"storage_key"`
	Reason     string    `json:"reason"`
	Attempts   int       `gorm:"not null;default:0" json:"attempts"`
	LastError  string    `gorm:"type:text" json:"last_error"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for OrphanedBlob
func (OrphanedBlob) TableName() string {
	return "orphaned_blobs"
}

// All lists every model owned by this service, in migration order
func All() []any {
	return []any{
		&Recording{},
		&PartialTranscript{},
		&FullTranscript{},
		&OrphanedBlob{},
	}
}
