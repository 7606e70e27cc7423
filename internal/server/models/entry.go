package models

import "time"

// Entry is a captured page stored in the knowledge base.
type Entry struct {
	ID         string
	UserID     string
	URL        string
	Title      string
	Content    string
	ArchiveKey string
	CreatedAt  time.Time
}
