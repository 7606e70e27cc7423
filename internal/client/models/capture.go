// Package models defines the client-side data models of the capture flow.
package models

// CaptureRecord is one page submitted to the knowledge base.
// It is built fresh for every capture and never stored locally.
type CaptureRecord struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

// Ack is the storage endpoint's acknowledgement of a persisted record.
type Ack struct {
	Message string
}

// PlaceholderContent stands in for extracted page text.
func PlaceholderContent(title string) string {
	return "Simulated page content for: " + title
}

// NewCaptureRecord assembles a record from the resolved tab and the session owner.
func NewCaptureRecord(url, title, userID string) CaptureRecord {
	return CaptureRecord{
		URL:     url,
		Title:   title,
		Content: PlaceholderContent(title),
		UserID:  userID,
	}
}
