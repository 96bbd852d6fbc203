package model

import "encoding/json"

type ContentType string

const (
	ContentVideo     ContentType = "VIDEO"
	ContentEbook     ContentType = "EBOOK"
	ContentNotes     ContentType = "NOTES"
	ContentPPT       ContentType = "PPT"
	ContentSmartNote ContentType = "SMART_NOTE"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentVideo, ContentEbook, ContentNotes, ContentPPT, ContentSmartNote:
		return true
	}
	return false
}

// LibraryItem.Data holds the script, markdown or slide payload as produced
// by the generator.
// swagger:model LibraryItem
type LibraryItem struct {
	UUIDBase
	Type   ContentType     `gorm:"size:20;index" json:"type"`
	Title  string          `gorm:"size:255" json:"title"`
	Data   json.RawMessage `gorm:"type:json" json:"data"`
	UserID string          `gorm:"index;size:20" json:"userId"`
	URL    string          `gorm:"size:512" json:"url,omitempty"`
}

func (LibraryItem) TableName() string {
	return "library_items"
}
