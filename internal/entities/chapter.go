package entities

import (
	"time"

	"gorm.io/gorm"
)

const (
	MinBook = 1
	MaxBook = 10

	MaxTitleLength = 500
	MaxTagLength   = 50
)

// Chapter is a single unit of the archive. Chapter numbers are unique across
// all books; Filename is derived from Number and persisted on first use.
type Chapter struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	Book         int    `gorm:"index;not null" json:"book"`
	Number       int    `gorm:"column:chapter;uniqueIndex;not null" json:"chapter"`
	Section      int    `json:"section,omitempty"`
	Title        string `gorm:"size:500;not null" json:"title"`
	URL          string `gorm:"size:2048" json:"url,omitempty"`
	Filename     string `gorm:"size:64" json:"filename,omitempty"`
	Text         string `gorm:"type:text" json:"text,omitempty"`
	Markdown     string `gorm:"column:md;type:text" json:"md,omitempty"`
	HTML         string `gorm:"type:text" json:"html,omitempty"`
	UnparsedText string `gorm:"type:text" json:"unparsed_text,omitempty"`

	// Export locations, filled in by the path resolver.
	TextPath string `gorm:"size:1024" json:"text_path,omitempty"`
	MDPath   string `gorm:"column:md_path;size:1024" json:"md_path,omitempty"`
	HTMLPath string `gorm:"column:html_path;size:1024" json:"html_path,omitempty"`
	JSONPath string `gorm:"column:json_path;size:1024" json:"json_path,omitempty"`
	CSVPath  string `gorm:"column:csv_path;size:1024" json:"csv_path,omitempty"`

	Tags []Tag `gorm:"many2many:chapter_tags;" json:"tags,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TagNames returns the chapter's tag names in stored order.
func (c *Chapter) TagNames() []string {
	names := make([]string, 0, len(c.Tags))
	for _, tag := range c.Tags {
		names = append(names, tag.Name)
	}
	return names
}

type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"uniqueIndex;size:50" json:"name"`
	Chapters  []Chapter `gorm:"many2many:chapter_tags;" json:"-"`
	CreatedAt time.Time `json:"-"`
}
