package models

import "time"

// Defaults written on every article created by the content sync and used
// when reading older documents that lack the field.
const (
	DefaultCategory  = "Estrategia"
	DefaultReadTime  = "6 min lectura"
	FallbackReadTime = "5 min lectura"
	DefaultAuthor    = "Equipo Growth4U"
	MaxExcerptLength = 200
	StatusReady      = "Ready"
	StatusPublished  = "Published"
)

// Article is a blog post document in the destination Firestore collection.
// The slug is never stored; readers derive it from the title.
type Article struct {
	Title     string    `firestore:"title"`
	Category  string    `firestore:"category"`
	Excerpt   string    `firestore:"excerpt"`
	Content   string    `firestore:"content"`
	Image     string    `firestore:"image"`
	ReadTime  string    `firestore:"readTime"`
	Author    string    `firestore:"author"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// Candidate is a content workspace page flagged ready for publication.
type Candidate struct {
	PageID string
	Title  string
	Type   string
	Status string
	// StatusKind is the property type backing Status ("status" or "select"),
	// needed to build the update patch.
	StatusKind string
}

// Block is one flattened child block of a candidate page.
type Block struct {
	Type string
	Text string
}

// Block types understood by the flattener.
const (
	BlockHeading1  = "heading_1"
	BlockHeading2  = "heading_2"
	BlockHeading3  = "heading_3"
	BlockBulleted  = "bulleted_list_item"
	BlockNumbered  = "numbered_list_item"
	BlockParagraph = "paragraph"
	BlockDivider   = "divider"
)
