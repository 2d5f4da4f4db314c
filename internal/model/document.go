package model

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentIngested DocumentStatus = "ingested"
	DocumentFailed   DocumentStatus = "failed"
)

// Document is an uploaded course material. Its searchable text lives in
// DocumentChunk rows; the original file stays in object storage.
// swagger:model Document
type Document struct {
	BaseModel
	CourseID   uint           `gorm:"index;type:bigint unsigned" json:"courseId"`
	UploaderID uint           `gorm:"index;type:bigint unsigned" json:"uploaderId"`
	Filename   string         `gorm:"size:255;not null" json:"filename"`
	Title      string         `gorm:"size:255" json:"title"`
	URL        string         `gorm:"size:255" json:"url"`
	ObjectKey  string         `gorm:"size:255" json:"-"`
	Size       int64          `gorm:"default:0" json:"size"`
	PageCount  int            `gorm:"default:0" json:"pageCount"`
	ChunkCount int            `gorm:"default:0" json:"chunkCount"`
	Status     DocumentStatus `gorm:"type:enum('pending','ingested','failed');default:'pending'" json:"status"`
}

func (Document) TableName() string {
	return "documents"
}

// DocumentChunk is one retrieval unit: a page-attributed slice of a
// document's text. Chunks are append-only; deleting the parent document
// deletes its chunks.
type DocumentChunk struct {
	BaseModel
	DocumentID uint   `gorm:"index;type:bigint unsigned" json:"documentId"`
	CourseID   uint   `gorm:"index;type:bigint unsigned" json:"courseId"`
	Filename   string `gorm:"size:255;not null" json:"filename"`
	Page       int    `gorm:"not null" json:"page"`
	StartChar  int    `gorm:"not null" json:"startChar"`
	Content    string `gorm:"type:text;not null" json:"content"`
	// PageEstimated marks chunks produced by the whole-document fallback
	// where page numbers are derived from a chars-per-page constant
	// rather than real page boundaries.
	PageEstimated bool `gorm:"default:false" json:"pageEstimated"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
