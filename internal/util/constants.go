package util

import "fmt"

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimePDF         = "application/pdf"
	MimeText        = "text/plain"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedDocumentExtensions = []string{".pdf", ".txt", ".md", ".m"}
)

// FormatReference renders the citation line used both in prompts and in
// answers, so the chat model sees citations in the exact shape it is
// asked to produce.
func FormatReference(filename string, page int) string {
	return fmt.Sprintf("Reference: %q - Page %d", filename, page)
}
