package retrieval

import (
	"strings"
)

// ChunkerConfig tunes the sliding window. Values come from the
// retrieval section of the service config.
type ChunkerConfig struct {
	// ChunkSize is the window length in characters.
	ChunkSize int
	// Overlap is how many characters consecutive windows share.
	Overlap int
	// MinLength drops windows whose trimmed content is this short or
	// shorter.
	MinLength int
	// CharsPerPage estimates page numbers in the whole-document
	// fallback.
	CharsPerPage int
}

// Chunker turns extracted document text into overlapping fragments.
type Chunker struct {
	cfg ChunkerConfig
}

func NewChunker(cfg ChunkerConfig) *Chunker {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 500
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = 100
	}
	// The step must stay positive, so a misconfigured overlap is
	// clamped to a fifth of the window rather than carried as-is.
	if cfg.Overlap >= cfg.ChunkSize {
		cfg.Overlap = cfg.ChunkSize / 5
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = 50
	}
	if cfg.CharsPerPage <= 0 {
		cfg.CharsPerPage = 1800
	}
	return &Chunker{cfg: cfg}
}

// ChunkPages slides a window across each page independently, so no
// fragment ever spans a page boundary. Empty pages are skipped.
func (c *Chunker) ChunkPages(filename string, pages []Page) []Fragment {
	var fragments []Fragment
	step := c.cfg.ChunkSize - c.cfg.Overlap

	for _, page := range pages {
		text := []rune(page.Text)
		if len(text) == 0 {
			continue
		}

		for start := 0; start < len(text); start += step {
			end := start + c.cfg.ChunkSize
			if end > len(text) {
				end = len(text)
			}

			content := strings.TrimSpace(string(text[start:end]))
			if len([]rune(content)) > c.cfg.MinLength {
				fragments = append(fragments, Fragment{
					Content:   content,
					Filename:  filename,
					Page:      page.Number,
					StartChar: start,
				})
			}

			if end == len(text) {
				break
			}
		}
	}

	return fragments
}

// ChunkWhole is the fallback for documents whose page structure could
// not be recovered. Page numbers are estimated from a chars-per-page
// constant and every fragment is marked accordingly; StartChar is the
// offset within the whole document.
func (c *Chunker) ChunkWhole(filename, text string) []Fragment {
	var fragments []Fragment
	runes := []rune(text)
	step := c.cfg.ChunkSize - c.cfg.Overlap

	for start := 0; start < len(runes); start += step {
		end := start + c.cfg.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}

		content := strings.TrimSpace(string(runes[start:end]))
		if len([]rune(content)) > c.cfg.MinLength {
			fragments = append(fragments, Fragment{
				Content:       content,
				Filename:      filename,
				Page:          start/c.cfg.CharsPerPage + 1,
				StartChar:     start,
				PageEstimated: true,
			})
		}

		if end == len(runes) {
			break
		}
	}

	return fragments
}
