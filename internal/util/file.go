package util

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ValidateMimeType sniffs the real MIME type of a reader's content and
// checks it against allowed prefixes or exact types.
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// GenerateRandomString returns n random hex characters for unique
// storage object names.
func GenerateRandomString(n int) string {
	b := make([]byte, (n+1)/2)
	rand.Read(b)
	return hex.EncodeToString(b)[:n]
}

// MustParseUint reads a numeric path parameter. On a malformed value it
// writes a 400 response and returns ok=false; the handler just returns.
func MustParseUint(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// ParseQueryUint reads an optional numeric query parameter, 0 when
// absent or malformed.
func ParseQueryUint(c *gin.Context, name string) uint {
	id, _ := strconv.ParseUint(c.Query(name), 10, 32)
	return uint(id)
}
