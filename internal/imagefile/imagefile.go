// Package imagefile turns files, stdin and data URIs into model.Image values.
package imagefile

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/waste-wise/internal/model"
)

// StdinName is the path that selects standard input.
const StdinName = "-"

// DefaultMaxBytes bounds how much is read from a single image.
const DefaultMaxBytes = 20 << 20

// Errors returned while loading images.
var (
	ErrNotImage    = errors.New("not an image")
	ErrTooLarge    = errors.New("image exceeds size limit")
	ErrInvalidData = errors.New("invalid data URI")
)

var extensionTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
	".bmp":  "image/bmp",
}

// Load reads an image from path, or from stdin when path is "-".
func Load(path string, stdin io.Reader) (*model.Image, error) {
	return LoadWithLimit(path, stdin, DefaultMaxBytes)
}

// LoadWithLimit is Load with an explicit size cap.
func LoadWithLimit(path string, stdin io.Reader, maxBytes int64) (*model.Image, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	var (
		r    io.Reader
		name string
	)
	if path == StdinName {
		if stdin == nil {
			stdin = os.Stdin
		}
		r, name = stdin, "stdin"
	} else {
		f, err := os.Open(path) //nolint:gosec // user-selected image
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer func() { _ = f.Close() }()
		r, name = f, filepath.Base(path)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrTooLarge, name, maxBytes)
	}
	if len(data) == 0 {
		return nil, nil
	}

	mimeType := DetectMIME(name, data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: %s looks like %s", ErrNotImage, name, mimeType)
	}

	return &model.Image{Name: name, MIMEType: mimeType, Data: data}, nil
}

// DetectMIME picks a MIME type from the file extension, falling back to
// content sniffing.
func DetectMIME(name string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "image/") {
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		return t
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	t := http.DetectContentType(data)
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return t
}

// DecodeDataURL splits a data:<mime>;base64,<payload> URI into its parts.
func DecodeDataURL(uri string) ([]byte, string, error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, "data:") {
		return nil, "", fmt.Errorf("%w: missing data: prefix", ErrInvalidData)
	}

	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, "", fmt.Errorf("%w: missing payload", ErrInvalidData)
	}

	meta := uri[len("data:"):comma]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("%w: payload is not base64", ErrInvalidData)
	}
	mimeType := strings.TrimSuffix(meta, ";base64")

	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	return data, mimeType, nil
}

// ExtensionFor returns a file extension for a MIME type, ".img" if unknown.
func ExtensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".img"
}
