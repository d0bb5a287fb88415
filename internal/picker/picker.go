// Package picker abstracts image acquisition behind an awaitable capability
// so call sites stay straight-line: capture either yields a handle or a
// typed error, never a callback chain.
package picker

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrCanceled means the user backed out; callers must leave their state
// untouched.
var ErrCanceled = errors.New("picker: canceled")

// Image is an acquired media file ready for multipart upload.
type Image struct {
	Name string
	MIME string
	Data io.ReadCloser
}

// Source produces one image per call.
type Source interface {
	Capture() (Image, error)
}

// FileSource reads a local file, the terminal client's stand-in for camera
// and library pickers.
type FileSource struct {
	Path string
	// AllowVideo also accepts video files, for the flock video analysis.
	AllowVideo bool
}

func (s FileSource) Capture() (Image, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return Image{}, fmt.Errorf("picker: open %s: %w", s.Path, err)
	}

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		f.Close()
		return Image{}, fmt.Errorf("picker: read %s: %w", s.Path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return Image{}, err
	}

	mime := http.DetectContentType(head[:n])
	if !s.acceptable(mime) {
		f.Close()
		return Image{}, fmt.Errorf("picker: %s: unsupported content type %s", s.Path, mime)
	}

	name := filepath.Base(s.Path)
	if name == "" || name == "." {
		name = "photo.jpg"
	}
	return Image{Name: name, MIME: mime, Data: f}, nil
}

func (s FileSource) acceptable(mime string) bool {
	if strings.HasPrefix(mime, "image/") {
		return true
	}
	if s.AllowVideo && (strings.HasPrefix(mime, "video/") || mime == "application/octet-stream") {
		return true
	}
	return false
}
