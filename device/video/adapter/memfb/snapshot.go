package memfb

import (
	"image/png"
	"io"
	"os"
	"path/filepath"
	"regprobe/device/video/fb"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// ImageFormat selects the file format of a snapshot.
type ImageFormat uint8

// The supported snapshot formats.
const (
	FormatBMP ImageFormat = iota
	FormatPNG
)

var createFn = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// FormatForPath picks the snapshot format from the extension of path.
func FormatForPath(path string) (ImageFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return FormatBMP, true
	case ".png":
		return FormatPNG, true
	}

	return 0, false
}

// EncodeSnapshot writes the visible area of s to w.
func EncodeSnapshot(w io.Writer, s *fb.Session, format ImageFormat) error {
	img := s.Image()
	if format == FormatPNG {
		return png.Encode(w, img)
	}

	return bmp.Encode(w, img)
}

// WriteSnapshot writes the visible area of s to the file at path. The file
// format follows the path extension.
func WriteSnapshot(path string, s *fb.Session) error {
	format, ok := FormatForPath(path)
	if !ok {
		return errors.Errorf("snapshot %q: unsupported image format", path)
	}

	f, err := createFn(path)
	if err != nil {
		return errors.Wrap(err, "create snapshot")
	}

	if err = EncodeSnapshot(f, s, format); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode snapshot %q", path)
	}

	return f.Close()
}
