// Package export turns the drawing surface into PNG bytes, data URLs,
// downloaded files and clipboard contents.
package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/example/sketchsolver/internal/clipboard"
)

// DownloadName is the fixed filename used for downloads.
const DownloadName = "drawing.png"

// Source provides the pixels to export. It refuses with an error when there
// is nothing to export.
type Source interface {
	Snapshot() (*image.RGBA, error)
}

var copyPNG = clipboard.WritePNG

// EncodePNG losslessly encodes img.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ToImage snapshots src and encodes it as PNG.
func ToImage(src Source) ([]byte, error) {
	img, err := src.Snapshot()
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}

// DataURL wraps data in a base64 data URL of the given media type.
func DataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ToDataURL is the submission payload for src.
func ToDataURL(src Source) (string, error) {
	data, err := ToImage(src)
	if err != nil {
		return "", err
	}
	return DataURL("image/png", data), nil
}

// Download writes src as DownloadName inside dir and returns the path. An
// existing file of that name is replaced.
func Download(src Source, dir string) (string, error) {
	data, err := ToImage(src)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, DownloadName)
	tmp, err := os.CreateTemp(dir, ".drawing-*.png")
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download: closing file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	return path, nil
}

// Copy publishes src to the clipboard as PNG.
func Copy(src Source) error {
	data, err := ToImage(src)
	if err != nil {
		return err
	}
	return copyPNG(data)
}
