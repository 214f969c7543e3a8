// Package upload validates image files chosen by the user and prepares them
// for submission.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/example/sketchsolver/internal/export"
)

// MaxSize is the largest accepted file in bytes.
const MaxSize = 1 << 20

// PreviewHeight bounds the preview thumbnail.
const PreviewHeight = 192

var (
	ErrTooLarge = errors.New("file size must be less than 1MB")
	ErrNotImage = errors.New("please upload an image file")
	ErrNoFile   = errors.New("please select an image first")
)

var extensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// Image is an accepted upload.
type Image struct {
	Name      string
	MediaType string
	Data      []byte
	Bounds    image.Rectangle
	// Preview is a scaled copy no taller than PreviewHeight.
	Preview *image.RGBA
}

// DataURL is the submission payload for the image.
func (im *Image) DataURL() string { return export.DataURL(im.MediaType, im.Data) }

// Load reads and validates the file at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	return Read(filepath.Base(path), st.Size(), f)
}

// Read validates an upload of the given size from r. The media type is
// sniffed from the content; the name only needs an accepted extension.
func Read(name string, size int64, r io.Reader) (*Image, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]
	mediaType := http.DetectContentType(head)
	if !strings.HasPrefix(mediaType, "image/") || !extensions[strings.ToLower(filepath.Ext(name))] {
		return nil, ErrNotImage
	}
	if size > MaxSize {
		return nil, ErrTooLarge
	}
	rest, err := io.ReadAll(io.LimitReader(r, MaxSize+1-int64(n)))
	if err != nil {
		return nil, err
	}
	data := append(head, rest...)
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return &Image{
		Name:      name,
		MediaType: mediaType,
		Data:      data,
		Bounds:    img.Bounds(),
		Preview:   Thumbnail(img, PreviewHeight),
	}, nil
}

// Thumbnail scales img down to at most maxHeight pixels tall, keeping the
// aspect ratio. Smaller images are copied unscaled.
func Thumbnail(img image.Image, maxHeight int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if h > maxHeight && maxHeight > 0 {
		w = w * maxHeight / h
		h = maxHeight
		if w < 1 {
			w = 1
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Uploader holds the current preview. A rejected file leaves the previous
// preview in place.
type Uploader struct {
	current *Image
	err     error
}

// Select loads path and makes it the current preview on success.
func (u *Uploader) Select(path string) error {
	img, err := Load(path)
	if err != nil {
		u.err = err
		return err
	}
	u.current = img
	u.err = nil
	return nil
}

// Preview returns the accepted image, if any.
func (u *Uploader) Preview() *Image { return u.current }

// Err returns the last rejection.
func (u *Uploader) Err() error { return u.err }

// CanSubmit reports whether a preview is ready.
func (u *Uploader) CanSubmit() bool { return u.current != nil }

// Payload returns the data URL to submit.
func (u *Uploader) Payload() (string, error) {
	if u.current == nil {
		u.err = ErrNoFile
		return "", ErrNoFile
	}
	return u.current.DataURL(), nil
}

// Clear drops the preview.
func (u *Uploader) Clear() {
	u.current = nil
	u.err = nil
}
