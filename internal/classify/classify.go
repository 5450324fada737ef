// Package classify decides whether a product photo sits on a pure white
// studio background by sampling its two top corners.
package classify

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lumipallolabs/sgsplit/internal/model"
)

// DefaultSampleSize is the edge length of each sampled corner block
const DefaultSampleSize = 5

var (
	ErrNotImage = errors.New("not an image")
	ErrTooSmall = errors.New("image smaller than sample window")
)

// Classifier inspects corner pixels of image files
type Classifier struct {
	sampleSize int
}

// New creates a classifier sampling size×size corner blocks
func New(sampleSize int) *Classifier {
	if sampleSize < 1 {
		sampleSize = DefaultSampleSize
	}
	return &Classifier{sampleSize: sampleSize}
}

// SampleSize returns the corner block edge length
func (c *Classifier) SampleSize() int {
	return c.sampleSize
}

// Classify reports whether the image at path has a white background.
// Any failure yields a non-white result carrying the cause.
func (c *Classifier) Classify(path string) model.Classification {
	img, err := c.load(path)
	if err != nil {
		return model.ClassificationFailed(err)
	}
	light, err := c.IsLight(img)
	if err != nil {
		return model.ClassificationFailed(fmt.Errorf("%s: %w", path, err))
	}
	return model.Classified(light)
}

// IsLight reports whether every pixel of the top-left or of the top-right
// sample block is pure white. Alpha is ignored.
func (c *Classifier) IsLight(img image.Image) (bool, error) {
	b := img.Bounds()
	n := c.sampleSize
	if b.Dx() < n || b.Dy() < n {
		return false, fmt.Errorf("%w: %dx%d < %dx%d", ErrTooSmall, b.Dx(), b.Dy(), n, n)
	}

	left := image.Rect(b.Min.X, b.Min.Y, b.Min.X+n, b.Min.Y+n)
	right := image.Rect(b.Max.X-n, b.Min.Y, b.Max.X, b.Min.Y+n)

	return allWhite(img, left) || allWhite(img, right), nil
}

func (c *Classifier) load(path string) (image.Image, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect %s: %w", path, err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("%s: %w (%s)", path, ErrNotImage, mtype.String())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func allWhite(img image.Image, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if p.R != 255 || p.G != 255 || p.B != 255 {
				return false
			}
		}
	}
	return true
}
