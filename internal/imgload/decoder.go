package imgload

import (
	"context"
	"image"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/spf13/afero"

	"github.com/driftwall/driftwall/internal/errors"
	"github.com/driftwall/driftwall/internal/panel"
)

// FileDecoder decodes image files into RGBA pixel buffers. It handles
// png, jpeg, and gif.
type FileDecoder struct {
	fs afero.Fs
}

// NewFileDecoder creates a decoder reading through fs.
func NewFileDecoder(fs afero.Fs) *FileDecoder {
	return &FileDecoder{fs: fs}
}

// Decode implements Decoder.
func (d *FileDecoder) Decode(ctx context.Context, path string) (*panel.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := d.fs.Open(path)
	if err != nil {
		return nil, errors.NewDecodeError("failed to open image", err).WithPath(path)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.NewDecodeError("failed to decode image", errors.ErrDecodeFailed).
			WithPath(path).WithFormat(format)
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	return &panel.Image{
		Path:   path,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}, nil
}
