package texture

import (
	"fmt"
	"image"
	"image/draw"

	// Register decoders for image.Decode
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/achilleasa/lumen/asset"
)

// A texture image and its metadata. Rows are stored top to bottom.
type Texture struct {
	Format Format

	Width  uint32
	Height uint32

	Data []byte
}

// Create a new texture from a Resource. Grayscale images are loaded as
// Luminance8 and everything else is converted to non-premultiplied Rgba8.
func New(res *asset.Resource) (*Texture, error) {
	img, _, err := image.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %s", res.Path(), err)
	}

	bounds := img.Bounds()
	texture := &Texture{
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}

	switch src := img.(type) {
	case *image.Gray:
		texture.Format = Luminance8
		texture.Data = copyRows(src.Pix, src.Stride, bounds.Dx(), bounds.Dy())
	case *image.NRGBA:
		texture.Format = Rgba8
		texture.Data = copyRows(src.Pix, src.Stride, bounds.Dx()*4, bounds.Dy())
	default:
		dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		texture.Format = Rgba8
		texture.Data = dst.Pix
	}

	return texture, nil
}

// Load a texture from a file or URL.
func Load(pathToTexture string) (*Texture, error) {
	res, err := asset.NewResource(pathToTexture, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return New(res)
}

// Return a copy of the texture with its rows in reverse order. OpenGL
// expects the first row to be the bottom of the image.
func (t *Texture) FlipY() *Texture {
	stride := int(t.Width) * t.Format.BytesPerPixel()
	out := &Texture{
		Format: t.Format,
		Width:  t.Width,
		Height: t.Height,
		Data:   make([]byte, len(t.Data)),
	}
	for row := 0; row < int(t.Height); row++ {
		src := t.Data[row*stride : (row+1)*stride]
		dstRow := int(t.Height) - 1 - row
		copy(out.Data[dstRow*stride:(dstRow+1)*stride], src)
	}
	return out
}

func copyRows(pix []byte, stride, rowLen, rows int) []byte {
	out := make([]byte, rowLen*rows)
	for row := 0; row < rows; row++ {
		copy(out[row*rowLen:(row+1)*rowLen], pix[row*stride:row*stride+rowLen])
	}
	return out
}
