package graphfile

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/ggfx/render"
)

// LoadAsset decodes a PNG or JPEG file into a pixmap of the given size.
// Images of a different size are scaled with Catmull-Rom filtering; a zero
// width or height keeps the decoded size.
func LoadAsset(path string, width, height int) (*render.PixmapTarget, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphfile: asset: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("graphfile: asset %s: %w", path, err)
	}
	return Fit(img, width, height), nil
}

// Fit converts img to a width x height pixmap.
func Fit(img image.Image, width, height int) *render.PixmapTarget {
	sr := img.Bounds()
	if width <= 0 || height <= 0 {
		width, height = sr.Dx(), sr.Dy()
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if sr.Dx() == width && sr.Dy() == height {
		draw.Draw(dst, dst.Bounds(), img, sr.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, sr, draw.Src, nil)
	}
	return render.NewPixmapTargetFromImage(dst)
}
