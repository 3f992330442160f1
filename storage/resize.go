package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/gift"
)

const (
	maxImageEdge = 4000
	jpegQuality  = 90
)

// downscale re-encodes images whose longest edge exceeds maxImageEdge as a
// capped JPEG. Payloads that do not decode, or already fit, are returned
// unchanged.
func downscale(data []byte) []byte {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxImageEdge && bounds.Dy() <= maxImageEdge {
		return data
	}

	var g *gift.GIFT
	if bounds.Dx() >= bounds.Dy() {
		g = gift.New(gift.Resize(maxImageEdge, 0, gift.LanczosResampling))
	} else {
		g = gift.New(gift.Resize(0, maxImageEdge, gift.LanczosResampling))
	}

	dst := image.NewRGBA(g.Bounds(bounds))
	g.Draw(dst, img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return data
	}
	return buf.Bytes()
}
