// Package imaging produces thumbnails from stored photos.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	"golang.org/x/image/draw"
)

// ThumbnailDimension is the maximum width or height of a generated thumbnail.
const ThumbnailDimension = 256

// JPEGQuality is the compression quality for thumbnail output.
const JPEGQuality = 85

// decodableMIME lists the photo formats thumbnails can be generated from,
// detected by sniffing bytes rather than trusting the stored extension.
var decodableMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Thumbnail decodes the photo bytes, downscales the image so neither
// dimension exceeds ThumbnailDimension, and re-encodes it as JPEG.
// Photos already within bounds are still re-encoded for a uniform output
// format.
func Thumbnail(data []byte) ([]byte, error) {
	detected := http.DetectContentType(data)
	if !decodableMIME[detected] {
		return nil, fmt.Errorf("cannot thumbnail %s photo (only JPEG and PNG supported)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding photo: %w", err)
	}

	img = downscale(img, ThumbnailDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale resizes the image so neither dimension exceeds maxDim, preserving
// aspect ratio. Uses Catmull-Rom interpolation. Returns the original image if
// already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	// Register decoders (jpeg is registered by default, but be explicit).
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
