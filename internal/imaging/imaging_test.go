package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func testJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func testPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestThumbnailDownscales(t *testing.T) {
	thumb, err := Thumbnail(testJPEG(1024, 768))
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decoding thumbnail: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
	bounds := img.Bounds()
	if bounds.Dx() > ThumbnailDimension || bounds.Dy() > ThumbnailDimension {
		t.Errorf("expected max %dpx, got %dx%d", ThumbnailDimension, bounds.Dx(), bounds.Dy())
	}
}

func TestThumbnailFromPNG(t *testing.T) {
	thumb, err := Thumbnail(testPNG(512, 512))
	if err != nil {
		t.Fatalf("Thumbnail PNG: %v", err)
	}
	if _, format, err := image.Decode(bytes.NewReader(thumb)); err != nil || format != "jpeg" {
		t.Errorf("expected decodable jpeg, format %s, err %v", format, err)
	}
}

func TestThumbnailSmallImageNotUpscaled(t *testing.T) {
	thumb, err := Thumbnail(testJPEG(100, 50))
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decoding thumbnail: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("expected 100x50 unchanged, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestThumbnailRejectsNonImage(t *testing.T) {
	if _, err := Thumbnail([]byte("definitely not an image")); err == nil {
		t.Error("expected error for non-image data")
	}
}
