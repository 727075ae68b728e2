package camera

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

const (
	fontScale = 0.6
	thickness = 2
)

// Frame adapts a captured gocv.Mat to the pipeline. It does not own the Mat.
type Frame struct {
	mat *gocv.Mat
}

func NewFrame(mat *gocv.Mat) *Frame {
	return &Frame{mat: mat}
}

// Mat returns the underlying matrix.
func (f *Frame) Mat() *gocv.Mat {
	return f.mat
}

func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.mat.Cols(), f.mat.Rows())
}

// Crop copies the region r out of the frame.
func (f *Frame) Crop(r image.Rectangle) (image.Image, error) {
	if r.Empty() || !r.In(f.Bounds()) {
		return nil, fmt.Errorf("region %v outside frame %v", r, f.Bounds())
	}

	region := f.mat.Region(r)
	defer region.Close()

	img, err := region.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert region: %w", err)
	}
	return img, nil
}

func (f *Frame) DrawBox(r image.Rectangle, c color.RGBA) {
	_ = gocv.Rectangle(f.mat, r, c, thickness)
}

func (f *Frame) DrawText(text string, origin image.Point, c color.RGBA) {
	_ = gocv.PutText(f.mat, text, origin, gocv.FontHersheySimplex, fontScale, c, thickness)
}

// Encode returns the frame as a JPEG.
func (f *Frame) Encode() ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *f.mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	defer buf.Close()

	jpeg := make([]byte, len(buf.GetBytes()))
	copy(jpeg, buf.GetBytes())
	return jpeg, nil
}
