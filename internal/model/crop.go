package model

import "fmt"

// Default crop split: the screen region takes 80% of the width at full
// height, the webcam region takes the remaining 20% of the width and 25% of
// the height in the top-right corner.
const (
	ScreenWidthRatio  = 0.8
	WebcamWidthRatio  = 0.2
	WebcamHeightRatio = 0.25
)

// CropRect is one rectangular crop region in source pixel coordinates
type CropRect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Validate rejects rectangles that cannot form an ffmpeg crop filter
func (r CropRect) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("crop rect has non-positive size %dx%d", r.Width, r.Height)
	}
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("crop rect has negative origin (%d,%d)", r.X, r.Y)
	}
	return nil
}

// Filter returns the ffmpeg crop filter expression for the rectangle
func (r CropRect) Filter() string {
	return fmt.Sprintf("crop=%d:%d:%d:%d", r.Width, r.Height, r.X, r.Y)
}

// CropRegions names the two output regions of a screen+webcam recording
type CropRegions struct {
	Screen CropRect
	Webcam CropRect
}

// Validate checks both regions
func (c CropRegions) Validate() error {
	if err := c.Screen.Validate(); err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := c.Webcam.Validate(); err != nil {
		return fmt.Errorf("webcam: %w", err)
	}
	return nil
}

// DefaultCropRegions computes the default screen/webcam split for a source
// of the given pixel dimensions
func DefaultCropRegions(videoWidth, videoHeight int) CropRegions {
	screenWidth := int(float64(videoWidth) * ScreenWidthRatio)

	return CropRegions{
		Screen: CropRect{
			X:      0,
			Y:      0,
			Width:  screenWidth,
			Height: videoHeight,
		},
		Webcam: CropRect{
			X:      screenWidth,
			Y:      0,
			Width:  int(float64(videoWidth) * WebcamWidthRatio),
			Height: int(float64(videoHeight) * WebcamHeightRatio),
		},
	}
}
