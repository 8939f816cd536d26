package media

import "fmt"

// RemuxError is a fatal failure of the segment merge
type RemuxError struct {
	Output string
	Detail string
	Err    error
}

func (e *RemuxError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("remux %s: %v: %s", e.Output, e.Err, e.Detail)
	}
	return fmt.Sprintf("remux %s: %v", e.Output, e.Err)
}

func (e *RemuxError) Unwrap() error {
	return e.Err
}

// CropError is a fatal failure of a crop/trim encode. Region names which of
// the two outputs failed.
type CropError struct {
	Region string
	Detail string
	Err    error
}

func (e *CropError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s processing failed: %v: %s", e.Region, e.Err, e.Detail)
	}
	return fmt.Sprintf("%s processing failed: %v", e.Region, e.Err)
}

func (e *CropError) Unwrap() error {
	return e.Err
}

// ProbeError reports that media metadata could not be read. It is fatal to
// the crop/trim path only.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
