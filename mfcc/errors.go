package mfcc

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientData   = errors.New("audio buffer is shorter than one frame")
	ErrInvalidFrameLength = errors.New("invalid frame length")
	ErrDegenerateFilter   = errors.New("degenerate mel filter")
	ErrTransform          = errors.New("transform failed")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// FrameError reports the frame at which a run was aborted.
type FrameError struct {
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Index, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }
