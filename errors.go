package frame

import "errors"

// Errors returned by Frame.Create. Each leaves the previous frame state
// untouched.
var (
	// ErrNoRootPipeline is returned when the scene has no root pipeline.
	ErrNoRootPipeline = errors.New("frame: scene has no root pipeline")

	// ErrRootPipelineNotFound is returned when the root pipeline is not in
	// the scene's pipeline map.
	ErrRootPipelineNotFound = errors.New("frame: root pipeline not found")

	// ErrNoDisplayList is returned when the root pipeline has no display
	// list.
	ErrNoDisplayList = errors.New("frame: root pipeline has no display list")

	// ErrInvalidWindowSize is returned for a window with a zero dimension.
	ErrInvalidWindowSize = errors.New("frame: window size has a zero dimension")

	// ErrNoStackingContext is returned when the root display list does not
	// start with a stacking context.
	ErrNoStackingContext = errors.New("frame: display list does not start with a stacking context")
)
