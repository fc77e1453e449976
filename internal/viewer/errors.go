package viewer

import (
	"errors"
	"fmt"
)

// ErrResourceLoad is the only failure a session reports: a panorama could
// not be read or decoded.
var ErrResourceLoad = errors.New("resource load failed")

// ResourceLoadError identifies the panorama that failed to load.
type ResourceLoadError struct {
	Index int
	ID    string
	Path  string
	Err   error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("loading panorama %q (%s): %v", e.ID, e.Path, e.Err)
}

// Unwrap returns the underlying read or decode error.
func (e *ResourceLoadError) Unwrap() error {
	return e.Err
}

// Is matches ErrResourceLoad.
func (e *ResourceLoadError) Is(target error) bool {
	return target == ErrResourceLoad
}
