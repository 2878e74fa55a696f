package epub

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID        = errors.New("duplicate manifest id")
	ErrDuplicateSpineRef  = errors.New("duplicate spine reference")
	ErrDanglingSpineRef   = errors.New("spine references unknown manifest id")
	ErrDanglingNavigation = errors.New("navigation targets unknown document")
)

// FetchError marks a transport failure. The unit needing the asset degrades,
// the job goes on.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}
