package fetch

import "fmt"

// ResolutionError reports a failed exchange of an authorization link.
// StatusCode is zero for transport failures.
type ResolutionError struct {
	Link       string
	StatusCode int
	Err        error
}

func (e *ResolutionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("resolve link: HTTP %d: %s", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("resolve link: %s", e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// FetchError reports a failed asset download. StatusCode is zero for
// transport and filesystem failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch asset: HTTP %d: %s", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch asset: %s", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
