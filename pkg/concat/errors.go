package concat

import "fmt"

// PathNotFoundError reports a user-supplied root path that does not exist.
// It is fatal: the whole run aborts before any output is produced.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path does not exist: %s", e.Path)
}
