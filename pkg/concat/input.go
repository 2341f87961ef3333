package concat

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ResolvePaths turns the argument list, or standard input when it is empty,
// into the validated list of root paths for a run.
//
// Arguments are used verbatim: order preserved, duplicates kept. With no
// arguments and a terminal on stdin the resolved list is empty, which is a
// valid no-op outcome, not an error. Every resolved path must exist; the
// first missing one fails the run with a PathNotFoundError.
func ResolvePaths(args []string, stdin io.Reader, stdinIsTerminal func() bool, nullSeparator bool) ([]string, error) {
	paths := args
	if len(paths) == 0 {
		if stdinIsTerminal() {
			return nil, nil
		}
		var err error
		paths, err = readPathsFrom(stdin, nullSeparator)
		if err != nil {
			return nil, fmt.Errorf("failed to read paths from stdin: %w", err)
		}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, &PathNotFoundError{Path: path}
			}
			return nil, fmt.Errorf("failed to access path %s: %w", path, err)
		}
	}

	return paths, nil
}

// readPathsFrom splits the reader's full contents into path strings on the
// separator, trimming surrounding whitespace and discarding empty pieces.
func readPathsFrom(r io.Reader, nullSeparator bool) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	separator := "\n"
	if nullSeparator {
		separator = "\x00"
	}

	var paths []string
	for _, piece := range strings.Split(string(data), separator) {
		trimmed := strings.TrimSpace(piece)
		if trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths, nil
}
