package store

import "fmt"

// FileNotFoundError is returned by Load when the questions file does not
// exist. It unwraps to the underlying fs.ErrNotExist error.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("questions file not found: %s", e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }
