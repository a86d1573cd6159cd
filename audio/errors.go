package audio

import "fmt"

// DecodeError reports a file that could not be decoded (unreadable,
// corrupt, or unsupported format). Callers skip the file and continue
// with the rest of the corpus.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PersistError reports an output file that could not be written. Fatal
// for that file's refinement job only.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
