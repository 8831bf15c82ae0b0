package textobject

import "errors"

// ErrNotFound is returned when no construct of the requested kind encloses
// the cursor. It is the only error that crosses the package boundary:
// per-candidate misses are swallowed by Select, and malformed documents
// (unbalanced delimiters, unpaired begin/end) fail closed as ErrNotFound
// because the boundary primitives report absence rather than partial data.
var ErrNotFound = errors.New("no text object at cursor")
