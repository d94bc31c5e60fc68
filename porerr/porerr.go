// Package porerr defines the sentinel error taxonomy shared across the
// search stack, in the teacher's flat sentinel-error style (see the
// teacher's pkg/cache.ErrCacheMiss).
package porerr

import "errors"

// Public-surface sentinels (spec §6.4/§7): callers of interpret/build_index
// compare returned errors against these with errors.Is.
var (
	// ErrEmpty is returned when interpret is called with an empty query.
	ErrEmpty = errors.New("porerr: query is empty")
	// ErrNoSuchIndex is returned when the configured index path does not
	// exist.
	ErrNoSuchIndex = errors.New("porerr: no such index")
	// ErrIndexInconsistent is returned when the index and its backing
	// collaborators (enricher, graph) disagree: a document id is present in
	// the index but has no denormalized row, or a payload fails to parse.
	ErrIndexInconsistent = errors.New("porerr: index inconsistent")
	// ErrBackendUnavailable is returned when a required collaborator
	// (enricher, graph, cache) cannot be reached.
	ErrBackendUnavailable = errors.New("porerr: backend unavailable")
	// ErrTimeout is returned when a request is cancelled by its deadline
	// before completing; no partial results are returned.
	ErrTimeout = errors.New("porerr: request timed out")
)

// Kind classifies an error for logging and metrics, per spec §7's taxonomy.
// It is attached to errors via Wrap/Kind rather than replacing the sentinel
// values above, so callers can still use errors.Is against the sentinels.
type Kind int

const (
	KindInputInvalid Kind = iota
	KindBackendInit
	KindBackendState
	KindParse
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindInputInvalid:
		return "input_invalid"
	case KindBackendInit:
		return "backend_init"
	case KindBackendState:
		return "backend_state"
	case KindParse:
		return "parse"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind for structured logging,
// without losing errors.Is/errors.As compatibility with the wrapped error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return e.Kind.String() + ": " + e.Op + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap attaches kind and op to err for structured logging while preserving
// errors.Is/errors.As against err.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
