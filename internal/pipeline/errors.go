package pipeline

import "errors"

// Error taxonomy for a single analyze request. Errors on the read path
// (validation, embedding, generation) are fatal to the request; errors
// after the analysis has been produced (persistence, indexing) are not.
var (
	// ErrInvalidInput rejects empty or whitespace-only claim text before
	// any I/O happens.
	ErrInvalidInput = errors.New("claim text must not be empty")

	// ErrEmbeddingUnavailable wraps embedding service failures. The
	// request fails with no side effects.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationUnavailable wraps generation service failures. The
	// request fails with no side effects, even if embedding succeeded.
	ErrGenerationUnavailable = errors.New("analysis service unavailable")

	// ErrPersistenceFailed marks a failed relational insert after
	// successful generation. The generated analysis is still returned to
	// the caller; it is just not recorded for future reuse.
	ErrPersistenceFailed = errors.New("failed to record analysis")
)
