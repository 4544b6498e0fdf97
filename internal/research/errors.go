package research

import "errors"

var (
	// ErrNoSearchProvider is returned by New when Deps.Search is nil
	ErrNoSearchProvider = errors.New("research: search provider is required")

	// ErrNoCompletionProvider is returned by New when Deps.AI is nil
	ErrNoCompletionProvider = errors.New("research: completion provider is required")
)
