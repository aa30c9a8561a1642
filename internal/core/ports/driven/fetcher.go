package driven

import "context"

// Fetcher retrieves a missing input file from a remote location.
// It is only consulted when an expected input path does not exist.
type Fetcher interface {
	// Fetch downloads url and stores the body at target, creating parent
	// directories as needed.
	Fetch(ctx context.Context, url, target string) error
}
