package clone

import "errors"

// Failure kinds, one per boundary of the clone workflow. Call sites wrap the
// concrete cause together with the kind so callers can match either with
// errors.Is.
var (
	// ErrInput marks a bad CLI value or an unreadable user-data file.
	ErrInput = errors.New("invalid input")
	// ErrConfiguration marks unresolvable region or credential settings.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrFetch marks a failure to resolve the source launch template.
	ErrFetch = errors.New("failed to fetch source launch template")
	// ErrCreate marks a backend rejection of the merged launch template.
	ErrCreate = errors.New("failed to create launch template")
)
