package ports

import "time"

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}
