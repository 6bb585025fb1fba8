package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex run_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// UUID_PREFIX_RUN tags the identifier stamped on each generation run's
	// logs and manifest. Row ids inside the tables themselves are dense
	// integer sequences, not ULIDs, so runs stay reproducible under a seed.
	UUID_PREFIX_RUN = "run"
)
