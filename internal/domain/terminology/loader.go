package terminology

import "context"

// Loader supplies the static reference catalogs at process startup.
// Implementations read from JSON files or from Postgres reference
// tables; the Store does not care which.
type Loader interface {
	Load(ctx context.Context) (*Catalogs, error)
}
