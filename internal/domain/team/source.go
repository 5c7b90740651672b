package team

import "context"

// Source loads the raw league definitions a Catalog is built from.
type Source interface {
	LoadLeagues(ctx context.Context) ([]League, error)
}
