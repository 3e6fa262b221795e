package query

import "context"

type Generator interface {
	Generate(ctx context.Context, query string) (string, error)
}
