package validator

import (
	"github.com/futig/vertex-rag-services/internal/entity"
)

// ValidateQuery rejects an empty query. The text is otherwise passed on
// verbatim, whitespace included.
func ValidateQuery(query string) error {
	if query == "" {
		return entity.ErrEmptyQuery
	}
	return nil
}
