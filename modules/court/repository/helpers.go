package repository

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uuidArray adapts a uuid slice to a Postgres ANY($1) parameter.
func uuidArray(ids []uuid.UUID) any {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return pq.Array(strs)
}
