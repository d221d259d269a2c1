package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type record struct {
	ID        string    `db:"id"`
	Amount    int       `db:"amount"`
	Remarks   *string   `db:"remarks"`
	Ignored   string    `db:"-"`
	NoTag     string    ``
	UpdatedAt time.Time `db:"updated_at"`
}

func TestStructTagValues(t *testing.T) {
	assert.Equal(t, []string{"id", "amount", "remarks", "updated_at"}, StructTagValues(record{}))
	assert.Equal(t, []string{"id", "amount", "remarks", "updated_at"}, StructTagValues(&record{}))
}

func TestStructToMap(t *testing.T) {
	r := record{ID: "a", Amount: 3}
	m := StructToMap(&r)

	assert.Equal(t, "a", m["id"])
	assert.Equal(t, 3, m["amount"])
	assert.NotContains(t, m, "Ignored")
	assert.NotContains(t, m, "NoTag")
}

func TestStructDiff(t *testing.T) {
	old := record{ID: "a", Amount: 3, Remarks: StringPtr("x")}

	same := old
	assert.Empty(t, StructDiff(&old, &same))

	changed := old
	changed.Amount = 4
	assert.ElementsMatch(t, []string{"amount"}, StructDiff(&old, &changed))

	// Pointer fields compare by pointed-to value, not address.
	remarks := old
	remarks.Remarks = StringPtr("x")
	assert.Empty(t, StructDiff(&old, &remarks))

	remarks.Remarks = StringPtr("y")
	assert.ElementsMatch(t, []string{"remarks"}, StructDiff(&old, &remarks))
}
