package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type auditColumns struct {
	CreatedBy *string `db:"created_by"`
}

type mockDocument struct {
	auditColumns
	Key      *string `db:"_id"`
	Name     *string `db:"name"`
	Quantity *int    `db:"quantity"`
	Note     string  `db:"-"`
	scratch  int
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockDocument]()

	assert.Equal(t, []string{"created_by", "_id", "name", "quantity"}, cols)
}

func TestStructToMap(t *testing.T) {
	name := "bolt"
	qty := 5
	by := "system"
	doc := mockDocument{
		auditColumns: auditColumns{CreatedBy: &by},
		Name:         &name,
		Quantity:     &qty,
		Note:         "ignored",
		scratch:      1,
	}

	m := StructToMap(&doc, "_id")

	assert.Len(t, m, 3)
	assert.Equal(t, &name, m["name"])
	assert.Equal(t, &qty, m["quantity"])
	assert.Equal(t, &by, m["created_by"])
	assert.NotContains(t, m, "_id")

	assert.Contains(t, StructToMap(doc), "_id")
	assert.Nil(t, StructToMap(42))
}
