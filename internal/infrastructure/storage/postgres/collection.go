package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/core/tx"
)

// ErrMalformedDocument is returned by Codec.FromDocument when a stored row
// lacks a required value.
var ErrMalformedDocument = errors.New("malformed document")

// KeyColumn is the store-generated primary key present in every table.
const KeyColumn = "_id"

// Codec maps one entity kind to its stored document.
// D is a struct with "db" tags, usually with pointer fields so that
// missing values can be detected on read.
type Codec[E any, D any] interface {
	// Table is the table holding the documents.
	Table() string
	// Entity names the entity in error messages.
	Entity() string
	// OwnerKey is the column holding the owner id, or "" for unowned entities.
	OwnerKey() string
	ToDocument(e E) D
	FromDocument(d D) (E, error)
}

// Collection implements the storage operations shared by every entity kind.
type Collection[E any, D any] struct {
	codec Codec[E, D]
	cols  []string
}

// NewCollection creates a collection for codec.
func NewCollection[E any, D any](codec Codec[E, D]) *Collection[E, D] {
	return &Collection[E, D]{
		codec: codec,
		cols:  ExtractDBColumns[D](),
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (c *Collection[E, D]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ByKey matches documents of ownerID whose application id or store key equals key.
func (c *Collection[E, D]) ByKey(ownerID, key string) squirrel.Sqlizer {
	return squirrel.And{
		c.ByOwner(ownerID),
		squirrel.Or{
			squirrel.Eq{"id": key},
			squirrel.Eq{KeyColumn: key},
		},
	}
}

// ByOwner matches every document of ownerID.
func (c *Collection[E, D]) ByOwner(ownerID string) squirrel.Sqlizer {
	return squirrel.Eq{c.codec.OwnerKey(): ownerID}
}

// Insert stores e. The store key is generated by the database.
func (c *Collection[E, D]) Insert(ctx context.Context, handle tx.Handle, e E) error {
	q, err := querier(handle)
	if err != nil {
		return err
	}

	data := StructToMap(c.codec.ToDocument(e), KeyColumn)
	if len(data) == 0 {
		return apperror.NewInternal(fmt.Errorf("%s document has no db columns", c.codec.Entity()))
	}

	sql, args, err := c.Builder().Insert(c.codec.Table()).SetMap(data).ToSql()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build insert: %w", err))
	}

	_, err = Classify(c.codec.Entity(), "", func() (pgconn.CommandTag, error) {
		return q.Exec(ctx, sql, args...)
	})
	return err
}

// Find returns every entity matching where.
func (c *Collection[E, D]) Find(ctx context.Context, handle tx.Handle, where squirrel.Sqlizer, orderBy ...string) ([]E, error) {
	q, err := querier(handle)
	if err != nil {
		return nil, err
	}

	sql, args, err := c.Builder().
		Select(c.cols...).
		From(c.codec.Table()).
		Where(where).
		OrderBy(orderBy...).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("build query: %w", err))
	}

	var docs []D
	if err := pgxscan.Select(ctx, q, &docs, sql, args...); err != nil {
		return nil, classifyError(c.codec.Entity(), "", err)
	}

	entities := make([]E, 0, len(docs))
	for _, d := range docs {
		e, err := c.decode(d)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// FindOne returns the entity matching where, or NotFound naming key.
func (c *Collection[E, D]) FindOne(ctx context.Context, handle tx.Handle, where squirrel.Sqlizer, key string) (E, error) {
	var zero E

	q, err := querier(handle)
	if err != nil {
		return zero, err
	}

	sql, args, err := c.Builder().
		Select(c.cols...).
		From(c.codec.Table()).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return zero, apperror.NewInternal(fmt.Errorf("build query: %w", err))
	}

	var doc D
	if err := pgxscan.Get(ctx, q, &doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return zero, apperror.NewNotFound(c.codec.Entity(), key)
		}
		return zero, classifyError(c.codec.Entity(), key, err)
	}

	return c.decode(doc)
}

// Update applies set to the documents matching where.
// Zero matched rows is NotFound.
func (c *Collection[E, D]) Update(ctx context.Context, handle tx.Handle, where squirrel.Sqlizer, set map[string]any, key string) (bool, error) {
	q, err := querier(handle)
	if err != nil {
		return false, err
	}

	sql, args, err := c.Builder().
		Update(c.codec.Table()).
		SetMap(set).
		Where(where).
		ToSql()
	if err != nil {
		return false, apperror.NewInternal(fmt.Errorf("build update: %w", err))
	}

	return ClassifyExec(c.codec.Entity(), key, func() (pgconn.CommandTag, error) {
		return q.Exec(ctx, sql, args...)
	})
}

// Delete removes the documents matching where. Zero matched rows is NotFound.
func (c *Collection[E, D]) Delete(ctx context.Context, handle tx.Handle, where squirrel.Sqlizer, key string) (bool, error) {
	q, sql, args, err := c.deleteQuery(handle, where)
	if err != nil {
		return false, err
	}

	return ClassifyExec(c.codec.Entity(), key, func() (pgconn.CommandTag, error) {
		return q.Exec(ctx, sql, args...)
	})
}

// DeleteIfExists removes the documents matching where and reports whether
// any were removed. Zero matched rows is not an error.
func (c *Collection[E, D]) DeleteIfExists(ctx context.Context, handle tx.Handle, where squirrel.Sqlizer, key string) (bool, error) {
	q, sql, args, err := c.deleteQuery(handle, where)
	if err != nil {
		return false, err
	}

	tag, err := Classify(c.codec.Entity(), key, func() (pgconn.CommandTag, error) {
		return q.Exec(ctx, sql, args...)
	})
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (c *Collection[E, D]) deleteQuery(handle tx.Handle, where squirrel.Sqlizer) (Querier, string, []any, error) {
	q, err := querier(handle)
	if err != nil {
		return nil, "", nil, err
	}

	sql, args, err := c.Builder().
		Delete(c.codec.Table()).
		Where(where).
		ToSql()
	if err != nil {
		return nil, "", nil, apperror.NewInternal(fmt.Errorf("build delete: %w", err))
	}
	return q, sql, args, nil
}

// decode treats a document that cannot become an entity as a fatal integrity error.
func (c *Collection[E, D]) decode(d D) (E, error) {
	e, err := c.codec.FromDocument(d)
	if err != nil {
		var zero E
		return zero, apperror.NewDataIntegrity(c.codec.Entity(), err)
	}
	return e, nil
}

// Required dereferences a document field, failing with ErrMalformedDocument when absent.
func Required[T any](column string, v *T) (T, error) {
	if v == nil {
		var zero T
		return zero, fmt.Errorf("%w: %s is null", ErrMalformedDocument, column)
	}
	return *v, nil
}

// Ptr returns a pointer to v for building documents.
func Ptr[T any](v T) *T {
	return &v
}

// Increment is a SET value adding delta to column.
func Increment(column string, delta int) squirrel.Sqlizer {
	return squirrel.Expr(column+" + ?", delta)
}
