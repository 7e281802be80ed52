package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_HTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindConflict:     http.StatusConflict,
		KindBadRequest:   http.StatusBadRequest,
		KindNotFound:     http.StatusNotFound,
		KindUnauthorized: http.StatusUnauthorized,
		KindUnclassified: http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.HTTPStatus(), kind.String())
	}
}

func TestKindOf_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create stock item: %w", NewDuplicate("stock item", "stock_items_owner_name_key"))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsConflict(err))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(err))
}

func TestKindOf_ForeignErrorIsUnclassified(t *testing.T) {
	assert.Equal(t, KindUnclassified, KindOf(errors.New("boom")))
	assert.False(t, IsNotFound(nil))
}

func TestNewInternal_HidesCause(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := NewInternal(cause)

	assert.Equal(t, "Internal server error", err.Message)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestNewInvalidArgument(t *testing.T) {
	err := NewInvalidArgument("operation", 7)

	assert.Equal(t, KindBadRequest, err.Kind)
	assert.Equal(t, CodeInvalidArgument, err.Code)
	assert.Equal(t, 7, err.Details["value"])
}

func TestWithDetail_InitializesMap(t *testing.T) {
	err := NewValidation("bad").WithDetail("field", "name")
	assert.Equal(t, "name", err.Details["field"])
}
