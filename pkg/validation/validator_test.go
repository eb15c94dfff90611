package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestToDetails_Nil(t *testing.T) {
	t.Parallel()

	require.Nil(t, ToDetails(nil))
}

func TestToDetails_InvalidJSON(t *testing.T) {
	t.Parallel()

	var dst struct{}
	err := json.Unmarshal([]byte("{"), &dst)
	require.Error(t, err)
	require.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetails_ValidationErrors(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}
	v := validator.New()
	err := v.Struct(payload{Email: "nope"})
	require.Error(t, err)

	details := ToDetails(err)
	require.Equal(t, "is required", details["Name"])
	require.Equal(t, "must be a valid email", details["Email"])
}

func TestToDetails_Fallback(t *testing.T) {
	t.Parallel()

	details := ToDetails(errors.New("boom"))
	require.Equal(t, map[string]string{"payload": "invalid payload"}, details)
}
