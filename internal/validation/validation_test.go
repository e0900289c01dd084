package validation

import (
	"errors"
	"testing"

	"pool-market-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(models.LoginRequest{Email: "ana@bazeni.ba", Password: "secret"})
	assert.NoError(t, err)
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(models.RegisterRequest{
		FirstName: "Ana",
		Email:     "not-an-email",
		Password:  "123",
	})
	require.Error(t, err)

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "is required", fe["lastName"])
	assert.Equal(t, "must be a valid email address", fe["email"])
	assert.Equal(t, "is required", fe["mobileNumber"])
	assert.Equal(t, "must be at least 6 characters", fe["password"])
	assert.NotContains(t, fe, "firstName")

	assert.Equal(t, []string{
		"email must be a valid email address",
		"lastName is required",
		"mobileNumber is required",
		"password must be at least 6 characters",
	}, fe.Messages())
}

func TestValidate_PoolInput(t *testing.T) {
	v := New()
	price := -5.0

	err := v.Validate(models.PoolInput{Title: "Vila", City: "Mostar", PricePerDay: &price})

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "must be at least 1", fe["capacity"])
	assert.Equal(t, "is required", fe["images"])
	assert.Equal(t, "must be greater than 0", fe["pricePerDay"])
}
