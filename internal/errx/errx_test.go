package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func TestAs_UnwrapsWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", New(errBoom, http.StatusBadGateway, "upstream failed"))

	ae := As(wrapped)

	assert.Equal(t, http.StatusBadGateway, ae.Status)
	assert.Equal(t, "upstream failed", ae.Message)
	assert.ErrorIs(t, wrapped, errBoom)
}

func TestAs_PlainErrorIsInternal(t *testing.T) {
	ae := As(errBoom)

	assert.Equal(t, http.StatusInternalServerError, ae.Status)
	assert.Equal(t, SystemErrorMessage, ae.Message)
	assert.Equal(t, "internal server error: boom", ae.Error())
}

func TestInvalid(t *testing.T) {
	ae := Invalid("invalid form", map[string]string{"email": "required"})

	assert.Equal(t, http.StatusUnprocessableEntity, ae.Status)
	assert.Equal(t, "invalid form", ae.Error())
	assert.Equal(t, "required", ae.Fields["email"])
}
