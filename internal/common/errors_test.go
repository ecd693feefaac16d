package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransient_WrapsBareErrors(t *testing.T) {
	base := errors.New("connection refused")
	err := Transient("load order", base)

	var tr *TransientError
	require.ErrorAs(t, err, &tr)
	assert.Equal(t, "load order", tr.Op)
	assert.ErrorIs(t, err, base)
}

func TestTransient_PassesThroughClientErrors(t *testing.T) {
	nf := &NotFoundError{Resource: "order"}
	err := Transient("load order", nf)
	assert.Equal(t, error(nf), err)

	il := &IllegalStateError{Current: "cancelled", Requested: "accepted"}
	assert.Equal(t, error(il), Transient("update", il))

	assert.NoError(t, Transient("noop", nil))
}

func sendAndDecode(t *testing.T, err error) (int, *ErrorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, SendError(c, err))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, &resp
}

func TestSendError_StatusMapping(t *testing.T) {
	code, resp := sendAndDecode(t, &ValidationError{Field: "quantity", Reason: "must be at least 1"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	code, resp = sendAndDecode(t, &NotFoundError{Resource: "order"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)

	code, resp = sendAndDecode(t, &ForbiddenError{Reason: "order belongs to another vendor"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	code, resp = sendAndDecode(t, &EmptyCartError{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "EMPTY_CART", resp.Error.Code)

	code, resp = sendAndDecode(t, Transient("load", errors.New("boom")))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "TRANSIENT_ERROR", resp.Error.Code)

	code, resp = sendAndDecode(t, errors.New("unexpected"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "SERVER_ERROR", resp.Error.Code)
}

func TestSendError_IllegalStateCarriesCurrentStatus(t *testing.T) {
	code, resp := sendAndDecode(t, &IllegalStateError{Current: "cancelled", Requested: "accepted"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ILLEGAL_STATE", resp.Error.Code)
	assert.Equal(t, "cancelled", resp.Error.Details["current_status"])
}

func TestValidatePaginationParams(t *testing.T) {
	limit, offset := ValidatePaginationParams(0, 0)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)

	limit, offset = ValidatePaginationParams(1000, -5)
	assert.Equal(t, 200, limit)
	assert.Equal(t, 0, offset)

	limit, _ = ValidatePaginationParams(25, 10)
	assert.Equal(t, 25, limit)
}

func TestValidatePaymentMethod(t *testing.T) {
	assert.NoError(t, ValidatePaymentMethod("cash"))
	assert.NoError(t, ValidatePaymentMethod("gcash"))
	assert.NoError(t, ValidatePaymentMethod("online"))
	assert.Error(t, ValidatePaymentMethod("barter"))
	assert.Error(t, ValidatePaymentMethod(""))
}
