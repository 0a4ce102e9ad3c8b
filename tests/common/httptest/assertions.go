//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "decode body: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and, when expectedErrorMsg is set,
// that the message contains it.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	body, ok := decodeError(t, w, expectedStatus)
	if ok && expectedErrorMsg != "" {
		assert.Contains(t, body.Error.Message, expectedErrorMsg)
	}
}

// AssertErrorCode checks the status and the machine-readable error code.
// An empty code asserts that none was sent.
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()

	body, ok := decodeError(t, w, expectedStatus)
	if ok {
		assert.Equal(t, expectedCode, body.Error.Code, "error code, body: %s", w.Body.String())
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) (errorBody, bool) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		assert.NoError(t, err, "decode error body: %s", w.Body.String())
		return body, false
	}
	return body, true
}
