package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benx421/account-ledger/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidatedHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()

	doc, err := api.GetSwagger()
	require.NoError(t, err)

	validator, err := RequestValidator(doc, testLogger())
	require.NoError(t, err)

	called := new(bool)
	return validator(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})), called
}

func TestRequestValidator(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		target      string
		body        string
		wantStatus  int
		wantCalled  bool
		wantMessage string
	}{
		{
			name:       "valid deposit",
			method:     http.MethodPut,
			target:     "/banking/deposit?accountNum=12345678901&depositAmount=100.50",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "negative amount left to the ledger",
			method:     http.MethodPut,
			target:     "/banking/withdraw?accountNum=12345678901&withdrawAmount=-5",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:        "missing account number",
			method:      http.MethodGet,
			target:      "/banking/account",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "accountNum",
		},
		{
			name:        "non-numeric account number",
			method:      http.MethodDelete,
			target:      "/banking/account?accountNum=abc",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "accountNum",
		},
		{
			name:        "amount is not a number",
			method:      http.MethodPut,
			target:      "/banking/deposit?accountNum=1&depositAmount=ten",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "depositAmount",
		},
		{
			name:        "body without accounts",
			method:      http.MethodPost,
			target:      "/banking/account",
			body:        `{"custName":"Ada","dob":"1990-01-01","email":"ada@example.com"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid request body",
		},
		{
			name:       "valid customer",
			method:     http.MethodPost,
			target:     "/banking/account",
			body:       `{"custName":"Ada","dob":"1990-01-01","email":"ada@example.com","accounts":[{"balanceAmt":"1000.00"}]}`,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "undocumented path passes through",
			method:     http.MethodGet,
			target:     "/metrics",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "undocumented method rejected",
			method:     http.MethodPatch,
			target:     "/banking/deposit?accountNum=1&depositAmount=1",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, called := newValidatedHandler(t)

			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, *called)
			if tt.wantMessage != "" {
				assert.Contains(t, rec.Body.String(), tt.wantMessage)
				assert.Contains(t, rec.Body.String(), `"errorCode":"invalid_request"`)
			}
		})
	}
}
