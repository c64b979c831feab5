package handlers

import (
	"errors"
	"net/http"

	"github.com/benx421/account-ledger/internal/api"
	"github.com/benx421/account-ledger/internal/money"
	"github.com/benx421/account-ledger/internal/service"
	"github.com/oapi-codegen/runtime"
)

// Query parameter names
const (
	paramAccountNum     = "accountNum"
	paramDepositAmount  = "depositAmount"
	paramWithdrawAmount = "withdrawAmount"
)

func bindQueryString(r *http.Request, name string) (string, error) {
	var value string
	err := runtime.BindQueryParameter("form", true, true, name, r.URL.Query(), &value)
	return value, err
}

func bindAmount(r *http.Request, name string) (money.Money, error) {
	raw, err := bindQueryString(r, name)
	if err != nil {
		return money.Money{}, err
	}
	return money.Parse(raw)
}

func statusForCode(code string) int {
	switch code {
	case service.ErrCodeInvalidAmount,
		service.ErrCodeInvalidCustomer,
		service.ErrCodeDepositLimitExceeded,
		service.ErrCodeInsufficientBalanceFloor,
		service.ErrCodeWithdrawPercentageExceeded:
		return http.StatusBadRequest
	case service.ErrCodeAccountNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	api.WriteJSON(w, status, api.NewErrorResponse(h.now(), status, code, message))
}

// badRequest reports a malformed request that never reached the ledger.
func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, message)
}

// writeServiceError maps service errors to appropriate HTTP responses
func (h *Handler) writeServiceError(w http.ResponseWriter, operation string, err error) {
	svcErr := extractServiceError(err)
	if svcErr == nil {
		h.logger.Error("unexpected error", "operation", operation, "error", err)
		h.writeError(w, http.StatusInternalServerError, api.ErrorCodeInternalError, "internal error")
		return
	}

	status := statusForCode(svcErr.Code)
	if status == http.StatusInternalServerError {
		// Store failures carry the driver error; keep it out of the response.
		h.writeError(w, status, svcErr.Code, "internal error")
		return
	}

	h.writeError(w, status, svcErr.Code, svcErr.Message)
}
