package handlers

import (
	"context"
	"net/http"

	"github.com/benx421/account-ledger/internal/api"
	"github.com/benx421/account-ledger/internal/models"
	"github.com/benx421/account-ledger/internal/money"
)

// GetAccount handles GET /banking/account
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountNum, err := bindQueryString(r, paramAccountNum)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), accountNum)
	if err != nil {
		h.writeServiceError(w, "get_account", err)
		return
	}

	api.WriteJSON(w, http.StatusOK, account)
}

// Deposit handles PUT /banking/deposit
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, "deposit", paramDepositAmount, h.accounts.Deposit)
}

// Withdraw handles PUT /banking/withdraw
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, "withdraw", paramWithdrawAmount, h.accounts.Withdraw)
}

// DeleteAccount handles DELETE /banking/account
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountNum, err := bindQueryString(r, paramAccountNum)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	account, err := h.accounts.DeleteAccount(r.Context(), accountNum)
	if err != nil {
		h.writeServiceError(w, "delete_account", err)
		return
	}

	api.WriteJSON(w, http.StatusOK, account)
}

type balanceChange func(ctx context.Context, accountNumber string, amount money.Money) (*models.Account, error)

func (h *Handler) applyAmount(w http.ResponseWriter, r *http.Request, operation, amountParam string, apply balanceChange) {
	accountNum, err := bindQueryString(r, paramAccountNum)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	amount, err := bindAmount(r, amountParam)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	account, err := apply(r.Context(), accountNum, amount)
	if err != nil {
		h.writeServiceError(w, operation, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, account)
}
