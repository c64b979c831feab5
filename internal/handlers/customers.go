package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/benx421/account-ledger/internal/api"
	"github.com/benx421/account-ledger/internal/models"
	"github.com/benx421/account-ledger/internal/money"
	"github.com/oapi-codegen/runtime/types"
)

type newAccountRequest struct {
	BalanceAmt money.Money `json:"balanceAmt"`
}

type createCustomerRequest struct {
	DateOfBirth types.Date          `json:"dob"`
	Name        string              `json:"custName"`
	Email       types.Email         `json:"email"`
	Accounts    []newAccountRequest `json:"accounts"`
}

func (req createCustomerRequest) toCustomer() models.Customer {
	customer := models.Customer{
		Name:        req.Name,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Accounts:    make([]models.Account, 0, len(req.Accounts)),
	}
	for _, acct := range req.Accounts {
		customer.Accounts = append(customer.Accounts, models.Account{Balance: acct.BalanceAmt})
	}
	return customer
}

// CreateCustomer handles POST /banking/account
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body: "+err.Error())
		return
	}

	customer, err := h.customers.CreateCustomer(r.Context(), req.toCustomer())
	if err != nil {
		h.writeServiceError(w, "create_customer", err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, customer)
}

// ListCustomers handles GET /banking/all-cust-accts
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		h.writeServiceError(w, "list_customers", err)
		return
	}

	if customers == nil {
		customers = []models.Customer{}
	}
	api.WriteJSON(w, http.StatusOK, customers)
}
