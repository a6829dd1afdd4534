package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all API routes.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/ledger", h.GetLedger).Methods(http.MethodGet)
	api.HandleFunc("/trades", h.GetTrades).Methods(http.MethodGet)
	api.HandleFunc("/performance", h.GetPerformance).Methods(http.MethodGet)

	api.HandleFunc("/accounts/activate", h.ActivatePlan).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{id}/terminate", h.TerminateAccount).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{id}/redeem", h.RedeemMatured).Methods(http.MethodPost)

	api.HandleFunc("/profit/withdraw", h.WithdrawProfit).Methods(http.MethodPost)

	api.HandleFunc("/wallet/convert", h.ConvertNGN).Methods(http.MethodPost)
	api.HandleFunc("/wallet/withdraw", h.WithdrawNGN).Methods(http.MethodPost)
	api.HandleFunc("/wallet/virtual-account", h.CreateVirtualAccount).Methods(http.MethodPost)
	api.HandleFunc("/wallet/deposit", h.RequestDeposit).Methods(http.MethodPost)

	api.HandleFunc("/admin/trades", h.LogTrade).Methods(http.MethodPost)
	api.HandleFunc("/admin/settings", h.GetSettings).Methods(http.MethodGet)
	api.HandleFunc("/admin/settings", h.UpdateSettings).Methods(http.MethodPut)

	return r
}
