package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"feabscopy/internal/engine"
	"feabscopy/internal/ledger"
)

// Handler holds dependencies for the API endpoints.
type Handler struct {
	log *zap.Logger
	svc *ledger.Service
}

// NewHandler creates a new Handler.
func NewHandler(log *zap.Logger, svc *ledger.Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// userID extracts the acting user from the request. Authentication is
// handled upstream; the header is trusted here.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed", zap.String("op", op), zap.Error(err))
		WriteJSON(w, status, APIResponse{Success: false, Message: "internal error"})
		return
	}
	WriteJSON(w, status, APIResponse{Success: false, Message: err.Error()})
}

// GET /api/ledger
func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Ledger(userID(r))
	if err != nil {
		h.fail(w, "get ledger", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Data: user})
}

// GET /api/trades
func (h *Handler) GetTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.svc.Trades()
	if err != nil {
		h.fail(w, "get trades", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Data: trades})
}

// GET /api/performance?period=
func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	period, err := engine.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: err.Error()})
		return
	}

	report, err := h.svc.Performance(userID(r), period, time.Now())
	if err != nil {
		h.fail(w, "get performance", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Data: report})
}

type activateRequest struct {
	Plan   string          `json:"plan"`
	Amount decimal.Decimal `json:"amount"`
}

// POST /api/accounts/activate
func (h *Handler) ActivatePlan(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
		return
	}

	user, err := h.svc.ActivatePlan(userID(r), req.Plan, req.Amount)
	if err != nil {
		h.fail(w, "activate plan", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Copy plan activated", Data: user})
}

// POST /api/accounts/{id}/terminate
func (h *Handler) TerminateAccount(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.TerminateAccount(userID(r), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "terminate account", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Account terminated", Data: result})
}

// POST /api/accounts/{id}/redeem
func (h *Handler) RedeemMatured(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.RedeemMatured(userID(r), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "redeem account", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Account redeemed", Data: result})
}

// POST /api/profit/withdraw
func (h *Handler) WithdrawProfit(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.WithdrawProfit(userID(r))
	if err != nil {
		h.fail(w, "withdraw profit", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Profit withdrawn", Data: result})
}

type amountRequest struct {
	UsdAmount decimal.Decimal `json:"usd_amount"`
}

// POST /api/wallet/convert
func (h *Handler) ConvertNGN(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
		return
	}

	user, err := h.svc.ConvertNGN(userID(r), req.UsdAmount)
	if err != nil {
		h.fail(w, "convert ngn", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Conversion complete", Data: user})
}

// POST /api/wallet/withdraw
func (h *Handler) WithdrawNGN(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
		return
	}

	result, err := h.svc.WithdrawNGN(r.Context(), userID(r), req.UsdAmount)
	if err != nil {
		h.fail(w, "withdraw ngn", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Payout requested", Data: result})
}

// POST /api/wallet/virtual-account
func (h *Handler) CreateVirtualAccount(w http.ResponseWriter, r *http.Request) {
	va, err := h.svc.CreateVirtualAccount(r.Context(), userID(r))
	if err != nil {
		h.fail(w, "create virtual account", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Virtual account created", Data: va})
}

// POST /api/wallet/deposit
func (h *Handler) RequestDeposit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
		return
	}

	invoice, err := h.svc.RequestDeposit(r.Context(), userID(r), req.UsdAmount)
	if err != nil {
		h.fail(w, "request deposit", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Deposit invoice created", Data: invoice})
}

// POST /api/admin/trades
func (h *Handler) LogTrade(w http.ResponseWriter, r *http.Request) {
	var in ledger.TradeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
		return
	}

	record, err := h.svc.LogTrade(in)
	if err != nil {
		h.fail(w, "log trade", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Trade logged", Data: record})
}

// GET /api/admin/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Settings()
	if err != nil {
		h.fail(w, "get settings", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Data: settings})
}

// PUT /api/admin/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in ledger.SettingsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
		return
	}

	settings, err := h.svc.UpdateSettings(in)
	if err != nil {
		h.fail(w, "update settings", err)
		return
	}
	WriteJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Settings updated", Data: settings})
}
