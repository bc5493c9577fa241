package handler

import (
	"net/http"

	"github.com/srgjo27/ticket_gate/internal/core/domain"
	"github.com/srgjo27/ticket_gate/internal/core/services"
)

type PaymentHandler struct {
	svc *services.PaymentService
}

func NewPaymentHandler(svc *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req services.CreateOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.svc.CreateOrder(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req services.VerifyPaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.svc.VerifyPayment(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type sandboxRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
}

// SandboxSigner signs an order/payment pair the way the gateway would, so the
// verify flow can be exercised without a live checkout. Only mounted when the
// payment sandbox is switched on.
func SandboxSigner(secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sandboxRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if req.OrderID == "" || req.PaymentID == "" {
			writeError(w, r, domain.NewValidationError("orderId and paymentId are required"))
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"orderId":   req.OrderID,
			"paymentId": req.PaymentID,
			"signature": services.Sign(req.OrderID, req.PaymentID, secret),
		})
	}
}
