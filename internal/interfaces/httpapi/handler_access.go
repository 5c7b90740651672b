package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/match-predictor/internal/domain/subscription"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
	"github.com/riskibarqy/match-predictor/internal/usecase"
)

// CheckAccess always answers 200 with the decision; denial reasons are data
// here, not errors.
func (h *Handler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckAccess")
	defer span.End()

	var req accessRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	decision := h.accessService.CheckAccess(ctx, req.Email)
	writeSuccess(ctx, w, http.StatusOK, decisionToDTO(decision))
}

func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCheckoutSession")
	defer span.End()

	var req accessRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.accessService.StartCheckout(ctx, req.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "start checkout failed", "email", logging.MaskEmail(req.Email), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, checkoutSessionDTO{ID: session.ID, URL: session.URL})
}

func (h *Handler) CheckoutReturn(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckoutReturn")
	defer span.End()

	decision := h.accessService.ConfirmCheckoutReturn(ctx, customerEmail(r))
	writeSuccess(ctx, w, http.StatusOK, decisionToDTO(decision))
}

func decisionToDTO(d subscription.Decision) decisionDTO {
	return decisionDTO{
		Granted:           d.Granted,
		Reason:            string(d.Reason),
		Detail:            d.Detail,
		ActivationPending: d.ActivationPending,
	}
}
