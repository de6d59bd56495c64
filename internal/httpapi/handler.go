// Package httpapi exposes the delivery lifecycle over HTTP. Handlers are thin
// callers into the lifecycle service: they decode, delegate and map errors.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kedarbajaj/CargoMate-sub000/internal/auth"
	"github.com/kedarbajaj/CargoMate-sub000/internal/lifecycle"
	"github.com/kedarbajaj/CargoMate-sub000/models"
)

// Service defines the lifecycle use cases consumed by the HTTP handlers.
type Service interface {
	ScheduleDelivery(ctx context.Context, in lifecycle.ScheduleInput) (*models.Delivery, error)
	RequestTransition(ctx context.Context, in lifecycle.TransitionInput) (*models.Delivery, error)
	AssignVendor(ctx context.Context, deliveryID, vendorID int64, actorRole string) (*models.Delivery, error)
	GetDelivery(ctx context.Context, id, actorID int64, actorRole string) (*models.Delivery, error)
	ListDeliveries(ctx context.Context, actorID int64, actorRole string, status models.DeliveryStatus, limit, offset int) ([]models.Delivery, error)
	TrackingHistory(ctx context.Context, deliveryID, actorID int64, actorRole string) ([]models.TrackingUpdate, float64, error)
	RecordPayment(ctx context.Context, in lifecycle.PaymentInput) (*models.Payment, error)
	GetPayment(ctx context.Context, deliveryID, actorID int64, actorRole string) (*models.Payment, error)
	Notifications(ctx context.Context, actorID int64, actorRole string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id, actorID int64, actorRole string) error
}

// Handler implements the HTTP API.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(s Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: s, logger: logger}
}

type scheduleDeliveryRequest struct {
	VendorID      *int64  `json:"vendor_id,omitempty"`
	PickupAddress string  `json:"pickup_address"`
	DropAddress   string  `json:"drop_address"`
	WeightKG      float64 `json:"weight_kg"`
	PackageType   string  `json:"package_type"`
	ScheduledDate string  `json:"scheduled_date"`
}

func (h *Handler) scheduleDelivery(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	if p.Role != models.RoleCustomer {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	var req scheduleDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	d, err := h.service.ScheduleDelivery(r.Context(), lifecycle.ScheduleInput{
		UserID:        p.ID,
		VendorID:      req.VendorID,
		PickupAddress: req.PickupAddress,
		DropAddress:   req.DropAddress,
		WeightKG:      req.WeightKG,
		PackageType:   models.PackageType(req.PackageType),
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, d)
}

func (h *Handler) listDeliveries(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	status := models.DeliveryStatus(r.URL.Query().Get("status"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	list, err := h.service.ListDeliveries(r.Context(), p.ID, p.Role, status, limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if list == nil {
		list = []models.Delivery{}
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getDelivery(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	d, err := h.service.GetDelivery(r.Context(), id, p.ID, p.Role)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

type transitionRequest struct {
	Status         string   `json:"status"`
	ExpectedStatus string   `json:"expected_status,omitempty"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
}

func (h *Handler) transitionDelivery(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	d, err := h.service.RequestTransition(r.Context(), lifecycle.TransitionInput{
		DeliveryID:     id,
		Requested:      models.DeliveryStatus(req.Status),
		ActorID:        p.ID,
		ActorRole:      p.Role,
		ExpectedStatus: models.DeliveryStatus(req.ExpectedStatus),
		Lat:            req.Lat,
		Lng:            req.Lng,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

type assignVendorRequest struct {
	VendorID int64 `json:"vendor_id"`
}

func (h *Handler) assignVendor(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req assignVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	d, err := h.service.AssignVendor(r.Context(), id, req.VendorID, p.Role)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

type trackingResponse struct {
	Updates    []models.TrackingUpdate `json:"updates"`
	DistanceKM float64                 `json:"distance_km"`
}

func (h *Handler) trackingHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	updates, km, err := h.service.TrackingHistory(r.Context(), id, p.ID, p.Role)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if updates == nil {
		updates = []models.TrackingUpdate{}
	}
	h.writeJSON(w, http.StatusOK, trackingResponse{Updates: updates, DistanceKM: km})
}

type createPaymentRequest struct {
	DeliveryID int64   `json:"delivery_id"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	pay, err := h.service.RecordPayment(r.Context(), lifecycle.PaymentInput{
		DeliveryID: req.DeliveryID,
		ActorID:    p.ID,
		ActorRole:  p.Role,
		Amount:     req.Amount,
		Method:     models.PaymentMethod(req.Method),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, pay)
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	pay, err := h.service.GetPayment(r.Context(), id, p.ID, p.Role)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, pay)
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	list, err := h.service.Notifications(r.Context(), p.ID, p.Role)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if list == nil {
		list = []models.Notification{}
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.MarkNotificationRead(r.Context(), id, p.ID, p.Role); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

type errorResponse struct {
	Error string `json:"error"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

// writeError maps lifecycle errors to HTTP statuses. Authorization failures
// are indistinguishable from missing records so callers cannot probe for
// deliveries they do not own.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *lifecycle.ValidationError
	if errors.As(err, &verr) {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error()})
		return
	}
	var terr *lifecycle.InvalidTransitionError
	if errors.As(err, &terr) {
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: terr.Error(),
			From:  string(terr.From),
			To:    string(terr.To),
		})
		return
	}
	switch {
	case errors.Is(err, lifecycle.ErrDeliveryNotFound),
		errors.Is(err, lifecycle.ErrNotAuthorized),
		errors.Is(err, lifecycle.ErrPaymentNotFound),
		errors.Is(err, lifecycle.ErrNotificationNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, lifecycle.ErrVendorNotFound):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "vendor not found"})
	case errors.Is(err, lifecycle.ErrStatusConflict):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: "delivery status changed, reload and retry"})
	case errors.Is(err, lifecycle.ErrPaymentExists):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: "payment already recorded"})
	default:
		h.logger.Error("internal error", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}
