package handlers

import (
	"net/http"
	"strings"

	"github.com/thakshilaCodes/Feedo/internal/domain"
	"github.com/thakshilaCodes/Feedo/internal/logx"
)

// DeliveryHandler handles HTTP requests for delivery resources.
type DeliveryHandler struct {
	usecase deliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase) *DeliveryHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// Create handles POST /deliveries.
// @Summary Создать доставку
// @Description Создает доставку для заказа и запускает поиск водителя
// @Tags deliveries
// @Accept json
// @Produce json
// @Success 201 {object} deliveryResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 409 {object} ErrorResponse "delivery already exists"
// @Router /deliveries [post]
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	in, err := createRequestToDomain(req)
	if err != nil {
		writeAppError(h.logger, w, r, err, "")
		return
	}

	d, err := h.usecase.CreateDelivery(r.Context(), in)
	if err != nil {
		writeAppError(h.logger, w, r, err, "delivery not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, deliveryResponse{
		Message:  "Delivery request created",
		Delivery: deliveryToDTO(d),
	})
}

// Confirm handles PUT /deliveries/confirm/{orderId}.
func (h *DeliveryHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	d, err := h.usecase.ConfirmDelivery(r.Context(), orderID)
	if err != nil {
		writeAppError(h.logger, w, r, err, "delivery not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryResponse{
		Message:  "Delivery confirmed",
		Delivery: deliveryToDTO(d),
	})
}

// Get handles GET /deliveries/{id}.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	d, err := h.usecase.Get(r.Context(), id)
	if err != nil {
		writeAppError(h.logger, w, r, err, "delivery not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryResponse{Delivery: deliveryToDTO(d)})
}

// GetByOrder handles GET /deliveries/order/{orderId}.
func (h *DeliveryHandler) GetByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	d, err := h.usecase.GetByOrderID(r.Context(), orderID)
	if err != nil {
		writeAppError(h.logger, w, r, err, "delivery not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryResponse{Delivery: deliveryToDTO(d)})
}

// Track handles GET /track/{orderId}. It is public.
func (h *DeliveryHandler) Track(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}
	info, err := h.usecase.Track(r.Context(), orderID)
	if err != nil {
		writeAppError(h.logger, w, r, err, "delivery not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, trackingResponse{Tracking: trackingToDTO(info)})
}

// Cancel handles POST /deliveries/{id}/cancel.
func (h *DeliveryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req reasonRequest
	if ok := decodeOptionalJSON(h.logger, w, r, &req); !ok {
		return
	}
	d, err := h.usecase.CancelDelivery(r.Context(), id, strings.TrimSpace(req.Reason))
	if err != nil {
		writeAppError(h.logger, w, r, err, "delivery not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryResponse{
		Message:  "Delivery cancelled",
		Delivery: deliveryToDTO(d),
	})
}

// Rate handles POST /deliveries/{id}/rate.
func (h *DeliveryHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req rateRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	d, err := h.usecase.RateDelivery(r.Context(), id, req.Rating, strings.TrimSpace(req.Feedback))
	if err != nil {
		writeAppError(h.logger, w, r, err, "delivery not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryResponse{
		Message:  "Delivery rated",
		Delivery: deliveryToDTO(d),
	})
}

// List handles GET /admin/deliveries?status=&page=&limit=.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		writeAppError(h.logger, w, r, err, "")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeAppError(h.logger, w, r, err, "")
		return
	}
	status := domain.DeliveryStatus(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))))

	res, err := h.usecase.List(r.Context(), domain.DeliveryFilter{
		Status: status,
		Paging: domain.Page{Page: page, Limit: limit},
	})
	if err != nil {
		writeAppError(h.logger, w, r, err, "")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryListResponse{
		Deliveries: deliveriesToDTO(res.Items),
		Pagination: pageToDTO(res.Total, res.Page, res.Limit, res.Pages),
	})
}
