package handlers

import (
	"net/http"
	"strings"

	"github.com/thakshilaCodes/Feedo/internal/domain"
	"github.com/thakshilaCodes/Feedo/internal/logx"
)

// DriverHandler serves driver profile and driver-side delivery endpoints.
type DriverHandler struct {
	drivers    driverUsecase
	deliveries deliveryUsecase
	logger     logx.Logger
}

// NewDriverHandler wires the driver registry and the dispatch engine into HTTP handlers.
func NewDriverHandler(logger logx.Logger, drivers driverUsecase, deliveries deliveryUsecase) *DriverHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DriverHandler{drivers: drivers, deliveries: deliveries, logger: logger}
}

// Register handles POST /drivers/register.
func (h *DriverHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerDriverRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	d, err := h.drivers.Register(r.Context(), registerRequestToDomain(req))
	if err != nil {
		writeAppError(h.logger, w, r, err, "driver not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, driverResponse{
		Message: "Driver registered successfully",
		Driver:  driverToDTO(d),
	})
}

// Get handles GET /drivers/{id}.
func (h *DriverHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	d, err := h.drivers.Get(r.Context(), id)
	if err != nil {
		writeAppError(h.logger, w, r, err, "driver not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverResponse{Driver: driverToDTO(d)})
}

// Nearby handles GET /drivers/nearby?lat=&lon=&radius=.
func (h *DriverHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "lat", true)
	if err != nil {
		writeAppError(h.logger, w, r, err, "")
		return
	}
	lon, err := queryFloat(r, "lon", true)
	if err != nil {
		writeAppError(h.logger, w, r, err, "")
		return
	}
	radius, err := queryFloat(r, "radius", false)
	if err != nil {
		writeAppError(h.logger, w, r, err, "")
		return
	}

	found, err := h.drivers.Nearby(r.Context(), lat, lon, radius)
	if err != nil {
		writeAppError(h.logger, w, r, err, "")
		return
	}
	out := make([]nearbyDriverDTO, 0, len(found))
	for _, n := range found {
		out = append(out, nearbyDriverDTO{driverDTO: driverToDTO(n.Driver), Distance: n.DistanceKm})
	}
	writeJSON(h.logger, w, r, http.StatusOK, nearbyResponse{Drivers: out})
}

// SetAvailability handles PUT /drivers/{id}/availability.
func (h *DriverHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req availabilityRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.IsAvailable == nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "isAvailable must be a boolean")
		return
	}

	d, err := h.drivers.SetAvailability(r.Context(), id, *req.IsAvailable)
	if err != nil {
		writeAppError(h.logger, w, r, err, "driver not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverResponse{
		Message: "Availability updated",
		Driver:  driverToDTO(d),
	})
}

// UpdateLocation handles PUT /drivers/{id}/location.
func (h *DriverHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req locationRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	d, err := h.drivers.UpdateLocation(r.Context(), id, *req.Latitude, *req.Longitude)
	if err != nil {
		writeAppError(h.logger, w, r, err, "driver not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverResponse{
		Message: "Location updated",
		Driver:  driverToDTO(d),
	})
}

// Deliveries handles GET /drivers/{id}/deliveries.
func (h *DriverHandler) Deliveries(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	res, err := h.drivers.Deliveries(r.Context(), id)
	if err != nil {
		writeAppError(h.logger, w, r, err, "driver not found")
		return
	}
	out := driverDeliveriesResponse{RecentDeliveries: deliveriesToDTO(res.Recent)}
	if res.Current != nil {
		cur := deliveryToDTO(*res.Current)
		out.CurrentDelivery = &cur
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}

// Accept handles POST /drivers/{id}/accept.
// @Summary Принять доставку
// @Description Водитель принимает предложенную доставку
// @Tags drivers
// @Accept json
// @Produce json
// @Success 200 {object} deliveryResponse
// @Failure 400 {object} ErrorResponse "delivery is not waiting for a driver"
// @Failure 403 {object} ErrorResponse "driver rejected this delivery"
// @Failure 409 {object} ErrorResponse "driver is not available"
// @Router /drivers/{id}/accept [post]
func (h *DriverHandler) Accept(w http.ResponseWriter, r *http.Request) {
	driverID, req, ok := h.deliveryAction(w, r)
	if !ok {
		return
	}
	d, err := h.deliveries.AcceptDelivery(r.Context(), driverID, req.DeliveryID)
	if err != nil {
		writeAppError(h.logger, w, r, err, "driver or delivery not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryResponse{
		Message:  "Delivery accepted",
		Delivery: deliveryToDTO(d),
	})
}

// Reject handles POST /drivers/{id}/reject.
func (h *DriverHandler) Reject(w http.ResponseWriter, r *http.Request) {
	driverID, req, ok := h.deliveryAction(w, r)
	if !ok {
		return
	}
	d, err := h.deliveries.RejectDelivery(r.Context(), driverID, req.DeliveryID, strings.TrimSpace(req.Reason))
	if err != nil {
		writeAppError(h.logger, w, r, err, "delivery not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryResponse{
		Message:  "Delivery rejected",
		Delivery: deliveryToDTO(d),
	})
}

func (h *DriverHandler) deliveryAction(w http.ResponseWriter, r *http.Request) (string, deliveryActionRequest, bool) {
	var req deliveryActionRequest
	driverID, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return "", req, false
	}
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return "", req, false
	}
	req.DeliveryID = strings.TrimSpace(req.DeliveryID)
	if req.DeliveryID == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "deliveryId is required")
		return "", req, false
	}
	return driverID, req, true
}

// UpdateStatus handles PUT /drivers/{id}/deliveries/{deliveryId}/status.
func (h *DriverHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	driverID, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	deliveryID, err := idFromURL(r, "deliveryId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid delivery id")
		return
	}
	var req statusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	status := domain.DeliveryStatus(strings.ToUpper(strings.TrimSpace(string(req.Status))))

	d, err := h.deliveries.UpdateDeliveryStatus(r.Context(), driverID, deliveryID, status, strings.TrimSpace(req.Note))
	if err != nil {
		writeAppError(h.logger, w, r, err, "driver or delivery not found")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryResponse{
		Message:  "Delivery status updated",
		Delivery: deliveryToDTO(d),
	})
}

// List handles GET /admin/drivers?page=&limit=.
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
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
	res, err := h.drivers.List(r.Context(), domain.Page{Page: page, Limit: limit})
	if err != nil {
		writeAppError(h.logger, w, r, err, "")
		return
	}
	out := make([]driverDTO, 0, len(res.Items))
	for _, d := range res.Items {
		out = append(out, driverToDTO(d))
	}
	writeJSON(h.logger, w, r, http.StatusOK, driverListResponse{
		Drivers:    out,
		Pagination: pageToDTO(res.Total, res.Page, res.Limit, res.Pages),
	})
}
