// Package handler is the thin HTTP layer over the registry service. It
// delegates to the service without embedding business logic so transport
// concerns remain isolated.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"waybill/internal/registry/service"
	dErrors "waybill/pkg/domain-errors"
	"waybill/pkg/requestcontext"
)

type Handler struct {
	registry *service.Service
	logger   *slog.Logger
}

func New(registry *service.Service, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// Register wires registry routes onto the router. Mutating routes pass
// through the operator gate; enumeration stays open for read-only
// consumers.
func (h *Handler) Register(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Route("/registry", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(gate)
			r.Post("/drivers", h.createDriver)
			r.Post("/customers", h.createCustomer)
			r.Post("/orders", h.createOrder)
			r.Post("/shipments", h.createShipment)
		})

		r.Get("/drivers", h.listDrivers)
		r.Get("/customers", h.listCustomers)
		r.Get("/orders", h.listOrders)
		r.Get("/shipments", h.listShipments)
	})
}

func (h *Handler) createDriver(w http.ResponseWriter, r *http.Request) {
	var req createDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	driver, err := h.registry.CreateDriver(r.Context(), req.Name, req.CarID)
	if err != nil {
		h.logRejection(r, "driver", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, driver)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	customer, err := h.registry.CreateCustomer(r.Context(), req.Name, req.Address, req.PhoneNumber)
	if err != nil {
		h.logRejection(r, "customer", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	order, err := h.registry.CreateOrder(r.Context(), &req)
	if err != nil {
		h.logRejection(r, "order", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) createShipment(w http.ResponseWriter, r *http.Request) {
	var req createShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	shipment, err := h.registry.CreateShipment(r.Context(), &req)
	if err != nil {
		h.logRejection(r, "shipment", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, shipment)
}

func (h *Handler) listDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.registry.ListDrivers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, driverListResponse{Drivers: drivers})
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.registry.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customerListResponse{Customers: customers})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.registry.ListOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderListResponse{Orders: orders})
}

func (h *Handler) listShipments(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.registry.ListShipments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shipmentListResponse{Shipments: shipments})
}

func (h *Handler) logRejection(r *http.Request, kind string, err error) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "creation rejected",
		"kind", kind,
		"code", string(dErrors.CodeOf(err)),
		"request_id", requestcontext.RequestID(ctx),
		"remote_ip", requestcontext.ClientIP(ctx),
		"user_agent", requestcontext.UserAgent(ctx),
		"error", err,
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError centralizes domain error translation to HTTP responses so all
// handlers share one JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case dErrors.CodeValidation, dErrors.CodeInvariantViolation:
		status = http.StatusBadRequest
	case dErrors.CodeConflict:
		status = http.StatusConflict
	case dErrors.CodeNotFound:
		status = http.StatusNotFound
	case dErrors.CodeUnauthorized:
		status = http.StatusUnauthorized
	}

	message := ""
	var de *dErrors.Error
	if errors.As(err, &de) {
		message = de.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             string(code),
		"error_description": message,
	})
}
