package handler

import "waybill/internal/registry/models"

// createDriverRequest is the JSON body for POST /registry/drivers.
type createDriverRequest struct {
	Name  string `json:"name"`
	CarID string `json:"car_id"`
}

// createCustomerRequest is the JSON body for POST /registry/customers.
type createCustomerRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// Orders and shipments decode straight into the service request structs;
// their Normalize/Validate live with the models.
type (
	createOrderRequest    = models.CreateOrderRequest
	createShipmentRequest = models.CreateShipmentRequest
)

type driverListResponse struct {
	Drivers []*models.Driver `json:"drivers"`
}

type customerListResponse struct {
	Customers []*models.Customer `json:"customers"`
}

type orderListResponse struct {
	Orders []*models.Order `json:"orders"`
}

type shipmentListResponse struct {
	Shipments []*models.Shipment `json:"shipments"`
}
