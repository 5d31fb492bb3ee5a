package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"glanz-rental-backend/internal/security"
)

// NewRouter wires all handlers behind the auth middleware.
func NewRouter(
	tm security.TokenManager,
	orderHandler *OrderHandler,
	customerHandler *CustomerHandler,
	taxHandler *TaxHandler,
	notificationHandler *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tm))

	api.HandleFunc("/orders", orderHandler.CreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders", orderHandler.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id:[0-9]+}", orderHandler.GetOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id:[0-9]+}", orderHandler.UpdateOrder).Methods(http.MethodPut)
	api.HandleFunc("/orders/{id:[0-9]+}/returns", orderHandler.SubmitReturn).Methods(http.MethodPost)

	api.HandleFunc("/customers", customerHandler.CreateCustomer).Methods(http.MethodPost)
	api.HandleFunc("/customers", customerHandler.ListCustomers).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id:[0-9]+}", customerHandler.GetCustomer).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id:[0-9]+}", customerHandler.UpdateCustomer).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id:[0-9]+}", customerHandler.DeleteCustomer).Methods(http.MethodDelete)

	api.HandleFunc("/tax-profile", taxHandler.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/tax-profile", taxHandler.SaveProfile).Methods(http.MethodPut)
	api.HandleFunc("/tax-profile/billing", taxHandler.GetBillingProfile).Methods(http.MethodGet)

	api.HandleFunc("/notifications", notificationHandler.ListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)

	return r
}
