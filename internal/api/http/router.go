package http

import (
	"github.com/gorilla/mux"

	"eventops-backend/internal/security"
	"eventops-backend/internal/service"
)

// NewRouter assembles the full operation surface. Everything except login
// sits behind the session-token middleware.
func NewRouter(
	authSvc service.AuthService,
	attendeeSvc service.AttendeeService,
	importSvc service.ImportService,
	dispatchSvc service.DispatchService,
	deletionSvc service.DeletionService,
	tokenManager security.TokenManager,
) *mux.Router {
	authHandler := NewAuthHandler(authSvc)
	attendeeHandler := NewAttendeeHandler(attendeeSvc, importSvc)
	dispatchHandler := NewDispatchHandler(dispatchSvc)
	deletionHandler := NewDeletionHandler(deletionSvc)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(tokenManager))

	protected.HandleFunc("/attendees", attendeeHandler.List).Methods("GET")
	protected.HandleFunc("/attendees", attendeeHandler.Create).Methods("POST")
	protected.HandleFunc("/attendees", attendeeHandler.BulkDeleteAll).Methods("DELETE")
	protected.HandleFunc("/attendees/bulk", attendeeHandler.BulkCreate).Methods("POST")
	protected.HandleFunc("/attendees/import", attendeeHandler.Import).Methods("POST")
	protected.HandleFunc("/attendees/lookup", attendeeHandler.Lookup).Methods("POST")
	protected.HandleFunc("/attendees/{id}", attendeeHandler.Update).Methods("PUT")
	protected.HandleFunc("/attendees/{id}", attendeeHandler.Delete).Methods("DELETE")

	protected.HandleFunc("/dispatch", dispatchHandler.Record).Methods("POST")
	protected.HandleFunc("/dispatch", dispatchHandler.List).Methods("GET")

	protected.HandleFunc("/deleted-attendees", deletionHandler.List).Methods("GET")
	protected.HandleFunc("/deleted-attendees/{id}", deletionHandler.Purge).Methods("DELETE")

	return router
}
