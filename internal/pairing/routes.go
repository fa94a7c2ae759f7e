package pairing

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware mux.MiddlewareFunc) {
	api := router.PathPrefix("/api/v1/pairings").Subrouter()
	api.Use(authMiddleware)

	api.HandleFunc("", handler.CreatePairing).Methods(http.MethodPost)
	api.HandleFunc("/me", handler.GetMyPairing).Methods(http.MethodGet)
}
