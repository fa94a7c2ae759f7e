package auth

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler, middleware *Middleware) {
	public := router.PathPrefix("/api/v1/auth").Subrouter()
	public.HandleFunc("/signup", handler.Signup).Methods(http.MethodPost)
	public.HandleFunc("/signin", handler.Signin).Methods(http.MethodPost)

	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Authenticate)
	protected.HandleFunc("/me", handler.Me).Methods(http.MethodGet)
}
