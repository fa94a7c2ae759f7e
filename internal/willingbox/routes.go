package willingbox

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware mux.MiddlewareFunc) {
	api := router.PathPrefix("/api/v1/willingbox").Subrouter()
	api.Use(authMiddleware)

	api.HandleFunc("/active", handler.GetActiveBox).Methods(http.MethodGet)
	api.HandleFunc("/wishes", handler.SubmitWishes).Methods(http.MethodPost)
	api.HandleFunc("/selection", handler.SubmitSelection).Methods(http.MethodPost)
	api.HandleFunc("/guesses", handler.SubmitGuesses).Methods(http.MethodPost)
	api.HandleFunc("/scores/{week}", handler.GetWeeklyScore).Methods(http.MethodGet)
}
