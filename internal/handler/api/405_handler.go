package api

import (
	"net/http"
)

func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "This method is not allowed"})
	}
}

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: "Route not found"})
	}
}
