package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerBoardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/odds/{sport}", handler.ListSportOdds)
	mux.HandleFunc("GET /v1/odds/{sport}/{eventID}", handler.GetEventOdds)
	mux.HandleFunc("GET /v1/props", handler.ListProps)
}
