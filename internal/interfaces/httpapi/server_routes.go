package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /players", handler.ListPlayers)
	mux.HandleFunc("POST /players", handler.CreatePlayer)
	mux.HandleFunc("GET /players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PUT /players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /players/{playerID}", handler.DeletePlayer)
	mux.HandleFunc("GET /players/{playerID}/rankings", handler.ListPlayerRankings)
}
