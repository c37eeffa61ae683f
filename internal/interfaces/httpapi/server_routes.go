package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/teams", handler.ListTeamsBySeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/teams/{teamID}/players", handler.ListPlayersByTeam)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/regulations", handler.ListRegulationsBySeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/regulations/{kind}", handler.GetRegulation)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/matches", handler.ListMatchesBySeason)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/player-rankings", handler.ListPlayerRankings)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/seasons", RequireAuth(verifier, http.HandlerFunc(handler.CreateSeason)))
	mux.Handle("PATCH /v1/seasons/{seasonID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateSeason)))
	mux.Handle("DELETE /v1/seasons/{seasonID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteSeason)))

	mux.Handle("POST /v1/seasons/{seasonID}/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("PATCH /v1/seasons/{seasonID}/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateTeam)))
	mux.Handle("DELETE /v1/seasons/{seasonID}/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteTeam)))

	mux.Handle("POST /v1/seasons/{seasonID}/teams/{teamID}/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PATCH /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("DELETE /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.DeletePlayer)))

	mux.Handle("POST /v1/seasons/{seasonID}/regulations", RequireAuth(verifier, http.HandlerFunc(handler.CreateRegulation)))
	mux.Handle("PUT /v1/seasons/{seasonID}/regulations/{kind}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateRegulation)))
	mux.Handle("DELETE /v1/seasons/{seasonID}/regulations/{kind}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteRegulation)))

	mux.Handle("POST /v1/seasons/{seasonID}/matches/schedule", RequireAuth(verifier, http.HandlerFunc(handler.GenerateSchedule)))
	mux.Handle("POST /v1/matches/{matchID}/result", RequireAuth(verifier, http.HandlerFunc(handler.RecordMatchResult)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/rebuild-rankings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRebuildRankingsJob)))
}
