package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	names := h.predictionService.ListLeagues(ctx)
	items := make([]leagueDTO, 0, len(names))
	for _, name := range names {
		items = append(items, leagueDTO{Name: name})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByLeague")
	defer span.End()

	league := strings.TrimSpace(r.PathValue("league"))
	teams, err := h.predictionService.ListTeams(ctx, league)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "league", league, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamListDTO{League: league, Teams: teams})
}
