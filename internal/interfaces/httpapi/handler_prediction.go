package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/match-predictor/internal/domain/prediction"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
)

func (h *Handler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPrediction")
	defer span.End()

	query := r.URL.Query()
	league := strings.TrimSpace(query.Get("league"))
	home := strings.TrimSpace(query.Get("home"))
	away := strings.TrimSpace(query.Get("away"))

	out, err := h.predictionService.Predict(ctx, league, home, away)
	if err != nil {
		email, _ := customerEmailFromContext(ctx)
		h.logger.WarnContext(ctx, "predict failed",
			"league", league,
			"home", home,
			"away", away,
			"email", logging.MaskEmail(email),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(out))
}

func (h *Handler) GetLeagueBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueBoard")
	defer span.End()

	league := strings.TrimSpace(r.PathValue("league"))
	board, err := h.predictionService.Board(ctx, league)
	if err != nil {
		h.logger.WarnContext(ctx, "league board failed", "league", league, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]predictionDTO, 0, len(board))
	for _, item := range board {
		items = append(items, predictionToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, boardDTO{League: league, Predictions: items})
}

func predictionToDTO(p prediction.Prediction) predictionDTO {
	return predictionDTO{
		League:    p.League,
		Home:      p.Home,
		Away:      p.Away,
		Model:     string(p.Model),
		Outcome:   string(p.Outcome),
		HomeGoals: p.HomeGoals,
		AwayGoals: p.AwayGoals,
	}
}
