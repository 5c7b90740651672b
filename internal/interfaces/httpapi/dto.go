package httpapi

type leagueDTO struct {
	Name string `json:"name"`
}

type teamListDTO struct {
	League string   `json:"league"`
	Teams  []string `json:"teams"`
}

type predictionDTO struct {
	League    string  `json:"league"`
	Home      string  `json:"home"`
	Away      string  `json:"away"`
	Model     string  `json:"model"`
	Outcome   string  `json:"outcome"`
	HomeGoals float64 `json:"home_goals"`
	AwayGoals float64 `json:"away_goals"`
}

type boardDTO struct {
	League      string          `json:"league"`
	Predictions []predictionDTO `json:"predictions"`
}

// Email is optional so a missing address comes back as a NO_EMAIL decision.
type accessRequest struct {
	Email string `json:"email" validate:"omitempty,max=254"`
}

type decisionDTO struct {
	Granted           bool   `json:"granted"`
	Reason            string `json:"reason,omitempty"`
	Detail            string `json:"detail,omitempty"`
	ActivationPending bool   `json:"activation_pending"`
}

type checkoutSessionDTO struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
