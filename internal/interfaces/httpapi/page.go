package httpapi

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/riskibarqy/match-predictor/internal/domain/prediction"
	"github.com/riskibarqy/match-predictor/internal/domain/subscription"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
	"github.com/riskibarqy/match-predictor/internal/usecase"
)

const (
	emailCookieName   = "predictor_email"
	emailCookieMaxAge = 30 * 24 * time.Hour
)

const (
	noticeSuccess = "success"
	noticeInfo    = "info"
	noticeWarning = "warning"
	noticeError   = "error"
)

type PageConfig struct {
	DefaultLocale string
	PriceLabel    string
	SecureCookies bool
}

// Page serves the server rendered prediction page with its paywall.
type Page struct {
	predictionService *usecase.PredictionService
	accessService     *usecase.AccessService
	cfg               PageConfig
	locales           map[string]*gotext.Po
	templates         *template.Template
	logger            *logging.Logger
}

func NewPage(
	predictionService *usecase.PredictionService,
	accessService *usecase.AccessService,
	cfg PageConfig,
	logger *logging.Logger,
) (*Page, error) {
	if logger == nil {
		logger = logging.Default()
	}

	locales, err := loadLocales()
	if err != nil {
		return nil, err
	}
	templates, err := parsePageTemplates(locales)
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}

	return &Page{
		predictionService: predictionService,
		accessService:     accessService,
		cfg:               cfg,
		locales:           locales,
		templates:         templates,
		logger:            logger,
	}, nil
}

type selection struct {
	League string
	Home   string
	Away   string
}

type notice struct {
	Kind string
	HTML template.HTML
}

type langLink struct {
	Code string
	Href template.URL
}

type resultView struct {
	Home         string
	Away         string
	OutcomeLabel string
	HomeGoals    float64
	AwayGoals    float64
}

type pageView struct {
	Locale     string
	LangLinks  []langLink
	Leagues    []string
	League     string
	Teams      []string
	Home       string
	Away       string
	Email      string
	PriceLabel string
	Granted    bool
	Notices    []notice
	Result     *resultView
}

func (p *Page) Index(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Page.Index")
	defer span.End()

	locale := p.locale(w, r)
	query := r.URL.Query()
	email := p.email(r)
	view := p.baseView(ctx, locale, selection{
		League: query.Get("league"),
		Home:   query.Get("home"),
		Away:   query.Get("away"),
	}, email)

	returned := query.Get("success") == "1"
	var decision subscription.Decision
	if returned {
		decision = p.accessService.ConfirmCheckoutReturn(ctx, email)
	} else {
		decision = p.accessService.CheckAccess(ctx, email)
	}
	view.Granted = decision.Granted

	if query.Get("canceled") == "1" {
		view.Notices = append(view.Notices, p.notice(locale, noticeInfo, "checkout_canceled_md"))
	}
	view.Notices = append(view.Notices, p.decisionNotices(locale, decision, email, returned)...)

	if query.Get("run") == "1" && view.Home != "" {
		p.runPrediction(ctx, &view)
	}

	p.render(ctx, w, http.StatusOK, view)
}

// SaveEmail remembers the customer email in a cookie. Only the identifier is
// stored; access is re-verified on every page load.
func (p *Page) SaveEmail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Page.SaveEmail")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		p.logger.WarnContext(ctx, "parse access form failed", "error", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	http.SetCookie(w, emailCookie(email, p.cfg.SecureCookies))
	http.Redirect(w, r, indexURL(formSelection(r), nil), http.StatusSeeOther)
}

func (p *Page) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Page.Checkout")
	defer span.End()

	locale := p.locale(w, r)
	if err := r.ParseForm(); err != nil {
		p.logger.WarnContext(ctx, "parse checkout form failed", "error", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	session, err := p.accessService.StartCheckout(ctx, email)
	if err != nil {
		view := p.baseView(ctx, locale, formSelection(r), email)
		view.Notices = append(view.Notices, p.checkoutNotice(locale, email, err))
		p.render(ctx, w, mapError(ctx, err).HTTPStatus, view)
		return
	}

	http.SetCookie(w, emailCookie(email, p.cfg.SecureCookies))
	http.Redirect(w, r, session.URL, http.StatusSeeOther)
}

func (p *Page) baseView(ctx context.Context, locale string, sel selection, email string) pageView {
	sel, leagues, teams := p.resolveSelection(ctx, sel)
	return pageView{
		Locale:     locale,
		LangLinks:  langLinks(sel),
		Leagues:    leagues,
		League:     sel.League,
		Teams:      teams,
		Home:       sel.Home,
		Away:       sel.Away,
		Email:      email,
		PriceLabel: p.cfg.PriceLabel,
	}
}

// resolveSelection falls back to the first league and its first two teams for
// anything the catalog does not know.
func (p *Page) resolveSelection(ctx context.Context, sel selection) (selection, []string, []string) {
	leagues := p.predictionService.ListLeagues(ctx)
	if len(leagues) == 0 {
		return selection{}, nil, nil
	}

	league := strings.TrimSpace(sel.League)
	if !slices.Contains(leagues, league) {
		league = leagues[0]
	}
	teams, err := p.predictionService.ListTeams(ctx, league)
	if err != nil {
		return selection{League: league}, leagues, nil
	}
	home, away, err := p.predictionService.DefaultPair(league, sel.Home, sel.Away)
	if err != nil {
		return selection{League: league}, leagues, teams
	}

	return selection{League: league, Home: home, Away: away}, leagues, teams
}

func (p *Page) runPrediction(ctx context.Context, view *pageView) {
	if view.Home == view.Away {
		view.Notices = append(view.Notices, p.notice(view.Locale, noticeWarning, "pick_two_teams_md"))
		return
	}
	if !view.Granted {
		return
	}

	out, err := p.predictionService.Predict(ctx, view.League, view.Home, view.Away)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTeamPair) {
			view.Notices = append(view.Notices, p.notice(view.Locale, noticeWarning, "pick_two_teams_md"))
			return
		}
		p.logger.WarnContext(ctx, "page prediction failed", "league", view.League, "error", err)
		return
	}

	view.Result = &resultView{
		Home:         out.Home,
		Away:         out.Away,
		OutcomeLabel: outcomeLabel(out.Outcome),
		HomeGoals:    out.HomeGoals,
		AwayGoals:    out.AwayGoals,
	}
}

func (p *Page) decisionNotices(locale string, d subscription.Decision, email string, returned bool) []notice {
	switch {
	case d.Granted && returned:
		return []notice{p.notice(locale, noticeSuccess, "payment_confirmed_md")}
	case d.Granted:
		return []notice{p.notice(locale, noticeSuccess, "subscription_active_md")}
	case d.ActivationPending:
		return []notice{
			p.notice(locale, noticeInfo, "activation_pending_md"),
			p.notice(locale, noticeWarning, "no_subscription_md"),
		}
	case d.Reason == subscription.ReasonNotConfigured:
		return []notice{p.notice(locale, noticeError, "not_configured_md")}
	case d.Reason == subscription.ReasonProviderError:
		return []notice{p.notice(locale, noticeWarning, "provider_error_md", d.Detail)}
	case d.Reason == subscription.ReasonNoEmail && strings.TrimSpace(email) != "":
		return []notice{p.notice(locale, noticeError, "invalid_email_md")}
	default:
		return []notice{p.notice(locale, noticeWarning, "no_subscription_md")}
	}
}

func (p *Page) checkoutNotice(locale, email string, err error) notice {
	switch {
	case errors.Is(err, usecase.ErrNotConfigured):
		return p.notice(locale, noticeError, "not_configured_md")
	case errors.Is(err, usecase.ErrNoEmail) && email != "":
		return p.notice(locale, noticeError, "invalid_email_md")
	case errors.Is(err, usecase.ErrNoEmail):
		return p.notice(locale, noticeError, "enter_email_md")
	default:
		return p.notice(locale, noticeError, "checkout_failed_md", err.Error())
	}
}

func (p *Page) notice(locale, kind, key string, args ...any) notice {
	return notice{
		Kind: kind,
		HTML: renderMarkdown(translate(p.locales, locale, key, escapeArgs(args)...)),
	}
}

func (p *Page) locale(w http.ResponseWriter, r *http.Request) string {
	code := negotiateLocale(r, p.cfg.DefaultLocale)
	if requested := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("lang"))); requested == code {
		http.SetCookie(w, langCookie(code, p.cfg.SecureCookies))
	}
	return code
}

func (p *Page) email(r *http.Request) string {
	if email := strings.TrimSpace(r.URL.Query().Get("email")); email != "" {
		return email
	}
	cookie, err := r.Cookie(emailCookieName)
	if err != nil {
		return ""
	}
	email, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(email)
}

func outcomeLabel(o prediction.Outcome) string {
	switch o {
	case prediction.OutcomeHomeWin:
		return "Home win"
	case prediction.OutcomeAwayWin:
		return "Away win"
	default:
		return "Draw"
	}
}

func formSelection(r *http.Request) selection {
	return selection{
		League: r.PostFormValue("league"),
		Home:   r.PostFormValue("home"),
		Away:   r.PostFormValue("away"),
	}
}

func indexURL(sel selection, extra url.Values) string {
	values := url.Values{}
	for key, vals := range extra {
		values[key] = vals
	}
	if sel.League != "" {
		values.Set("league", sel.League)
	}
	if sel.Home != "" {
		values.Set("home", sel.Home)
	}
	if sel.Away != "" {
		values.Set("away", sel.Away)
	}
	if len(values) == 0 {
		return "/"
	}
	return "/?" + values.Encode()
}

func langLinks(sel selection) []langLink {
	out := make([]langLink, 0, len(supportedLocales))
	for _, code := range supportedLocales {
		out = append(out, langLink{
			Code: code,
			Href: template.URL(indexURL(sel, url.Values{"lang": {code}})), // nolint:gosec
		})
	}
	return out
}

func emailCookie(email string, secure bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     emailCookieName,
		Value:    url.QueryEscape(email),
		Path:     "/",
		MaxAge:   int(emailCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if email == "" {
		cookie.MaxAge = -1
	}
	return cookie
}
