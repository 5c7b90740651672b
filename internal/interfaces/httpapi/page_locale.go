package httpapi

import (
	"embed"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

const (
	localeCzech   = "cs"
	localeEnglish = "en"

	langCookieName = "lang"
)

//go:embed locales/*.po
var localeFS embed.FS

// supportedLocales is ordered like localeTags so a matcher index maps back to
// a locale code.
var (
	supportedLocales = []string{localeCzech, localeEnglish}
	localeTags       = []language.Tag{language.Czech, language.English}
	localeMatcher    = language.NewMatcher(localeTags)
)

func loadLocales() (map[string]*gotext.Po, error) {
	out := make(map[string]*gotext.Po, len(supportedLocales))
	for _, code := range supportedLocales {
		raw, err := localeFS.ReadFile("locales/" + code + ".po")
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", code, err)
		}
		po := gotext.NewPo()
		po.Parse(raw)
		out[code] = po
	}

	return out, nil
}

func isSupportedLocale(code string) bool {
	for _, candidate := range supportedLocales {
		if candidate == code {
			return true
		}
	}
	return false
}

// negotiateLocale prefers an explicit lang query, then the lang cookie, then
// Accept-Language. fallback is used when none of them names a supported locale.
func negotiateLocale(r *http.Request, fallback string) string {
	if code := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("lang"))); isSupportedLocale(code) {
		return code
	}
	if cookie, err := r.Cookie(langCookieName); err == nil {
		if code := strings.ToLower(strings.TrimSpace(cookie.Value)); isSupportedLocale(code) {
			return code
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		tags, _, err := language.ParseAcceptLanguage(accept)
		if err == nil && len(tags) > 0 {
			_, idx, confidence := localeMatcher.Match(tags...)
			if confidence != language.No {
				return supportedLocales[idx]
			}
		}
	}
	if isSupportedLocale(fallback) {
		return fallback
	}
	return localeCzech
}

func langCookie(code string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     langCookieName,
		Value:    code,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
