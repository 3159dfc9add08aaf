// Package audit inspects an OAuth client configuration for common
// security weaknesses and produces a scored report.
package audit

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oauthkit/oauthkit/internal/config"
	"github.com/oauthkit/oauthkit/internal/oauth/provider"
)

// Severity ranks how serious an audit finding is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// weight is the score deduction each finding of this severity costs.
func (s Severity) weight() int {
	switch s {
	case SeverityCritical:
		return 30
	case SeverityHigh:
		return 20
	case SeverityMedium:
		return 10
	case SeverityLow:
		return 5
	default:
		return 0
	}
}

// Issue is a single audit finding.
type Issue struct {
	Severity       Severity `json:"severity"`
	Check          string   `json:"check"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// Report is the outcome of auditing one configuration.
type Report struct {
	Provider string  `json:"provider"`
	Score    int     `json:"score"`
	Issues   []Issue `json:"issues"`
}

// BySeverity returns the findings carrying the given severity.
func (r *Report) BySeverity(sev Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// HasBlocking reports whether any finding is high or critical.
func (r *Report) HasBlocking() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityHigh || issue.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// broadScopes are scope names that grant far more access than a login
// flow needs.
var broadScopes = map[string]string{
	"admin":       "administrative access",
	"write:all":   "unrestricted write access",
	"delete:all":  "unrestricted delete access",
	"full_access": "full account access",
}

// Audit runs every check against the configuration and returns the
// scored report. The configuration may be incomplete; missing pieces
// become findings rather than errors.
func Audit(cfg *config.Config) *Report {
	report := &Report{Provider: cfg.OAuth.Provider, Score: 100}

	checkProvider(cfg, report)
	checkCredentials(cfg, report)
	checkRedirectURI(cfg, report)
	checkPKCE(cfg, report)
	checkScopes(cfg, report)
	checkStorage(cfg, report)

	for _, issue := range report.Issues {
		report.Score -= issue.Severity.weight()
	}
	if report.Score < 0 {
		report.Score = 0
	}
	return report
}

func (r *Report) add(sev Severity, check, message, recommendation string) {
	r.Issues = append(r.Issues, Issue{
		Severity:       sev,
		Check:          check,
		Message:        message,
		Recommendation: recommendation,
	})
}

func checkProvider(cfg *config.Config, r *Report) {
	if cfg.OAuth.Provider == "" {
		r.add(SeverityHigh, "provider",
			"no provider configured",
			"set oauth.provider to one of: "+strings.Join(providerNames(), ", "))
		return
	}
	if _, err := provider.Resolve(cfg.OAuth.Provider); err != nil {
		r.add(SeverityHigh, "provider",
			fmt.Sprintf("unknown provider %q", cfg.OAuth.Provider),
			"set oauth.provider to one of: "+strings.Join(providerNames(), ", "))
	}
}

func checkCredentials(cfg *config.Config, r *Report) {
	if cfg.OAuth.ClientID == "" {
		r.add(SeverityHigh, "credentials",
			"client_id is not set",
			"register the application with the provider and configure oauth.client_id")
	}
	if cfg.OAuth.ClientSecret == "" && !cfg.OAuth.UsePKCE {
		r.add(SeverityHigh, "credentials",
			"client_secret is not set and PKCE is disabled",
			"configure oauth.client_secret, or enable PKCE for public clients")
	}
}

func checkRedirectURI(cfg *config.Config, r *Report) {
	raw := cfg.OAuth.RedirectURI
	if raw == "" {
		r.add(SeverityMedium, "redirect_uri",
			"redirect_uri is not set",
			"configure the exact redirect URI registered with the provider")
		return
	}
	u, err := url.Parse(raw)
	if err != nil {
		r.add(SeverityHigh, "redirect_uri",
			fmt.Sprintf("redirect_uri %q does not parse", raw),
			"use an absolute https URL")
		return
	}
	if u.Scheme == "http" && !isLoopback(u.Hostname()) {
		r.add(SeverityCritical, "redirect_uri",
			fmt.Sprintf("redirect_uri %q uses plain http off localhost", raw),
			"authorization codes travel through this URL; use https")
	}
	if u.Fragment != "" {
		r.add(SeverityLow, "redirect_uri",
			"redirect_uri contains a fragment, which providers strip",
			"remove the fragment from the redirect URI")
	}
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

func checkPKCE(cfg *config.Config, r *Report) {
	if !cfg.OAuth.UsePKCE {
		r.add(SeverityMedium, "pkce",
			"PKCE is disabled",
			"enable oauth.use_pkce; it protects the code exchange even for confidential clients")
	}
}

func checkScopes(cfg *config.Config, r *Report) {
	if len(cfg.OAuth.Scopes) == 0 {
		r.add(SeverityInfo, "scopes",
			"no scopes configured, provider defaults will be requested",
			"")
		return
	}
	for _, scope := range cfg.OAuth.Scopes {
		if why, ok := broadScopes[strings.ToLower(scope)]; ok {
			r.add(SeverityMedium, "scopes",
				fmt.Sprintf("scope %q grants %s", scope, why),
				"request only the scopes the application uses")
		}
	}
}

func checkStorage(cfg *config.Config, r *Report) {
	switch cfg.Storage.Type {
	case config.StorageMemory, "":
		r.add(SeverityMedium, "storage",
			"tokens are held in memory and lost on restart",
			"use file storage for anything beyond experiments")
	case config.StorageFile:
		r.add(SeverityLow, "storage",
			"tokens are stored as plaintext files",
			"ensure the storage directory is not shared or backed up in the clear")
	}
	r.add(SeverityInfo, "expiration",
		"stored access tokens expire; schedule refreshes before expiry",
		"")
}

func providerNames() []string {
	return provider.Names()
}
