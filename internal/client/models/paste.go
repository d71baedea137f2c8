// Package models holds the client-side view of the paste service's data
// shapes. The authoritative copies live on the server; values decoded here
// are normalized before use so that downstream code never sees a malformed
// language, expiration, or visibility.
package models

import "time"

// Language is the syntax tag of a paste, one of a fixed enumerated set.
type Language string

const (
	LanguagePlaintext  Language = "plaintext"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguagePython     Language = "python"
	LanguageMarkdown   Language = "markdown"
	LanguageJSON       Language = "json"
	LanguageHTML       Language = "html"
	LanguageCSS        Language = "css"
)

// Languages lists every valid language tag, in display order.
var Languages = []Language{
	LanguagePlaintext,
	LanguageJavaScript,
	LanguageTypeScript,
	LanguagePython,
	LanguageMarkdown,
	LanguageJSON,
	LanguageHTML,
	LanguageCSS,
}

// ParseLanguage normalizes an arbitrary string to a valid Language.
// Unknown or empty values fall back to plaintext.
func ParseLanguage(s string) Language {
	for _, l := range Languages {
		if s == string(l) {
			return l
		}
	}
	return LanguagePlaintext
}

// Expiration is the paste lifetime requested at creation, interpreted
// relative to creation time by the server.
type Expiration string

const (
	ExpirationNever      Expiration = "never"
	ExpirationTenMinutes Expiration = "10m"
	ExpirationOneHour    Expiration = "1h"
	ExpirationOneDay     Expiration = "1d"
	ExpirationSevenDays  Expiration = "7d"
)

// Expirations lists every valid expiration value, in display order.
var Expirations = []Expiration{
	ExpirationNever,
	ExpirationTenMinutes,
	ExpirationOneHour,
	ExpirationOneDay,
	ExpirationSevenDays,
}

// ParseExpiration normalizes an arbitrary string to a valid Expiration.
// Unknown or empty values fall back to never.
func ParseExpiration(s string) Expiration {
	for _, e := range Expirations {
		if s == string(e) {
			return e
		}
	}
	return ExpirationNever
}

// Visibility controls who may view a paste.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ParseVisibility normalizes an arbitrary string to a valid Visibility.
// Anything other than an explicit "public", including the empty string,
// resolves to Private, so an ambiguous value fails closed rather than open.
func ParseVisibility(s string) Visibility {
	if s == string(VisibilityPublic) {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// IsPublic reports whether the visibility is explicitly Public. The zero
// value is treated as Private.
func (v Visibility) IsPublic() bool {
	return v == VisibilityPublic
}

// Paste is the client's observation of a server-side paste. ID and Content
// are immutable after creation; Title, Language, and Visibility may be
// patched by the owner.
type Paste struct {
	ID            string     `json:"id"`
	Title         string     `json:"title,omitempty"`
	Content       string     `json:"content"`
	Language      Language   `json:"language"`
	Expiration    Expiration `json:"expiration,omitempty"`
	Visibility    Visibility `json:"visibility"`
	OwnerIdentity string     `json:"owner_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Views         int        `json:"views"`
}

// Normalize repairs malformed enum fields in place. Visibility defaults to
// Private on any ambiguous value.
func (p *Paste) Normalize() {
	p.Language = ParseLanguage(string(p.Language))
	p.Expiration = ParseExpiration(string(p.Expiration))
	p.Visibility = ParseVisibility(string(p.Visibility))
}

// Claimed reports whether an authenticated owner has claimed the paste.
func (p *Paste) Claimed() bool {
	return p.OwnerIdentity != ""
}

// Draft is the payload of a create-paste call.
type Draft struct {
	Title      string     `json:"title,omitempty"`
	Content    string     `json:"content"`
	Language   Language   `json:"language"`
	Expiration Expiration `json:"expiration"`
	Visibility Visibility `json:"visibility"`
	Encrypt    bool       `json:"encrypt,omitempty"`
}

// CreateResult is the server's answer to a create-paste call. EditSecret is
// present only for anonymous creation and is returned exactly once.
type CreateResult struct {
	ID         string `json:"id"`
	EditSecret string `json:"edit_secret,omitempty"`
}

// Patch carries the mutable fields of an update call. Nil fields are left
// untouched by the server.
type Patch struct {
	Title      *string     `json:"title,omitempty"`
	Language   *Language   `json:"language,omitempty"`
	Visibility *Visibility `json:"visibility,omitempty"`
}

// SearchQuery describes a paged search request.
type SearchQuery struct {
	Text     string
	Language Language
	From     string
	To       string
	Page     int
}

// SearchResult is one page of search matches.
type SearchResult struct {
	Items []Paste `json:"items"`
	Total int     `json:"total"`
}

// Stats is the service-wide aggregate counters exposed by GET /stats.
type Stats struct {
	TotalPastes  int `json:"total_pastes"`
	TotalViews   int `json:"total_views"`
	ActivePastes int `json:"active_pastes"`
	PastesToday  int `json:"pastes_today"`
}
