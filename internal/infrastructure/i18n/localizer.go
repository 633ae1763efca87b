// Package i18n localizes board column titles and move notifications.
// Supported locales are English, Spanish and German; anything else falls back
// to English.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/estateflow/backend/internal/domain/property"
)

var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.German,
}

type entry struct {
	key string
	en  string
	es  string
	de  string
}

var messages = []entry{
	{"column.available", "Available", "Disponible", "Verfügbar"},
	{"column.occupied", "Occupied", "Ocupada", "Belegt"},
	{"column.maintenance", "Maintenance", "Mantenimiento", "Wartung"},
	{"column.reserved", "Reserved", "Reservada", "Reserviert"},
	{"column.sold", "Sold", "Vendida", "Verkauft"},
	{"column.blocked", "Blocked", "Bloqueada", "Gesperrt"},

	{"move.succeeded", "Unit %s moved to %s", "Unidad %s movida a %s", "Einheit %s nach %s verschoben"},
	{"move.failed", "Could not move unit %s to %s: %s", "No se pudo mover la unidad %s a %s: %s", "Einheit %s konnte nicht nach %s verschoben werden: %s"},
	{"move.pending", "Unit %s already has a change in progress", "La unidad %s ya tiene un cambio en curso", "Für Einheit %s läuft bereits eine Änderung"},

	{"stats.occupancy", "Occupancy %.1f%%", "Ocupación %.1f%%", "Belegung %.1f%%"},
	{"stats.overdue", "%d overdue invoices", "%d facturas vencidas", "%d überfällige Rechnungen"},
	{"stats.critical", "%d critical issues", "%d incidencias críticas", "%d kritische Probleme"},
}

// Localizer resolves locale strings to a supported language and renders
// messages from the built-in catalog
type Localizer struct {
	matcher  language.Matcher
	catalog  *catalog.Builder
	fallback language.Tag
}

// NewLocalizer builds the catalog. defaultLocale is used for empty or
// unsupported locales; an unsupported default means English.
func NewLocalizer(defaultLocale string) *Localizer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, m := range messages {
		_ = b.SetString(language.English, m.key, m.en)
		_ = b.SetString(language.Spanish, m.key, m.es)
		_ = b.SetString(language.German, m.key, m.de)
	}

	l := &Localizer{
		matcher:  language.NewMatcher(supported),
		catalog:  b,
		fallback: language.English,
	}
	if defaultLocale != "" {
		l.fallback = l.match(defaultLocale)
	}
	return l
}

// Negotiate picks the best supported locale for an Accept-Language header value
func (l *Localizer) Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return l.fallback.String()
	}
	_, idx, conf := l.matcher.Match(tags...)
	if conf == language.No {
		return l.fallback.String()
	}
	return supported[idx].String()
}

// Supported lists the supported locale codes
func (l *Localizer) Supported() []string {
	out := make([]string, len(supported))
	for i, t := range supported {
		out[i] = t.String()
	}
	return out
}

// ColumnTitle returns the display title of the board column for status
func (l *Localizer) ColumnTitle(locale string, status property.UnitStatus) string {
	key := "column." + status.String()
	p := l.printer(locale)
	if title := p.Sprintf(key); title != key {
		return title
	}
	return status.String()
}

// MoveSucceeded renders the confirmation shown after a move commits
func (l *Localizer) MoveSucceeded(locale, unitNumber string, to property.UnitStatus) string {
	return l.printer(locale).Sprintf("move.succeeded", unitNumber, l.ColumnTitle(locale, to))
}

// MoveFailed renders the error shown after a move was rolled back
func (l *Localizer) MoveFailed(locale, unitNumber string, to property.UnitStatus, reason string) string {
	return l.printer(locale).Sprintf("move.failed", unitNumber, l.ColumnTitle(locale, to), reason)
}

// MovePending renders the refusal shown when a unit is moved while its previous move is unresolved
func (l *Localizer) MovePending(locale, unitNumber string) string {
	return l.printer(locale).Sprintf("move.pending", unitNumber)
}

// Occupancy renders an occupancy percentage with locale-specific number formatting
func (l *Localizer) Occupancy(locale string, pct float64) string {
	return l.printer(locale).Sprintf("stats.occupancy", pct)
}

// OverdueInvoices renders the overdue invoice count
func (l *Localizer) OverdueInvoices(locale string, n int) string {
	return l.printer(locale).Sprintf("stats.overdue", n)
}

// CriticalIssues renders the critical issue count
func (l *Localizer) CriticalIssues(locale string, n int) string {
	return l.printer(locale).Sprintf("stats.critical", n)
}

func (l *Localizer) printer(locale string) *message.Printer {
	return message.NewPrinter(l.match(locale), message.Catalog(l.catalog))
}

func (l *Localizer) match(locale string) language.Tag {
	if locale == "" {
		return l.fallback
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return l.fallback
	}
	_, idx, conf := l.matcher.Match(tag)
	if conf == language.No {
		return l.fallback
	}
	return supported[idx]
}
