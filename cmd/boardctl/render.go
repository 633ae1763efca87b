package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	propertyapp "github.com/estateflow/backend/internal/application/property"
	"github.com/estateflow/backend/internal/domain/board"
	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/infrastructure/i18n"
	"gopkg.in/yaml.v3"
)

// writeStructured encodes v as json or yaml. YAML keys follow the JSON tags.
func writeStructured(w io.Writer, format string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if format == "json" {
		var out any
		if err := json.Unmarshal(data, &out); err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

type boardView struct {
	Columns []board.Column `json:"columns"`
	Stats   board.Stats    `json:"stats"`
}

func renderBoard(w io.Writer, loc *i18n.Localizer, locale string, columns []board.Column, stats board.Stats, now time.Time) {
	for _, col := range columns {
		title := loc.ColumnTitle(locale, col.Status)
		fmt.Fprintln(w, ColumnStyle(col.Status).Render(fmt.Sprintf("%s (%d)", title, col.Count())))
		if col.Count() == 0 {
			fmt.Fprintln(w, "  "+MutedStyle.Render("-"))
		}
		for _, u := range col.Units {
			fmt.Fprintln(w, "  "+unitLine(u, now))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, HeaderStyle.Render(loc.Occupancy(locale, stats.OccupancyRate)))
	overdue := loc.OverdueInvoices(locale, stats.OverdueInvoices)
	if stats.OverdueInvoices > 0 {
		overdue = WarnStyle.Render(overdue)
	}
	critical := loc.CriticalIssues(locale, stats.CriticalIssues)
	if stats.CriticalIssues > 0 {
		critical = FailStyle.Render(critical)
	}
	fmt.Fprintln(w, overdue)
	fmt.Fprintln(w, critical)
}

func unitLine(u board.BoardUnit, now time.Time) string {
	parts := []string{u.UnitNumber, MutedStyle.Render(u.PropertyName)}
	if u.OccupantName != "" {
		parts = append(parts, u.OccupantName)
	}
	if u.RentAmount != nil {
		parts = append(parts, u.RentAmount.StringFixed(2))
	}
	if board.HasUrgentIssue(u, now) {
		parts = append(parts, FailStyle.Render(IconFail+" urgent"))
	} else if board.HasOverdueInvoice(u, now) {
		parts = append(parts, WarnStyle.Render(IconWarn+" overdue"))
	}
	if board.HasActiveMaintenance(u) {
		parts = append(parts, WarnStyle.Render("maintenance"))
	}
	return strings.Join(parts, "  ")
}

func renderHistory(w io.Writer, loc *i18n.Localizer, locale string, entries []propertyapp.HistoryEntryResponse) {
	if len(entries) == 0 {
		fmt.Fprintln(w, MutedStyle.Render("no status changes"))
		return
	}
	for _, e := range entries {
		from := "-"
		if e.FromStatus != "" {
			from = loc.ColumnTitle(locale, property.UnitStatus(e.FromStatus))
		}
		to := property.UnitStatus(e.ToStatus)
		fmt.Fprintf(w, "#%-4d %s  %s -> %s\n",
			e.Sequence,
			MutedStyle.Render(e.ChangedAt.Local().Format("2006-01-02 15:04")),
			from,
			ColumnStyle(to).Render(loc.ColumnTitle(locale, to)),
		)
		if e.Note != "" {
			fmt.Fprintln(w, "      "+TreeLast+e.Note)
		}
	}
}

func renderExportSummary(w io.Writer, export *propertyapp.HistoryExportResponse) {
	if export.Consistent {
		fmt.Fprintln(w, PassStyle.Render(fmt.Sprintf("%s ledger consistent (%d entries)", IconPass, len(export.Entries))))
		return
	}
	msg := fmt.Sprintf("%s ledger inconsistent: %d chain breaks", IconFail, len(export.ChainBreaks))
	if export.Problem != "" {
		msg += ", " + export.Problem
	}
	fmt.Fprintln(w, FailStyle.Render(msg))
}

// filterSince keeps entries changed at or after since
func filterSince(entries []propertyapp.HistoryEntryResponse, since time.Time) []propertyapp.HistoryEntryResponse {
	if since.IsZero() {
		return entries
	}
	out := make([]propertyapp.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		if !e.ChangedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out
}
