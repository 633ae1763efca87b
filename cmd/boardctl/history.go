package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		since  string
		export bool
	)

	cmd := &cobra.Command{
		Use:   "history <unit-id>",
		Short: "Show the status change ledger of a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unitID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid unit ID %q: %w", args[0], err)
			}
			cutoff, err := parseSince(since, time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			structured := a.profile.Output == "json" || a.profile.Output == "yaml"

			if export {
				ledger, err := a.client.ExportHistory(cmd.Context(), unitID)
				if err != nil {
					return err
				}
				ledger.Entries = filterSince(ledger.Entries, cutoff)
				if structured {
					return writeStructured(out, a.profile.Output, ledger)
				}
				renderHistory(out, a.localizer, a.locale, ledger.Entries)
				renderExportSummary(out, ledger)
				return nil
			}

			entries, err := a.client.History(cmd.Context(), unitID, limit)
			if err != nil {
				return err
			}
			entries = filterSince(entries, cutoff)
			if structured {
				return writeStructured(out, a.profile.Output, entries)
			}
			renderHistory(out, a.localizer, a.locale, entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "most recent entries to fetch (server default when 0)")
	cmd.Flags().StringVar(&since, "since", "", `only changes after this time, e.g. "2026-01-31" or "3 days ago"`)
	cmd.Flags().BoolVar(&export, "export", false, "fetch the full ledger and verify its chain")
	return cmd
}

// parseSince accepts RFC 3339, a plain date or a natural language expression
// relative to now. An empty string means no cutoff.
func parseSince(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, now.Location()); err == nil {
		return t, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	r, err := w.Parse(raw, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since %q: %w", raw, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("invalid --since %q: no date found", raw)
	}
	return r.Time, nil
}
