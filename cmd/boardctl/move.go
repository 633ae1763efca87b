package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	boardapp "github.com/estateflow/backend/internal/application/board"
	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/infrastructure/boardclient"
	"github.com/estateflow/backend/internal/infrastructure/i18n"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// terminalNotifier prints move outcomes in the configured language
type terminalNotifier struct {
	w         io.Writer
	localizer *i18n.Localizer
	locale    string
}

func (n *terminalNotifier) Notify(note boardapp.Notification) {
	switch note.Kind {
	case boardapp.NotificationSuccess:
		fmt.Fprintln(n.w, PassStyle.Render(IconPass+" "+n.localizer.MoveSucceeded(n.locale, note.UnitNumber, note.To)))
	case boardapp.NotificationError:
		reason := "unknown error"
		if note.Err != nil {
			reason = note.Err.Error()
			var apiErr *boardclient.APIError
			if errors.As(note.Err, &apiErr) && apiErr.Message != "" {
				reason = apiErr.Message
			}
		}
		fmt.Fprintln(n.w, FailStyle.Render(IconFail+" "+n.localizer.MoveFailed(n.locale, note.UnitNumber, note.To, reason)))
	}
}

type moveView struct {
	UnitID     uuid.UUID           `json:"unit_id"`
	From       property.UnitStatus `json:"from"`
	To         property.UnitStatus `json:"to"`
	State      boardapp.MoveState  `json:"state"`
	DurationMS int64               `json:"duration_ms"`
}

func newMoveCmd(a *app) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "move <unit-id> [status]",
		Short: "Move a unit to another status column",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			unitID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid unit ID %q: %w", args[0], err)
			}

			var raw string
			if len(args) == 2 {
				raw = args[1]
			} else {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return errors.New("status is required when stdin is not a terminal")
				}
				if raw, err = promptStatus(a.localizer, a.locale); err != nil {
					return err
				}
			}
			to, err := property.ParseUnitStatus(raw)
			if err != nil {
				return err
			}

			units, _, err := a.client.ListBoardUnits(cmd.Context(), boardclient.ListQuery{})
			if err != nil {
				return err
			}

			notifier := &terminalNotifier{w: cmd.OutOrStdout(), localizer: a.localizer, locale: a.locale}
			coord := boardapp.NewCoordinator(units, a.client, notifier).WithSuccessNotifications(true)
			result, err := coord.Move(cmd.Context(), unitID, to, note)
			if err != nil {
				return err
			}
			if result.State == boardapp.MoveStateRolledBack {
				return fmt.Errorf("move rolled back: %w", result.Err)
			}
			if a.profile.Output == "json" || a.profile.Output == "yaml" {
				return writeStructured(cmd.OutOrStdout(), a.profile.Output, moveView{
					UnitID:     result.UnitID,
					From:       result.From,
					To:         result.To,
					State:      result.State,
					DurationMS: result.Duration.Milliseconds(),
				})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "note recorded with the status change")
	return cmd
}

func promptStatus(loc *i18n.Localizer, locale string) (string, error) {
	statuses := property.AllUnitStatuses()
	opts := make([]huh.Option[string], 0, len(statuses))
	for _, s := range statuses {
		opts = append(opts, huh.NewOption(loc.ColumnTitle(locale, s), s.String()))
	}

	var selected string
	err := huh.NewSelect[string]().
		Title("New status").
		Options(opts...).
		Value(&selected).
		Run()
	if err != nil {
		return "", err
	}
	return selected, nil
}
