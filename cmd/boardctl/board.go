package main

import (
	"fmt"
	"time"

	boardapp "github.com/estateflow/backend/internal/application/board"
	"github.com/estateflow/backend/internal/domain/board"
	"github.com/estateflow/backend/internal/infrastructure/boardclient"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newBoardCmd(a *app) *cobra.Command {
	var (
		filter     board.FilterState
		propertyID string
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show units grouped by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := boardclient.ListQuery{}
			if propertyID != "" {
				id, err := uuid.Parse(propertyID)
				if err != nil {
					return fmt.Errorf("invalid property ID %q: %w", propertyID, err)
				}
				filter.PropertyID = &id
				query.PropertyID = &id
			}

			units, _, err := a.client.ListBoardUnits(cmd.Context(), query)
			if err != nil {
				return err
			}

			coord := boardapp.NewCoordinator(units, a.client, nil)
			columns := coord.Columns(filter)
			stats := coord.Stats(filter)

			for i := range columns {
				columns[i].Title = a.localizer.ColumnTitle(a.locale, columns[i].Status)
			}

			out := cmd.OutOrStdout()
			if a.profile.Output == "json" || a.profile.Output == "yaml" {
				return writeStructured(out, a.profile.Output, boardView{Columns: columns, Stats: stats})
			}
			renderBoard(out, a.localizer, a.locale, columns, stats, time.Now())
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Search, "search", "", "match unit number, property name or occupant")
	cmd.Flags().StringVar(&propertyID, "property", "", "only units of this property")
	cmd.Flags().BoolVar(&filter.UrgentOnly, "urgent", false, "only units with urgent issues")
	cmd.Flags().BoolVar(&filter.OverdueOnly, "overdue", false, "only units with overdue invoices")
	cmd.Flags().BoolVar(&filter.MaintenanceOnly, "maintenance", false, "only units with open maintenance")
	return cmd
}
