package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	attend "github.com/smartattend/go-attend"
	"github.com/smartattend/go-attend/export"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write dashboard data as CSV reports",
	}

	cmd.AddCommand(exportHODCmd(), exportLogsCmd())
	return cmd
}

func exportHODCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "hod",
		Short: "Export the department head dashboard report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			app := newApp()
			if _, err := app.openRoute(ctx, attend.RouteHOD); err != nil {
				return err
			}

			data, err := app.api.HODDashboard(ctx)
			if err != nil {
				return err
			}

			if output == "" {
				output = export.HODReportFilename(time.Now())
			}
			if err := os.WriteFile(output, []byte(export.HODReport(*data)), 0o644); err != nil {
				return err
			}

			success("Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default hod-dashboard-<date>.csv)")

	return cmd
}

func exportLogsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Export the attendance feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			app := newApp()
			entries, err := app.api.AttendanceLog(ctx)
			if err != nil {
				return err
			}

			if output == "" {
				output = export.AttendanceLogFilename(time.Now())
			}
			if err := os.WriteFile(output, []byte(export.AttendanceLog(entries)), 0o644); err != nil {
				return err
			}

			success("Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default attendance-log-<date>.csv)")

	return cmd
}
