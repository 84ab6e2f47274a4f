package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	attend "github.com/smartattend/go-attend"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's headline numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			app := newApp()
			stats, err := app.api.Stats(ctx)
			if err != nil {
				return err
			}

			fmt.Println(heading("Today"))
			fmt.Printf("  Students:      %d\n", stats.TotalStudents)
			fmt.Printf("  Present today: %d\n", stats.PresentToday)
			return nil
		},
	}
}

func logsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Show the recent attendance feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			app := newApp()
			entries, err := app.api.AttendanceLog(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				notice("No attendance recorded yet")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDATE\tTIME")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Date, e.Time)
			}
			return w.Flush()
		},
	}
}

func hodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hod",
		Short: "Show the department head dashboard",
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

			fmt.Println(heading("Department overview"))
			fmt.Printf("  Students:        %d\n", data.Stats.TotalStudents)
			fmt.Printf("  Faculty:         %d\n", data.Stats.ActiveFaculty)
			fmt.Printf("  Present today:   %d (%.1f%%)\n", data.Stats.TodayAttendance, data.Stats.TodayAttendanceRate)
			fmt.Printf("  Average rate:    %.1f%%\n", data.Stats.AverageAttendanceRate)
			fmt.Printf("  Sessions held:   %d\n", data.Stats.TotalSessions)

			if len(data.Defaulters) > 0 {
				fmt.Println()
				fmt.Println(heading(fmt.Sprintf("Defaulters (%d)", data.DefaulterCount)))
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "  NAME\tDEPT\tATTENDANCE\tPRESENT")
				for _, d := range data.Defaulters {
					fmt.Fprintf(w, "  %s\t%s\t%.1f%%\t%d/%d\n",
						d.Name, d.Dept, d.AttendancePercentage, d.PresentDays, d.TotalSessions)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			if len(data.DeptOverview) > 0 {
				fmt.Println()
				fmt.Println(heading("Departments"))
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "  DEPT\tSTUDENTS\tPRESENT\tRATE")
				for _, d := range data.DeptOverview {
					fmt.Fprintf(w, "  %s\t%d\t%d\t%.1f%%\n",
						d.Dept, d.TotalStudents, d.PresentToday, d.AttendanceRate)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func studentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "student",
		Short: "Show your attendance dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			app := newApp()
			if _, err := app.openRoute(ctx, attend.RouteStudent); err != nil {
				return err
			}

			data, err := app.api.StudentDashboard(ctx)
			if err != nil {
				return err
			}

			fmt.Println(heading(data.StudentDetails.Name))
			fmt.Printf("  Department:  %s\n", data.StudentDetails.Dept)
			fmt.Printf("  Attendance:  %.1f%%\n", data.AttendancePercentage)
			fmt.Printf("  Present:     %d of %d sessions\n", data.Summary.PresentDays, data.Summary.TotalSessions)
			fmt.Printf("  Streak:      %d days\n", data.Summary.CurrentStreak)

			if len(data.RecentSessions) > 0 {
				fmt.Println()
				fmt.Println(heading("Recent sessions"))
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, s := range data.RecentSessions {
					fmt.Fprintf(w, "  %s\t%s\t%s\n", s.Date, s.Time, s.Status)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func studentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "students",
		Short: "Show the student roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			app := newApp()
			if _, err := app.openRoute(ctx, attend.RouteStudents); err != nil {
				return err
			}

			list, err := app.api.Students(ctx)
			if err != nil {
				return err
			}

			fmt.Println(heading(fmt.Sprintf("Students (%d, %d sessions)", list.TotalStudents, list.TotalSessions)))
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "  ID\tNAME\tDEPT\tATTENDANCE\tLAST SEEN")
			for _, s := range list.Students {
				lastSeen := s.LastSeenDate
				if lastSeen == "" {
					lastSeen = "never"
				}
				fmt.Fprintf(w, "  %s\t%s\t%s\t%.1f%%\t%s\n",
					s.StudentID, s.Name, s.Dept, s.AttendancePercentage, lastSeen)
			}
			return w.Flush()
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			app := newApp()
			if app.api.Health(ctx) {
				success("Backend is up at %s", app.api.BaseURL())
				return nil
			}
			return fmt.Errorf("backend unreachable at %s", app.api.BaseURL())
		},
	}
}
