package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	attend "github.com/smartattend/go-attend"
	"github.com/smartattend/go-attend/client"
)

func leaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Apply for leave and review requests",
	}

	cmd.AddCommand(
		leaveApplyCmd(),
		leaveListCmd(),
		leaveAllCmd(),
		leaveActionCmd(),
	)
	return cmd
}

func leaveApplyCmd() *cobra.Command {
	var req client.LeaveRequest

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Submit a leave application",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			app := newApp()
			if _, err := app.openRoute(ctx, attend.RouteLeave); err != nil {
				return err
			}

			if err := app.api.ApplyLeave(ctx, req); err != nil {
				return err
			}

			success("Leave applied: %s from %s to %s", req.Type, req.FromDate, req.ToDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Type, "type", "", "Leave type (sick, casual, ...)")
	cmd.Flags().StringVar(&req.FromDate, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.ToDate, "to", "", "Last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Reason, "reason", "", "Reason for the leave")

	return cmd
}

func leaveListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your leave applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			app := newApp()
			if _, err := app.openRoute(ctx, attend.RouteLeave); err != nil {
				return err
			}

			leaves, err := app.api.MyLeaves(ctx)
			if err != nil {
				return err
			}
			if len(leaves) == 0 {
				notice("No leave applications yet")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tFROM\tTO\tSTATUS\tREASON")
			for _, l := range leaves {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", l.Type, l.FromDate, l.ToDate, styleStatus(l.Status), l.Reason)
			}
			return w.Flush()
		},
	}
}

func leaveAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Show every leave request in the department",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			app := newApp()
			if _, err := app.openRoute(ctx, attend.RouteLeaveRequests); err != nil {
				return err
			}

			requests, err := app.api.AllLeaveRequests(ctx)
			if err != nil {
				return err
			}
			if len(requests) == 0 {
				notice("No leave requests")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEMAIL\tTYPE\tFROM\tTO\tSTATUS")
			for _, r := range requests {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.Name, r.Email, r.Type, r.FromDate, r.ToDate, styleStatus(r.Status))
			}
			return w.Flush()
		},
	}
}

func leaveActionCmd() *cobra.Command {
	var action client.LeaveAction
	var approve, reject bool

	cmd := &cobra.Command{
		Use:   "action",
		Short: "Approve or reject a leave request",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			switch {
			case approve == reject:
				return fmt.Errorf("pass exactly one of --approve or --reject")
			case approve:
				action.Status = client.LeaveStatusApproved
			default:
				action.Status = client.LeaveStatusRejected
			}

			app := newApp()
			if _, err := app.openRoute(ctx, attend.RouteLeaveRequests); err != nil {
				return err
			}

			if err := app.api.ActOnLeave(ctx, action); err != nil {
				return err
			}

			success("Request from %s marked %s", action.Email, action.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&action.Email, "email", "", "Requesting student's email")
	cmd.Flags().StringVar(&action.FromDate, "from", "", "Request's first day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&approve, "approve", false, "Approve the request")
	cmd.Flags().BoolVar(&reject, "reject", false, "Reject the request")

	return cmd
}

func styleStatus(status string) string {
	switch status {
	case client.LeaveStatusApproved:
		return okStyle.Render(status)
	case client.LeaveStatusRejected:
		return errStyle.Render(status)
	default:
		return warnStyle.Render(status)
	}
}
