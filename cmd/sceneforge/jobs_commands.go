package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"sceneforge/internal/store"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect render jobs",
	}

	jobsCmd.AddCommand(newJobsListCommand(ctx))
	jobsCmd.AddCommand(newJobsShowCommand(ctx))

	return jobsCmd
}

func newJobsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List render jobs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				jobs, err := st.ListJobs(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(jobs) == 0 {
					fmt.Fprintln(out, "No jobs found")
					return nil
				}

				rows := make([][]string, 0, len(jobs))
				for _, job := range jobs {
					rows = append(rows, []string{
						shortID(job.ID),
						string(job.Kind),
						string(job.Status),
						job.Phase,
						strconv.Itoa(job.Progress) + "%",
						job.CreatedAt.Local().Format(time.DateTime),
					})
				}
				writeTable(out, []string{"ID", "Kind", "Status", "Phase", "Progress", "Created"}, rows, 4)
				return nil
			})
		},
	}
}

func newJobsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one render job in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				job, err := st.GetJob(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("job %s: %w", args[0], err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:        %s\n", job.ID)
				fmt.Fprintf(out, "Kind:      %s\n", job.Kind)
				fmt.Fprintf(out, "Status:    %s\n", job.Status)
				if job.Phase != "" {
					fmt.Fprintf(out, "Phase:     %s\n", job.Phase)
				}
				fmt.Fprintf(out, "Progress:  %d%%\n", job.Progress)
				if job.SceneID != "" {
					fmt.Fprintf(out, "Scene:     %s\n", job.SceneID)
				}
				if job.ProjectID != "" {
					fmt.Fprintf(out, "Project:   %s\n", job.ProjectID)
				}
				if job.OutputURL != "" {
					fmt.Fprintf(out, "Output:    %s\n", job.OutputURL)
				}
				if job.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:     %s\n", job.ErrorMessage)
				}
				fmt.Fprintf(out, "Created:   %s\n", job.CreatedAt.Local().Format(time.DateTime))
				return nil
			})
		},
	}
}
