package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"sceneforge/internal/store"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect projects",
	}

	projectsCmd.AddCommand(newProjectsListCommand(ctx))
	projectsCmd.AddCommand(newProjectsScenesCommand(ctx))

	return projectsCmd
}

func newProjectsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				projects, err := st.ListProjects(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(projects) == 0 {
					fmt.Fprintln(out, "No projects found")
					return nil
				}

				rows := make([][]string, 0, len(projects))
				for _, project := range projects {
					rows = append(rows, []string{
						shortID(project.ID),
						project.Name,
						strconv.Itoa(project.SceneCount),
						yesNo(project.AudioURL != ""),
						project.CreatedAt.Local().Format(time.DateTime),
					})
				}
				writeTable(out, []string{"ID", "Name", "Scenes", "Audio", "Created"}, rows, 2)
				return nil
			})
		},
	}
}

func newProjectsScenesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scenes <project-id>",
		Short: "List a project's scenes in playback order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				scenes, err := st.ScenesByProject(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(scenes) == 0 {
					fmt.Fprintln(out, "No scenes found")
					return nil
				}

				rows := make([][]string, 0, len(scenes))
				for _, scene := range scenes {
					rows = append(rows, []string{
						strconv.Itoa(scene.OrderIndex),
						shortID(scene.ID),
						scene.Prompt,
						string(scene.Status),
						yesNo(scene.HasArtifact()),
					})
				}
				writeTable(out, []string{"#", "ID", "Prompt", "Status", "Rendered"}, rows, 0)
				return nil
			})
		},
	}
}
