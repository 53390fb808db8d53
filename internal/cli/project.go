package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"blinky/internal/core"
	"blinky/internal/state"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects"},
	Short:   "Manage projects",
}

var (
	projectName     string
	projectManager  string
	projectStatus   string
	projectType     string
	projectProgress int
)

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		provider := state.NewProvider(client.Projects())
		projects, err := provider.FetchAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		if len(projects) == 0 {
			fmt.Println("No projects found. Add one with: blinkyctl project add --name \"My project\"")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMANAGER\tSTATUS\tTYPE\tPROGRESS\tUPDATED")
		for _, p := range projects {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d%%\t%s\n",
				p.ID, p.Name, p.Manager, p.Status, p.Type, p.Progress,
				p.LastUpdated.Format("2006-01-02"))
		}
		return w.Flush()
	},
}

var projectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a project",
	Long: `Add a project.

Examples:
  blinkyctl project add --name "Website redesign" --manager Dana
  blinkyctl project add --name "Audit" --manager Sam --status InProgress --type Freelancer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		provider := state.NewProvider(client.Projects())

		created, err := provider.Create(cmd.Context(), core.Project{
			Name:     projectName,
			Manager:  projectManager,
			Status:   core.ProjectStatus(projectStatus),
			Type:     core.ProjectType(projectType),
			Progress: projectProgress,
		})
		if err != nil {
			return fmt.Errorf("failed to add project: %w", err)
		}
		fmt.Printf("Added project %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		provider := state.NewProvider(client.Projects())
		if _, err := provider.FetchAll(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load projects: %w", err)
		}

		prev, ok := provider.Get(args[0])
		if !ok {
			return fmt.Errorf("no project with id %s", args[0])
		}

		draft := core.Project{ID: prev.ID}
		if cmd.Flags().Changed("name") {
			draft.Name = projectName
		}
		if cmd.Flags().Changed("manager") {
			draft.Manager = projectManager
		}
		if cmd.Flags().Changed("status") {
			draft.Status = core.ProjectStatus(projectStatus)
		}
		if cmd.Flags().Changed("type") {
			draft.Type = core.ProjectType(projectType)
		}
		draft.Progress = prev.Progress
		if cmd.Flags().Changed("progress") {
			draft.Progress = projectProgress
		}

		updated, err := provider.Update(cmd.Context(), draft)
		if err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		fmt.Printf("Updated project %s (%s, %d%%)\n", updated.Name, updated.Status, updated.Progress)
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a project",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		provider := state.NewProvider(client.Projects())
		if err := provider.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		fmt.Printf("Deleted project %s\n", args[0])
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{projectAddCmd, projectUpdateCmd} {
		cmd.Flags().StringVarP(&projectName, "name", "n", "", "Project name")
		cmd.Flags().StringVarP(&projectManager, "manager", "m", "", "Project manager")
		cmd.Flags().StringVarP(&projectStatus, "status", "s", string(core.StatusNotStarted), "Status (NotStarted, InProgress, Completed)")
		cmd.Flags().StringVarP(&projectType, "type", "t", string(core.TypeSideProject), "Type (SideProject, Freelancer, Employee)")
		cmd.Flags().IntVarP(&projectProgress, "progress", "p", 0, "Progress percentage")
	}

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}
