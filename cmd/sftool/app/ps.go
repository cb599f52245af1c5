package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hanbit-ml/sftool/internal/runtime"
)

// PsOptions holds options for the ps command
type PsOptions struct {
	*GlobalOptions
}

// NewPsCommand creates the ps command.
//
// The ps command lists serving containers launched by this tool, similar to
// 'docker ps' but filtered to sftool-managed containers.
func NewPsCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &PsOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:     "ps",
		Short:   "List serving containers",
		Aliases: []string{"list"},
		Long: `List serving containers launched by this tool, including stopped ones.

Only containers carrying the sftool label are shown; other containers on the
host are not touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPs(opts)
		},
	}

	return cmd
}

// runPs executes the ps command logic
func runPs(opts *PsOptions) error {
	launcher, err := runtime.NewLauncher()
	if err != nil {
		return err
	}

	containers, err := launcher.List(context.Background())
	if err != nil {
		return err
	}

	if len(containers) == 0 {
		fmt.Println("No serving containers found")
		fmt.Println()
		fmt.Println("Launch one with: MODEL_ID=<model> sftool serve")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODEL\tIMAGE\tSTATE\tPORT\tUPTIME")

	for _, c := range containers {
		port := "-"
		if c.Port > 0 {
			port = fmt.Sprintf("%d", c.Port)
		}

		uptime := "-"
		if c.State == "running" {
			uptime = formatDuration(time.Since(c.Created))
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Name, c.ModelID, c.Image, c.State, port, uptime)
	}

	return w.Flush()
}

// formatDuration renders a duration in a compact human form (e.g., "2h15m").
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		h := int(d.Hours())
		m := int(d.Minutes()) - h*60
		return fmt.Sprintf("%dh%dm", h, m)
	default:
		days := int(d.Hours()) / 24
		h := int(d.Hours()) - days*24
		return fmt.Sprintf("%dd%dh", days, h)
	}
}
