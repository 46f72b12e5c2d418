// Package cli implements the dashboard terminal client.
package cli

import (
	"io"
	"log"
	"os"
	"strings"

	"skill-dashboard/internal/dashboard"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const envAPIURL = "DASHBOARD_API_URL"

type options struct {
	apiURL  string
	verbose bool
}

// NewRootCmd builds the dashboard command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Terminal client for the skill dashboard API",
		Long:          "Manage learning skills, read the tech news feed and ask for an AI review from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "API base URL (default: $"+envAPIURL+" or "+dashboard.DefaultBaseURL+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log failed requests to stderr")

	root.AddCommand(
		newSkillsCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newRmCmd(opts),
		newNewsCmd(opts),
		newReviewCmd(opts),
		newShellCmd(opts),
	)
	return root
}

func Execute() int {
	_ = godotenv.Load()
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		alert(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func (o *options) baseURL() string {
	if v := strings.TrimSpace(o.apiURL); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		return v
	}
	return dashboard.DefaultBaseURL
}

func (o *options) logger(cmd *cobra.Command) *log.Logger {
	var w io.Writer = io.Discard
	if o.verbose {
		w = cmd.ErrOrStderr()
	}
	return log.New(w, "", log.LstdFlags)
}

func (o *options) newState(cmd *cobra.Command) *dashboard.State {
	logger := o.logger(cmd)
	return dashboard.NewState(dashboard.NewClient(o.baseURL(), logger), logger)
}
