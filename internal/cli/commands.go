package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newSkillsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "skills",
		Aliases: []string{"ls"},
		Short:   "List skills",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := opts.newState(cmd)
			st.Load(cmd.Context())
			renderSkills(cmd.OutOrStdout(), st.Snapshot().Skills, nil)
			return nil
		},
	}
}

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <tool name>",
		Short: "Add a skill as Learning / In Progress",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := opts.newState(cmd)
			st.SetInput(strings.Join(args, " "))
			if err := st.Submit(cmd.Context()); err != nil {
				return err
			}
			renderSkills(cmd.OutOrStdout(), st.Snapshot().Skills, nil)
			return nil
		},
	}
}

func newEditCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <new name>",
		Short: "Rename a skill, keeping its status",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st := opts.newState(cmd)
			st.Load(cmd.Context())
			if !st.StartEdit(id) {
				return fmt.Errorf("skill %d not found", id)
			}
			st.SetInput(strings.Join(args[1:], " "))
			if err := st.Submit(cmd.Context()); err != nil {
				return err
			}
			renderSkills(cmd.OutOrStdout(), st.Snapshot().Skills, nil)
			return nil
		},
	}
}

func newRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a skill",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := opts.newState(cmd).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "删除成功 %d\n", id)
			return nil
		},
	}
}

func newNewsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "news",
		Short: "Show the latest tech news",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := opts.newState(cmd)
			st.Load(cmd.Context())
			renderNews(cmd.OutOrStdout(), st.Snapshot().News)
			return nil
		},
	}
}

func newReviewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Ask the AI to review the current skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dimColor.Fprintln(cmd.ErrOrStderr(), "AI 正在思考...")
			text, err := opts.newState(cmd).RequestReview(cmd.Context())
			if err != nil {
				return err
			}
			renderReview(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
