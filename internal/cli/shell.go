package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"skill-dashboard/internal/dashboard"

	"github.com/spf13/cobra"
)

const shellHelp = `commands:
  ls                 list skills
  news               list news
  add <name>         submit <name> (creates in add mode, renames in edit mode)
  edit <id>          enter edit mode for a skill
  cancel             leave edit mode
  rm <id>            delete a skill
  review             ask for an AI review
  reload             fetch skills and news again
  help, quit`

func newShellCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive dashboard that keeps one view across commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := opts.newState(cmd)
			st.Load(cmd.Context())
			sh := &shell{cmd: cmd, st: st, out: cmd.OutOrStdout()}
			renderSkills(sh.out, st.Snapshot().Skills, nil)
			renderNews(sh.out, st.Snapshot().News)
			return sh.run(cmd.InOrStdin())
		},
	}
}

type shell struct {
	cmd *cobra.Command
	st  *dashboard.State
	out io.Writer
}

func (s *shell) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, s.prompt())
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		if done := s.exec(sc.Text()); done {
			return nil
		}
	}
}

func (s *shell) prompt() string {
	snap := s.st.Snapshot()
	if snap.EditID == nil {
		return "[add]> "
	}
	return fmt.Sprintf("[edit %d: %s]> ", *snap.EditID, snap.Input)
}

// exec runs one shell line and reports whether the shell should exit.
// Mutation failures are printed as alerts and the shell keeps going.
func (s *shell) exec(line string) bool {
	ctx := s.cmd.Context()
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "":
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(s.out, shellHelp)
	case "ls":
		snap := s.st.Snapshot()
		renderSkills(s.out, snap.Skills, snap.EditID)
	case "news":
		renderNews(s.out, s.st.Snapshot().News)
	case "reload":
		s.st.Load(ctx)
		snap := s.st.Snapshot()
		renderSkills(s.out, snap.Skills, snap.EditID)
	case "add":
		s.st.SetInput(rest)
		if err := s.st.Submit(ctx); err != nil {
			alert(s.out, err)
			return false
		}
		snap := s.st.Snapshot()
		renderSkills(s.out, snap.Skills, snap.EditID)
	case "edit":
		id, err := parseID(rest)
		if err != nil {
			alert(s.out, err)
			return false
		}
		if !s.st.StartEdit(id) {
			alert(s.out, fmt.Errorf("skill %d not found", id))
		}
	case "cancel":
		s.st.CancelEdit()
	case "rm":
		id, err := parseID(rest)
		if err != nil {
			alert(s.out, err)
			return false
		}
		if err := s.st.Delete(ctx, id); err != nil {
			alert(s.out, err)
			return false
		}
		snap := s.st.Snapshot()
		renderSkills(s.out, snap.Skills, snap.EditID)
	case "review":
		if s.st.Snapshot().Loading {
			dimColor.Fprintln(s.out, "AI 正在思考...")
			return false
		}
		text, err := s.st.RequestReview(ctx)
		if err != nil {
			alert(s.out, err)
			return false
		}
		renderReview(s.out, text)
	default:
		fmt.Fprintf(s.out, "unknown command %q, try help\n", verb)
	}
	return false
}
