package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/Akashdeep-Patra/twig/internal/app"
	"github.com/Akashdeep-Patra/twig/internal/config"
	"github.com/Akashdeep-Patra/twig/internal/git"
	"github.com/Akashdeep-Patra/twig/internal/runner"
	"github.com/Akashdeep-Patra/twig/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// twig spends nearly all its time waiting on git subprocesses and the
	// terminal. Two OS threads cover rendering and message dispatch, and keep
	// several open instances from fighting over cores. An explicit GOMAXPROCS
	// wins.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(min(2, runtime.NumCPU()))
	}
	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "twig:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "twig [path]",
		Short: "Browse and manage git branches from the terminal",
		Long: `twig lists the branches of a repository with their sync state, shows
the commits and changed files of the highlighted branch, and lets you
check out, create, rename, delete and fetch without leaving the keyboard.

The list refreshes by itself when refs change on disk.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"twig %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildBranchesCmd())
	rootCmd.AddCommand(buildDeleteCmd())
	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	return rootCmd
}

func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintf(out, "twig %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
			fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
			fmt.Fprintf(out, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

func buildCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for twig.

Examples:
  twig completion bash > /etc/bash_completion.d/twig
  twig completion zsh > "${fpath[1]}/_twig"
  twig completion fish > ~/.config/fish/completions/twig.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}

// openRepo loads the configuration and opens the repository at the optional
// path argument.
func openRepo(ctx context.Context, args []string) (*config.Config, *git.CLIService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	r := runner.NewExec(cfg.GitBinary, cfg.CommandTimeout)
	cli, err := git.OpenRepository(ctx, r, path, git.WithRemoteBranches(cfg.ShowRemoteBranches))
	if err != nil {
		return nil, nil, err
	}
	return cfg, cli, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	if path := os.Getenv("TWIG_DEBUG"); path != "" {
		f, err := tea.LogToFile(path, "twig")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, cli, err := openRepo(ctx, args)
	if err != nil {
		return err
	}
	log.Printf("twig: opened %s", cli.RepoRoot())

	svc := git.NewCachedService(cli, cfg.CacheTTL)
	model := app.New(ctx, svc, cfg)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Only the ref files under the git directory are watched, so large
	// worktrees cost nothing.
	if stop, err := startWatcher(ctx, cli, cfg, p); err != nil {
		log.Printf("twig: watcher disabled: %v", err)
	} else {
		defer stop()
	}

	_, err = p.Run()
	return err
}

// startWatcher forwards ref changes to the program as refresh requests.
func startWatcher(ctx context.Context, cli *git.CLIService, cfg *config.Config, p *tea.Program) (func(), error) {
	gitDir, err := cli.GitDir(ctx)
	if err != nil {
		return nil, err
	}
	commonDir, err := cli.CommonDir(ctx)
	if err != nil {
		return nil, err
	}
	events, stop, err := watcher.Watch(gitDir, commonDir, cfg.WatchDebounce)
	if err != nil {
		return nil, err
	}
	go func() {
		for range events {
			p.Send(app.RefreshMsg{})
		}
	}()
	return stop, nil
}
