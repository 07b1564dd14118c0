package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Akashdeep-Patra/twig/internal/git"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func buildBranchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branches [path]",
		Short: "Print the branch list with sync markers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			_, cli, err := openRepo(ctx, args)
			if err != nil {
				return err
			}
			branches, err := cli.Branches(ctx)
			if err != nil {
				return err
			}
			printBranches(cmd.OutOrStdout(), branches)
			return nil
		},
	}
}

func printBranches(w io.Writer, branches []git.Branch) {
	for _, b := range branches {
		line := b.DisplayName()
		if b.UpstreamGone {
			line += " [gone]"
		}
		fmt.Fprintln(w, line)
	}
}

func buildDeleteCmd() *cobra.Command {
	var force, yes bool
	var repoPath string

	cmd := &cobra.Command{
		Use:   "delete <branch>",
		Short: "Delete a local branch",
		Long: `Delete a local branch. Unmerged branches are refused unless --force
is given. When stdout is a terminal you are asked to confirm first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			name := args[0]
			_, cli, err := openRepo(ctx, []string{repoPath})
			if err != nil {
				return err
			}

			if !yes && term.IsTerminal(int(os.Stdout.Fd())) {
				ok, err := confirmDelete(name, force)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := cli.DeleteBranch(ctx, name, force); err != nil {
				if git.ReasonOf(err) == git.ReasonNotFullyMerged {
					return fmt.Errorf("%w (use --force to delete anyway)", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete even if the branch is not fully merged")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVarP(&repoPath, "path", "p", ".", "Path to the git repository")

	return cmd
}

func confirmDelete(name string, force bool) (bool, error) {
	title := fmt.Sprintf("Delete branch %s?", name)
	desc := "Only merged branches can be deleted."
	if force {
		title = fmt.Sprintf("Force delete branch %s?", name)
		desc = "Commits not reachable from another branch will be lost."
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(desc).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
