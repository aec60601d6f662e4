package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"patch-package/internal/app"
	"patch-package/internal/core"
)

type createIssueOptions struct {
	PatchFile string
	PrintOnly bool
}

func newIssueHintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "issue-hint <package>",
		Short: "Suggest drafting an upstream issue when the package is on GitHub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIssueHint(cmd, args[0])
		},
	}
}

func runIssueHint(cmd *cobra.Command, specifier string) error {
	pkg, err := core.ParsePathSpecifier(specifier)
	if err != nil {
		return err
	}
	root := installRoot()
	manager, err := packageManager(root)
	if err != nil {
		return err
	}
	service := newAppService()
	service.Out = cmd.OutOrStdout()
	service.PromptIssueCreation(cmd.Context(), app.PromptIssueRequest{
		InstallRoot:    root,
		Package:        pkg,
		PackageManager: manager,
	})
	return nil
}

func newCreateIssueCommand() *cobra.Command {
	opts := createIssueOptions{}
	cmd := &cobra.Command{
		Use:   "create-issue <package>",
		Short: "Open a pre-filled GitHub issue carrying the package's patch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateIssue(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.PatchFile, "patch-file", "", "Patch file to embed in the issue (- for stdin)")
	cmd.Flags().BoolVar(&opts.PrintOnly, "print-only", false, "Print the issue link instead of opening a browser")
	_ = viper.BindPFlag("patch_file", cmd.Flags().Lookup("patch-file"))
	_ = viper.BindPFlag("print_only", cmd.Flags().Lookup("print-only"))
	return cmd
}

func runCreateIssue(cmd *cobra.Command, specifier string, opts createIssueOptions) error {
	pkg, err := core.ParsePathSpecifier(specifier)
	if err != nil {
		return err
	}
	patch, err := readPatchFile(cmd.InOrStdin(), resolveString(cmd, opts.PatchFile, "patch_file", "patch-file"))
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.OpenIssueCreationLink(cmd.Context(), app.OpenIssueRequest{
		InstallRoot:       installRoot(),
		Package:           pkg,
		PatchFileContents: patch,
		PrintOnly:         resolveBool(cmd, opts.PrintOnly, "print_only", "print-only"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if result.Opened {
		fmt.Fprintf(out, "opened issue draft for %s/%s in your browser\n", result.Identity.Org, result.Identity.Repo)
		return nil
	}
	fmt.Fprintln(out, result.URL)
	return nil
}

func readPatchFile(stdin io.Reader, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("patch file is required")
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read patch file " + path).
			WithCause(err)
	}
	return string(data), nil
}
