package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"patch-package/internal/app"
	"patch-package/internal/core"
)

func newInstallCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install-clean <package>",
		Short: "Replace an installed package with a clean copy from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstallClean(cmd, args[0])
		},
	}
}

func runInstallClean(cmd *cobra.Command, specifier string) error {
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
	result, err := service.InstallCleanPackage(cmd.Context(), app.InstallCleanRequest{
		InstallRoot:    root,
		Package:        pkg,
		PackageManager: manager,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "restored clean copy of %s at %s\n", pkg.PathSpecifier, result.Destination)
	return nil
}
