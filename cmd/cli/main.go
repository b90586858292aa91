package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	v "github.com/keshon/slashery/internal/version"
)

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "slashery",
		Short:         fmt.Sprintf("%s %s: %s", v.AppName, v.Version, v.AppDescription),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newSchemaCommand(),
		newDispatchCommand(),
		newComponentCommand(),
		newHistoryCommand(),
		newVersionCommand(),
	)
	return cmd
}

func main() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
