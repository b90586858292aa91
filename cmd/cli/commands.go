package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/keshon/slashery/internal/config"
	"github.com/keshon/slashery/internal/demo"
	"github.com/keshon/slashery/internal/discord"
	"github.com/keshon/slashery/internal/storage"
	v "github.com/keshon/slashery/internal/version"
	"github.com/keshon/slashery/pkg/slash"
)

func writeJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [command]",
		Short: "Print the registration descriptors of the demo commands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commands := demo.Commands()
			if len(args) == 0 {
				return writeJSON(cmd.OutOrStdout(), commands.Metadata())
			}
			def, ok := commands.Lookup(args[0])
			if !ok {
				return &slash.UnknownCommandError{Name: args[0]}
			}
			return writeJSON(cmd.OutOrStdout(), def.Metadata())
		},
	}
}

type dispatchResult struct {
	Command string `json:"command"`
	Value   any    `json:"value,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func newDispatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch [file]",
		Short: "Decode an application command payload against the demo commands",
		Long: "Reads the data object of an application command interaction as JSON from\n" +
			"file, or from stdin when file is omitted or \"-\", and prints the decoded record.",
		Example: `  echo '{"name":"roll","options":[{"name":"sides","type":4,"value":6}]}' | slashery dispatch`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var data discordgo.ApplicationCommandInteractionData
			if err := json.NewDecoder(in).Decode(&data); err != nil {
				return fmt.Errorf("failed to parse payload: %w", err)
			}

			d, err := demo.Commands().Dispatch(slash.InvocationFromData(data))
			if err != nil {
				_ = writeJSON(cmd.OutOrStdout(), dispatchResult{
					Command: data.Name,
					Error:   err.Error(),
					Message: discord.Describe(err),
				})
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dispatchResult{Command: d.Name, Value: d.Value})
		},
	}
}

func newComponentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "component <custom-id>",
		Short: "Resolve a component custom id to its canonical button",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buttons := demo.Buttons()
			b, err := buttons.Dispatch(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), buttons.ID(b))
			return err
		},
	}
}

func newHistoryCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "history [guild-id]",
		Short: "Print the interactions recorded for a guild",
		Long:  "Without a guild id, prints interactions recorded in direct messages.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				cfg, err := config.New()
				if err != nil {
					return err
				}
				path = cfg.StoragePath
			}
			scope := storage.GlobalScope
			if len(args) == 1 {
				scope = args[0]
			}

			store, err := storage.New(path, zerolog.Nop())
			if err != nil {
				return err
			}
			defer store.Close()

			history, err := store.InteractionHistory(scope)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), history)
		},
	}
	cmd.Flags().StringVar(&path, "storage", "", "Storage file (default: STORAGE_PATH)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", v.AppName, v.Version)
		},
	}
}
