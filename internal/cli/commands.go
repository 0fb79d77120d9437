package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoobzio/datasync"
)

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [path]",
		Short: "Load the collection or a path below it",
		Example: `  datasync list
  datasync list archived`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return a.run(cmd, func(s *datasync.Service[Record]) {
				s.LoadData(path)
			})
		},
	}
}

func (a *app) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Load a single resource",
		Example: `  datasync get 42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, func(s *datasync.Service[Record]) {
				s.LoadDataWithID(id)
			})
		},
	}
}

func (a *app) createCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "create <record>",
		Short:   "Create a resource and print the reloaded collection",
		Example: `  datasync create '{"title": "write docs"}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := parseRecord(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, func(s *datasync.Service[Record]) {
				s.Create(rec)
			})
		},
	}
}

func (a *app) updateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "update <record>",
		Short:   "Replace a resource and print the reloaded collection",
		Long:    "The record must carry a positive numeric id.",
		Example: `  datasync update '{"id": 42, "title": "write better docs"}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := parseRecord(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, func(s *datasync.Service[Record]) {
				s.Update(rec)
			})
		},
	}
}

func (a *app) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a resource and print the reloaded collection",
		Example: `  datasync delete 42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, func(s *datasync.Service[Record]) {
				s.Delete(id)
			})
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "datasync %s\n", Version)
		},
	}
}
