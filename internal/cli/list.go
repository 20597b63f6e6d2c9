package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/hiergrid/internal/dataset"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the datasets in a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := dataset.NewStore(dir)
			if err != nil {
				return err
			}
			metas, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(metas) == 0 {
				fmt.Fprintln(out, "No datasets found")
				return nil
			}
			for _, m := range metas {
				fmt.Fprintf(out, "%s\t%d columns\t%d records\t%s\n", m.Name, m.Columns, m.Records, m.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Dataset directory")
	return cmd
}

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	var dir, name string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Copy a dataset into a dataset directory",
		Long:  "Validate a YAML or JSON dataset and store it as YAML in a dataset directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				ds.Name = name
			}
			store, err := dataset.NewStore(dir)
			if err != nil {
				return err
			}
			if err := store.Save(cmd.Context(), ds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", ds.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Dataset directory")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Dataset name (default: file name)")
	return cmd
}
