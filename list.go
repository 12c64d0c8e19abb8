package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/novotemporh/cartaz/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the poster templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tKIND\tSIZE\tPCD")
		for _, t := range templates.List() {
			fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%s\n", t.Name, t.Kind, t.Width, t.Height, t.PCD)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
