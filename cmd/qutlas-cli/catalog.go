package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"qutlas/internal/adapter/catalog"
	"qutlas/internal/config"

	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect catalog files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [path]",
		Short: "Check a catalog file for schema and value errors",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCatalogValidate,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "templates",
		Short: "List part templates and their materials",
		Args:  cobra.NoArgs,
		RunE:  runCatalogTemplates,
	})

	return cmd
}

func catalogPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if path, _ := cmd.Flags().GetString("catalog"); path != "" {
		return path, nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Catalog.File, nil
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	path, err := catalogPath(cmd, args)
	if err != nil {
		return err
	}
	c, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}
	templates, _ := c.ListTemplates(cmd.Context())

	certified := 0
	for _, h := range c.Hubs() {
		if h.Certified {
			certified++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d templates, %d hubs, %d certified)\n", path, len(templates), len(c.Hubs()), certified)
	return nil
}

func runCatalogTemplates(cmd *cobra.Command, args []string) error {
	path, err := catalogPath(cmd, nil)
	if err != nil {
		return err
	}
	c, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}
	templates, err := c.ListTemplates(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if wantJSON(cmd) {
		return writeJSON(out, templates)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROCESS\tBASE\tLEAD\tMATERIALS")
	for _, t := range templates {
		materials := make([]string, 0, len(t.Materials))
		for name, mult := range t.Materials {
			materials = append(materials, fmt.Sprintf("%s(x%.2f)", name, mult))
		}
		sort.Strings(materials)
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%dd\t%s\n", t.ID, t.Process, t.BasePrice, t.BaseLeadTimeDays, strings.Join(materials, ", "))
	}
	return tw.Flush()
}
