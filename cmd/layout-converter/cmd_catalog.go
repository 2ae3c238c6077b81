package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"layout-converter/internal/catalog"
)

var (
	catalogListGroup string
	catalogAddGroup  string
	catalogID        string
	catalogName      string
	catalogComment   string
	catalogRetain    bool
)

// catalogCmd groups the field catalog commands
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and extend the field catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog fields",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom field",
	Long: `Adds a custom field to the catalog. Without --id the id is derived from the
name ("Código Órgão" becomes codigo_orgao). Only retained fields are stored.`,
	Args: cobra.NoArgs,
	RunE: runCatalogAdd,
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a custom field",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogRemove,
}

func init() {
	catalogListCmd.Flags().StringVar(&catalogListGroup, "group", "", "Only list fields of this group")

	catalogAddCmd.Flags().StringVar(&catalogName, "name", "", "Display name (required)")
	catalogAddCmd.Flags().StringVar(&catalogID, "id", "", "Field id (default: derived from the name)")
	catalogAddCmd.Flags().StringVar(&catalogAddGroup, "group", catalog.GroupCustom, "Group")
	catalogAddCmd.Flags().StringVar(&catalogComment, "comment", "", "Free text comment")
	catalogAddCmd.Flags().BoolVar(&catalogRetain, "retain", true, "Persist the field")
	_ = catalogAddCmd.MarkFlagRequired("name")

	catalogCmd.AddCommand(catalogListCmd, catalogAddCmd, catalogRemoveCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := loadCatalog(ctx, st)
	if err != nil {
		return err
	}

	var rows [][]string

	for _, f := range cat.All() {
		if catalogListGroup != "" && f.Group != catalogListGroup {
			continue
		}

		rows = append(rows, []string{f.ID, f.Name, f.Group, strconv.FormatBool(f.Core), f.Comment})
	}

	renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Group", "Core", "Comment"}, rows)

	return nil
}

func runCatalogAdd(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := loadCatalog(ctx, st)
	if err != nil {
		return err
	}

	id := catalogID
	if id == "" {
		id = catalog.Slug(catalogName)
	}

	f := catalog.Field{ID: id, Name: catalogName, Group: catalogAddGroup, Comment: catalogComment, Retained: catalogRetain}
	if err := cat.Add(f); err != nil {
		return err
	}

	if !catalogRetain {
		logger.Warn("field is not retained and will not be stored", zap.String("id", id))
		return nil
	}

	if err := st.SaveCustomFields(ctx, cat.Custom()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "added field %s (%s)\n", id, catalogName)

	return nil
}

func runCatalogRemove(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := loadCatalog(ctx, st)
	if err != nil {
		return err
	}

	if err := cat.Remove(args[0]); err != nil {
		return err
	}

	if err := st.SaveCustomFields(ctx, cat.Custom()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "removed field", args[0])

	return nil
}
