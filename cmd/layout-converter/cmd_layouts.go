package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"layout-converter/internal/mapping"
)

var layoutName string

// layoutsCmd groups the stored layout commands
var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "Manage stored output layouts",
}

var layoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored layouts",
	Args:  cobra.NoArgs,
	RunE:  runLayoutsList,
}

var layoutsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored layout as a job file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutsShow,
}

var layoutsSaveCmd = &cobra.Command{
	Use:   "save <job-file>",
	Short: "Store the output schema of a job file",
	Long: `Stores the job's output schema under its name (or --name). Saving an existing
name replaces it and increments its version.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayoutsSave,
}

var layoutsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutsDelete,
}

func init() {
	layoutsSaveCmd.Flags().StringVar(&layoutName, "name", "", "Store under this name instead of the schema's name")

	layoutsCmd.AddCommand(layoutsListCmd, layoutsShowCmd, layoutsSaveCmd, layoutsDeleteCmd)
}

func runLayoutsList(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	list, err := st.List(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{
			s.Name, string(s.Format), strconv.Itoa(s.Fields), strconv.Itoa(s.Version), s.SavedAt.Local().Format(time.DateTime),
		}
	}

	renderTable(cmd.OutOrStdout(), []string{"Name", "Format", "Fields", "Version", "Saved"}, rows)

	return nil
}

func runLayoutsShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	doc, err := st.Load(ctx, args[0])
	if err != nil {
		return err
	}

	data, err := mapping.Marshal(&mapping.JobFile{Version: "1", Output: doc.OutputConfig})
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}

func runLayoutsSave(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	job, err := mapping.LoadFile(args[0])
	if err != nil {
		return err
	}

	cfg := job.Output
	if layoutName != "" {
		cfg.Name = layoutName
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	doc, err := st.Save(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "saved layout %q version %d\n", doc.Name, doc.Version)

	return nil
}

func runLayoutsDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "deleted layout", args[0])

	return nil
}
