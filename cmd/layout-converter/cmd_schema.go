package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"layout-converter/internal/mapping"
)

var (
	schemaInput  string
	schemaFormat string
	schemaWrite  bool
)

// schemaCmd groups the job file schema commands
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Reconcile and validate job file schemas",
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate <job-file>",
	Short: "Report schema problems that would block a conversion",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemaValidate,
}

var schemaReconcileCmd = &cobra.Command{
	Use:   "reconcile <job-file>",
	Short: "Bring the output schema in line with the column mapping",
	Long: `Adds a field for every newly mapped column, drops fields whose columns or
required inputs are gone, adds or strips fixed-width properties to match the
format and renumbers the fields. The result is printed, or written back to the
job file with --write.`,
	Args: cobra.ExactArgs(1),
	RunE: runSchemaReconcile,
}

func init() {
	schemaCmd.PersistentFlags().StringVar(&schemaInput, "input", "", "Take headers and sample values from this input file instead of the job's columns")
	schemaReconcileCmd.Flags().StringVar(&schemaFormat, "format", "", "Switch the output format: fixedWidth, delimited")
	schemaReconcileCmd.Flags().BoolVarP(&schemaWrite, "write", "w", false, "Write the result back to the job file")

	schemaCmd.AddCommand(schemaValidateCmd, schemaReconcileCmd)
}

// loadJob reads a job file and builds its column mapping.
func loadJob(ctx context.Context, path string) (*mapping.JobFile, *mapping.Table, error) {
	job, err := mapping.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	st, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	cat, err := loadCatalog(ctx, st)
	if err != nil {
		return nil, nil, err
	}

	headers, sample := jobHeaders(job), map[string]string(nil)

	if schemaInput != "" {
		input, err := readInput(schemaInput)
		if err != nil {
			return nil, nil, err
		}

		headers, sample = input.Headers, input.Sample()
	}

	t, err := buildMapping(headers, sample, cat, job.Columns)
	if err != nil {
		return nil, nil, err
	}

	return job, t, nil
}

func runSchemaValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	job, t, err := loadJob(ctx, args[0])
	if err != nil {
		return err
	}

	diags := mapping.Validate(job.Output, t)
	printDiagnostics(cmd.ErrOrStderr(), diags)

	if diags.HasErrors() {
		return fmt.Errorf("schema %q has %d errors", job.Output.Name, len(diags.Errors))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "schema %q is valid: %d fields", job.Output.Name, len(job.Output.Fields))

	if n := job.Output.LineLength(); n > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", %d characters per line", n)
	}

	fmt.Fprintln(cmd.OutOrStdout())

	return nil
}

func runSchemaReconcile(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	job, t, err := loadJob(ctx, args[0])
	if err != nil {
		return err
	}

	if schemaFormat != "" {
		format := mapping.Format(schemaFormat)
		if !format.IsValid() {
			return fmt.Errorf("unknown format %q", schemaFormat)
		}

		job.Output.Format = format
		if format == mapping.FormatDelimited && job.Output.Delimiter == "" {
			job.Output.Delimiter = mapping.NewOutputConfig(format).Delimiter
		}
	}

	job.Output = mapping.Reconcile(job.Output, t, mapping.ReconcileOptions{})
	job.Columns = mapping.ColumnSpecs(t)

	if schemaWrite {
		if err := mapping.WriteFile(job, args[0]); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "job file updated:", args[0])

		return nil
	}

	data, err := mapping.Marshal(job)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
