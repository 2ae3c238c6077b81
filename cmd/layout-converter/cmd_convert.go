package main

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"layout-converter/internal/convert"
	"layout-converter/internal/mapping"
	"layout-converter/internal/metrics"
)

var (
	convertJobPath   string
	convertLayout    string
	convertOutDir    string
	convertReconcile bool
	convertStdout    bool
	convertDebug     bool
)

// convertCmd writes the output file for an input file
var convertCmd = &cobra.Command{
	Use:   "convert <input-file>",
	Short: "Convert an input file into the configured layout",
	Long: `Maps the input columns (guessing, then applying the job's column overrides),
validates the output schema and writes the converted file.

The schema comes from the job file or, with --layout, from the layout store.
A schema with validation errors produces no output. Bad cells and rows never
stop a conversion; they are reported as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertJobPath, "job", "", "Job file with column overrides and output schema")
	convertCmd.Flags().StringVar(&convertLayout, "layout", "", "Use the stored layout with this name as output schema")
	convertCmd.Flags().StringVarP(&convertOutDir, "out", "o", ".", "Output directory")
	convertCmd.Flags().BoolVar(&convertReconcile, "reconcile", false, "Reconcile the schema with the column mapping before converting")
	convertCmd.Flags().BoolVar(&convertStdout, "stdout", false, "Write the output to stdout instead of a file")
	convertCmd.Flags().BoolVar(&convertDebug, "debug", false, "Dump the column mapping and schema to stderr")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if convertJobPath == "" && convertLayout == "" {
		return errors.New("either --job or --layout is required")
	}

	job := &mapping.JobFile{}

	if convertJobPath != "" {
		var err error
		if job, err = mapping.LoadFile(convertJobPath); err != nil {
			return err
		}
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if convertLayout != "" {
		doc, err := st.Load(ctx, convertLayout)
		if err != nil {
			return err
		}

		job.Output = doc.OutputConfig
	}

	cat, err := loadCatalog(ctx, st)
	if err != nil {
		return err
	}

	input, err := readInput(args[0])
	if err != nil {
		return err
	}

	t, err := buildMapping(input.Headers, input.Sample(), cat, job.Columns)
	if err != nil {
		return err
	}

	cfg := job.Output
	if convertReconcile {
		cfg = mapping.Reconcile(cfg, t, mapping.ReconcileOptions{})
	}

	if convertDebug {
		spew.Fdump(cmd.ErrOrStderr(), t.Columns(), cfg)
	}

	policy, err := settings.MaskPolicy()
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	engine := convert.NewEngine(
		convert.WithLogger(logger),
		convert.WithMaskPolicy(policy),
		convert.WithWarningLimit(settings.Conversion.WarningLimit),
		convert.WithFieldNames(cat.Name),
		convert.WithMetrics(recorder),
	)

	res, convErr := engine.Convert(convert.Input{
		Table:      input,
		Mapping:    t,
		Config:     cfg,
		SourceName: args[0],
	})

	if path := settings.Metrics.Textfile; path != "" {
		if err := recorder.WriteToTextfile(path); err != nil {
			logger.Warn("failed to write metrics", zap.String("path", path), zap.Error(err))
		}
	}

	var verr *convert.ValidationError
	if errors.As(convErr, &verr) {
		printDiagnostics(cmd.ErrOrStderr(), &verr.Diagnostics)
		return fmt.Errorf("output schema %q has %d errors", cfg.Name, len(verr.Diagnostics.Errors))
	}

	if convErr != nil {
		return convErr
	}

	printDiagnostics(cmd.ErrOrStderr(), &res.Diagnostics)

	if convertStdout {
		_, err := cmd.OutOrStdout().Write(res.Data)
		return err
	}

	path, err := convert.WriteResult(res, convertOutDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d rows, %d warnings)\n",
		titleStyle.Render("written"), path, res.Rows, len(res.Diagnostics.Warnings))

	return nil
}
