package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"layout-converter/internal/mapping"
	"layout-converter/internal/match"
)

var (
	guessJobPath string
	guessFormat  string
	guessName    string
)

// guessCmd proposes a column mapping for an input file
var guessCmd = &cobra.Command{
	Use:   "guess <input-file>",
	Short: "Propose column mappings for an input file",
	Long: `Reads the headers and first row of the input, guesses the catalog field and
data type of every column and prints the result.

With --write-job the mapping is pinned in a job file together with an output
schema holding one field per mapped column, ready for review.`,
	Args: cobra.ExactArgs(1),
	RunE: runGuess,
}

func init() {
	guessCmd.Flags().StringVar(&guessJobPath, "write-job", "", "Write a job file with the proposed mapping and schema")
	guessCmd.Flags().StringVar(&guessFormat, "format", string(mapping.FormatFixedWidth), "Output format of the proposed schema: fixedWidth, delimited")
	guessCmd.Flags().StringVar(&guessName, "name", "", "Name of the proposed schema")
}

func runGuess(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	format := mapping.Format(guessFormat)
	if !format.IsValid() {
		return fmt.Errorf("unknown format %q", guessFormat)
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := loadCatalog(ctx, st)
	if err != nil {
		return err
	}

	input, err := readInput(args[0])
	if err != nil {
		return err
	}

	engine := match.NewEngine(cat)
	sample := input.Sample()
	t := mapping.NewTable(input.Headers, sample, engine)

	rows := make([][]string, 0, t.Len())

	for _, c := range t.Columns() {
		g := engine.Guess(c.OriginalHeader, sample[c.OriginalHeader])

		field := c.FieldID
		if field == "" {
			field = mutedStyle.Render("-")
		}

		why := g.FieldReason
		if g.FieldID != "" && c.FieldID == "" {
			why = "claimed by an earlier column"
		}

		rows = append(rows, []string{
			c.OriginalHeader, field, c.DataType.String(), strconv.FormatBool(c.RemoveMask), why, g.TypeReason,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s: %d columns, %d rows", args[0], len(input.Headers), len(input.Rows))))
	renderTable(out, []string{"Header", "Field", "Type", "Remove mask", "Field match", "Type match"}, rows)

	if guessJobPath == "" {
		return nil
	}

	cfg := mapping.NewOutputConfig(format)
	cfg.Name = guessName
	cfg = mapping.Reconcile(cfg, t, mapping.ReconcileOptions{})

	job := &mapping.JobFile{Version: "1", Columns: mapping.ColumnSpecs(t), Output: cfg}
	if err := mapping.WriteFile(job, guessJobPath); err != nil {
		return err
	}

	logger.Info("job file written",
		zap.String("path", guessJobPath),
		zap.Int("fields", len(cfg.Fields)))
	fmt.Fprintln(out, "job file written to", guessJobPath)

	return nil
}
