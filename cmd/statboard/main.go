package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/statboard/config"
	"github.com/spektr-org/statboard/dataset"
	"github.com/spektr-org/statboard/engine"
	"github.com/spektr-org/statboard/helpers"
	"github.com/spektr-org/statboard/schema"
	"github.com/spektr-org/statboard/source"
)

// ============================================================================
// STATBOARD CLI — Charts and statistics for a database table
// ============================================================================

const version = "0.1.0"

// app carries the state shared by all subcommands.
type app struct {
	envFile  string
	filePath string
	format   string
	outFile  string

	cfg    *config.Config
	logger *zap.SugaredLogger
	conn   *source.Connection
}

func main() {
	a := &app{}
	if err := a.rootCmd().Execute(); err != nil {
		fatalf("%v", err)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "statboard",
		Short:   "Statboard — charts and summary statistics for any table",
		Version: version,
		Long: `Statboard — charts and summary statistics for any table

Data comes from the configured database (MAIN_TABLE over DB_DRIVER/DB_DSN)
or from a CSV file with --file.

Examples:
  statboard tables
  statboard table 0 --columns region,revenue --format pretty
  statboard histogram revenue --format png --out revenue.png
  statboard summary revenue --format html
  statboard regression units revenue --format csv
  statboard discover --file sales.csv --format pretty`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			a.teardown()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", "", "dotenv file to load (default .env)")
	pf.StringVar(&a.filePath, "file", "", "CSV file to use instead of MAIN_TABLE")
	pf.StringVar(&a.format, "format", "json", "output format: json, pretty, csv, png, html")
	pf.StringVar(&a.outFile, "out", "", "write output to file instead of stdout")

	root.AddCommand(
		a.tablesCmd(),
		a.tableCmd(),
		a.histogramCmd(),
		a.summaryCmd(),
		a.regressionCmd(),
		a.discoverCmd(),
	)
	return root
}

// ============================================================================
// SUBCOMMANDS
// ============================================================================

func (a *app) tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the configured tables (TABLE_OPTIONS) with their indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			type entry struct {
				Index int    `json:"index"`
				Name  string `json:"name"`
			}
			out := []entry{}
			for i, t := range a.tableRenderer().Tables() {
				out = append(out, entry{Index: i, Name: t})
			}
			return a.output(func(w io.Writer) error { return writeJSON(w, out, a.format) })
		},
	}
}

func (a *app) tableCmd() *cobra.Command {
	var columns []string
	cmd := &cobra.Command{
		Use:   "table <index>",
		Short: "Render the top rows of a configured table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("table index %q is not a number", args[0])
			}
			if err := a.connect(); err != nil {
				return err
			}
			req := engine.Request{Kind: engine.RequestTable, Table: &index, Columns: columns}
			return a.run(cmd.Context(), req, nil, engine.WithTableRenderer(a.tableRenderer()))
		},
	}
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "show only these columns, in order")
	return cmd
}

func (a *app) histogramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "histogram <column>",
		Short: "Distribution of one column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOnMain(cmd.Context(), engine.Request{Kind: engine.RequestHistogram, Column: args[0]})
		},
	}
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <column>",
		Short: "Summary statistics of one numeric column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOnMain(cmd.Context(), engine.Request{Kind: engine.RequestSummary, Column: args[0]})
		},
	}
}

func (a *app) regressionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regression <x> <y>",
		Short: "Linear regression of y on x with the fitted line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOnMain(cmd.Context(), engine.Request{Kind: engine.RequestRegression, X: args[0], Y: args[1]})
		},
	}
}

func (a *app) discoverCmd() *cobra.Command {
	var table int
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Print the detected column kinds of the main dataset or a configured table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ds *dataset.Dataset
			var err error
			if cmd.Flags().Changed("table") {
				ds, err = a.configuredTable(cmd.Context(), table)
			} else {
				ds, err = a.mainDataset(cmd.Context())
			}
			if err != nil {
				return err
			}
			sch := schema.Discover(ds)
			a.logger.Infof("🔍 Auto-Detect: %d columns, %d numeric", len(sch.Columns), len(sch.NumericColumns()))
			return a.output(func(w io.Writer) error { return writeJSON(w, sch, a.format) })
		},
	}
	cmd.Flags().IntVar(&table, "table", 0, "inspect the configured table at this index instead")
	return cmd
}

// ============================================================================
// PLUMBING
// ============================================================================

func (a *app) setup() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.logger = helpers.NewLogger(cfg.LogLevel)
	if cfg.Source == "" {
		a.logger.Debug("⚙️ No dotenv file found, using environment and defaults")
	} else {
		a.logger.Debugf("⚙️ Config loaded from %s", cfg.Source)
	}
	return nil
}

func (a *app) teardown() {
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Warnf("⚠️ Closing database: %v", err)
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// connect opens the configured database once.
func (a *app) connect() error {
	if a.conn != nil {
		return nil
	}
	conn, err := source.Open(a.cfg.Driver, a.cfg.DSN, a.cfg.CacheTTL)
	if err != nil {
		return err
	}
	a.conn = conn
	return nil
}

// tableRenderer serves TABLE_OPTIONS. Listing needs no connection, so the
// querier is only attached once connect has run.
func (a *app) tableRenderer() *engine.TableRenderer {
	var q source.Querier
	var d source.Dialect
	if a.conn != nil {
		q, d = a.conn.Querier, a.conn.Dialect
	}
	return engine.NewTableRenderer(a.cfg.Tables(), q, d, engine.WithLogger(a.logger))
}

// configuredTable fetches the top rows of the table at index. Unlike the
// table command, an index outside TABLE_OPTIONS is an *engine.IndexError.
func (a *app) configuredTable(ctx context.Context, index int) (*dataset.Dataset, error) {
	if _, ok := a.tableRenderer().Table(&index); ok {
		if err := a.connect(); err != nil {
			return nil, err
		}
	}
	ds, err := a.tableRenderer().Fetch(ctx, index)
	if err != nil {
		return nil, err
	}
	a.logger.Infof("📊 Loaded %d rows from table %d", ds.Len(), index)
	return ds, nil
}

// mainDataset loads --file when given, else the top rows of MAIN_TABLE.
func (a *app) mainDataset(ctx context.Context) (*dataset.Dataset, error) {
	if a.filePath != "" {
		f, err := os.Open(a.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		defer f.Close()
		ds, err := helpers.ReadCSV(f)
		if err != nil {
			return nil, err
		}
		a.logger.Infof("📊 Parsed %d rows from %s", ds.Len(), a.filePath)
		return ds, nil
	}

	if a.cfg.MainTable == "" {
		return nil, fmt.Errorf("no data: set MAIN_TABLE or pass --file")
	}
	if err := a.connect(); err != nil {
		return nil, err
	}
	ds, err := source.FetchTop(ctx, a.conn.Querier, a.conn.Dialect, a.cfg.MainTable)
	if err != nil {
		return nil, err
	}
	a.logger.Infof("📊 Loaded %d rows from %s", ds.Len(), a.cfg.MainTable)
	return ds, nil
}

func (a *app) runOnMain(ctx context.Context, req engine.Request) error {
	ds, err := a.mainDataset(ctx)
	if err != nil {
		return err
	}
	return a.run(ctx, req, ds)
}

func (a *app) run(ctx context.Context, req engine.Request, ds *dataset.Dataset, opts ...engine.Option) error {
	opts = append([]engine.Option{engine.WithLogger(a.logger)}, opts...)
	res, err := engine.Execute(ctx, req, ds, opts...)
	if err != nil {
		return err
	}
	return a.output(func(w io.Writer) error { return writeResult(w, res, a.format) })
}

// output sends write to --out or stdout.
func (a *app) output(write func(io.Writer) error) error {
	if a.outFile == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(a.outFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.logger.Infof("📄 Output written to %s", a.outFile)
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
