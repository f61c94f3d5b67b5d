// Command fieldcheck validates YAML records against a YAML field schema.
//
//	fieldcheck --schema fields.yaml --data records.yaml [--output bson|sql --table articles]
//
// Each record is a mapping of field names to values. Every record is checked
// with the schema's fields and encoded as a storage row; failures are
// reported per record and the command exits with status 1 if any record
// failed. Settings are read from FIELDKIT_* environment variables and an
// optional .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"

	"github.com/urfave/cli/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/fieldkit/pkg/config"
	"github.com/dmitrymomot/fieldkit/pkg/field"
	"github.com/dmitrymomot/fieldkit/pkg/logger"
	"github.com/dmitrymomot/fieldkit/pkg/schema"
	"github.com/dmitrymomot/fieldkit/pkg/storage"
	"github.com/dmitrymomot/fieldkit/pkg/validator"
)

const (
	exitOK = iota
	exitInvalid
	exitUsage
)

// Output formats for accepted records.
const (
	outputSummary = "summary"
	outputBSON    = "bson"
	outputSQL     = "sql"
)

var errRecordsRejected = errors.New("one or more records were rejected")

// document is the record type every schema field is bound to.
type document struct {
	field.Record

	index  int
	source string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command with args (without the program name) and maps the
// outcome to an exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newCommand(stdout, stderr)
	err := cmd.Run(ctx, append([]string{cmd.Name}, args...))
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errRecordsRejected):
		return exitInvalid
	}
	fmt.Fprintf(stderr, "%s: %v\n", cmd.Name, err)
	return exitUsage
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "fieldcheck",
		Usage:     "Validate YAML records against a field schema",
		UsageText: "fieldcheck --schema fields.yaml --data records.yaml [--output summary|bson|sql]",
		Writer:    stdout,
		ErrWriter: stderr,
		// Exit codes are decided by run.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "schema",
				Aliases: []string{"s"},
				Usage:   "path to the field schema (default $FIELDKIT_SCHEMA_PATH)",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "path to the YAML records to check",
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "optional .env file to load before reading settings",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   outputSummary,
				Usage:   "how accepted records are printed: summary, bson or sql",
			},
			&cli.StringFlag{
				Name:  "table",
				Value: "records",
				Usage: "table name used by --output sql",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return check(ctx, cmd, stdout, stderr)
		},
	}
}

func check(ctx context.Context, cmd *cli.Command, stdout, stderr io.Writer) error {
	output := cmd.String("output")
	if !slices.Contains([]string{outputSummary, outputBSON, outputSQL}, output) {
		return fmt.Errorf("unknown output format %q, valid formats are: %s, %s, %s",
			output, outputSummary, outputBSON, outputSQL)
	}

	var envFiles []string
	if f := cmd.String("env"); f != "" {
		envFiles = append(envFiles, f)
	}
	if err := config.LoadEnv(envFiles...); err != nil {
		return err
	}
	settings, err := config.Load()
	if err != nil {
		return err
	}

	schemaPath, dataPath := cmd.String("schema"), cmd.String("data")
	if schemaPath == "" {
		schemaPath = settings.SchemaPath
	}
	if schemaPath == "" || dataPath == "" {
		return errors.New("both --schema and --data are required")
	}

	log := logger.New(append(settings.LoggerOptions(),
		logger.WithOutput(stderr),
		logger.WithAttr(logger.Component(cmd.Name)),
	)...)

	doc, err := schema.Load(schemaPath)
	if err != nil {
		return fmt.Errorf("load schema %s: %w", schemaPath, err)
	}
	s, err := schema.Build[document](doc,
		field.WithLogger(log),
		field.WithValidateOnWrite(settings.ValidateOnWrite),
	)
	if err != nil {
		return fmt.Errorf("invalid schema %s: %w", schemaPath, err)
	}
	log.DebugContext(ctx, "schema loaded", logger.Path(schemaPath), slog.Int("fields", s.Len()))
	for _, f := range s.Fields() {
		log.DebugContext(ctx, "schema field",
			logger.Field(f.Name()),
			logger.Kind(f.Config().Kind),
			slog.Bool("primary", f.Config().Primary),
		)
	}

	records, err := loadRecords(dataPath)
	if err != nil {
		return fmt.Errorf("load records %s: %w", dataPath, err)
	}
	log.DebugContext(ctx, "records loaded", logger.Path(dataPath), slog.Int("records", len(records)))

	failed := 0
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}

		d := &document{index: i, source: dataPath}
		row, err := encode(s, d, rec)
		if err != nil {
			if !validator.IsValidationError(err) {
				return fmt.Errorf("record %d: %w", i, err)
			}
			failed++
			verrs := validator.ExtractValidationErrors(err)
			log.DebugContext(ctx, "record rejected", logger.Record(i), logger.Errors(errorList(verrs)...))
			fmt.Fprintf(stdout, "record %d: FAIL\n", i)
			for _, verr := range verrs {
				fmt.Fprintf(stdout, "  %s: %s\n", verr.Field, verr.Message)
			}
			continue
		}
		if err := printRow(stdout, i, row, output, cmd.String("table")); err != nil {
			return err
		}
	}

	log.InfoContext(ctx, "check finished", logger.Group("records",
		slog.Int("total", len(records)),
		slog.Int("failed", failed),
	))
	if failed > 0 {
		return errRecordsRejected
	}
	return nil
}

// encode assigns every value of rec to its field on d and encodes d. Unknown
// names and rejected writes are reported together with encoding failures of
// the remaining fields.
func encode(s *schema.Schema[document], d *document, rec map[string]any) (storage.Row, error) {
	var errs validator.ValidationErrors
	for _, name := range slices.Sorted(maps.Keys(rec)) {
		f, ok := s.Field(name)
		if !ok {
			errs.Append(name, errors.New("unknown field"))
			continue
		}
		if err := f.Set(d, rec[name]); err != nil {
			errs.Append(name, err)
		}
	}

	row, err := storage.Encode(d, s.Fields()...)
	if err != nil {
		encErrs := validator.ExtractValidationErrors(err)
		if encErrs == nil {
			return storage.Row{}, err
		}
		for _, e := range encErrs {
			// A field whose write was rejected is reported once.
			if !errs.Has(e.Field) {
				errs.Add(e)
			}
		}
	}
	if !errs.IsEmpty() {
		return storage.Row{}, errs
	}
	return row, nil
}

func printRow(w io.Writer, i int, row storage.Row, output, table string) error {
	switch output {
	case outputBSON:
		data, err := bson.MarshalExtJSON(row.BSON(), false, false)
		if err != nil {
			return fmt.Errorf("record %d: encode bson: %w", i, err)
		}
		fmt.Fprintf(w, "record %d: ok\n  %s\n", i, data)
	case outputSQL:
		fmt.Fprintf(w, "record %d: ok\n  %s\n", i, row.InsertSQL(table))
		args := row.NamedArgs()
		for _, name := range row.Names() {
			fmt.Fprintf(w, "  @%s = %v\n", name, args[name])
		}
	default:
		if pk, ok := row.Primary(); ok {
			fmt.Fprintf(w, "record %d: ok (%d columns, %s=%v)\n", i, row.Len(), pk.Name, pk.Value)
			return nil
		}
		fmt.Fprintf(w, "record %d: ok (%d columns)\n", i, row.Len())
	}
	return nil
}

func errorList(errs validator.ValidationErrors) []error {
	out := make([]error, len(errs))
	for i := range errs {
		out[i] = &errs[i]
	}
	return out
}

func loadRecords(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	return records, nil
}
