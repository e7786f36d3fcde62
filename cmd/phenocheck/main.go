package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/dmitrymomot/phenokit"
	"github.com/dmitrymomot/phenokit/pkg/experiment"
	"github.com/dmitrymomot/phenokit/pkg/logger"
	"github.com/dmitrymomot/phenokit/pkg/report"
	"github.com/dmitrymomot/phenokit/pkg/tableschema"
	"github.com/dmitrymomot/phenokit/pkg/tabular"
)

// Exit codes. Strict-mode rejections are distinguished from operational
// failures so shell pipelines can tell "bad data" from "broken run".
const (
	exitOK       = 0
	exitRejected = 1
	exitError    = 2
)

var version = "dev"

var (
	flagSchema = flag.String("schema", "strain_performance", "builtin schema name or path to a schema file (.yml/.yaml/.json)")
	flagInput  = flag.String("input", "", "path to the delimited input file (.csv/.tsv, optionally .gz)")
	flagConfig = flag.String("config", "", "path to an experiment config file; validates every experiment it names")
	flagWork   = flag.Int("workers", 1, "number of validation workers; 1 streams records sequentially")
	flagOut    = flag.String("out", "", "write the run report JSON to this path instead of stdout")
	flagStrict = flag.Bool("strict", false, "exit with status 1 when any record is rejected")
	flagDebug  = flag.Bool("v", false, "enable debug logging")
	flagVer    = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()
	if *flagVer {
		fmt.Printf("phenocheck %s\n", version)
		os.Exit(exitOK)
	}
	os.Exit(run())
}

func run() int {
	level := slog.LevelInfo
	if *flagDebug {
		level = slog.LevelDebug
	}
	log := logger.New(
		logger.WithTextFormatter(),
		logger.WithOutput(os.Stderr),
		logger.WithLevel(level),
	)

	if *flagWork < 1 {
		log.Error("workers must be at least 1", logger.Workers(*flagWork))
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *flagConfig != "" {
		if *flagInput != "" {
			log.Error("-config and -input are mutually exclusive")
			return exitError
		}
		return runCampaign(ctx, log)
	}
	if *flagInput == "" {
		log.Error("missing required -input or -config flag")
		flag.Usage()
		return exitError
	}
	return runInput(ctx, log)
}

// runInput validates a single delimited file against one schema.
func runInput(ctx context.Context, log *slog.Logger) int {
	schema, schemaDigest, err := resolveSchema(*flagSchema)
	if err != nil {
		log.Error("cannot load schema", logger.Schema(*flagSchema), logger.Error(err))
		return exitError
	}

	start := time.Now()
	rep, err := validateFile(ctx, schema, report.Meta{
		SchemaName:   *flagSchema,
		SchemaDigest: schemaDigest,
		Source:       *flagInput,
	}, *flagInput)
	if err != nil {
		log.Error("validation failed", logger.Source(*flagInput), logger.Error(err))
		return exitError
	}

	log.InfoContext(ctx, "validation finished",
		logger.RunID(rep.Meta.RunID),
		logger.Schema(rep.Meta.SchemaName),
		logger.Records(rep.Counts.Records),
		logger.Violations(rep.Counts.Violations),
		logger.Workers(*flagWork),
		logger.Duration(time.Since(start).Round(time.Millisecond)),
	)

	if err := writeJSON(rep, *flagOut); err != nil {
		log.Error("writing report failed", logger.Error(err))
		return exitError
	}

	if *flagStrict && !rep.Clean() {
		log.Warn("records rejected", slog.Int("rejected", rep.Counts.Rejected))
		return exitRejected
	}
	return exitOK
}

// runCampaign validates every experiment named by the config file, each
// against its own schema, and emits one report per experiment keyed by name.
// Relative filenames in the config resolve against the config's directory.
func runCampaign(ctx context.Context, log *slog.Logger) int {
	cfg, err := experiment.LoadConfig(*flagConfig)
	if err != nil {
		log.Error("cannot load experiment config", logger.Source(*flagConfig), logger.Error(err))
		return exitError
	}

	base := filepath.Dir(*flagConfig)
	names := slices.Sorted(maps.Keys(cfg.Experiments))

	start := time.Now()
	reports := make(map[string]*report.Report, len(names))
	rejected := 0
	for _, name := range names {
		spec := cfg.Experiments[name]

		schemaRef := spec.Schema
		if looksLikePath(schemaRef) {
			schemaRef = resolvePath(base, schemaRef)
		}
		schema, schemaDigest, err := resolveSchema(schemaRef)
		if err != nil {
			log.Error("cannot load schema",
				slog.String("experiment", name), logger.Schema(spec.Schema), logger.Error(err))
			return exitError
		}

		src := resolvePath(base, spec.Filename)
		rep, err := validateFile(ctx, schema, report.Meta{
			SchemaName:   spec.Schema,
			SchemaDigest: schemaDigest,
			Source:       src,
		}, src)
		if err != nil {
			log.Error("validation failed",
				slog.String("experiment", name), logger.Source(src), logger.Error(err))
			return exitError
		}
		reports[name] = rep
		rejected += rep.Counts.Rejected

		log.InfoContext(ctx, "experiment validated",
			slog.String("experiment", name),
			logger.RunID(rep.Meta.RunID),
			logger.Schema(rep.Meta.SchemaName),
			logger.Records(rep.Counts.Records),
			logger.Violations(rep.Counts.Violations),
		)
	}

	log.InfoContext(ctx, "campaign finished",
		slog.Int("experiments", len(names)),
		logger.Workers(*flagWork),
		logger.Duration(time.Since(start).Round(time.Millisecond)),
	)

	if err := writeJSON(reports, *flagOut); err != nil {
		log.Error("writing report failed", logger.Error(err))
		return exitError
	}

	if *flagStrict && rejected > 0 {
		log.Warn("records rejected", slog.Int("rejected", rejected))
		return exitRejected
	}
	return exitOK
}

// validateFile streams one delimited file through the validator and returns
// the finished report. With more than one worker the file is read up front
// and validated concurrently.
func validateFile(ctx context.Context, schema *tableschema.Schema, meta report.Meta, path string) (*report.Report, error) {
	rep := report.New(meta)
	if digest, err := report.DigestFile(path); err == nil {
		rep.Meta.SourceDigest = digest
	}

	reader, err := tabular.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if *flagWork > 1 {
		records, err := reader.ReadAll()
		if err != nil {
			return nil, err
		}
		results, err := phenokit.ValidateAll(ctx, schema, records, phenokit.WithWorkers(*flagWork))
		if err != nil {
			return nil, err
		}
		for i, res := range results {
			rep.Add(i, res)
		}
		return rep, nil
	}

	if err := phenokit.ValidateStream(ctx, schema, reader, rep.Sink()); err != nil {
		return nil, err
	}
	return rep, nil
}

// resolveSchema loads either a builtin schema by name or a schema document
// from disk. The digest of a file-based schema pins the report to the exact
// document used; builtin schemata are identified by name alone.
func resolveSchema(name string) (*tableschema.Schema, string, error) {
	if !looksLikePath(name) {
		schema, err := tableschema.Builtin().Get(name)
		return schema, "", err
	}
	schema, err := tableschema.Load(name)
	if err != nil {
		return nil, "", err
	}
	digest, err := report.DigestFile(name)
	if err != nil {
		return nil, "", err
	}
	return schema, digest, nil
}

func looksLikePath(s string) bool {
	if strings.ContainsRune(s, '/') || strings.ContainsRune(s, os.PathSeparator) {
		return true
	}
	for _, ext := range []string{".yml", ".yaml", ".json"} {
		if strings.HasSuffix(s, ext) {
			return true
		}
	}
	return false
}

// resolvePath anchors a relative path from the config document to the
// directory the document lives in.
func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func writeJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
