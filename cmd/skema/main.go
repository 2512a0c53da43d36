package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/reoring/skema"
	"github.com/reoring/skema/builder"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "skema CLI\n\n"+
		"Usage:\n"+
		"  skema validate [-type RootType] [-config path] [-v] <json-or-path> <schema-path>\n\n"+
		"  <schema-path> is a YAML document loaded via builder.LoadRepositoryYAML.\n"+
		"  <json-or-path> is either a literal JSON string or a path to a .json file.")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	rootType := fs.String("type", "", "root type name to validate against")
	configPath := fs.String("config", "", "optional YAML config supplying defaults")
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	log := newLogger(*verbose)

	if *configPath != "" {
		v := viper.New()
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			fatalf("reading config %s: %v", *configPath, err)
		}
		if *rootType == "" {
			*rootType = v.GetString("type")
		}
		log.Debug().Str("config", *configPath).Msg("loaded config")
	}

	rest := fs.Args()
	if len(rest) != 2 {
		usage()
		os.Exit(2)
	}
	jsonOrPath, schemaPath := rest[0], rest[1]

	log.Debug().Str("schema", schemaPath).Msg("loading schema")
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		fatalf("reading schema %s: %v", schemaPath, err)
	}
	repo, err := builder.LoadRepositoryYAML(schemaBytes)
	if err != nil {
		fatalf("loading schema %s: %v", schemaPath, err)
	}

	log.Debug().Msg("reading input")
	input := readJSONInput(jsonOrPath, log)

	log.Debug().Str("type", *rootType).Msg("validating")
	issues := skema.Validate(input, repo, *rootType)
	if len(issues) == 0 {
		log.Debug().Msg("valid")
		os.Exit(0)
	}

	for _, iss := range issues {
		fmt.Printf("%s\t%s\t%s\n", iss.Path, iss.Code, iss.Message)
	}
	log.Error().Int("count", len(issues)).Msg("validation failed")
	os.Exit(1)
}

// readJSONInput treats jsonOrPath as a file path when it names an existing
// file, and as a literal JSON string otherwise.
func readJSONInput(jsonOrPath string, log zerolog.Logger) string {
	if data, err := os.ReadFile(jsonOrPath); err == nil {
		log.Debug().Str("path", jsonOrPath).Msg("read input from file")
		return string(data)
	}
	return jsonOrPath
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(2)
}
