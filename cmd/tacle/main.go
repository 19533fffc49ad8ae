package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tacle-dev/tacle/internal/solutions"
	"github.com/tacle-dev/tacle/pkg/tacle"
	"github.com/tacle-dev/tacle/pkg/version"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "learn":
		runLearn(os.Args[2:])
	case "version":
		fmt.Println(version.Version())
	default:
		usage()
		os.Exit(2)
	}
}

func runLearn(args []string) {
	fs := flag.NewFlagSet("learn", flag.ExitOnError)
	filter := fs.String("filter", "", "comma-separated filter_constraints patterns (glob, class shorthand, or <formula>/<constraint>)")
	sheet := fs.String("sheet", "", "worksheet name for .xlsx/.xlsm input; defaults to the first sheet")
	jsonOut := fs.Bool("json", false, "print constraints as JSON instead of one formula per line")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tacle learn [--filter PATTERNS] [--sheet NAME] [--json] <file.csv|file.xlsx>")
		os.Exit(2)
	}
	path := fs.Arg(0)
	patterns := splitPatterns(*filter)

	var (
		instances []solutions.ConstraintInstance
		err       error
	)
	switch ext := strings.ToLower(path[strings.LastIndexByte(path, '.')+1:]); ext {
	case "csv", "tsv":
		instances, err = tacle.LearnFromCSV(path, patterns)
	case "xlsx", "xlsm", "xltx", "xltm":
		instances, err = tacle.LearnFromXLSX(path, patterns, tacle.WithSheet(*sheet))
	default:
		fmt.Fprintf(os.Stderr, "unsupported file extension: %q\n", ext)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "learn failed: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		printJSON(instances)
		return
	}
	for _, inst := range instances {
		fmt.Println(inst.Formula())
	}
}

func printJSON(instances []solutions.ConstraintInstance) {
	type view struct {
		Template string `json:"template"`
		Formula  string `json:"formula"`
	}
	views := make([]view, len(instances))
	for i, inst := range instances {
		views[i] = view{Template: inst.Template.Name, Formula: inst.Formula()}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(views); err != nil {
		fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
		os.Exit(1)
	}
}

func splitPatterns(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tacle <learn|version> [flags] [args]")
}
