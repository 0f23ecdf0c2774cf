package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/textgraph/semparse"
	"github.com/textgraph/semparse/internal/domainconfig"
)

const helpText = `semparse interactive REPL

Commands:
  load pos <file>       Load the POS weight table
  load dep <file>       Load the dependency weight table
  load calib <file>     Load the confidence calibration table
  load gaz <file>       Merge a gazetteer file (first-write-wins across loads)
  load config <format> <name> <file>   Merge a domain config overlay (format: json|yaml)
  clearconfigs          Return to ontology-base mode
  debug on|off          Toggle per-build debug traces
  verbose on|off        Toggle logger verbosity
  help                  Show this help message
  exit / quit           Exit the REPL

Any other input is treated as a sentence to parse into a semantic graph.
`

func main() {
	b := semparse.NewBuilder()
	opts := semparse.DefaultBuildOptions()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("semparse — English-to-semantic-graph builder")
	fmt.Println(`Type "help" for available commands.`)
	fmt.Println()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "exit", "quit":
			return

		case "help":
			fmt.Print(helpText)

		case "debug":
			opts.Debug = len(parts) > 1 && parts[1] == "on"
			fmt.Printf("debug tracing %s\n", onOff(opts.Debug))

		case "verbose":
			v := len(parts) > 1 && parts[1] == "on"
			opts.Verbose = v
			b.SetVerbose(v)
			fmt.Printf("verbose logging %s\n", onOff(v))

		case "clearconfigs":
			b.ClearConfigs()
			fmt.Println("domain config registry cleared")

		case "load":
			if len(parts) < 3 {
				fmt.Fprintln(os.Stderr, "usage: load <pos|dep|calib|gaz|config> ...")
				continue
			}
			if err := runLoad(b, parts[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "load error: %v\n", err)
				continue
			}
			fmt.Println("loaded")

		default:
			result, err := b.Build(line, opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "build error: %v\n", err)
				continue
			}
			printResult(result)
		}
	}
}

func runLoad(b *semparse.Builder, args []string) error {
	kind := strings.ToLower(args[0])
	switch kind {
	case "pos":
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		return b.LoadPOSModel(f)

	case "dep":
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		return b.LoadDepModel(f)

	case "calib":
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		return b.LoadCalibration(f)

	case "gaz":
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		return b.LoadGazetteer(f)

	case "config":
		if len(args) < 4 {
			return fmt.Errorf("usage: load config <json|yaml> <name> <file>")
		}
		format, err := parseConfigFormat(args[1])
		if err != nil {
			return err
		}
		f, err := os.Open(args[3])
		if err != nil {
			return err
		}
		defer f.Close()
		conflicts, err := b.LoadDomainConfig(format, args[2], f)
		if err != nil {
			return err
		}
		for _, c := range conflicts {
			fmt.Printf("conflict: %s.%s — %q lost to %q from %s\n", c.Domain, c.Key, c.LosingValue, c.WinningValue, c.Source)
		}
		return nil

	default:
		return fmt.Errorf("unknown load kind %q", kind)
	}
}

func printResult(r *semparse.BuildResult) {
	b, err := json.MarshalIndent(r.Graph, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal error: %v\n", err)
		return
	}
	fmt.Println(string(b))
	fmt.Printf("# %d nodes, version %s, built %s\n", r.Metadata.NodeCount, r.Metadata.Version, r.Metadata.BuildTimestamp)
	if r.Debug != nil {
		fmt.Printf("# stage durations: %v\n", r.Debug.StageDurations)
	}
	if r.AmbiguityReport != nil && len(r.AmbiguityReport.Signals) > 0 {
		fmt.Printf("# %d ambiguity signal(s)\n", len(r.AmbiguityReport.Signals))
	}
}

func parseConfigFormat(s string) (domainconfig.Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return domainconfig.FormatJSON, nil
	case "yaml":
		return domainconfig.FormatYAML, nil
	default:
		return 0, fmt.Errorf("unknown config format %q (want json or yaml)", s)
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
