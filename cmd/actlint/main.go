package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/actlint/pkg/document"
	"github.com/ormasoftchile/actlint/pkg/schema"
	"github.com/ormasoftchile/actlint/pkg/validate"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	flagKind    string
	flagFormat  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "actlint [file ...]",
	Short: "Validator for GitHub Action and Workflow YAML files",
	Long: "actlint — checks action and workflow definitions against their schemas\n" +
		"and reports every problem with an exact path into the document.",
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.Flags().StringVarP(&flagKind, "kind", "k", "", "force document kind: action or workflow (default: by file name)")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "output format: text or json")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "explain how each file is being treated")
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("unknown format %q — use text or json", flagFormat)
	}

	failed := 0
	for _, path := range args {
		kind, err := kindFor(path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		src := string(data)

		if flagVerbose {
			noun := "a Workflow"
			if kind == validate.KindAction {
				noun = "an Action"
			}
			fmt.Fprintf(os.Stderr, "Treating %s as %s definition\n", path, noun)
		}

		state := validate.ValidateSource(src, kind)
		if !state.IsValid() {
			failed++
		}
		if err := printState(path, src, state); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

// kindFor picks a document kind for a file: the --kind flag wins,
// otherwise action.yml / action.yaml is an action and everything else
// is a workflow.
func kindFor(path string) (validate.DocumentKind, error) {
	switch flagKind {
	case "":
	case "action":
		return validate.KindAction, nil
	case "workflow":
		return validate.KindWorkflow, nil
	default:
		return "", fmt.Errorf("unknown kind %q — use action or workflow", flagKind)
	}
	switch filepath.Base(path) {
	case "action.yml", "action.yaml":
		return validate.KindAction, nil
	}
	return validate.KindWorkflow, nil
}

func printState(path, src string, state validate.ValidationState) error {
	if flagFormat == "json" {
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if state.IsValid() {
		fmt.Printf("✓ %s is valid\n", path)
		return nil
	}

	fmt.Fprintf(os.Stderr, "%s: %d error(s)\n", path, len(state.Errors))
	doc, _ := document.Parse(src)
	for i, e := range state.Errors {
		fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, formatError(doc, e, "     "))
	}
	return nil
}

// formatError renders one validation error for the terminal, with a
// source position when one can be found for the error's path.
func formatError(doc *document.Document, e validate.ValidationError, indent string) string {
	switch v := e.(type) {
	case validate.ParseError:
		m := v.Meta
		if m.Location != nil {
			return fmt.Sprintf("[%s] %s (line %d, column %d)\n%s%s",
				m.Code, m.Title, m.Location.Line, m.Location.Column, indent, m.Detail)
		}
		return fmt.Sprintf("[%s] %s\n%s%s", m.Code, m.Title, indent, m.Detail)

	case validate.SchemaError:
		var b strings.Builder
		fmt.Fprintf(&b, "[%s] %s", v.Meta.Code, v.Meta.Title)
		if v.Meta.Path != "" {
			fmt.Fprintf(&b, "\n%sat: %s", indent, v.Meta.Path)
			if doc != nil {
				if loc, ok := doc.Locate(v.Meta.Path); ok {
					fmt.Fprintf(&b, " (line %d, column %d)", loc.Line, loc.Column)
				}
			}
		}
		if v.Meta.Detail != "" {
			fmt.Fprintf(&b, "\n%s%s", indent, v.Meta.Detail)
		}
		for _, st := range v.States {
			for _, nested := range st.Errors {
				fmt.Fprintf(&b, "\n%s- %s", indent, formatError(nil, nested, indent+"  "))
			}
		}
		return b.String()

	default:
		return fmt.Sprintf("%v", e)
	}
}

// --- schema ---

var schemaCmd = &cobra.Command{
	Use:   "schema [action|workflow]",
	Short: "Print the JSON Schema for a document kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		switch args[0] {
		case "action":
			data, err = schema.GenerateActionSchema()
		case "workflow":
			data, err = schema.GenerateWorkflowSchema()
		default:
			return fmt.Errorf("unknown schema %q — use action or workflow", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("actlint %s (%s)\n", version, commit)
	},
}
