package report

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
)

// OutputFormatType defines the format types for the run summary.
type OutputFormatType string

const (
	// OutputFormatTypeJSON represents JSON output format
	OutputFormatTypeJSON OutputFormatType = "JSON"
	// OutputFormatTypeTABLE represents table output format
	OutputFormatTypeTABLE OutputFormatType = "TABLE"
)

// Operation names as shown in summaries.
const (
	OperationApply   = "apply"
	OperationDestroy = "destroy"
)

// Result summarizes a completed lifecycle operation.
type Result struct {
	Operation   string `json:"operation"`
	DropletID   string `json:"droplet_id,omitempty"`
	IPv4Address string `json:"ipv4_address,omitempty"`
	Added       int    `json:"added"`
	Changed     int    `json:"changed"`
	Destroyed   int    `json:"destroyed"`
}

// PrintSummary prints the operation summary using the specified output format.
// Supported formats: "json" (machine-readable) and "table" (human-friendly).
func PrintSummary(result Result, outputFormat OutputFormatType) error {
	switch outputFormat {
	case OutputFormatTypeJSON:
		return printJSONSummary(result)
	case OutputFormatTypeTABLE:
		return printTableSummary(result)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// printJSONSummary prints the summary in JSON format
func printJSONSummary(result Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling summary to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printTableSummary prints the summary in a human-friendly table format
func printTableSummary(result Result) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(writer, "\nOPERATION:\t%s\n\n", result.Operation)
	if result.DropletID != "" {
		fmt.Fprintf(writer, "DROPLET ID:\t%s\n", result.DropletID)
	}
	if result.IPv4Address != "" {
		fmt.Fprintf(writer, "IPV4 ADDRESS:\t%s\n", result.IPv4Address)
	}

	fmt.Fprintln(writer, "")
	fmt.Fprintf(writer, "Summary: %d added, %d changed, %d destroyed\n",
		result.Added, result.Changed, result.Destroyed)

	return writer.Flush()
}

// DefaultPrinter is the default implementation of the summary printer
type DefaultPrinter struct{}

// PrintSummary implements the printer interface
func (p DefaultPrinter) PrintSummary(result Result, format OutputFormatType) error {
	return PrintSummary(result, format)
}
