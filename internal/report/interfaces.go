package report

// IPrinter is the interface for generating run summaries
//
//go:generate mockery --name=IPrinter --output=./mocks
type IPrinter interface {
	PrintSummary(result Result, format OutputFormatType) error
}
