package config

// IParser is the interface for configuration interpretation
//
//go:generate mockery --name=IParser --output=./mocks
type IParser interface {
	ParseFile(path string) (*Document, error)
}
