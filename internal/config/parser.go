package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"dropletform/pkg/logging"
)

// rootSchema describes the three block kinds the interpreter understands.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "variable", LabelNames: []string{"name"}},
		{Type: "provider", LabelNames: []string{"name"}},
		{Type: "resource", LabelNames: []string{"type", "name"}},
	},
}

// Parser interprets a parsed HCL configuration into a Document.
type Parser struct {
	logger logging.Logger
}

// NewDefaultParser creates a new instance of Parser with the default logger
func NewDefaultParser() *Parser {
	return NewParserWithLogger(
		logging.NewDefaultLogger(),
	)
}

// NewParserWithLogger creates a new instance of Parser with a specific logger
func NewParserWithLogger(logger logging.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// ParseFile reads and interprets an HCL configuration file.
func (p Parser) ParseFile(path string) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &MalformedDocumentError{Path: path, Underlying: diags}
	}

	if file == nil || file.Body == nil {
		return nil, &MalformedDocumentError{Path: path, Underlying: fmt.Errorf("parsed file is empty")}
	}

	return p.interpret(path, file.Body)
}

// interpret walks the top-level blocks and accumulates them into a fresh
// Document. Dispatch is a plain switch per block kind; duplicate
// variable and provider declarations overwrite earlier ones (last write
// wins, matching plain-map accumulation).
func (p Parser) interpret(path string, body hcl.Body) (*Document, error) {
	content, diags := body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, &MalformedDocumentError{Path: path, Underlying: diags}
	}

	doc := &Document{Variables: map[string]string{}}
	for _, block := range content.Blocks {
		var err error
		switch block.Type {
		case "variable":
			err = p.interpretVariable(doc, block)
		case "provider":
			err = p.interpretProvider(doc, block)
		case "resource":
			err = p.interpretResource(doc, block)
		}
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// interpretVariable records the block's "default" value into the variable
// table. A block without a default contributes no entry, so a later
// var.<name> reference to it fails resolution.
func (p Parser) interpretVariable(doc *Document, block *hcl.Block) error {
	name := block.Labels[0]

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return &MalformedDocumentError{Underlying: diags}
	}

	attr, ok := attrs["default"]
	if !ok {
		p.logger.Debug("variable %q has no default, skipping", name)
		return nil
	}

	value, err := literalString(attr.Expr)
	if err != nil {
		return &MalformedDocumentError{Underlying: fmt.Errorf("variable %q default: %w", name, err)}
	}

	doc.Variables[name] = value
	p.logger.Info("variable %s = %s", name, value)
	return nil
}

// interpretProvider validates the provider name and stores the raw token
// expression for later resolution.
func (p Parser) interpretProvider(doc *Document, block *hcl.Block) error {
	name := block.Labels[0]
	if name != ProviderName {
		return &UnsupportedProviderError{Name: name}
	}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return &MalformedDocumentError{Underlying: diags}
	}

	if doc.Provider != nil {
		p.logger.Warn("provider %q redeclared, last declaration wins", name)
	}

	spec := &ProviderSpec{Name: name}
	if attr, ok := attrs["token"]; ok {
		spec.Token = attr.Expr
	}
	doc.Provider = spec
	return nil
}

// interpretResource copies the attributes of a supported resource block
// into the droplet config. Resource blocks of any other type are skipped
// without error; only one kind of resource is modeled.
func (p Parser) interpretResource(doc *Document, block *hcl.Block) error {
	resType, resName := block.Labels[0], block.Labels[1]
	if resType != ResourceType {
		p.logger.Debug("ignoring resource %q %q", resType, resName)
		return nil
	}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return &MalformedDocumentError{Underlying: diags}
	}

	if doc.Droplet == nil {
		doc.Droplet = &DropletConfig{Type: resType, Attrs: map[string]hcl.Expression{}}
	}
	doc.Droplet.Name = resName
	for name, attr := range attrs {
		doc.Droplet.Attrs[name] = attr.Expr
	}

	p.logger.Info("found %s resource %q", ResourceType, resName)
	return nil
}
