package config

import "github.com/hashicorp/hcl/v2"

const (
	// ProviderName is the single provider this interpreter accepts.
	ProviderName = "digitalocean"

	// ResourceType is the single resource type this interpreter models.
	ResourceType = "digitalocean_droplet"
)

// ProviderSpec holds the declared provider name and the raw, unresolved
// token expression. Token is nil when the provider block declared none;
// that failure surfaces at resolution time, not during interpretation.
type ProviderSpec struct {
	Name  string
	Token hcl.Expression
}

// DropletConfig holds the attributes of the managed droplet resource,
// keyed by attribute name with expressions kept unresolved.
type DropletConfig struct {
	Type  string
	Name  string
	Attrs map[string]hcl.Expression
}

// Document is the in-memory model of one parsed configuration file.
// It is built fresh per parse and never persisted.
type Document struct {
	Variables map[string]string
	Provider  *ProviderSpec
	Droplet   *DropletConfig
}

// ResolveToken resolves the provider token declared in the document.
func (d *Document) ResolveToken() (string, error) {
	if d.Provider == nil || d.Provider.Token == nil {
		return "", &MissingTokenError{}
	}
	return Resolve(d.Provider.Token, d.Variables)
}

// ResolveAttrs resolves every droplet attribute against the document's
// variable table, yielding concrete strings.
func (d *Document) ResolveAttrs() (map[string]string, error) {
	if d.Droplet == nil {
		return nil, &MissingResourceError{}
	}

	attrs := make(map[string]string, len(d.Droplet.Attrs))
	for name, expr := range d.Droplet.Attrs {
		value, err := Resolve(expr, d.Variables)
		if err != nil {
			return nil, &AttributeError{Name: name, Underlying: err}
		}
		attrs[name] = value
	}
	return attrs, nil
}
