package state

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// The on-disk document mirrors the subset of the Terraform state format
// this tool reads back: one managed resource with a single instance.
const (
	formatVersion = 4
	resourceMode  = "managed"
	resourceType  = "digitalocean_droplet"
	providerName  = "digitalocean"
)

// DefaultPath is where the state document lives unless overridden.
const DefaultPath = "terraform.tfstate"

type stateFile struct {
	Version   int             `json:"version"`
	Resources []stateResource `json:"resources"`
}

type stateResource struct {
	Mode      string          `json:"mode"`
	Type      string          `json:"type"`
	Name      string          `json:"name"`
	Provider  string          `json:"provider"`
	Instances []stateInstance `json:"instances"`
}

type stateInstance struct {
	Attributes stateAttributes `json:"attributes"`
}

type stateAttributes struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Region      string `json:"region"`
	Size        string `json:"size"`
	Image       string `json:"image"`
	IPv4Address string `json:"ipv4_address"`
}

// FileStore keeps the record in a JSON file at a fixed path. One
// interpreter instance per state file is assumed; concurrent invocations
// racing on the same path are not guarded against.
type FileStore struct {
	path string
}

var _ Store = &FileStore{}

// NewFileStore creates a FileStore at the given path, falling back to
// DefaultPath when empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{path: path}
}

// Save writes the record as a versioned state document, replacing any
// previous content.
func (fs *FileStore) Save(record *Record) error {
	doc := stateFile{
		Version: formatVersion,
		Resources: []stateResource{
			{
				Mode:     resourceMode,
				Type:     resourceType,
				Name:     record.ResourceName,
				Provider: providerName,
				Instances: []stateInstance{
					{
						Attributes: stateAttributes{
							ID:          record.ID,
							Name:        record.Name,
							Region:      record.Region,
							Size:        record.Size,
							Image:       record.Image,
							IPv4Address: record.IPv4Address,
						},
					},
				},
			},
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "fail to marshal state")
	}

	return errors.Wrapf(os.WriteFile(fs.path, data, 0644), "fail to write %s", fs.path)
}

// Load reads the state document back. A missing file means nothing has
// been provisioned and is not an error.
func (fs *FileStore) Load() (*Record, error) {
	raw, err := os.ReadFile(fs.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fail to read %s", fs.path)
	}

	var doc stateFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(err, "fail to parse state out of %s", fs.path)
	}

	// Version is written for forward compatibility but not gated on load.
	for _, res := range doc.Resources {
		if res.Type != resourceType || len(res.Instances) == 0 {
			continue
		}
		attrs := res.Instances[0].Attributes
		return &Record{
			ID:           attrs.ID,
			ResourceName: res.Name,
			Name:         attrs.Name,
			Region:       attrs.Region,
			Size:         attrs.Size,
			Image:        attrs.Image,
			IPv4Address:  attrs.IPv4Address,
		}, nil
	}

	return nil, nil
}

// Clear removes the state document, tolerating the case where it is
// already absent.
func (fs *FileStore) Clear() error {
	err := os.Remove(fs.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "fail to remove %s", fs.path)
	}
	return nil
}
