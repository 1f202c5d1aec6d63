package state

// Record is the durable description of the droplet created by the last
// successful apply. ID is the remote identifier assigned by the API;
// ResourceName is the logical name from the resource block.
type Record struct {
	ID           string
	ResourceName string
	Name         string
	Region       string
	Size         string
	Image        string
	IPv4Address  string
}

// Store persists a single Record across invocations. Load returns
// (nil, nil) when nothing has been provisioned; Clear tolerates an
// already-absent record.
//
//go:generate mockery --name=Store --output=./mocks
type Store interface {
	Save(record *Record) error
	Load() (*Record, error)
	Clear() error
}
