package digitalocean

import (
	"context"
	"time"

	"github.com/digitalocean/godo"
)

// DropletsAPI defines the subset of godo's droplet operations we need to
// mock; godo.Client.Droplets satisfies it.
//
//go:generate mockery --name=DropletsAPI --output=./mocks
type DropletsAPI interface {
	Create(ctx context.Context, createRequest *godo.DropletCreateRequest) (*godo.Droplet, *godo.Response, error)
	Get(ctx context.Context, dropletID int) (*godo.Droplet, *godo.Response, error)
	Delete(ctx context.Context, dropletID int) (*godo.Response, error)
}

// DropletServiceAPI defines the provisioning surface the lifecycle
// engine depends on
//
//go:generate mockery --name=DropletServiceAPI --output=./mocks
type DropletServiceAPI interface {
	Create(ctx context.Context, attrs map[string]string) (int, error)
	AwaitPublicIPv4(ctx context.Context, dropletID int, interval time.Duration, maxAttempts int) (string, error)
	Delete(ctx context.Context, dropletID int) error
}
