package digitalocean

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/digitalocean/godo"
	"golang.org/x/oauth2"

	"dropletform/pkg/logging"
)

// requiredAttrs are the droplet attributes a create request cannot do without.
var requiredAttrs = []string{"name", "region", "size", "image"}

// DropletService handles droplet provisioning through the DigitalOcean API
type DropletService struct {
	client DropletsAPI
	logger logging.Logger
}

// NewDropletService creates a new DropletService around a godo client
// authenticated with the given API token.
func NewDropletService(token string, logger logging.Logger) *DropletService {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := godo.NewClient(oauth2.NewClient(context.Background(), ts))
	return NewDropletServiceWithClient(client.Droplets, logger)
}

// NewDropletServiceWithClient creates a new DropletService with a provided client
func NewDropletServiceWithClient(client DropletsAPI, logger logging.Logger) *DropletService {
	return &DropletService{
		client: client,
		logger: logger,
	}
}

// Create requests a new droplet from the resolved resource attributes
// and returns its remote identifier.
func (s *DropletService) Create(ctx context.Context, attrs map[string]string) (int, error) {
	for _, field := range requiredAttrs {
		if attrs[field] == "" {
			return 0, NewAPIError(ErrInvalidInput, "",
				fmt.Sprintf("droplet attribute %q is required", field), nil)
		}
	}

	req := &godo.DropletCreateRequest{
		Name:    attrs["name"],
		Region:  attrs["region"],
		Size:    attrs["size"],
		Image:   godo.DropletCreateImage{Slug: attrs["image"]},
		SSHKeys: []godo.DropletCreateSSHKey{},
		Tags:    []string{},
	}

	s.logger.Info("creating droplet %q in %s", req.Name, req.Region)
	droplet, _, err := s.client.Create(ctx, req)
	if err != nil {
		return 0, ClassifyAPIError(err, "")
	}

	s.logger.Info("droplet created with ID %d", droplet.ID)
	return droplet.ID, nil
}

// AwaitPublicIPv4 polls the droplet until a public IPv4 address is
// observable. The poll is bounded: at most maxAttempts reads spaced
// interval apart, after which a PollTimeoutError is returned. A failed
// read is a hard error, not silently retried.
func (s *DropletService) AwaitPublicIPv4(ctx context.Context, dropletID int, interval time.Duration, maxAttempts int) (string, error) {
	s.logger.Info("waiting for droplet %d to become active with a public IP", dropletID)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		droplet, _, err := s.client.Get(ctx, dropletID)
		if err != nil {
			return "", ClassifyAPIError(err, strconv.Itoa(dropletID))
		}

		if ip := publicIPv4(droplet); ip != "" {
			s.logger.Info("droplet %d is reachable at %s", dropletID, ip)
			return ip, nil
		}

		if attempt == maxAttempts {
			break
		}

		s.logger.Debug("droplet %d not ready yet (check %d/%d)", dropletID, attempt, maxAttempts)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(interval):
		}
	}

	return "", &PollTimeoutError{DropletID: dropletID, Attempts: maxAttempts}
}

// Delete requests teardown of the droplet.
func (s *DropletService) Delete(ctx context.Context, dropletID int) error {
	s.logger.Info("destroying droplet %d", dropletID)
	if _, err := s.client.Delete(ctx, dropletID); err != nil {
		return ClassifyAPIError(err, strconv.Itoa(dropletID))
	}
	return nil
}

// publicIPv4 extracts the first public IPv4 address; empty until the
// droplet is ready.
func publicIPv4(droplet *godo.Droplet) string {
	if droplet == nil || droplet.Networks == nil {
		return ""
	}
	for _, network := range droplet.Networks.V4 {
		if network.Type == "public" {
			return network.IPAddress
		}
	}
	return ""
}
