package orchestrator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dropletform/internal/config"
	"dropletform/internal/providers/digitalocean"
	"dropletform/internal/report"
	"dropletform/internal/state"
	"dropletform/pkg/logging"
)

// DropletServiceFactory builds a provisioning service once the API token
// is resolved; tests substitute their own.
type DropletServiceFactory func(token string, logger logging.Logger) digitalocean.DropletServiceAPI

// Service orchestrates the apply and destroy lifecycles for the single
// droplet described by a configuration file.
type Service struct {
	cfg         Config
	parser      config.IParser
	newDroplets DropletServiceFactory
	store       state.Store
	printer     report.IPrinter
	logger      logging.Logger
}

// NewService creates a new lifecycle service with the given configuration
// and collaborators.
func NewService(
	cfg Config,
	parser config.IParser,
	newDroplets DropletServiceFactory,
	store state.Store,
	printer report.IPrinter,
	logger logging.Logger,
) *Service {
	return &Service{
		cfg:         cfg,
		parser:      parser,
		newDroplets: newDroplets,
		store:       store,
		printer:     printer,
		logger:      logger,
	}
}

// NewDefaultService creates a new service with default implementations of
// dependencies.
func NewDefaultService(cfg Config) *Service {
	logger := logging.NewDefaultLogger()
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))

	return NewService(
		cfg,
		config.NewParserWithLogger(logger),
		func(token string, l logging.Logger) digitalocean.DropletServiceAPI {
			return digitalocean.NewDropletService(token, l)
		},
		state.NewFileStore(cfg.StatePath),
		report.DefaultPrinter{},
		logger,
	)
}

// Apply provisions the droplet described by the configuration file,
// waits for it to report a public address, and records it in the state
// file. The first error aborts the operation; there is no rollback.
func (s *Service) Apply(ctx context.Context) error {
	doc, token, err := s.interpret()
	if err != nil {
		return err
	}

	attrs, err := doc.ResolveAttrs()
	if err != nil {
		return err
	}

	droplets := s.newDroplets(token, s.logger)
	dropletID, err := droplets.Create(ctx, attrs)
	if err != nil {
		return fmt.Errorf("error creating droplet: %w", err)
	}

	record := &state.Record{
		ID:           strconv.Itoa(dropletID),
		ResourceName: doc.Droplet.Name,
		Name:         attrs["name"],
		Region:       attrs["region"],
		Size:         attrs["size"],
		Image:        attrs["image"],
	}

	// Persist before waiting for readiness so a crash mid-poll does not
	// leave the droplet unrecorded.
	if err := s.store.Save(record); err != nil {
		return fmt.Errorf("error saving state: %w", err)
	}

	ip, err := droplets.AwaitPublicIPv4(ctx, dropletID, s.pollInterval(), s.pollMaxAttempts())
	if err != nil {
		return fmt.Errorf("error waiting for droplet %d: %w", dropletID, err)
	}

	record.IPv4Address = ip
	if err := s.store.Save(record); err != nil {
		return fmt.Errorf("error saving state: %w", err)
	}

	return s.printer.PrintSummary(report.Result{
		Operation:   report.OperationApply,
		DropletID:   record.ID,
		IPv4Address: ip,
		Added:       1,
	}, s.getOutputFormat())
}

// Destroy tears down the droplet recorded in the state file and removes
// the record. Absence of a record is a successful no-op.
func (s *Service) Destroy(ctx context.Context) error {
	record, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("error loading state: %w", err)
	}
	if record == nil {
		s.logger.Info("no state record found, nothing to destroy")
		return s.printer.PrintSummary(report.Result{
			Operation: report.OperationDestroy,
		}, s.getOutputFormat())
	}

	_, token, err := s.interpret()
	if err != nil {
		return err
	}

	dropletID, err := strconv.Atoi(record.ID)
	if err != nil {
		return fmt.Errorf("state record holds invalid droplet ID %q: %w", record.ID, err)
	}

	droplets := s.newDroplets(token, s.logger)
	if err := droplets.Delete(ctx, dropletID); err != nil {
		return fmt.Errorf("error destroying droplet %d: %w", dropletID, err)
	}

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("error clearing state: %w", err)
	}

	return s.printer.PrintSummary(report.Result{
		Operation: report.OperationDestroy,
		DropletID: record.ID,
		Destroyed: 1,
	}, s.getOutputFormat())
}

// interpret parses the configuration file and resolves the provider token.
func (s *Service) interpret() (*config.Document, string, error) {
	if s.cfg.ConfigPath == "" {
		return nil, "", fmt.Errorf("configuration file path is required")
	}

	doc, err := s.parser.ParseFile(s.cfg.ConfigPath)
	if err != nil {
		return nil, "", fmt.Errorf("error parsing configuration: %w", err)
	}

	token, err := doc.ResolveToken()
	if err != nil {
		return nil, "", err
	}

	return doc, token, nil
}

func (s *Service) pollInterval() time.Duration {
	if s.cfg.PollInterval > 0 {
		return s.cfg.PollInterval
	}
	return DefaultPollInterval
}

func (s *Service) pollMaxAttempts() int {
	if s.cfg.PollMaxAttempts > 0 {
		return s.cfg.PollMaxAttempts
	}
	return DefaultPollMaxAttempts
}

// getOutputFormat converts the string format to report.OutputFormatType.
func (s *Service) getOutputFormat() report.OutputFormatType {
	switch strings.ToUpper(s.cfg.OutputFormat) {
	case "JSON":
		return report.OutputFormatTypeJSON
	default:
		return report.OutputFormatTypeTABLE
	}
}
