// Package catalog serves the confirmed device catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"

	coreerrors "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/aevon-lab/devicescout/internal/core/storage"
)

// Service reads known devices.
type Service struct {
	devices storage.KnownDeviceStore
}

func NewService(devices storage.KnownDeviceStore) *Service {
	return &Service{devices: devices}
}

// Find returns the known device with the given fingerprint.
func (s *Service) Find(ctx context.Context, fingerprint string) (*storage.KnownDevice, error) {
	if fingerprint == "" {
		return nil, coreerrors.Invalid("fingerprint is required")
	}
	dev, err := s.devices.FindKnownDevice(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, coreerrors.NotFound(fmt.Sprintf("no known device with fingerprint %s", fingerprint))
		}
		return nil, coreerrors.Transient("failed to find known device", err)
	}
	return dev, nil
}

// List returns the whole catalog.
func (s *Service) List(ctx context.Context) ([]*storage.KnownDevice, error) {
	devices, err := s.devices.ListKnownDevices(ctx)
	if err != nil {
		return nil, coreerrors.Transient("failed to list known devices", err)
	}
	if devices == nil {
		devices = []*storage.KnownDevice{}
	}
	return devices, nil
}
