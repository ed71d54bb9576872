package service

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/upstream"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// Master-data resources the console manages. Anything else is rejected
// before it reaches the backend.
var masterDataResources = map[string]struct{}{
	"categories":   {},
	"departments":  {},
	"rooms":        {},
	"sla-policies": {},
}

// DirectoryService proxies master-data CRUD and the staff directory. These
// resources have no workflow; records pass through after envelope
// normalization.
type DirectoryService struct {
	directory upstream.DirectoryAPI
}

// NewDirectoryService constructs the service.
func NewDirectoryService(directory upstream.DirectoryAPI) *DirectoryService {
	return &DirectoryService{directory: directory}
}

// ListStaff returns all staff users.
func (s *DirectoryService) ListStaff(ctx context.Context) ([]domain.User, error) {
	return s.directory.ListStaff(ctx)
}

// List returns all records of a master-data resource.
func (s *DirectoryService) List(ctx context.Context, resource string) ([]json.RawMessage, error) {
	if err := validateResource(resource); err != nil {
		return nil, err
	}
	return s.directory.ListResource(ctx, resource)
}

// Get returns one master-data record.
func (s *DirectoryService) Get(ctx context.Context, resource, id string) (json.RawMessage, error) {
	if err := validateResource(resource); err != nil {
		return nil, err
	}
	return s.directory.GetResource(ctx, resource, id)
}

// Create adds a master-data record.
func (s *DirectoryService) Create(ctx context.Context, resource string, body json.RawMessage) (json.RawMessage, error) {
	if err := validateResource(resource); err != nil {
		return nil, err
	}
	return s.directory.CreateResource(ctx, resource, body)
}

// Update patches a master-data record.
func (s *DirectoryService) Update(ctx context.Context, resource, id string, body json.RawMessage) (json.RawMessage, error) {
	if err := validateResource(resource); err != nil {
		return nil, err
	}
	return s.directory.UpdateResource(ctx, resource, id, body)
}

// Delete removes a master-data record.
func (s *DirectoryService) Delete(ctx context.Context, resource, id string) error {
	if err := validateResource(resource); err != nil {
		return err
	}
	return s.directory.DeleteResource(ctx, resource, id)
}

func validateResource(resource string) error {
	if _, ok := masterDataResources[resource]; !ok {
		return apperrors.NewNotFound("resource", map[string]any{"resource": resource})
	}
	return nil
}
