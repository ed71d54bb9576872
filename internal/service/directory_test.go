package service

import (
	"context"
	"testing"

	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

func TestDirectoryResourceWhitelist(t *testing.T) {
	service := NewDirectoryService(&fakeDirectoryAPI{})
	ctx := context.Background()

	for _, resource := range []string{"categories", "departments", "rooms", "sla-policies"} {
		if _, err := service.List(ctx, resource); err != nil {
			t.Errorf("List(%s) error = %v", resource, err)
		}
	}

	for _, resource := range []string{"users", "tickets", "", "Categories"} {
		_, err := service.List(ctx, resource)
		if err == nil {
			t.Errorf("List(%q) expected error", resource)
			continue
		}
		if apperrors.ToDomainError(err).Code != "NOT_FOUND" {
			t.Errorf("List(%q) code = %s, want NOT_FOUND", resource, apperrors.ToDomainError(err).Code)
		}
	}
}
