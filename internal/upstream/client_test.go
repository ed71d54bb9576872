package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/config"
	"github.com/spec-kit/helpdesk-console/internal/observability"
	"github.com/spec-kit/helpdesk-console/internal/session"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(config.UpstreamConfig{BaseURL: server.URL, TimeoutSeconds: 5}, zap.NewNop(), observability.NewMetrics())
	return client, server
}

func TestClientForwardsSessionToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))

	ctx := session.WithUpstreamToken(context.Background(), "backend-token")
	if _, err := client.ListTickets(ctx, TicketQuery{}); err != nil {
		t.Fatalf("ListTickets() error = %v", err)
	}
	if gotAuth != "Bearer backend-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer backend-token")
	}
}

func TestClientNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	if _, err := client.ListTickets(context.Background(), TicketQuery{}); err != nil {
		t.Fatalf("ListTickets() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClientStatusFilterQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))

	if _, err := client.ListTickets(context.Background(), TicketQuery{Status: "open"}); err != nil {
		t.Fatalf("ListTickets() error = %v", err)
	}
	if gotQuery != "status=open" {
		t.Errorf("query = %q, want %q", gotQuery, "status=open")
	}
}

func TestClientErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"message field", http.StatusConflict, `{"message":"already assigned"}`, "already assigned"},
		{"error string", http.StatusBadRequest, `{"error":"bad category"}`, "bad category"},
		{"nested error message", http.StatusNotFound, `{"error":{"message":"no such ticket"}}`, "no such ticket"},
		{"unparseable body", http.StatusBadRequest, `not json`, "request failed"},
		{"empty body", http.StatusInternalServerError, ``, "request failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.GetTicket(context.Background(), "t1")
			if err == nil {
				t.Fatal("expected error")
			}
			domainErr := apperrors.ToDomainError(err)
			if domainErr.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", domainErr.Message, tt.wantMessage)
			}
			if domainErr.HTTPStatus != tt.status {
				t.Errorf("status = %d, want %d", domainErr.HTTPStatus, tt.status)
			}
		})
	}
}

func TestClientTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(config.UpstreamConfig{BaseURL: server.URL, TimeoutSeconds: 1}, zap.NewNop(), observability.NewMetrics())

	_, err := client.ListTickets(context.Background(), TicketQuery{})
	if err == nil {
		t.Fatal("expected error")
	}
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code != "UPSTREAM_UNAVAILABLE" {
		t.Errorf("code = %q, want UPSTREAM_UNAVAILABLE", domainErr.Code)
	}
	if domainErr.HTTPStatus != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", domainErr.HTTPStatus, http.StatusBadGateway)
	}
}
