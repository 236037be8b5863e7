// Package client authenticates against Google Cloud and exposes the project,
// network and subnetwork lookups the topology fetch needs.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	gcperrors "github.com/praetorian-inc/netdump/pkg/gcp/errors"
	"github.com/praetorian-inc/netdump/version"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

// Config describes how to reach and authenticate against the Google APIs.
type Config struct {
	// AccessToken is an OAuth2 access token, e.g. from
	// `gcloud auth print-access-token`.
	AccessToken string
	// UseADC falls back to application default credentials when no access
	// token is given.
	UseADC bool

	// endpoint overrides, used against fake servers
	ComputeEndpoint         string
	ResourceManagerEndpoint string
	HTTPClient              *http.Client
}

// Client wraps the Compute and Cloud Resource Manager services.
type Client struct {
	compute *compute.Service
	crm     *cloudresourcemanager.Service
}

// Authenticate validates the credentials in cfg and creates the API
// services. A malformed token fails with errors.ErrInvalidCredentials; an
// expired or revoked one is only detected by the first API call.
func Authenticate(ctx context.Context, cfg Config) (*Client, error) {
	opts, err := clientOptions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	computeService, err := compute.NewService(ctx, withEndpoint(opts, cfg.ComputeEndpoint)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute service: %w", err)
	}

	crmService, err := cloudresourcemanager.NewService(ctx, withEndpoint(opts, cfg.ResourceManagerEndpoint)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource manager service: %w", err)
	}

	return &Client{compute: computeService, crm: crmService}, nil
}

func clientOptions(ctx context.Context, cfg Config) ([]option.ClientOption, error) {
	opts := []option.ClientOption{option.WithUserAgent(version.UserAgent())}

	var source oauth2.TokenSource
	if cfg.AccessToken != "" {
		token := strings.TrimSpace(cfg.AccessToken)
		if token == "" || strings.ContainsAny(token, " \t\r\n") {
			return nil, fmt.Errorf("%w: access token is malformed", gcperrors.ErrInvalidCredentials)
		}
		source = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	}

	switch {
	case cfg.HTTPClient != nil:
		// the caller's client carries its own transport and auth
		return append(opts, option.WithHTTPClient(cfg.HTTPClient)), nil
	case source != nil:
		return append(opts, option.WithTokenSource(source)), nil
	case cfg.UseADC:
		creds, err := google.FindDefaultCredentials(ctx, compute.ComputeReadonlyScope, cloudresourcemanager.CloudPlatformReadOnlyScope)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot find default credentials: %w", gcperrors.ErrInvalidCredentials, err)
		}
		slog.Debug("Using application default credentials", "project", creds.ProjectID)
		return append(opts, option.WithCredentials(creds)), nil
	}
	return nil, fmt.Errorf("%w: no access token provided", gcperrors.ErrInvalidCredentials)
}

func withEndpoint(opts []option.ClientOption, endpoint string) []option.ClientOption {
	if endpoint == "" {
		return opts
	}
	out := make([]option.ClientOption, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, option.WithEndpoint(endpoint))
}

// GetProject returns nil when the project does not exist or the caller
// cannot see it.
func (c *Client) GetProject(ctx context.Context, projectID string) (*cloudresourcemanager.Project, error) {
	project, err := c.crm.Projects.Get(projectID).Context(ctx).Do()
	if err != nil {
		if gcperrors.IsNotFound(err) || gcperrors.IsPermissionDenied(err) {
			slog.Debug("Project lookup returned nothing", "project", projectID, "error", err)
			return nil, nil
		}
		return nil, gcperrors.Classify(err)
	}
	return project, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]*cloudresourcemanager.Project, error) {
	resp, err := c.crm.Projects.List().Context(ctx).Do()
	if err != nil {
		return nil, gcperrors.Classify(err)
	}
	slog.Debug("Listed projects", "count", len(resp.Projects))
	return resp.Projects, nil
}

// ListNetworks returns nil when the response carries no items collection.
func (c *Client) ListNetworks(ctx context.Context, projectID string) ([]*compute.Network, error) {
	resp, err := c.compute.Networks.List(projectID).Context(ctx).Do()
	if err != nil {
		return nil, gcperrors.Classify(err)
	}
	return resp.Items, nil
}

func (c *Client) GetSubnetwork(ctx context.Context, projectID, region, name string) (*compute.Subnetwork, error) {
	subnet, err := c.compute.Subnetworks.Get(projectID, region, name).Context(ctx).Do()
	if err != nil {
		return nil, gcperrors.Classify(err)
	}
	return subnet, nil
}
