package topology

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/praetorian-inc/netdump/internal/message"
	gcperrors "github.com/praetorian-inc/netdump/pkg/gcp/errors"
	"google.golang.org/api/cloudresourcemanager/v1"
)

// Options selects the projects to aggregate and how their networks are fetched.
type Options struct {
	// ProjectID restricts the run to a single project. Empty means every
	// project visible to the credentials.
	ProjectID   string
	SkipDefault bool
	// SkipSysProjects drops Apps Script and other system managed projects
	// when listing all projects.
	SkipSysProjects bool
	// ActiveOnly drops projects whose lifecycle state is known and not ACTIVE.
	ActiveOnly bool
}

// Aggregator drives the network fetch over a set of projects, isolating
// failures per project.
type Aggregator struct {
	projects ProjectDirectory
	fetcher  *Fetcher
}

func NewAggregator(projects ProjectDirectory, fetcher *Fetcher) *Aggregator {
	return &Aggregator{projects: projects, fetcher: fetcher}
}

// Aggregate resolves the project set and fetches the topology of each
// project in listing order. A project that fails is recorded in the report's
// errors and the run moves on. The returned error is reserved for failures
// before any project is processed, such as rejected credentials, and for a
// cancelled context. On cancellation the report holds the projects completed
// so far.
func (a *Aggregator) Aggregate(ctx context.Context, opts Options) (Report, error) {
	projects, err := a.resolveProjects(ctx, opts)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Projects: make([]ProjectNetworkModel, 0, len(projects)),
		Errors:   []ProjectError{},
	}
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		message.Info("Retrieving network topology for Project: %s", project.ProjectId)
		topo, err := a.fetcher.FetchTopology(ctx, project.ProjectId, opts.SkipDefault)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			slog.Warn("Failed to fetch network topology", "project", project.ProjectId, "error", err)
			report.Errors = append(report.Errors, ProjectError{
				ProjectID: project.ProjectId,
				Message:   gcperrors.Describe(err),
			})
			continue
		}
		report.Projects = append(report.Projects, Build(project, topo))
	}
	return report, nil
}

func (a *Aggregator) resolveProjects(ctx context.Context, opts Options) ([]*cloudresourcemanager.Project, error) {
	if opts.ProjectID != "" {
		message.Info("Generating network topology for Project: %s", opts.ProjectID)
		project, err := a.projects.GetProject(ctx, opts.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to get project %s: %w", opts.ProjectID, gcperrors.Classify(err))
		}
		if project == nil {
			message.Warning("Could not retrieve Project: %s", opts.ProjectID)
			return nil, nil
		}
		return filterProjects([]*cloudresourcemanager.Project{project}, opts), nil
	}

	message.Info("Generating network topology for all Projects")
	projects, err := a.projects.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", gcperrors.Classify(err))
	}
	return filterProjects(projects, opts), nil
}
