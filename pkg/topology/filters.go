package topology

import (
	"log/slog"
	"strings"

	"google.golang.org/api/cloudresourcemanager/v1"
)

const lifecycleActive = "ACTIVE"

var sysProjectPrefixes = []string{
	"sys-",
	"script-editor-",
	"apps-script-",
	"system-",
	"firebase-",
	"cloud-build-",
	"gcf-",
	"gae-",
}

func filterProjects(projects []*cloudresourcemanager.Project, opts Options) []*cloudresourcemanager.Project {
	if !opts.ActiveOnly && (!opts.SkipSysProjects || opts.ProjectID != "") {
		return projects
	}
	kept := make([]*cloudresourcemanager.Project, 0, len(projects))
	for _, project := range projects {
		if opts.ActiveOnly && project.LifecycleState != "" && project.LifecycleState != lifecycleActive {
			slog.Debug("Skipping inactive project", "project", project.ProjectId, "state", project.LifecycleState)
			continue
		}
		// an explicitly requested project is never treated as a system project
		if opts.SkipSysProjects && opts.ProjectID == "" && isSysProject(project) {
			slog.Debug("Skipping system project", "project", project.ProjectId, "name", project.Name)
			continue
		}
		kept = append(kept, project)
	}
	return kept
}

func isSysProject(project *cloudresourcemanager.Project) bool {
	projectID := strings.ToLower(project.ProjectId)
	projectName := strings.ToLower(project.Name)
	for _, prefix := range sysProjectPrefixes {
		if strings.HasPrefix(projectID, prefix) || strings.HasPrefix(projectName, prefix) {
			return true
		}
	}
	return false
}
