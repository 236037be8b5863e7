// Package topology reconstructs the private network topology of GCP projects:
// the networks of each project, their peerings and their subnetworks.
package topology

import (
	"context"

	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
)

// DefaultNetworkName is the name of the network GCP creates in new projects.
const DefaultNetworkName = "default"

// ProjectDirectory looks projects up in Cloud Resource Manager.
type ProjectDirectory interface {
	// GetProject returns nil without error when the project does not exist
	// or is not visible to the caller.
	GetProject(ctx context.Context, projectID string) (*cloudresourcemanager.Project, error)
	ListProjects(ctx context.Context) ([]*cloudresourcemanager.Project, error)
}

// NetworkDirectory lists the VPC networks of a project. A nil slice means the
// provider did not report a network collection at all.
type NetworkDirectory interface {
	ListNetworks(ctx context.Context, projectID string) ([]*compute.Network, error)
}

// SubnetworkDirectory fetches a single subnetwork.
type SubnetworkDirectory interface {
	GetSubnetwork(ctx context.Context, projectID, region, name string) (*compute.Subnetwork, error)
}

// NetworkTopology is one network together with its subnetworks, in the order
// their self-links appear on the network.
type NetworkTopology struct {
	Network     *compute.Network
	Subnetworks []*compute.Subnetwork
}

// Topology is the ordered network map of a single project.
type Topology struct {
	Networks []NetworkTopology
	absent   bool
}

// NoTopology is returned when the provider reports no network collection for
// a project, as opposed to an empty one.
func NoTopology() Topology {
	return Topology{absent: true}
}

// Absent reports whether the topology was built from a missing collection.
func (t Topology) Absent() bool {
	return t.absent
}

// Len returns the number of networks in the topology.
func (t Topology) Len() int {
	return len(t.Networks)
}

// ProjectError records a project whose topology could not be fetched.
type ProjectError struct {
	ProjectID string
	Message   string
}

// Report is the outcome of one aggregation run.
type Report struct {
	Projects []ProjectNetworkModel
	Errors   []ProjectError
}
