package topology

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/praetorian-inc/netdump/pkg/gcp/locator"
	"google.golang.org/api/compute/v1"
)

// Fetcher walks the networks of a project and resolves their subnetworks.
type Fetcher struct {
	networks    NetworkDirectory
	subnetworks SubnetworkDirectory
}

func NewFetcher(networks NetworkDirectory, subnetworks SubnetworkDirectory) *Fetcher {
	return &Fetcher{networks: networks, subnetworks: subnetworks}
}

// FetchTopology lists the networks of projectID and looks up every subnetwork
// attached to them. The first failure aborts the whole project.
func (f *Fetcher) FetchTopology(ctx context.Context, projectID string, skipDefault bool) (Topology, error) {
	networks, err := f.networks.ListNetworks(ctx, projectID)
	if err != nil {
		return Topology{}, fmt.Errorf("failed to list networks in project %s: %w", projectID, err)
	}
	if networks == nil {
		slog.Debug("Project reported no network collection", "project", projectID)
		return NoTopology(), nil
	}

	topo := Topology{Networks: make([]NetworkTopology, 0, len(networks))}
	for _, network := range networks {
		if skipDefault && network.Name == DefaultNetworkName {
			slog.Debug("Skipping default network", "project", projectID)
			continue
		}
		topo.Networks = append(topo.Networks, NetworkTopology{Network: network})
		entry := &topo.Networks[len(topo.Networks)-1]
		entry.Subnetworks = make([]*compute.Subnetwork, 0, len(network.Subnetworks))
		for _, uri := range network.Subnetworks {
			subnet, err := f.fetchSubnetwork(ctx, uri)
			if err != nil {
				return Topology{}, fmt.Errorf("network %s: %w", network.Name, err)
			}
			entry.Subnetworks = append(entry.Subnetworks, subnet)
		}
		slog.Debug("Fetched network", "project", projectID, "network", network.Name, "subnetworks", len(entry.Subnetworks))
	}
	return topo, nil
}

func (f *Fetcher) fetchSubnetwork(ctx context.Context, uri string) (*compute.Subnetwork, error) {
	loc, err := locator.Resolve(uri)
	if err != nil {
		return nil, err
	}
	subnet, err := f.subnetworks.GetSubnetwork(ctx, loc.Project, loc.Region, loc.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get subnetwork %s: %w", loc, err)
	}
	return subnet, nil
}
