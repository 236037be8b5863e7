package topology

import (
	"path"

	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
)

// Build shapes a project and its fetched topology into the output model,
// keeping only naming, addressing and peering fields. An absent topology
// yields a project with no networks.
func Build(project *cloudresourcemanager.Project, topo Topology) ProjectNetworkModel {
	model := ProjectNetworkModel{
		ProjectID: project.ProjectId,
		Name:      project.Name,
		Networks:  make([]NetworkModel, 0, topo.Len()),
	}
	if project.Parent != nil {
		model.Parent = &ParentRef{Type: project.Parent.Type, ID: project.Parent.Id}
	}
	if project.ProjectNumber != 0 {
		number := project.ProjectNumber
		model.ProjectNumber = &number
	}
	for _, entry := range topo.Networks {
		model.Networks = append(model.Networks, buildNetwork(entry))
	}
	return model
}

func buildNetwork(entry NetworkTopology) NetworkModel {
	network := NetworkModel{
		Name:     entry.Network.Name,
		Peerings: entry.Network.Peerings,
		Subnets:  make([]SubnetworkModel, 0, len(entry.Subnetworks)),
	}
	for _, subnet := range entry.Subnetworks {
		network.Subnets = append(network.Subnets, buildSubnetwork(subnet))
	}
	return network
}

func buildSubnetwork(subnet *compute.Subnetwork) SubnetworkModel {
	model := SubnetworkModel{
		GatewayAddress:    subnet.GatewayAddress,
		IPCidrRange:       subnet.IpCidrRange,
		Name:              subnet.Name,
		Region:            regionName(subnet.Region),
		SecondaryIPRanges: make([]SecondaryRange, 0, len(subnet.SecondaryIpRanges)),
	}
	for _, r := range subnet.SecondaryIpRanges {
		if r == nil {
			continue
		}
		model.SecondaryIPRanges = append(model.SecondaryIPRanges, SecondaryRange{
			RangeName:   r.RangeName,
			IPCidrRange: r.IpCidrRange,
		})
	}
	return model
}

// compute reports regions as self-links; the model keeps the short name
func regionName(region string) string {
	if region == "" {
		return ""
	}
	return path.Base(region)
}
