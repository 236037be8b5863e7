package topology

import "google.golang.org/api/compute/v1"

// ParentRef identifies the folder or organization owning a project.
type ParentRef struct {
	Type string
	ID   string
}

// SecondaryRange is an alias IP range of a subnetwork.
type SecondaryRange struct {
	RangeName   string
	IPCidrRange string
}

type SubnetworkModel struct {
	GatewayAddress    string
	IPCidrRange       string
	Name              string
	Region            string
	SecondaryIPRanges []SecondaryRange
}

// NetworkModel carries the peerings exactly as the provider reported them.
type NetworkModel struct {
	Name     string
	Peerings []*compute.NetworkPeering
	Subnets  []SubnetworkModel
}

// ProjectNetworkModel is the top level record of the topology document.
type ProjectNetworkModel struct {
	Parent        *ParentRef
	ProjectID     string
	ProjectNumber *int64
	Name          string
	Networks      []NetworkModel
}
