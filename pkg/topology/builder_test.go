package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
)

func TestBuild_CopiesTopologyFields(t *testing.T) {
	project := &cloudresourcemanager.Project{
		ProjectId:      "p1",
		ProjectNumber:  123456789,
		Name:           "Project One",
		LifecycleState: "ACTIVE",
		CreateTime:     "2020-01-01T00:00:00Z",
		Parent:         &cloudresourcemanager.ResourceId{Type: "organization", Id: "987"},
	}
	peering := &compute.NetworkPeering{Name: "to-hub", State: "ACTIVE", ExchangeSubnetRoutes: true}
	topo := Topology{Networks: []NetworkTopology{
		{
			Network: &compute.Network{
				Name:              "vpc",
				SelfLink:          "https://www.googleapis.com/compute/v1/projects/p1/global/networks/vpc",
				CreationTimestamp: "2020-01-01T00:00:00Z",
				Peerings:          []*compute.NetworkPeering{peering},
			},
			Subnetworks: []*compute.Subnetwork{
				{
					Name:           "sub-a",
					Region:         "https://www.googleapis.com/compute/v1/projects/p1/regions/us-central1",
					IpCidrRange:    "10.128.0.0/20",
					GatewayAddress: "10.128.0.1",
					Fingerprint:    "abc=",
					SecondaryIpRanges: []*compute.SubnetworkSecondaryRange{
						{RangeName: "pods", IpCidrRange: "10.4.0.0/14"},
						{RangeName: "services", IpCidrRange: "10.0.32.0/20"},
					},
				},
			},
		},
	}}

	model := Build(project, topo)

	assert.Equal(t, "p1", model.ProjectID)
	assert.Equal(t, "Project One", model.Name)
	require.NotNil(t, model.ProjectNumber)
	assert.Equal(t, int64(123456789), *model.ProjectNumber)
	assert.Equal(t, &ParentRef{Type: "organization", ID: "987"}, model.Parent)

	require.Len(t, model.Networks, 1)
	network := model.Networks[0]
	assert.Equal(t, "vpc", network.Name)
	require.Len(t, network.Peerings, 1)
	assert.Same(t, peering, network.Peerings[0])

	assert.Equal(t, []SubnetworkModel{{
		GatewayAddress: "10.128.0.1",
		IPCidrRange:    "10.128.0.0/20",
		Name:           "sub-a",
		Region:         "us-central1",
		SecondaryIPRanges: []SecondaryRange{
			{RangeName: "pods", IPCidrRange: "10.4.0.0/14"},
			{RangeName: "services", IPCidrRange: "10.0.32.0/20"},
		},
	}}, network.Subnets)
}

func TestBuild_OptionalProjectFields(t *testing.T) {
	model := Build(&cloudresourcemanager.Project{ProjectId: "p1"}, Topology{})
	assert.Nil(t, model.Parent)
	assert.Nil(t, model.ProjectNumber)
	assert.NotNil(t, model.Networks)
	assert.Empty(t, model.Networks)
}

func TestBuild_AbsentTopology(t *testing.T) {
	model := Build(&cloudresourcemanager.Project{ProjectId: "p1"}, NoTopology())
	assert.NotNil(t, model.Networks)
	assert.Empty(t, model.Networks)
}

func TestBuild_PreservesOrder(t *testing.T) {
	var topo Topology
	for _, name := range []string{"zeta", "alpha", "mid"} {
		entry := NetworkTopology{Network: &compute.Network{Name: name}}
		for _, s := range []string{"s9", "s1", "s5"} {
			entry.Subnetworks = append(entry.Subnetworks, &compute.Subnetwork{Name: name + "-" + s})
		}
		topo.Networks = append(topo.Networks, entry)
	}

	model := Build(&cloudresourcemanager.Project{ProjectId: "p1"}, topo)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, networkNames(model))
	assert.Equal(t, []string{"alpha-s9", "alpha-s1", "alpha-s5"}, subnetNames(model.Networks[1]))
}

func TestRegionName(t *testing.T) {
	assert.Equal(t, "us-central1", regionName("https://www.googleapis.com/compute/v1/projects/p1/regions/us-central1"))
	assert.Equal(t, "europe-west4", regionName("europe-west4"))
	assert.Equal(t, "", regionName(""))
}
