package topology

import (
	"context"
	"fmt"

	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
)

// fakeCloud serves projects, networks and subnetworks from memory and records
// the calls made against it.
type fakeCloud struct {
	projects     []*cloudresourcemanager.Project
	networks     map[string][]*compute.Network
	subnetworks  map[string]*compute.Subnetwork
	networkErrs  map[string]error
	listErr      error
	// onListNetworks runs before a network listing is served
	onListNetworks func(projectID string)
	networkCalls []string
	subnetCalls  []string
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{
		networks:    map[string][]*compute.Network{},
		subnetworks: map[string]*compute.Subnetwork{},
		networkErrs: map[string]error{},
	}
}

func (f *fakeCloud) GetProject(_ context.Context, projectID string) (*cloudresourcemanager.Project, error) {
	for _, p := range f.projects {
		if p.ProjectId == projectID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeCloud) ListProjects(_ context.Context) ([]*cloudresourcemanager.Project, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.projects, nil
}

func (f *fakeCloud) ListNetworks(_ context.Context, projectID string) ([]*compute.Network, error) {
	f.networkCalls = append(f.networkCalls, projectID)
	if f.onListNetworks != nil {
		f.onListNetworks(projectID)
	}
	if err := f.networkErrs[projectID]; err != nil {
		return nil, err
	}
	return f.networks[projectID], nil
}

func (f *fakeCloud) GetSubnetwork(_ context.Context, projectID, region, name string) (*compute.Subnetwork, error) {
	key := fmt.Sprintf("%s/%s/%s", projectID, region, name)
	f.subnetCalls = append(f.subnetCalls, key)
	subnet, ok := f.subnetworks[key]
	if !ok {
		return nil, fmt.Errorf("subnetwork %s not found", key)
	}
	return subnet, nil
}

func (f *fakeCloud) addProject(projectID string) {
	f.projects = append(f.projects, &cloudresourcemanager.Project{ProjectId: projectID, Name: projectID})
	f.networks[projectID] = []*compute.Network{}
}

// addNetwork registers a network and one subnetwork per name, in order.
func (f *fakeCloud) addNetwork(projectID, network, region string, subnets ...string) {
	n := &compute.Network{Name: network}
	for _, name := range subnets {
		n.Subnetworks = append(n.Subnetworks, subnetURI(projectID, region, name))
		f.subnetworks[fmt.Sprintf("%s/%s/%s", projectID, region, name)] = &compute.Subnetwork{
			Name:           name,
			Region:         "https://www.googleapis.com/compute/v1/projects/" + projectID + "/regions/" + region,
			IpCidrRange:    "10.0.0.0/24",
			GatewayAddress: "10.0.0.1",
			SelfLink:       subnetURI(projectID, region, name),
		}
	}
	f.networks[projectID] = append(f.networks[projectID], n)
}

func subnetURI(projectID, region, name string) string {
	return fmt.Sprintf("https://www.googleapis.com/compute/v1/projects/%s/regions/%s/subnetworks/%s", projectID, region, name)
}

func (f *fakeCloud) aggregator() *Aggregator {
	return NewAggregator(f, NewFetcher(f, f))
}

func networkNames(model ProjectNetworkModel) []string {
	names := []string{}
	for _, n := range model.Networks {
		names = append(names, n.Name)
	}
	return names
}

func subnetNames(model NetworkModel) []string {
	names := []string{}
	for _, s := range model.Subnets {
		names = append(names, s.Name)
	}
	return names
}
