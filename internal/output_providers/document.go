package outputproviders

import (
	"bytes"
	"encoding/json"

	"github.com/praetorian-inc/netdump/pkg/topology"
)

// field is one named entry of a serialized record.
type field struct {
	name  string
	value any
}

// object is a record whose fields serialize in table order.
type object []field

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Document maps the topology models to their serialized field names. The
// result is a JSON array of projects.
func Document(projects []topology.ProjectNetworkModel) []any {
	doc := make([]any, 0, len(projects))
	for _, p := range projects {
		doc = append(doc, projectObject(p))
	}
	return doc
}

func projectObject(p topology.ProjectNetworkModel) object {
	var parent any
	if p.Parent != nil {
		parent = object{
			{"type", p.Parent.Type},
			{"id", p.Parent.ID},
		}
	}
	var number any
	if p.ProjectNumber != nil {
		number = *p.ProjectNumber
	}
	networks := make([]object, 0, len(p.Networks))
	for _, n := range p.Networks {
		networks = append(networks, networkObject(n))
	}
	return object{
		{"parent", parent},
		{"projectId", p.ProjectID},
		{"projectNumber", number},
		{"name", p.Name},
		{"networks", networks},
	}
}

func networkObject(n topology.NetworkModel) object {
	peerings := make([]any, 0, len(n.Peerings))
	for _, peering := range n.Peerings {
		peerings = append(peerings, peering)
	}
	subnets := make([]object, 0, len(n.Subnets))
	for _, s := range n.Subnets {
		subnets = append(subnets, subnetworkObject(s))
	}
	return object{
		{"name", n.Name},
		{"peerings", peerings},
		{"subnets", subnets},
	}
}

func subnetworkObject(s topology.SubnetworkModel) object {
	ranges := make([]object, 0, len(s.SecondaryIPRanges))
	for _, r := range s.SecondaryIPRanges {
		ranges = append(ranges, object{
			{"rangeName", r.RangeName},
			{"ipCidrRange", r.IPCidrRange},
		})
	}
	return object{
		{"gatewayAddress", s.GatewayAddress},
		{"ipCidrRange", s.IPCidrRange},
		{"name", s.Name},
		{"region", s.Region},
		{"secondaryIpRanges", ranges},
	}
}

// ErrorPairs renders project errors as [projectId, message] pairs.
func ErrorPairs(errs []topology.ProjectError) [][]string {
	pairs := make([][]string, 0, len(errs))
	for _, e := range errs {
		pairs = append(pairs, []string{e.ProjectID, e.Message})
	}
	return pairs
}
