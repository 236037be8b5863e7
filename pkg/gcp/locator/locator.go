// Package locator resolves compute resource self-links into the coordinates
// needed to look the resource up again.
package locator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMalformedLocator is returned when a self-link does not have the
// .../projects/{p}/regions/{r}/subnetworks/{n} shape.
var ErrMalformedLocator = errors.New("malformed resource locator")

// positions of the coordinates after splitting the URI path on "/"
const (
	projectSegment  = 4
	regionSegment   = 6
	resourceSegment = 8
	minSegments     = resourceSegment + 1
)

// Locator identifies a regional compute resource.
type Locator struct {
	Project string
	Region  string
	Name    string
}

func (l Locator) String() string {
	return fmt.Sprintf("projects/%s/regions/%s/subnetworks/%s", l.Project, l.Region, l.Name)
}

// Resolve parses a subnetwork self-link such as
// https://www.googleapis.com/compute/v1/projects/p1/regions/us-central1/subnetworks/sub-a
// and returns its project, region and name.
func Resolve(uri string) (Locator, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: %q: %v", ErrMalformedLocator, uri, err)
	}
	if !u.IsAbs() {
		return Locator{}, fmt.Errorf("%w: %q is not an absolute URI", ErrMalformedLocator, uri)
	}
	parts := strings.Split(u.Path, "/")
	if len(parts) < minSegments {
		return Locator{}, fmt.Errorf("%w: %q has %d path segments, want at least %d", ErrMalformedLocator, uri, len(parts), minSegments)
	}
	return Locator{
		Project: parts[projectSegment],
		Region:  parts[regionSegment],
		Name:    parts[resourceSegment],
	}, nil
}
