package services

import (
	"regexp"
	"sort"

	"github.com/reglet-dev/envseal/internal/domain/entities"
)

// typePrefixes matches the workspace, request and folder id tokens.
var typePrefixes = regexp.MustCompile(`(wrk|req|fld)_`)

// NormalizeResourceID strips every type token from an id.
func NormalizeResourceID(id string) string {
	return typePrefixes.ReplaceAllString(id, "")
}

// ResourceSorter orders resources for reproducible diffs.
type ResourceSorter struct{}

// NewResourceSorter creates a new resource sorter.
func NewResourceSorter() *ResourceSorter {
	return &ResourceSorter{}
}

// Sort orders resources by normalized id. Equal ids keep their relative order.
func (s *ResourceSorter) Sort(doc *entities.Document) {
	resources := doc.Resources()
	keys := make(map[*entities.Resource]string, len(resources))
	for _, r := range resources {
		keys[r] = NormalizeResourceID(r.ID())
	}

	sort.SliceStable(resources, func(i, j int) bool {
		return keys[resources[i]] < keys[resources[j]]
	})
	doc.SetResources(resources)
}
