package types

import "sort"

// ServiceImage pins one service of the bundle to a resolved image.
type ServiceImage struct {
	Name  string
	Image ImageRef
}

// Bundle is the full set of resolved image references for one channel.
// Services are kept sorted by name so iteration order is deterministic.
type Bundle struct {
	Services []ServiceImage
}

func NewBundle(services []ServiceImage) Bundle {
	ordered := append([]ServiceImage(nil), services...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})
	return Bundle{Services: ordered}
}

// Lookup returns the image currently pinned for a service.
func (b Bundle) Lookup(name string) (ImageRef, bool) {
	for _, svc := range b.Services {
		if svc.Name == name {
			return svc.Image, true
		}
	}
	return ImageRef{}, false
}

// WithImage returns a copy of the bundle with one service repinned. The
// receiver is left untouched.
func (b Bundle) WithImage(name string, image ImageRef) Bundle {
	services := append([]ServiceImage(nil), b.Services...)
	for i, svc := range services {
		if svc.Name == name {
			services[i].Image = image
			return Bundle{Services: services}
		}
	}
	return NewBundle(append(services, ServiceImage{Name: name, Image: image}))
}

// ServiceVersions holds the version tags a registry reports for one
// service, split by tag lineage. Fetched fresh per run, never cached.
type ServiceVersions struct {
	ReleaseTags    []string
	PreReleaseTags []string
}
