package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"bundle-release/internal/ports"
	"bundle-release/internal/types"
)

// BundleFileAdapter reads and writes the per-channel bundle document:
//
//	services:
//	  api:
//	    image: registry.example.com/acme/api:1.4.0@sha256:...
//
// Serialization is a contract: service blocks are emitted in sorted name
// order with the single image key, so rewriting an unchanged bundle
// reproduces the file byte for byte. Writes go to a temporary file in the
// same directory followed by a rename, so a crash mid-write never leaves a
// half-written bundle behind.
type BundleFileAdapter struct{}

func NewBundleFileAdapter() BundleFileAdapter {
	return BundleFileAdapter{}
}

type bundleFile struct {
	Services map[string]bundleService `yaml:"services"`
}

type bundleService struct {
	Image string `yaml:"image"`
}

func (a BundleFileAdapter) Read(path string) (types.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Bundle{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("bundle file not found").
			WithCause(err)
	}
	var file bundleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return types.Bundle{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid bundle format").
			WithCause(err)
	}
	if len(file.Services) == 0 {
		return types.Bundle{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("bundle has no services")
	}
	services := make([]types.ServiceImage, 0, len(file.Services))
	for name, svc := range file.Services {
		image, err := types.ParseImageRef(svc.Image)
		if err != nil {
			return types.Bundle{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid image reference for service %s", name)).
				WithCause(err)
		}
		services = append(services, types.ServiceImage{Name: name, Image: image})
	}
	return types.NewBundle(services), nil
}

func (a BundleFileAdapter) WriteAtomic(path string, bundle types.Bundle) error {
	if len(bundle.Services) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("refusing to write an empty bundle")
	}
	data, err := marshalBundle(bundle)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// marshalBundle builds the document node by node so service keys come out
// in sorted order regardless of the encoder's map handling.
func marshalBundle(bundle types.Bundle) ([]byte, error) {
	ordered := append([]types.ServiceImage(nil), bundle.Services...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})
	servicesNode := &yaml.Node{Kind: yaml.MappingNode}
	for _, svc := range ordered {
		servicesNode.Content = append(servicesNode.Content,
			scalarNode(svc.Name),
			&yaml.Node{
				Kind:    yaml.MappingNode,
				Content: []*yaml.Node{scalarNode("image"), scalarNode(svc.Image.String())},
			},
		)
	}
	root := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{scalarNode("services"), servicesNode},
	}
	data, err := yaml.Marshal(root)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to serialize bundle").
			WithCause(err)
	}
	return data, nil
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

// writeFileAtomic writes to a sibling temp file and renames it over the
// target. Rename within one directory is atomic on POSIX systems.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temporary file").
			WithCause(err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write temporary file").
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close temporary file").
			WithCause(err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to set file mode").
			WithCause(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to replace file").
			WithCause(err)
	}
	return nil
}

var _ ports.BundlePort = BundleFileAdapter{}
