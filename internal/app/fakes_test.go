package app

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"bundle-release/internal/types"
)

type fakeRegistry struct {
	versions map[string]types.ServiceVersions
	digests  map[string]string
	listErr  error
}

func (f *fakeRegistry) ListVersions(ctx context.Context, service string) (types.ServiceVersions, error) {
	if f.listErr != nil {
		return types.ServiceVersions{}, f.listErr
	}
	return f.versions[service], nil
}

func (f *fakeRegistry) ResolveDigest(ctx context.Context, image types.ImageRef) (string, error) {
	key := image.Repository + ":" + image.Tag
	digest, ok := f.digests[key]
	if !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("no digest for " + key)
	}
	return digest, nil
}

type fakeChangelog struct {
	document string
	err      error
	calls    int
}

func (f *fakeChangelog) FetchDocument(ctx context.Context) (string, error) {
	f.calls++
	return f.document, f.err
}

type fakeBundles struct {
	bundle   types.Bundle
	readErr  error
	written  []types.Bundle
	writeLog *[]string
}

func (f *fakeBundles) Read(path string) (types.Bundle, error) {
	if f.readErr != nil {
		return types.Bundle{}, f.readErr
	}
	return f.bundle, nil
}

func (f *fakeBundles) WriteAtomic(path string, bundle types.Bundle) error {
	f.written = append(f.written, bundle)
	if f.writeLog != nil {
		*f.writeLog = append(*f.writeLog, "bundle")
	}
	return nil
}

type fakeManifests struct {
	manifest types.AppManifest
	written  []types.AppManifest
	writeLog *[]string
}

func (f *fakeManifests) Read(path string) (types.AppManifest, error) {
	return f.manifest, nil
}

func (f *fakeManifests) WriteAtomic(path string, manifest types.AppManifest) error {
	f.written = append(f.written, manifest)
	if f.writeLog != nil {
		*f.writeLog = append(*f.writeLog, "manifest")
	}
	return nil
}

type fakeEditor struct {
	result string
	err    error
	calls  int
}

func (f *fakeEditor) Edit(defaultNotes string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

func testBundle(t *testing.T, refs map[string]string) types.Bundle {
	t.Helper()
	services := make([]types.ServiceImage, 0, len(refs))
	for name, ref := range refs {
		image, err := types.ParseImageRef(ref)
		require.NoError(t, err)
		services = append(services, types.ServiceImage{Name: name, Image: image})
	}
	return types.NewBundle(services)
}
