package output

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/adtyap26/ddsgen/internal/config"
)

// Package output writes generated node configurations and the run manifest
// into a single output directory.

// DefaultDir is where artifacts go when no directory is given.
const DefaultDir = "generated-dds-cfg"

// ManifestName is the file the run manifest is written to.
const ManifestName = "manifest.yaml"

// Sink receives the rendered artifacts of a run.
type Sink interface {
	WriteArtifact(name, content string) error
	WriteManifest(m *Manifest) error
}

// ArtifactName returns the file name of a node's configuration:
// replica.<id> for the leader and replicas, client.<id> for clients.
func ArtifactName(node config.NodeRecord) string {
	if node.Role == config.Client {
		return fmt.Sprintf("client.%d", node.ID)
	}
	return fmt.Sprintf("replica.%d", node.ID)
}

// DirSink writes artifacts as files in one directory of fs.
type DirSink struct {
	fs  afero.Fs
	dir string
}

// NewDirSink creates dir (and any parents) if needed.
func NewDirSink(fs afero.Fs, dir string) (*DirSink, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", dir)
	}
	return &DirSink{fs: fs, dir: dir}, nil
}

// Dir returns the output directory.
func (s *DirSink) Dir() string { return s.dir }

// WriteArtifact writes content to dir/name, replacing any previous file.
func (s *DirSink) WriteArtifact(name, content string) error {
	path := filepath.Join(s.dir, name)
	if err := afero.WriteFile(s.fs, path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// WriteManifest encodes m as YAML into dir/manifest.yaml.
func (s *DirSink) WriteManifest(m *Manifest) error {
	b, err := m.Marshal()
	if err != nil {
		return err
	}
	return s.WriteArtifact(ManifestName, string(b))
}
