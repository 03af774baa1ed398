package output

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/adtyap26/ddsgen/internal/config"
	"github.com/adtyap26/ddsgen/internal/topics"
)

// Manifest records what one generation run produced, including the seed
// needed to reproduce it.
type Manifest struct {
	RunID       string          `yaml:"run_id"`
	Seed        uint64          `yaml:"seed"`
	GeneratedAt time.Time       `yaml:"generated_at"`
	NumTopics   int             `yaml:"num_topics"`
	Nodes       []ManifestEntry `yaml:"nodes"`
}

// ManifestEntry describes one written artifact.
type ManifestEntry struct {
	Address  string         `yaml:"address"`
	ID       int            `yaml:"id"`
	Role     config.Role    `yaml:"role"`
	Artifact string         `yaml:"artifact"`
	Topics   []topics.Topic `yaml:"topics"`
}

// NewManifest starts a manifest for a run with a fresh run id.
func NewManifest(seed uint64, numTopics int, now time.Time) *Manifest {
	return &Manifest{
		RunID:       uuid.NewString(),
		Seed:        seed,
		GeneratedAt: now.UTC(),
		NumTopics:   numTopics,
	}
}

// Add appends the entry for node.
func (m *Manifest) Add(node config.NodeRecord, assigned []topics.Topic) {
	m.Nodes = append(m.Nodes, ManifestEntry{
		Address:  node.Address,
		ID:       node.ID,
		Role:     node.Role,
		Artifact: ArtifactName(node),
		Topics:   assigned,
	})
}

// Marshal encodes the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	b, err := yaml.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "encoding manifest")
	}
	return b, nil
}

// ReadManifest decodes a manifest previously written by WriteManifest.
func ReadManifest(b []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, errors.Wrap(err, "decoding manifest")
	}
	return &m, nil
}
