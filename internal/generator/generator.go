package generator

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/adtyap26/ddsgen/internal/config"
	"github.com/adtyap26/ddsgen/internal/output"
	"github.com/adtyap26/ddsgen/internal/placement"
	"github.com/adtyap26/ddsgen/internal/render"
	"github.com/adtyap26/ddsgen/internal/topics"
)

// Generator runs one generation pass: build the topic pool, assign roles, then
// sample, render and write each node in address order.
//
// Nodes are written as they are rendered. If a later node fails, the files of
// the earlier nodes stay in the output directory; only the manifest is held
// back until every node succeeded.
type Generator struct {
	cfg      config.DeploymentConfig
	template string
	rng      topics.Rand
	seed     uint64
	sink     output.Sink
	log      *zap.Logger

	noManifest bool
	now        func() time.Time
}

// New returns a generator. seed is only recorded in the manifest; rng must
// already be seeded with it.
func New(cfg config.DeploymentConfig, template string, rng topics.Rand, seed uint64, sink output.Sink, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		cfg:      cfg,
		template: template,
		rng:      rng,
		seed:     seed,
		sink:     sink,
		log:      log,
		now:      time.Now,
	}
}

// DisableManifest stops Run from writing manifest.yaml. The manifest is still
// returned.
func (g *Generator) DisableManifest() { g.noManifest = true }

// Run executes the pipeline and returns the manifest of what was written.
func (g *Generator) Run() (*output.Manifest, error) {
	manifest := output.NewManifest(g.seed, g.cfg.NumTopics, g.now())
	log := g.log.With(zap.String("run_id", manifest.RunID), zap.Uint64("seed", g.seed))
	log.Info("Generating node configurations",
		zap.Int("nodes", len(g.cfg.NodeAddresses)),
		zap.Int("replicas", g.cfg.NumReplicas),
		zap.Int("topics", g.cfg.NumTopics))

	pool, err := topics.GeneratePool(g.rng, g.cfg.NumTopics)
	if err != nil {
		return nil, err
	}
	nodes, err := placement.AssignRoles(g.cfg.NodeAddresses, g.cfg.LeaderAddress, g.cfg.NumReplicas)
	if err != nil {
		return nil, err
	}

	extra := render.Extra{MessageFreqHz: g.cfg.MessageFreqHz}
	for _, node := range nodes {
		picked, err := topics.Sample(g.rng, pool, g.cfg.QuotaFor(node.Role))
		if err != nil {
			return nil, errors.Wrapf(err, "node %s (id %d)", node.Address, node.ID)
		}

		text := render.Render(g.template, render.NodeSubstitutions(g.cfg, node), node.Role, picked, extra)
		name := output.ArtifactName(node)
		if err := g.sink.WriteArtifact(name, text); err != nil {
			return nil, errors.Wrapf(err, "node %s (id %d)", node.Address, node.ID)
		}
		manifest.Add(node, picked)

		log.Info("Artifact written",
			zap.String("artifact", name),
			zap.String("address", node.Address),
			zap.String("role", string(node.Role)),
			zap.Int("topics", len(picked)))
	}

	if g.noManifest {
		return manifest, nil
	}
	if err := g.sink.WriteManifest(manifest); err != nil {
		return nil, err
	}
	log.Debug("Manifest written", zap.String("file", output.ManifestName))
	return manifest, nil
}
