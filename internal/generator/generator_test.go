package generator

import (
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/adtyap26/ddsgen/internal/config"
	"github.com/adtyap26/ddsgen/internal/output"
	"github.com/adtyap26/ddsgen/internal/placement"
	"github.com/adtyap26/ddsgen/internal/render"
	"github.com/adtyap26/ddsgen/internal/topics"
)

const tmpl = "leader=@LEADER_IP@ local=@LOCAL_IP@ id=@LOCAL_ID@ replicas=@REPLICAS@\n"

func testConfig() config.DeploymentConfig {
	return config.DeploymentConfig{
		NodeAddresses:          []string{"10.0.0.2", "10.0.0.1", "10.0.0.3", "10.0.0.4"},
		LeaderAddress:          "10.0.0.1",
		RDMAProvider:           "sockets",
		RDMADomain:             "lo",
		MinRepFactor:           1,
		NumReplicas:            2,
		NumTopics:              10,
		NumConsumersPerReplica: 3,
		NumProducersPerClient:  2,
		MessageFreqHz:          config.DefaultMessageFreqHz,
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, filepath.Join("out", name))
	require.NoError(t, err)
	return string(b)
}

func TestRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink, err := output.NewDirSink(fs, "out")
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	m, err := New(testConfig(), tmpl, newRand(7), 7, sink, zap.New(core)).Run()
	require.NoError(t, err)

	files, err := afero.ReadDir(fs, "out")
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	assert.ElementsMatch(t, []string{"replica.1", "replica.0", "client.2", "client.3", output.ManifestName}, names)

	leader := readFile(t, fs, "replica.0")
	assert.True(t, strings.HasPrefix(leader, "leader=10.0.0.1 local=10.0.0.1 id=0 replicas=1\n[DDS_DEMO/consumer]\n"))

	client := readFile(t, fs, "client.3")
	assert.True(t, strings.HasPrefix(client, "leader=10.0.0.1 local=10.0.0.4 id=3 replicas=1\n[DDS_DEMO/producer]\n"))
	assert.True(t, strings.HasSuffix(client, "message_freq_hz = 1.0\n"))

	require.Len(t, m.Nodes, 4)
	assert.Equal(t, uint64(7), m.Seed)
	for _, e := range m.Nodes {
		body := readFile(t, fs, e.Artifact)
		assert.Contains(t, body, "topics = "+topics.Join(e.Topics)+"\n")
	}

	assert.Equal(t, 4, logs.FilterMessage("Artifact written").Len())
}

func TestRun_MatchesPlan(t *testing.T) {
	cfg := testConfig()
	plan, err := placement.BuildPlan(newRand(21), cfg)
	require.NoError(t, err)

	sink, err := output.NewDirSink(afero.NewMemMapFs(), "out")
	require.NoError(t, err)
	m, err := New(cfg, tmpl, newRand(21), 21, sink, nil).Run()
	require.NoError(t, err)

	require.Len(t, m.Nodes, len(plan.Nodes))
	for i, np := range plan.Nodes {
		assert.Equal(t, np.Node.Address, m.Nodes[i].Address)
		assert.Equal(t, np.Topics, m.Nodes[i].Topics)
	}
}

func TestRun_PartialOutputOnFailure(t *testing.T) {
	cfg := testConfig()
	cfg.NumProducersPerClient = cfg.NumTopics + 1 // First client fails

	fs := afero.NewMemMapFs()
	sink, err := output.NewDirSink(fs, "out")
	require.NoError(t, err)

	_, err = New(cfg, tmpl, newRand(3), 3, sink, nil).Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInsufficientTopics))
	assert.Contains(t, err.Error(), "10.0.0.3")

	// Nodes before the failing one were already written; no manifest.
	for _, name := range []string{"replica.1", "replica.0"} {
		ok, err := afero.Exists(fs, filepath.Join("out", name))
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
	for _, name := range []string{"client.2", output.ManifestName} {
		ok, err := afero.Exists(fs, filepath.Join("out", name))
		require.NoError(t, err)
		assert.False(t, ok, name)
	}
}

func TestRun_InsufficientNodes(t *testing.T) {
	cfg := testConfig()
	cfg.NumReplicas = 5

	sink, err := output.NewDirSink(afero.NewMemMapFs(), "out")
	require.NoError(t, err)
	_, err = New(cfg, tmpl, newRand(1), 1, sink, nil).Run()
	assert.True(t, errors.Is(err, config.ErrInsufficientNodes))
}

func TestRun_WithoutManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink, err := output.NewDirSink(fs, "out")
	require.NoError(t, err)

	g := New(testConfig(), tmpl, newRand(1), 1, sink, nil)
	g.DisableManifest()
	m, err := g.Run()
	require.NoError(t, err)
	assert.Len(t, m.Nodes, 4)

	ok, err := afero.Exists(fs, filepath.Join("out", output.ManifestName))
	require.NoError(t, err)
	assert.False(t, ok)
}

// failingSink rejects writes after a number of successful ones.
type failingSink struct {
	left int
}

func (s *failingSink) WriteArtifact(name, content string) error {
	if s.left == 0 {
		return errors.New("disk full")
	}
	s.left--
	return nil
}

func (s *failingSink) WriteManifest(*output.Manifest) error { return nil }

func TestRun_SinkFailure(t *testing.T) {
	_, err := New(testConfig(), tmpl, newRand(1), 1, &failingSink{left: 1}, nil).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "10.0.0.1") // Second node in address order
}

func TestRun_RendersEveryToken(t *testing.T) {
	sink, err := output.NewDirSink(afero.NewMemMapFs(), "out")
	require.NoError(t, err)

	full := strings.Join(render.Tokens, " ") + "\n"
	rec := &recordingSink{DirSink: sink}
	_, err = New(testConfig(), full, newRand(9), 9, rec, nil).Run()
	require.NoError(t, err)

	require.NotEmpty(t, rec.bodies)
	for _, body := range rec.bodies {
		for _, tok := range render.Tokens {
			assert.NotContains(t, body, tok)
		}
	}
}

type recordingSink struct {
	*output.DirSink
	bodies []string
}

func (s *recordingSink) WriteArtifact(name, content string) error {
	s.bodies = append(s.bodies, content)
	return s.DirSink.WriteArtifact(name, content)
}
