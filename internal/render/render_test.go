package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adtyap26/ddsgen/internal/config"
	"github.com/adtyap26/ddsgen/internal/topics"
)

const template = `[DERECHO]
leader_ip = @LEADER_IP@
local_ip = @LOCAL_IP@
local_id = @LOCAL_ID@
[RDMA]
provider = @PROVIDER@
domain = @DOMAIN@
[OBJECTSTORE]
min_rep = @MIN_REP_FACTOR@
replicas = @REPLICAS@
# @UNKNOWN@ stays; so does @LOCAL_IP@ twice: @LOCAL_IP@
`

func testConfig() config.DeploymentConfig {
	return config.DeploymentConfig{
		NodeAddresses:          []string{"10.0.0.2", "10.0.0.1", "10.0.0.3"},
		LeaderAddress:          "10.0.0.1",
		RDMAProvider:           "verbs",
		RDMADomain:             "mlx5_0",
		MinRepFactor:           2,
		NumReplicas:            3,
		NumTopics:              4,
		NumConsumersPerReplica: 2,
		NumProducersPerClient:  1,
		MessageFreqHz:          config.DefaultMessageFreqHz,
	}
}

func TestNodeSubstitutions(t *testing.T) {
	subs := NodeSubstitutions(testConfig(), config.NodeRecord{Address: "10.0.0.3", ID: 2, Role: config.Replica})
	assert.Equal(t, Substitutions{
		TokenLeaderIP:     "10.0.0.1",
		TokenProvider:     "verbs",
		TokenDomain:       "mlx5_0",
		TokenMinRepFactor: "2",
		TokenReplicas:     "2",
		TokenLocalIP:      "10.0.0.3",
		TokenLocalID:      "2",
	}, subs)
}

func TestRender_Consumer(t *testing.T) {
	node := config.NodeRecord{Address: "10.0.0.2", ID: 1, Role: config.Replica}
	out := Render(template, NodeSubstitutions(testConfig(), node), node.Role, []topics.Topic{"bbb", "aaa"}, Extra{MessageFreqHz: 1})

	for _, tok := range Tokens {
		assert.NotContains(t, out, tok)
	}
	assert.Contains(t, out, "local_ip = 10.0.0.2\n")
	assert.Contains(t, out, "so does 10.0.0.2 twice: 10.0.0.2\n")
	assert.Contains(t, out, "replicas = 2\n")
	assert.Contains(t, out, "@UNKNOWN@")
	assert.True(t, strings.HasSuffix(out, "[DDS_DEMO/consumer]\ntopics = bbb,aaa\n"))
	assert.NotContains(t, out, "message_freq_hz")
}

func TestRender_Producer(t *testing.T) {
	node := config.NodeRecord{Address: "10.0.0.3", ID: 3, Role: config.Client}
	out := Render("id=@LOCAL_ID@\n", NodeSubstitutions(testConfig(), node), node.Role, []topics.Topic{"ccc"}, Extra{MessageFreqHz: 1})
	assert.Equal(t, "id=3\n[DDS_DEMO/producer]\ntopics = ccc\nmessage_freq_hz = 1.0\n", out)
}

func TestRender_LeaderIsConsumer(t *testing.T) {
	out := Render("", Substitutions{}, config.Leader, []topics.Topic{"x"}, Extra{})
	assert.Equal(t, "[DDS_DEMO/consumer]\ntopics = x\n", out)
}

func TestRender_PartialSubstitutions(t *testing.T) {
	out := Render("@LEADER_IP@ @DOMAIN@", Substitutions{TokenLeaderIP: "L", "@NOT_A_TOKEN@": "x"}, config.Replica, nil, Extra{})
	assert.True(t, strings.HasPrefix(out, "L @DOMAIN@"))
}

func TestRender_NoCascade(t *testing.T) {
	subs := Substitutions{TokenLeaderIP: TokenLocalIP, TokenLocalIP: "10.0.0.9"}
	out := Render("@LEADER_IP@|@LOCAL_IP@", subs, config.Replica, nil, Extra{})
	assert.True(t, strings.HasPrefix(out, "@LOCAL_IP@|10.0.0.9"))
}

func TestFormatFreq(t *testing.T) {
	assert.Equal(t, "1.0", formatFreq(1))
	assert.Equal(t, "2.5", formatFreq(2.5))
	assert.Equal(t, "10.0", formatFreq(10))
	assert.Equal(t, "0.25", formatFreq(0.25))
}
