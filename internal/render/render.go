package render

import (
	"strconv"
	"strings"

	"github.com/adtyap26/ddsgen/internal/config"
	"github.com/adtyap26/ddsgen/internal/topics"
)

// Placeholder tokens recognized in the node configuration template.
const (
	TokenLeaderIP     = "@LEADER_IP@"
	TokenProvider     = "@PROVIDER@"
	TokenDomain       = "@DOMAIN@"
	TokenMinRepFactor = "@MIN_REP_FACTOR@"
	TokenReplicas     = "@REPLICAS@"
	TokenLocalIP      = "@LOCAL_IP@"
	TokenLocalID      = "@LOCAL_ID@"
)

// Tokens lists every recognized placeholder, in substitution order.
var Tokens = []string{
	TokenLeaderIP,
	TokenProvider,
	TokenDomain,
	TokenMinRepFactor,
	TokenReplicas,
	TokenLocalIP,
	TokenLocalID,
}

// Section labels appended after the template.
const (
	ProducerSection = "[DDS_DEMO/producer]"
	ConsumerSection = "[DDS_DEMO/consumer]"
)

// Substitutions maps placeholder tokens to the text that replaces them.
type Substitutions map[string]string

// Extra carries role-specific scalars written into the role section.
type Extra struct {
	MessageFreqHz float64 // Producer sections only
}

// NodeSubstitutions builds the values for every recognized token for one node.
func NodeSubstitutions(cfg config.DeploymentConfig, node config.NodeRecord) Substitutions {
	return Substitutions{
		TokenLeaderIP:     cfg.LeaderAddress,
		TokenProvider:     cfg.RDMAProvider,
		TokenDomain:       cfg.RDMADomain,
		TokenMinRepFactor: strconv.Itoa(cfg.MinRepFactor),
		TokenReplicas:     strconv.Itoa(cfg.NumReplicas - 1),
		TokenLocalIP:      node.Address,
		TokenLocalID:      strconv.Itoa(node.ID),
	}
}

// Render substitutes the recognized tokens in tmpl and appends the section for
// role. Replacement is literal and single pass: a substituted value is never
// scanned again. Tokens without a value, and anything that is not a
// recognized token, are left as they are.
//
// Clients get a producer section; replicas and the leader get a consumer
// section. The topic list keeps the order of assignment.
func Render(tmpl string, subs Substitutions, role config.Role, assignment []topics.Topic, extra Extra) string {
	var pairs []string
	for _, tok := range Tokens {
		if v, ok := subs[tok]; ok {
			pairs = append(pairs, tok, v)
		}
	}

	var b strings.Builder
	if len(pairs) > 0 {
		b.WriteString(strings.NewReplacer(pairs...).Replace(tmpl))
	} else {
		b.WriteString(tmpl)
	}

	if role == config.Client {
		b.WriteString(ProducerSection + "\n")
		b.WriteString("topics = " + topics.Join(assignment) + "\n")
		b.WriteString("message_freq_hz = " + formatFreq(extra.MessageFreqHz) + "\n")
	} else {
		b.WriteString(ConsumerSection + "\n")
		b.WriteString("topics = " + topics.Join(assignment) + "\n")
	}
	return b.String()
}

// formatFreq prints a frequency with at least one decimal place, so 1 is "1.0".
func formatFreq(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") { // Leave NaN/Inf alone
		s += ".0"
	}
	return s
}
