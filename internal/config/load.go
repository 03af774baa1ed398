package config

import (
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Keys of the INI input file, as "section.key".
const (
	KeyNodesIPs               = "derecho.nodes_ips"
	KeyLeaderIP               = "derecho.leader_ip"
	KeyRDMAProvider           = "derecho.rdma_provider"
	KeyRDMADomain             = "derecho.rdma_domain"
	KeyMinRepFactor           = "objectstore.min_rep_factor"
	KeyNumReplicas            = "objectstore.num_replicas"
	KeyNumTopics              = "dds.num_topics"
	KeyNumConsumersPerReplica = "dds.num_consumers_per_replica"
	KeyNumProducersPerClient  = "dds.num_producers_per_client"
	KeyMessageFreqHz          = "dds.message_freq_hz"
)

// LoadFile reads and validates the INI input file at path.
func LoadFile(fs afero.Fs, path string) (DeploymentConfig, error) {
	f, err := fs.Open(path)
	if err != nil {
		return DeploymentConfig{}, errors.Wrapf(err, "cannot open configuration input file %s", path)
	}
	defer f.Close()

	cfg, err := Load(f)
	if err != nil {
		return cfg, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}

// Load parses the INI input from r and validates the result.
func Load(r io.Reader) (DeploymentConfig, error) {
	v := viper.New()
	v.SetConfigType("ini")
	if err := v.ReadConfig(r); err != nil {
		return DeploymentConfig{}, errors.Wrap(err, "parsing deployment input")
	}

	var result *multierror.Error
	str := func(key string) string {
		if !v.IsSet(key) {
			result = multierror.Append(result, errors.Wrapf(ErrInvalidParameter, "missing key %s", key))
			return ""
		}
		return strings.TrimSpace(v.GetString(key))
	}
	num := func(key string) int {
		if !v.IsSet(key) {
			result = multierror.Append(result, errors.Wrapf(ErrInvalidParameter, "missing key %s", key))
			return 0
		}
		// Base 10 only: a leading zero is not an octal prefix here.
		n, err := strconv.ParseInt(strings.TrimSpace(v.GetString(key)), 10, 0)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(ErrInvalidParameter, "%s is not an integer: %q", key, v.GetString(key)))
			return 0
		}
		return int(n)
	}

	cfg := DeploymentConfig{
		NodeAddresses:          ParseAddresses(str(KeyNodesIPs)),
		LeaderAddress:          str(KeyLeaderIP),
		RDMAProvider:           str(KeyRDMAProvider),
		RDMADomain:             str(KeyRDMADomain),
		MinRepFactor:           num(KeyMinRepFactor),
		NumReplicas:            num(KeyNumReplicas),
		NumTopics:              num(KeyNumTopics),
		NumConsumersPerReplica: num(KeyNumConsumersPerReplica),
		NumProducersPerClient:  num(KeyNumProducersPerClient),
		MessageFreqHz:          DefaultMessageFreqHz,
	}
	if v.IsSet(KeyMessageFreqHz) {
		f, err := cast.ToFloat64E(strings.TrimSpace(v.GetString(KeyMessageFreqHz)))
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(ErrInvalidParameter, "%s is not a number: %q", KeyMessageFreqHz, v.GetString(KeyMessageFreqHz)))
		} else {
			cfg.MessageFreqHz = f
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ParseAddresses splits a comma-delimited node list, keeping its order.
// Entries are trimmed; empty entries are kept so Validate can report them.
func ParseAddresses(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
