package config

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Validate checks the parameters for logical consistency and reports every
// problem found, not just the first. Each reported problem wraps
// ErrInvalidParameter.
//
// Quota versus pool size is deliberately left to the sampler: a quota larger
// than the pool fails with ErrInsufficientTopics when that node is reached.
func (c DeploymentConfig) Validate() error {
	var result *multierror.Error

	invalid := func(format string, args ...interface{}) {
		result = multierror.Append(result, errors.Wrapf(ErrInvalidParameter, format, args...))
	}

	// --- Counts ---
	positive := []struct {
		key   string
		value int
	}{
		{KeyMinRepFactor, c.MinRepFactor},
		{KeyNumReplicas, c.NumReplicas},
		{KeyNumTopics, c.NumTopics},
		{KeyNumConsumersPerReplica, c.NumConsumersPerReplica},
		{KeyNumProducersPerClient, c.NumProducersPerClient},
	}
	for _, p := range positive {
		if p.value <= 0 {
			invalid("%s must be positive, got %d", p.key, p.value)
		}
	}
	if c.MessageFreqHz <= 0 {
		invalid("%s must be positive, got %g", KeyMessageFreqHz, c.MessageFreqHz)
	}

	// --- Addresses ---
	if len(c.NodeAddresses) == 0 {
		invalid("%s must list at least one node", KeyNodesIPs)
	}
	seen := make(map[string]bool, len(c.NodeAddresses))
	leaderFound := false
	for i, addr := range c.NodeAddresses {
		if addr == "" {
			invalid("%s entry %d is empty", KeyNodesIPs, i)
			continue
		}
		if seen[addr] {
			invalid("%s lists %s more than once", KeyNodesIPs, addr)
		}
		seen[addr] = true
		if addr == c.LeaderAddress {
			leaderFound = true
		}
	}
	if c.LeaderAddress == "" {
		invalid("%s must be set", KeyLeaderIP)
	} else if !leaderFound {
		invalid("%s %s is not in %s", KeyLeaderIP, c.LeaderAddress, KeyNodesIPs)
	}

	// --- RDMA ---
	if c.RDMAProvider == "" {
		invalid("%s must be set", KeyRDMAProvider)
	}
	if c.RDMADomain == "" {
		invalid("%s must be set", KeyRDMADomain)
	}

	return result.ErrorOrNil()
}
