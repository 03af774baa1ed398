package placement

import (
	"github.com/pkg/errors"

	// Use the full module path for internal packages
	"github.com/adtyap26/ddsgen/internal/config"
	"github.com/adtyap26/ddsgen/internal/topics"
)

// Package placement decides which node plays which role and, for dry runs,
// which topics every node ends up with.

// NodePlan is one node together with the topics it was assigned.
type NodePlan struct {
	Node   config.NodeRecord
	Topics []topics.Topic
}

// Plan is the complete allocation for a cluster, in address-list order.
type Plan struct {
	Pool  topics.Pool
	Nodes []NodePlan
}

// AssignRoles maps the ordered address list to node records.
//
// The leader address always gets id 0. Every other address takes the next id
// from a counter starting at 1, in the order given, so the input order alone
// decides which nodes fall into the replica range [1, numReplicas) and which
// become clients. The list is never re-sorted.
func AssignRoles(addresses []string, leader string, numReplicas int) ([]config.NodeRecord, error) {
	if numReplicas <= 0 {
		return nil, errors.Wrapf(config.ErrInvalidParameter, "replica count must be positive, got %d", numReplicas)
	}
	if len(addresses) < numReplicas {
		return nil, errors.Wrapf(config.ErrInsufficientNodes, "we have %d nodes, not enough for %d replicas", len(addresses), numReplicas)
	}

	nodes := make([]config.NodeRecord, 0, len(addresses))
	next := 1 // Leader takes 0, everyone else counts up from here
	for _, addr := range addresses {
		id := 0
		if addr != leader {
			id = next
			next++
		}
		nodes = append(nodes, config.NodeRecord{
			Address: addr,
			ID:      id,
			Role:    classify(id, numReplicas),
		})
	}
	return nodes, nil
}

// classify derives the role from an assigned id.
func classify(id, numReplicas int) config.Role {
	switch {
	case id == 0:
		return config.Leader
	case id < numReplicas:
		return config.Replica
	default:
		return config.Client
	}
}

// BuildPlan computes the full allocation without rendering or writing anything.
// It draws from rng in the same order as a real generation run (pool first,
// then one sample per node in address order), so the same seed previews
// exactly what would be written.
func BuildPlan(rng topics.Rand, cfg config.DeploymentConfig) (*Plan, error) {
	pool, err := topics.GeneratePool(rng, cfg.NumTopics)
	if err != nil {
		return nil, err
	}
	nodes, err := AssignRoles(cfg.NodeAddresses, cfg.LeaderAddress, cfg.NumReplicas)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Pool: pool, Nodes: make([]NodePlan, 0, len(nodes))}
	for _, node := range nodes {
		picked, err := topics.Sample(rng, pool, cfg.QuotaFor(node.Role))
		if err != nil {
			return nil, errors.Wrapf(err, "node %s (id %d)", node.Address, node.ID)
		}
		plan.Nodes = append(plan.Nodes, NodePlan{Node: node, Topics: picked})
	}
	return plan, nil
}

// Count returns how many planned nodes have the given role.
func (p *Plan) Count(role config.Role) int {
	n := 0
	for _, np := range p.Nodes {
		if np.Node.Role == role {
			n++
		}
	}
	return n
}

// Usage reports how many nodes were assigned each topic. Topics nobody drew
// are present with a zero count.
func (p *Plan) Usage() map[topics.Topic]int {
	usage := make(map[topics.Topic]int, len(p.Pool))
	for _, t := range p.Pool {
		usage[t] = 0
	}
	for _, np := range p.Nodes {
		for _, t := range np.Topics {
			usage[t]++
		}
	}
	return usage
}
