package config

// Package config holds the core data structures shared across the generator:
// node roles, node records and the deployment parameters a run is built from.

// Role defines the part a node plays in the demo cluster.
type Role string

const (
	Leader  Role = "Leader"
	Replica Role = "Replica"
	Client  Role = "Client"
)

// NodeRecord binds one node address to its numeric id and role.
type NodeRecord struct {
	Address string
	ID      int
	Role    Role
}

// DefaultMessageFreqHz is the producer message frequency written when the
// input file does not set one.
const DefaultMessageFreqHz = 1.0

// DeploymentConfig holds every parameter needed to generate the per-node
// configuration files. It is what the INI input file parses into and what the
// TUI builds from its inputs.
type DeploymentConfig struct {
	NodeAddresses []string // Ordered; order decides replica vs client ids
	LeaderAddress string
	RDMAProvider  string
	RDMADomain    string

	MinRepFactor int
	NumReplicas  int // Includes the leader, so replica ids are [1, NumReplicas)

	NumTopics              int // Size of the shared topic pool
	NumConsumersPerReplica int
	NumProducersPerClient  int
	MessageFreqHz          float64
}

// QuotaFor returns how many topics a node with the given role draws from the pool.
// The leader carries a consumer section, so it uses the replica quota.
func (c DeploymentConfig) QuotaFor(role Role) int {
	if role == Client {
		return c.NumProducersPerClient
	}
	return c.NumConsumersPerReplica
}
