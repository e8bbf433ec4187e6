package store

// Reader is the read-only view handed to tools that consume the shared
// configuration. Consumers should treat ErrKeyNotFound as "use your own
// default".
type Reader interface {
	GetPath(name string) (string, error)
	GetAgent(name string) (AgentProfile, error)
	ListAgents() []AgentProfile
	GetSetting(name string) (Value, bool)
}

var _ Reader = (*Store)(nil)
