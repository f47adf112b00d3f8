package types

const (
	InMemoryStore = "inmemory"
	FileStore     = "file"
)

// Config is the persisted configuration of a client.
type Config struct {
	NodeURL string `json:"node_url" mapstructure:"node_url"`
	Network string `json:"network"  mapstructure:"network"`
	// SignerAddress is the ss58 address of the default signer, if any. Signer
	// secrets are never persisted.
	SignerAddress string `json:"signer_address,omitempty" mapstructure:"signer_address"`
}
