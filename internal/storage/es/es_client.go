package es

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
)

// ClientConfig points the history store at a cluster. Results of every run
// land in IndexName, one document per dataset.
type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	if len(config.Addresses) == 0 {
		return nil, fmt.Errorf("no Elasticsearch addresses configured for index %q", config.IndexName)
	}

	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
		// bulk bodies carry full score maps per dataset
		CompressRequestBody: true,
	}

	// basic auth only when both halves are set
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}
