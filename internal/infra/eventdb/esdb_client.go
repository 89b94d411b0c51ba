package eventdb

import (
	"fmt"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
)

// NewClient 例: esdb://localhost:2113?tls=false
func NewClient(url string) (*esdb.Client, error) {
	settings, err := esdb.ParseConnectionString(url)
	if err != nil {
		return nil, fmt.Errorf("parse esdb connection string: %w", err)
	}
	return esdb.NewClient(settings)
}
