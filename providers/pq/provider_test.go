package pq

import (
	"testing"

	"github.com/Konsultn-Engineering/pagedb/connector"
	"github.com/stretchr/testify/assert"
)

func TestRegistered(t *testing.T) {
	assert.Contains(t, connector.Providers(), connector.DriverPq)

	c, err := connector.New(connector.Config{Driver: connector.DriverPq, Host: "localhost"})
	assert.NoError(t, err)
	assert.NotNil(t, c.Dialect())
}
