package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewServer_NoWriteDeadline(t *testing.T) {
	srv := newServer(":0", http.NotFoundHandler())

	assert.Equal(t, ":0", srv.Addr)
	assert.Zero(t, srv.WriteTimeout)
	assert.Positive(t, srv.ReadTimeout)
	assert.Positive(t, srv.IdleTimeout)
}
