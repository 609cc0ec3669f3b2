package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun_StartsAndShutsDown(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "0")
	t.Setenv("APP_DATABASE_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("APP_LOG_LEVEL", "error")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, Run(ctx))
}

func TestRun_BadDriver(t *testing.T) {
	t.Setenv("APP_DATABASE_DRIVER", "mysql")

	assert.Error(t, Run(context.Background()))
}
