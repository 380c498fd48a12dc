package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redlinehq/redline/internal/adapters/driven/storage/memory"
)

func setupTestConfig() func() {
	oldStore := configStore
	configStore = memory.NewConfigStore()
	return func() {
		configStore = oldStore
	}
}

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
}

func TestConfigSetAndGet(t *testing.T) {
	cleanup := setupTestConfig()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "server.addr", "127.0.0.1:9000"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Set server.addr.")

	buf.Reset()
	rootCmd.SetArgs([]string{"config", "get", "server.addr"})
	err = rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "127.0.0.1:9000")
}

func TestConfigGetCmd_UnknownKey(t *testing.T) {
	cleanup := setupTestConfig()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "get", "no.such.key"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "key not set")
}

func TestConfigShowCmd_ListsWellKnownKeys(t *testing.T) {
	cleanup := setupTestConfig()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "server.addr")
	assert.Contains(t, buf.String(), "(not set)")
}

func TestConfigShowCmd_StoreNotConfigured(t *testing.T) {
	oldStore := configStore
	configStore = nil
	defer func() {
		configStore = oldStore
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config store not configured")
}
