package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	TestConfig struct {
		Push *PushTestConfig
		Pop  *PopTestConfig
	}
	PushTestConfig struct {
		Label   string
		Workers int
	}
	PopTestConfig struct {
		Workers  int
		Elements int
	}
	MultipleWordsConfig struct {
		OpsPerSecond  int
		StackElements int
	}
	ValueFieldConfig struct {
		Pop PopTestConfig
	}
)

func (c *PopTestConfig) ApplyDefault() {
	if c.Workers == 0 {
		c.Workers = 16
	}
}

func TestLoad(t *testing.T) {
	t.Run("it should load basic struct", func(t *testing.T) {
		// GIVEN
		t.Setenv("PUSH_LABEL", "waldo")
		t.Setenv("PUSH_WORKERS", "23")

		// WHEN
		conf, err := Load[PushTestConfig](WithEnvPrefix("PUSH"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "waldo", conf.Label)
		assert.Equal(t, 23, conf.Workers)
	})

	t.Run("it should load nested structs from env vars", func(t *testing.T) {
		// GIVEN
		t.Setenv("TEST_PUSH_LABEL", "waldo")
		t.Setenv("TEST_PUSH_WORKERS", "23")
		t.Setenv("TEST_POP_WORKERS", "12")
		t.Setenv("TEST_POP_ELEMENTS", "66")

		// WHEN
		conf, err := Load[TestConfig](WithEnvPrefix("TEST"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "waldo", conf.Push.Label)
		assert.Equal(t, 23, conf.Push.Workers)
		assert.Equal(t, 12, conf.Pop.Workers)
		assert.Equal(t, 66, conf.Pop.Elements)
	})

	t.Run("it should initialize nested struct even if no env vars for this struct", func(t *testing.T) {
		// GIVEN
		t.Setenv("TEST_POP_WORKERS", "12")

		// WHEN
		conf, err := Load[TestConfig](WithEnvPrefix("TEST"))

		// THEN
		require.NoError(t, err)
		require.NotNil(t, conf.Push)
		assert.Equal(t, "", conf.Push.Label)
		assert.Equal(t, 12, conf.Pop.Workers)
	})

	t.Run("it should apply default if the struct implements WithDefault", func(t *testing.T) {
		// WHEN
		conf, err := Load[TestConfig](WithEnvPrefix("TEST"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, 16, conf.Pop.Workers)
		assert.Equal(t, 0, conf.Pop.Elements)
	})

	t.Run("it should apply default on value fields", func(t *testing.T) {
		// WHEN
		conf, err := Load[ValueFieldConfig](WithEnvPrefix("TEST"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, 16, conf.Pop.Workers)
	})

	t.Run("it should bind correctly multiple words variables", func(t *testing.T) {
		// GIVEN
		t.Setenv("TEST_OPS_PER_SECOND", "12")
		t.Setenv("TEST_STACK_ELEMENTS", "66")

		// WHEN
		conf, err := Load[MultipleWordsConfig](WithEnvPrefix("TEST"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, 12, conf.OpsPerSecond)
		assert.Equal(t, 66, conf.StackElements)
	})

	t.Run("it should read a file and let env vars override it", func(t *testing.T) {
		// GIVEN
		path := filepath.Join(t.TempDir(), "stress.yaml")
		require.NoError(t, os.WriteFile(path, []byte("opsPerSecond: 5\nstackElements: 7\n"), 0o600))
		t.Setenv("TEST_STACK_ELEMENTS", "70")

		// WHEN
		conf, err := Load[MultipleWordsConfig](WithEnvPrefix("TEST"), WithFile(path))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, 5, conf.OpsPerSecond)
		assert.Equal(t, 70, conf.StackElements)
	})

	t.Run("it should fail on a missing file", func(t *testing.T) {
		// WHEN
		_, err := Load[MultipleWordsConfig](WithFile(filepath.Join(t.TempDir(), "missing.yaml")))

		// THEN
		assert.Error(t, err)
	})
}
