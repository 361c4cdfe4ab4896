package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/soask/cmd/soask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOML(t *testing.T) {
	t.Parallel()

	type flags struct {
		Answers  int
		Model    string
		NoStream bool
		Timeout  time.Duration
	}

	parse := func(t *testing.T, config string, args ...string) *flags {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(config), 0644))

		var f flags
		parser, err := kong.New(&f, kong.Configuration(main.TOML, path), kong.Exit(func(int) {}))
		require.NoError(t, err)
		_, err = parser.Parse(args)
		require.NoError(t, err)
		return &f
	}

	t.Run("reads scalar values", func(t *testing.T) {
		t.Parallel()

		f := parse(t, "answers = 5\nmodel = \"gpt-test\"\ntimeout = \"3s\"\n")

		assert.Equal(t, 5, f.Answers)
		assert.Equal(t, "gpt-test", f.Model)
		assert.Equal(t, 3*time.Second, f.Timeout)
	})

	t.Run("accepts underscores for dashes", func(t *testing.T) {
		t.Parallel()

		f := parse(t, "no_stream = true\n")

		assert.True(t, f.NoStream)
	})

	t.Run("accepts dashed keys", func(t *testing.T) {
		t.Parallel()

		f := parse(t, "\"no-stream\" = true\n")

		assert.True(t, f.NoStream)
	})

	t.Run("command line wins", func(t *testing.T) {
		t.Parallel()

		f := parse(t, "answers = 5\n", "--answers", "2")

		assert.Equal(t, 2, f.Answers)
	})
}

func TestTOML_RejectsInvalidDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("answers = [unterminated"), 0644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = main.TOML(f)
	require.Error(t, err)
}
