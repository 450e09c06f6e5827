package config

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/texpack/pkg/config/status"
	"github.com/oneconcern/texpack/pkg/errors"
	"github.com/oneconcern/texpack/pkg/model"
)

func TestLoadOrInitializeBootstrap(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, DefaultPath)
	ctx := context.Background()

	cfg, err := store.LoadOrInitialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultJobConfig(), *cfg)

	written, err := afero.ReadFile(fs, DefaultPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{
	  "packingConfigs": [
	    {"name": "Pack 1", "rawDirectory": "input", "outputDirectory": "output", "packName": "packed"}
	  ],
	  "unpackingConfigs": []
	}`, string(written))

	// second run: the file is left untouched
	info, err := fs.Stat(DefaultPath)
	require.NoError(t, err)

	cfg, err = store.LoadOrInitialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultJobConfig(), *cfg)

	again, err := afero.ReadFile(fs, DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, written, again)
	infoAgain, err := fs.Stat(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), infoAgain.ModTime())
}

func TestLoadOrInitializeExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	const content = `{
  "unpackingConfigs": [
    {"name": "u1", "atlasToUnpack": "output/packed.atlas", "outputDirectory": "result"}
  ]
}`
	require.NoError(t, afero.WriteFile(fs, "jobs/texpack.json", []byte(content), 0644))

	store := New(fs, "jobs/texpack.json")
	created, err := store.Initialize(context.Background())
	require.NoError(t, err)
	assert.False(t, created)

	cfg, err := store.LoadOrInitialize(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cfg.PackingConfigs)
	require.Len(t, cfg.UnpackingConfigs, 1)
	assert.Equal(t, model.UnpackJob{Name: "u1", AtlasToUnpack: "output/packed.atlas", OutputDirectory: "result"}, cfg.UnpackingConfigs[0])

	data, err := afero.ReadFile(fs, "jobs/texpack.json")
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestLoadMalformed(t *testing.T) {
	for _, toPin := range []struct {
		name    string
		content string
	}{
		{name: "truncated", content: `{"packingConfigs": [`},
		{name: "not json", content: `packingConfigs = []`},
		{name: "wrong shape", content: `[{"name": "x"}]`},
		{name: "wrong job type", content: `{"packingConfigs": {"name": "x"}}`},
		{name: "null", content: `null`},
		{name: "padded null", content: " null\n"},
		{name: "number", content: `42`},
	} {
		testcase := toPin
		t.Run(testcase.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, DefaultPath, []byte(testcase.content), 0644))

			_, err := New(fs, DefaultPath).LoadOrInitialize(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, status.ErrConfigParse))
			assert.Contains(t, err.Error(), DefaultPath)

			var cerr *Error
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, DefaultPath, cerr.Path)

			// the malformed file is not rewritten
			data, err := afero.ReadFile(fs, DefaultPath)
			require.NoError(t, err)
			assert.Equal(t, testcase.content, string(data))
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := New(afero.NewMemMapFs(), "nowhere.json").Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrConfigRead))
}

func TestInitializeReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	_, err := New(fs, DefaultPath).Initialize(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrConfigWrite))
}

func TestDump(t *testing.T) {
	data, err := Dump(model.DefaultJobConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"packName": "packed"`)
}
