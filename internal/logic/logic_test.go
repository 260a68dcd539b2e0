package logic

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/encryption"
	"github.com/idelchi/goseal/internal/keyfile"
)

func baseConfig() *config.Config {
	return &config.Config{
		Iterations:    encryption.MinIterations,
		Parallel:      1,
		Quiet:         true,
		EncryptSuffix: ".enc",
	}
}

func TestOutputPath(t *testing.T) {
	cfg := baseConfig()

	assert.Equal(t, filepath.Join("dir", "file.txt.enc"), outputPath(filepath.Join("dir", "file.txt"), cfg))

	cfg.Decrypt = true
	cfg.DecryptSuffix = ".out"

	assert.Equal(t, filepath.Join("dir", "file.txt.out"), outputPath(filepath.Join("dir", "file.txt.enc"), cfg))
}

func TestSessionMaterialFromHexKey(t *testing.T) {
	material, err := encryption.NewMaterial()
	require.NoError(t, err)

	cfg := baseConfig()
	cfg.Key = hex.EncodeToString(material.Bytes())

	recovered, err := SessionMaterial(cfg)
	require.NoError(t, err)

	assert.Equal(t, material, recovered)
}

func TestSessionMaterialFromKeyFile(t *testing.T) {
	material, err := encryption.NewMaterial()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "session.key")
	require.NoError(t, keyfile.Save(path, material, []byte("password"), encryption.MinIterations))

	cfg := baseConfig()
	cfg.KeyFile = path
	cfg.Password = "password"

	recovered, err := SessionMaterial(cfg)
	require.NoError(t, err)
	assert.Equal(t, material, recovered)

	cfg.Password = "not the password"

	_, err = SessionMaterial(cfg)
	assert.Error(t, err)
}

func TestSessionMaterialRequiresKeySource(t *testing.T) {
	_, err := SessionMaterial(baseConfig())

	assert.Error(t, err)
}

func TestRunKeygenAndRewrap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.key")

	cfg := baseConfig()
	cfg.Output = path
	cfg.Password = "first"

	require.NoError(t, RunKeygen(cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(keyfile.Size), info.Size())

	material, err := keyfile.Load(path, []byte("first"), cfg.Iterations)
	require.NoError(t, err)

	cfg.Files = []string{path}
	require.NoError(t, RunRewrap(cfg, []byte("first"), []byte("second")))

	rewrapped, err := keyfile.Load(path, []byte("second"), cfg.Iterations)
	require.NoError(t, err)
	assert.Equal(t, material, rewrapped, "rewrap changes the password, not the material")

	_, err = keyfile.Load(path, []byte("first"), cfg.Iterations)
	assert.Error(t, err, "the old password no longer unwraps the file")
}

func TestRunEncryptDecryptWithKeyFile(t *testing.T) {
	dir := t.TempDir()

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })

	content := []byte("round trip through the full pipeline")
	require.NoError(t, os.WriteFile("note.txt", content, 0o600))

	keyPath := filepath.Join(dir, "run.key")
	material, err := encryption.NewMaterial()
	require.NoError(t, err)
	require.NoError(t, keyfile.Save(keyPath, material, []byte("password"), encryption.MinIterations))

	cfg := baseConfig()
	cfg.KeyFile = keyPath
	cfg.Password = "password"
	cfg.Files = []string{"note.txt"}

	require.NoError(t, Run(cfg))
	assert.FileExists(t, "note.txt.enc")

	decCfg := baseConfig()
	decCfg.KeyFile = keyPath
	decCfg.Password = "password"
	decCfg.Decrypt = true
	decCfg.DecryptSuffix = ".out"
	decCfg.Files = []string{"note.txt.enc"}

	require.NoError(t, Run(decCfg))

	decrypted, err := os.ReadFile("note.txt.out")
	require.NoError(t, err)
	assert.Equal(t, content, decrypted)
}
