package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
port: ":5000"
cors: ["https://certs.example"]
upload_dir: uploads
output_dir: output
max_upload_mb: 20
output_retention_hours: 24
template:
  background_image_path: static/certificate_bg.png
  hod_signature_path: static/hod.png
mail:
  enabled: true
  host: smtp.example.com
  user: certs@example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":5000", *cfg.Port)
	assert.Equal(t, []string{"https://certs.example"}, cfg.CorsOrigins())
	assert.Equal(t, "uploads", *cfg.UploadDir)
	assert.Equal(t, "output", *cfg.OutputDir)
	assert.Equal(t, 20*1024*1024, cfg.UploadLimit())
	assert.Equal(t, 24, cfg.RetentionHours())
	assert.Equal(t, "static/certificate_bg.png", cfg.Template.BackgroundImagePath)
	assert.Equal(t, "static/hod.png", cfg.Template.HodSignaturePath)
	assert.Empty(t, cfg.Template.DirectorSignaturePath)
	assert.True(t, cfg.Mail.Enabled)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
port: ":5000"
upload_dir: uploads
output_dir: output
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 15*1024*1024, cfg.UploadLimit())
	assert.Equal(t, 0, cfg.RetentionHours())
	assert.Empty(t, cfg.CorsOrigins())
	assert.Empty(t, cfg.Template.BackgroundImagePath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing port",
			content: "upload_dir: uploads\noutput_dir: output\n",
			wantErr: "Port is required",
		},
		{
			name:    "storage enabled without endpoint",
			content: "port: \":5000\"\nupload_dir: uploads\noutput_dir: output\nstorage:\n  enabled: true\n",
			wantErr: "Endpoint is required when Enabled is set",
		},
		{
			name:    "zero upload limit",
			content: "port: \":5000\"\nupload_dir: uploads\noutput_dir: output\nmax_upload_mb: 0\n",
			wantErr: "MaxUploadMB must be at least 1",
		},
		{
			name:    "not yaml",
			content: "port: [\n",
			wantErr: "failed to unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.ErrorContains(t, err, "failed to read")
}

func TestPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "config.yml", Path())

	t.Setenv("CONFIG_PATH", "/etc/easy-cert/config.yml")
	assert.Equal(t, "/etc/easy-cert/config.yml", Path())
}
