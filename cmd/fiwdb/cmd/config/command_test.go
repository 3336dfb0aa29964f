package config_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/config"
	"github.com/agentstation/fiwdb/internal/appcontext"
)

func TestConfigCommand(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   []string
	}{
		{"yaml by default", "", []string{"database_dir: /data/fiw", "blob_driver: s3"}},
		{"json", "json", []string{`"database_dir": "/data/fiw"`, `"s3_bucket": "fiw"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &appcontext.Mock{
				SettingsFunc: func() appcontext.Settings {
					return appcontext.Settings{
						DatabaseDir:   "/data/fiw",
						BlobDriver:    "s3",
						S3Bucket:      "fiw",
						DownloadToken: "s3cr3t",
					}
				},
				OutputFormatFunc: func() string { return tt.format },
			}
			cmd := config.NewCommand(mock)
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetArgs(nil)
			require.NoError(t, cmd.ExecuteContext(context.Background()))

			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			assert.NotContains(t, buf.String(), "s3cr3t")
		})
	}
}
