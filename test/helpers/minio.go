package helpers

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"

	"github.com/sunthewhat/easy-cert-form/type/shared"
)

// MinIOContainer holds the test object storage container
type MinIOContainer struct {
	Container *tcminio.MinioContainer
	Client    *minio.Client
	Config    shared.StorageConfig
}

// SetupTestMinIO starts a MinIO container and returns a client plus matching storage config
func SetupTestMinIO(t *testing.T, bucket string) *MinIOContainer {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	container, err := tcminio.Run(ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z",
		tcminio.WithUsername("easycert"),
		tcminio.WithPassword("easycert-secret"),
	)
	require.NoError(t, err, "Failed to start MinIO container")

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get MinIO endpoint")

	cfg := shared.StorageConfig{
		Enabled:   true,
		Endpoint:  endpoint,
		AccessKey: container.Username,
		SecretKey: container.Password,
		Bucket:    bucket,
		UseSSL:    false,
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: false,
	})
	require.NoError(t, err, "Failed to create MinIO client")

	return &MinIOContainer{
		Container: container,
		Client:    client,
		Config:    cfg,
	}
}
