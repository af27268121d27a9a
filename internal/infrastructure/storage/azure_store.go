package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	apppayrun "github.com/jhoicas/Avisos-pago-api/internal/application/payrun"
)

var _ apppayrun.DocumentStore = (*AzureStore)(nil)

// AzureStore almacenamiento en Azure Blob Storage. La "carpeta" del período
// es el prefijo de la clave del blob: {folder}/{name}.
type AzureStore struct {
	client    *azblob.Client
	container string
}

// NewAzureStore construye el store desde el connection string y asegura que
// el contenedor exista.
func NewAzureStore(ctx context.Context, connectionString, container string) (*AzureStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: crear cliente azure: %w", err)
	}
	if _, err := client.CreateContainer(ctx, container, nil); err != nil {
		if !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return nil, fmt.Errorf("storage: crear contenedor %s: %w", container, err)
		}
	}
	return &AzureStore{client: client, container: container}, nil
}

func blobKey(folder, name string) string { return folder + "/" + name }

// Write sube el documento como blob.
func (s *AzureStore) Write(ctx context.Context, folder, name string, data []byte) error {
	key := blobKey(folder, name)
	if _, err := s.client.UploadBuffer(ctx, s.container, key, data, nil); err != nil {
		return fmt.Errorf("storage: subir blob %s: %w", key, err)
	}
	return nil
}

// Exists indica si el blob existe.
func (s *AzureStore) Exists(ctx context.Context, folder, name string) (bool, error) {
	key := blobKey(folder, name)
	blobClient := s.client.
		ServiceClient().
		NewContainerClient(s.container).
		NewBlobClient(key)

	if _, err := blobClient.GetProperties(ctx, nil); err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("storage: verificar blob %s: %w", key, err)
	}
	return true, nil
}

// Read descarga los bytes del blob.
func (s *AzureStore) Read(ctx context.Context, folder, name string) ([]byte, error) {
	key := blobKey(folder, name)
	resp, err := s.client.DownloadStream(ctx, s.container, key, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: descargar blob %s: %w", key, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("storage: leer blob %s: %w", key, err)
	}
	return buf.Bytes(), nil
}
