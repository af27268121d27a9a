package storage_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Avisos-pago-api/internal/infrastructure/storage"
)

func TestLocalStore_WriteReadExists(t *testing.T) {
	store := storage.NewLocalStoreWithFs(afero.NewMemMapFs())
	ctx := context.Background()

	exists, err := store.Exists(ctx, "2608_Payment_Notifications", "2608_Tanaka_Payment_Notification.pdf")
	require.NoError(t, err)
	assert.False(t, exists, "antes de escribir el archivo no debe existir")

	require.NoError(t, store.Write(ctx,
		"2608_Payment_Notifications", "2608_Tanaka_Payment_Notification.pdf", []byte("%PDF contenido")))

	exists, err = store.Exists(ctx, "2608_Payment_Notifications", "2608_Tanaka_Payment_Notification.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := store.Read(ctx, "2608_Payment_Notifications", "2608_Tanaka_Payment_Notification.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF contenido"), data)
}

func TestLocalStore_CarpetasDePeriodoSeparadas(t *testing.T) {
	store := storage.NewLocalStoreWithFs(afero.NewMemMapFs())
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "2607_Payment_Notifications", "a.pdf", []byte("julio")))
	require.NoError(t, store.Write(ctx, "2608_Payment_Notifications", "a.pdf", []byte("agosto")))

	julio, err := store.Read(ctx, "2607_Payment_Notifications", "a.pdf")
	require.NoError(t, err)
	agosto, err := store.Read(ctx, "2608_Payment_Notifications", "a.pdf")
	require.NoError(t, err)
	assert.NotEqual(t, julio, agosto, "el mismo nombre en períodos distintos son archivos distintos")
}

func TestLocalStore_ReadInexistente_Error(t *testing.T) {
	store := storage.NewLocalStoreWithFs(afero.NewMemMapFs())
	_, err := store.Read(context.Background(), "2608_Payment_Notifications", "no-existe.pdf")
	assert.Error(t, err)
}

func TestLocalStore_ExistsEsPorNombreExacto(t *testing.T) {
	// El esquema de dos ranuras depende de que Exists distinga base de único.
	store := storage.NewLocalStoreWithFs(afero.NewMemMapFs())
	ctx := context.Background()

	require.NoError(t, store.Write(ctx,
		"2608_Payment_Notifications", "2608_Tanaka_Payment_Notification.pdf", []byte("base")))

	exists, err := store.Exists(ctx,
		"2608_Payment_Notifications", "2608_Tanaka_Payment_Notification_ABC商事_7.pdf")
	require.NoError(t, err)
	assert.False(t, exists, "el nombre con sufijo no debe confundirse con el base")
}
