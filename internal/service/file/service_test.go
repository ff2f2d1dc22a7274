package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/jpeg"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	files map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: make(map[string][]byte)}
}

func (m *memoryStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.files[path] = data
	return path, nil
}

func (m *memoryStorage) Delete(ctx context.Context, path string) error {
	delete(m.files, path)
	return nil
}

func (m *memoryStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://localhost:8080/media/" + path, nil
}

func (m *memoryStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

func jpegDataURL(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, img, nil))
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestSaveAttendancePhoto_Stores(t *testing.T) {
	store := newMemoryStorage()
	svc := NewPhotoService(store)

	url, err := svc.SaveAttendancePhoto(context.Background(), "company-1", "employee-1", jpegDataURL(t, 640, 480))
	require.NoError(t, err)
	require.NotNil(t, url)
	assert.Contains(t, *url, "attendance/company-1/employee-1/")
	assert.Len(t, store.files, 1)
}

func TestSaveAttendancePhoto_DownscalesWideImages(t *testing.T) {
	store := newMemoryStorage()
	svc := NewPhotoService(store)

	url, err := svc.SaveAttendancePhoto(context.Background(), "company-1", "employee-1", jpegDataURL(t, 3000, 1500))
	require.NoError(t, err)
	require.NotNil(t, url)

	for _, data := range store.files {
		img, _, err := image.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, maxPhotoWidth, img.Bounds().Dx())
		assert.Equal(t, 640, img.Bounds().Dy())
	}
}

func TestSaveAttendancePhoto_UndecodablePayloadSkipped(t *testing.T) {
	store := newMemoryStorage()
	svc := NewPhotoService(store)

	cases := []string{
		"not base64 at all!!!",
		base64.StdEncoding.EncodeToString([]byte("plain text, not an image")),
		"data:image/jpeg;missing-comma",
		"",
	}
	for _, payload := range cases {
		url, err := svc.SaveAttendancePhoto(context.Background(), "c", "e", payload)
		assert.NoError(t, err)
		assert.Nil(t, url)
	}
	assert.Empty(t, store.files)
}

func TestDecodePayload(t *testing.T) {
	raw, ok := decodePayload("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("abc")))
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), raw)

	raw, ok = decodePayload(base64.StdEncoding.EncodeToString([]byte("abc")))
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), raw)

	_, ok = decodePayload("%%%")
	assert.False(t, ok)
}
