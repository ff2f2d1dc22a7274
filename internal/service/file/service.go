package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding support
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/attendance"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

// Photos wider than this are downscaled before storage.
const maxPhotoWidth = 1280

type photoServiceImpl struct {
	storage storage.FileStorage
}

func NewPhotoService(fileStorage storage.FileStorage) attendance.PhotoStore {
	return &photoServiceImpl{
		storage: fileStorage,
	}
}

// SaveAttendancePhoto implements attendance.PhotoStore. The payload is a
// data URL or bare base64 string captured by the browser camera. A payload
// that cannot be decoded into an image returns (nil, nil) so the mark
// proceeds without a photo; a storage failure returns an error.
func (s *photoServiceImpl) SaveAttendancePhoto(ctx context.Context, companyID, employeeID, base64Data string) (*string, error) {
	raw, ok := decodePayload(base64Data)
	if !ok {
		return nil, nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, nil
	}

	if img.Bounds().Dx() > maxPhotoWidth {
		img = downscale(img, maxPhotoWidth)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode photo: %w", err)
	}

	filename := fmt.Sprintf("%s-%s.jpg", time.Now().UTC().Format("20060102_150405"), uuid.New().String()[:8])
	path := fmt.Sprintf("attendance/%s/%s/%s", companyID, employeeID, filename)

	storedPath, err := s.storage.Upload(ctx, bytes.NewReader(buf.Bytes()), path, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("failed to upload attendance photo: %w", err)
	}

	url, err := s.storage.GetURL(ctx, storedPath, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to build photo URL: %w", err)
	}

	return &url, nil
}

// decodePayload strips an optional "data:image/...;base64," prefix and
// decodes the remainder.
func decodePayload(payload string) ([]byte, bool) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, false
	}

	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, false
		}
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// downscale resizes the image to the given width keeping aspect ratio.
func downscale(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	height := bounds.Dy() * width / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
