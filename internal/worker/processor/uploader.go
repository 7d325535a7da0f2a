package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"promoreel/internal/ports"
)

type Uploader struct {
	sp ports.StorageProvider
}

func NewUploader(sp ports.StorageProvider) *Uploader {
	return &Uploader{sp: sp}
}

// UploadRenders sube los videos terminados y devuelve las claves de
// objeto entregables, en el mismo orden que los renders locales.
func (u *Uploader) UploadRenders(ctx context.Context, orderID string, localPaths []string) ([]string, error) {
	keys := make([]string, 0, len(localPaths))

	for _, localPath := range localPaths {
		objectKey := fmt.Sprintf("orders/%s/%s", SanitizeFilename(orderID), filepath.Base(localPath))

		key, err := u.uploadOne(ctx, objectKey, localPath)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", filepath.Base(localPath), err)
		}
		keys = append(keys, key)
	}

	return keys, nil
}

func (u *Uploader) uploadOne(ctx context.Context, objectKey, localPath string) (string, error) {
	st, err := os.Stat(localPath)
	if err != nil {
		return "", fmt.Errorf("render file not found: %w", err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open render: %w", err)
	}
	defer f.Close()

	out, err := u.sp.PutObject(ctx, ports.PutObjectInput{
		ObjectKey:   objectKey,
		ContentType: "video/mp4",
		Reader:      f,
		Size:        st.Size(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload render: %w", err)
	}

	// En gdrive la clave devuelta es el fileId real.
	return out.ObjectKey, nil
}
