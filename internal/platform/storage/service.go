package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/segmentio/ksuid"
)

type StorageService struct {
	client        *minio.Client
	bucketPosters string
}

func NewStorageService(client *minio.Client, bucketPosters string) *StorageService {
	return &StorageService{
		client:        client,
		bucketPosters: bucketPosters,
	}
}

// UploadPoster uploads a poster image to the posters bucket and returns
// the public URL plus the object key (used as the public id).
func (s *StorageService) UploadPoster(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, string, error) {
	// Generate object name: posters/<ksuid>.ext
	ext := filepath.Ext(fileHeader.Filename)
	objectName := fmt.Sprintf("posters/%s%s", ksuid.New().String(), ext)

	_, err := s.client.PutObject(
		ctx,
		s.bucketPosters,
		objectName,
		file,
		fileHeader.Size,
		minio.PutObjectOptions{
			ContentType: fileHeader.Header.Get("Content-Type"),
		},
	)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload poster to MinIO: %w", err)
	}

	// Public URL (bucket is public-read)
	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucketPosters, objectName)
	return url, objectName, nil
}

// DeletePoster removes a poster object by its object key
func (s *StorageService) DeletePoster(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucketPosters, objectName, minio.RemoveObjectOptions{})
}
