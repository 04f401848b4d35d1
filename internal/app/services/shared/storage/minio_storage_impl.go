package storage

import (
	"bytes"
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/pkg/exceptions"
	"context"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioStorage(minioClient *minio.Client, bucketName string) contracts.ReceiptStorage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

func (m *minioStorage) UploadReceipt(ctx context.Context, objectName, contentType string, content []byte) (string, error) {
	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectName, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", exceptions.ErrMinioUploadObject(err)
	}

	return objectName, nil
}
