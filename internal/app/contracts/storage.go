package contracts

import "context"

type ReceiptStorage interface {
	UploadReceipt(ctx context.Context, objectName, contentType string, content []byte) (string, error)
}
