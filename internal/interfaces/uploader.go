package interfaces

import "context"

// Uploader stores b under folder/filename and returns a URL for the stored file.
type Uploader interface {
	UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error)
}
