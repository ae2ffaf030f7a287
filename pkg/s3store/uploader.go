package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type S3Uploader struct {
	client s3iface.S3API
	bucket string
	region string
}

// NewS3Uploader uses static credentials when accessKey is set, otherwise the
// default AWS credential chain.
func NewS3Uploader(region, bucket, accessKey, secretKey string) (*S3Uploader, error) {
	if bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	cfg := &aws.Config{Region: aws.String(region)}
	if accessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewS3UploaderWithClient(s3.New(sess), region, bucket), nil
}

func NewS3UploaderWithClient(client s3iface.S3API, region, bucket string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, region: region}
}

func (u *S3Uploader) UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error) {
	key := path.Join(folder, filename)

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(b),
		ContentType: aws.String(http.DetectContentType(b)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}
