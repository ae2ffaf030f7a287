package s3store

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = in
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3UploaderUploadBytes(t *testing.T) {
	client := &fakeS3{}
	up := NewS3UploaderWithClient(client, "ca-central-1", "spac-resumes")

	url, err := up.UploadBytes(context.Background(), "resumes", "ada-lovelace-1.pdf", []byte("%PDF-1.4 body"))
	require.NoError(t, err)

	assert.Equal(t, "https://spac-resumes.s3.ca-central-1.amazonaws.com/resumes/ada-lovelace-1.pdf", url)
	assert.Equal(t, "spac-resumes", aws.StringValue(client.input.Bucket))
	assert.Equal(t, "resumes/ada-lovelace-1.pdf", aws.StringValue(client.input.Key))
	assert.Equal(t, "application/pdf", aws.StringValue(client.input.ContentType))
	assert.Equal(t, "%PDF-1.4 body", string(client.body))
}

func TestS3UploaderError(t *testing.T) {
	up := NewS3UploaderWithClient(&fakeS3{err: errors.New("access denied")}, "us-east-1", "bucket")

	_, err := up.UploadBytes(context.Background(), "resumes", "x.pdf", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestNewS3UploaderRequiresBucket(t *testing.T) {
	_, err := NewS3Uploader("us-east-1", "", "", "")
	assert.Error(t, err)
}
