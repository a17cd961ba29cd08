package etl

import (
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"

	"github.com/dataplatform-io/dynoshift/pkg/logger"
)

// S3Gateway uploads staged files and arbitrary payloads to S3.
type S3Gateway struct {
	Uploader s3manageriface.UploaderAPI
}

func NewS3Gateway(sess *session.Session) *S3Gateway {
	return &S3Gateway{Uploader: s3manager.NewUploader(sess)}
}

// NewS3GatewayWithUploader wires an explicitly constructed uploader, e.g.
// one scoped to assumed-role credentials.
func NewS3GatewayWithUploader(uploader s3manageriface.UploaderAPI) *S3Gateway {
	return &S3Gateway{Uploader: uploader}
}

// Upload stores a local file in the bucket at a key equal to the local
// path, so the object is addressable as <bucket>/<localPath>.
func (g *S3Gateway) Upload(localPath, bucket string) error {
	f, err := os.Open(localPath)
	if err != nil {
		logger.Errorf("Failed to open %s for upload: %v", localPath, err)
		return &UploadError{Path: localPath, Bucket: bucket, Err: err}
	}
	defer f.Close()

	if err := g.put(bucket, localPath, f, "text/csv"); err != nil {
		return err
	}
	logger.Infof("Uploaded %s to %s", localPath, bucket)
	return nil
}

// Put stores a byte payload at an explicit key.
func (g *S3Gateway) Put(bucket, key string, body io.Reader, contentType string) error {
	return g.put(bucket, key, body, contentType)
}

func (g *S3Gateway) put(bucket, key string, body io.Reader, contentType string) error {
	input := &s3manager.UploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := g.Uploader.Upload(input); err != nil {
		logger.Errorf("Failed to upload %s to %s: %v", key, bucket, err)
		return &UploadError{Path: key, Bucket: bucket, Err: err}
	}
	return nil
}
