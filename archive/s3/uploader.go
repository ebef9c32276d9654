package s3

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

type s3Uploader struct {
	s3Client      *s3.Client
	bucket        string
	publicBaseURL string
}

// NewUploader creates an S3-backed archive uploader. Share links point at
// publicBaseURL; when empty they fall back to the bucket's virtual-hosted
// S3 URL.
func NewUploader(bucketName, publicBaseURL string) *s3Uploader {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		logrus.Fatalf("unable to load SDK config, %v", err)
	}

	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucketName)
	}

	return &s3Uploader{
		s3Client:      s3.NewFromConfig(cfg),
		bucket:        bucketName,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (u *s3Uploader) Upload(ctx context.Context, title, content string) (string, error) {
	fileID := ulid.Make().String()

	_, err := u.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(fileID),
		Body:        strings.NewReader(content),
		ContentType: aws.String("text/html"),
		Metadata:    map[string]string{"title": title},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload letter %q: %v", title, err)
	}

	logrus.WithFields(logrus.Fields{"file_id": fileID, "title": title}).Info("Letter uploaded to S3")
	return fmt.Sprintf("%s/d/%s/view", u.publicBaseURL, fileID), nil
}

func (u *s3Uploader) Remove(ctx context.Context, fileID string) error {
	_, err := u.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete archived file %s: %v", fileID, err)
	}
	return nil
}
