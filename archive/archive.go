package archive

import (
	"context"
	"os"
	"regexp"

	"github.com/KhadeerBasha1232/letter-backend/archive/memory"
	"github.com/KhadeerBasha1232/letter-backend/archive/s3"
	"github.com/KhadeerBasha1232/letter-backend/core"
	"github.com/sirupsen/logrus"
)

// Uploader is the external archive service: it stores a rendered letter and
// returns an opaque share link, and deletes a previously stored file by its
// external id.
type Uploader interface {
	// Upload stores the rendered letter and returns the share link to record
	// on the letter.
	Upload(ctx context.Context, title, content string) (string, error)

	// Remove deletes the external file identified by fileID.
	Remove(ctx context.Context, fileID string) error
}

// A share link embeds the external file id in the fixed /d/<id>/ segment,
// e.g. https://archive.example.com/d/01HXYZ.../view.
var referencePattern = regexp.MustCompile(`/d/([^/]+)`)

// ParseReference extracts the external file id from a stored share link.
// Returns core.ErrMalformedReference when the link does not carry one; this
// is a different failure than the archive service call itself failing.
func ParseReference(ref string) (string, error) {
	m := referencePattern.FindStringSubmatch(ref)
	if m == nil {
		return "", core.ErrMalformedReference
	}
	return m[1], nil
}

// GetUploader selects the archive backend from the environment, defaulting
// to the in-memory uploader for local development.
func GetUploader() Uploader {
	archiveType := os.Getenv("ARCHIVE_TYPE")

	archiveField := logrus.Fields{
		"archiveType": archiveType,
	}

	var uploader Uploader
	switch archiveType {
	case "s3":
		bucketName := os.Getenv("ARCHIVE_S3_BUCKET")
		if bucketName == "" {
			logrus.Fatal("ARCHIVE_S3_BUCKET environment variable must be set for s3 archive type")
		}
		publicBaseURL := os.Getenv("ARCHIVE_PUBLIC_URL")
		archiveField["bucketName"] = bucketName
		uploader = s3.NewUploader(bucketName, publicBaseURL)
	default:
		uploader = memory.NewUploader()
		archiveField["archiveType"] = "in-memory"
	}
	logrus.WithFields(archiveField).Info("Use archive service")
	return uploader
}
