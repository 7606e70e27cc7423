// Package archive copies captured pages to S3-compatible object storage.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dmitrijs2005/kbclip/internal/server/config"
	"github.com/dmitrijs2005/kbclip/internal/server/models"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Archiver stores a copy of an entry and returns the object key.
type Archiver interface {
	Archive(ctx context.Context, e *models.Entry) (string, error)
}

// ObjectPutter is the part of *s3.Client the archiver uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archiver struct {
	client ObjectPutter
	bucket string
}

func NewS3Archiver(client ObjectPutter, bucket string) *S3Archiver {
	return &S3Archiver{client: client, bucket: bucket}
}

// NewS3ArchiverFromConfig builds an S3 client with static credentials and a
// custom endpoint (MinIO and friends use path-style addressing).
func NewS3ArchiverFromConfig(ctx context.Context, c *sc.Config) (*S3Archiver, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,
			c.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return NewS3Archiver(client, c.S3Bucket), nil
}

// ObjectKey is the storage key of an archived entry.
func ObjectKey(e *models.Entry) string {
	d := e.CreatedAt.UTC()
	return fmt.Sprintf("knowledge-base/%s/%04d/%02d/%02d/%s.json", e.UserID, d.Year(), d.Month(), d.Day(), e.ID)
}

type archivedEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

func (a *S3Archiver) Archive(ctx context.Context, e *models.Entry) (string, error) {
	body, err := json.Marshal(archivedEntry{
		ID:        e.ID,
		UserID:    e.UserID,
		URL:       e.URL,
		Title:     e.Title,
		Content:   e.Content,
		CreatedAt: e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		return "", err
	}

	key := ObjectKey(e)
	if _, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}
