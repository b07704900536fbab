package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/models"
)

// ObjectPutter is the part of the S3 API used by the archiver.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver writes a JSON copy of each intake application to S3.
type Archiver struct {
	client ObjectPutter
	bucket string
	prefix string
}

const archivePrefix = "intake-applications"

// NewArchiver builds an S3 client from the default AWS credential chain.
func NewArchiver(ctx context.Context, bucket string) (*Archiver, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewArchiverWithClient(s3.NewFromConfig(awsCfg), bucket), nil
}

func NewArchiverWithClient(client ObjectPutter, bucket string) *Archiver {
	return &Archiver{client: client, bucket: bucket, prefix: archivePrefix}
}

// Key returns the object key an application is stored under,
// e.g. intake-applications/2025/03/01/<id>.json.
func (a *Archiver) Key(app *models.IntakeApplication) string {
	return path.Join(a.prefix, app.CreatedAt.UTC().Format("2006/01/02"), app.ID.String()+".json")
}

// ArchiveIntake stores app as JSON.
func (a *Archiver) ArchiveIntake(ctx context.Context, app *models.IntakeApplication) error {
	body, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("failed to marshal intake application: %w", err)
	}

	key := a.Key(app)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to archive intake application to s3://%s/%s: %w", a.bucket, key, err)
	}

	log.Info().Str("bucket", a.bucket).Str("key", key).Msg("Archived intake application")
	return nil
}
