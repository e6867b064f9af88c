// Package export stores rendered reports in S3-compatible object storage
// and hands out time-limited download links.
package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/rollcall/internal/server/config"
	"github.com/google/uuid"
)

// LinkValidity is how long a download link stays usable.
const LinkValidity = 15 * time.Minute

const csvContentType = "text/csv"

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	clock = time.Now
)

// S3Sink uploads CSV reports to one bucket.
type S3Sink struct {
	bucket  string
	client  *s3.Client
	presign *s3.PresignClient
}

// NewS3Sink builds a client from the S3* settings of cfg. Path-style
// addressing is used so MinIO and other self-hosted endpoints work.
func NewS3Sink(ctx context.Context, cfg *sc.Config) (*S3Sink, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3User,
			cfg.S3Password,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Sink{bucket: cfg.S3Bucket, client: client, presign: s3.NewPresignClient(client)}, nil
}

// ReportKey returns a fresh object key for a report created at t.
func ReportKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("reports/%04d/%02d/%02d/%s.csv", t.Year(), t.Month(), t.Day(), uuid.NewString())
}

// Upload stores body under a new key and returns a presigned GET URL valid
// for LinkValidity.
func (s *S3Sink) Upload(ctx context.Context, body []byte) (string, error) {
	key := ReportKey(clock())

	_, err := putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(csvContentType),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}

	req, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(LinkValidity))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}

	return req.URL, nil
}
