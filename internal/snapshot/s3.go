package snapshot

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/vango-dev/weft/internal/config"
	"github.com/vango-dev/weft/internal/errors"
)

// PutObjectAPI is the part of *s3.Client the sink uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads snapshots to one S3 object.
//
// Example usage:
//
//	sink := snapshot.NewS3Sink(snapshot.NewS3Client(cfg.Snapshot.S3), "my-bucket", "ui/home.html")
//	err := sink.Write(ctx, snap)
type S3Sink struct {
	client PutObjectAPI
	bucket string
	key    string
}

// NewS3Sink creates a sink writing to bucket/key.
func NewS3Sink(client PutObjectAPI, bucket, key string) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		key:    key,
	}
}

func (s *S3Sink) Write(ctx context.Context, snap Snapshot) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(snap.HTML),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"weft-root": snap.RootID,
			"taken-at":  snap.TakenAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return errors.New("W022").WithDetail(s.String()).Wrap(err)
	}
	return nil
}

func (s *S3Sink) String() string { return "s3://" + s.bucket + "/" + s.key }

// NewS3Client builds an S3 client from cfg. Credentials come from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN; without
// them requests are anonymous.
func NewS3Client(cfg config.S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.PathStyle,
		Credentials:  envCredentials(),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

func envCredentials() aws.CredentialsProvider {
	id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.AnonymousCredentials{}
	}
	creds := aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}
	return aws.NewCredentialsCache(aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return creds, nil
	}))
}
