package writer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "revenueflow/config"
	"revenueflow/logger"
)

// Uploader copies finished run artifacts to S3 under a run_date partition.
type Uploader struct {
	cfg      *appconfig.Config
	s3Client *s3.Client
	log      *logger.Log
	bucket   string
}

// NewUploader initializes the uploader using S3 credentials from config.
func NewUploader(cfg *appconfig.Config) (*Uploader, error) {
	log := logger.GetLogger()
	if !cfg.Storage.S3.Enabled {
		return nil, fmt.Errorf("s3 storage is disabled")
	}

	bucket := strings.TrimSpace(cfg.Storage.S3.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket not configured")
	}

	ctx := context.Background()
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Storage.S3.Region)}
	if cfg.Storage.S3.AccessKeyID != "" && cfg.Storage.S3.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.Storage.S3.AccessKeyID,
				cfg.Storage.S3.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.S3.Endpoint)
		}
		o.UsePathStyle = cfg.Storage.S3.PathStyle
	})

	log.WithComponent("s3_uploader").WithFields(logger.Fields{
		"bucket":     bucket,
		"region":     cfg.Storage.S3.Region,
		"endpoint":   cfg.Storage.S3.Endpoint,
		"path_style": cfg.Storage.S3.PathStyle,
	}).Info("s3 uploader initialized")

	return &Uploader{cfg: cfg, s3Client: s3Client, log: log, bucket: bucket}, nil
}

// UploadRun uploads each local artifact to
// <prefix>/run_date=<runDate>/<filename>. A failed upload aborts with the
// failing file named; local outputs are already on disk at that point.
func (u *Uploader) UploadRun(ctx context.Context, runDate string, paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read artifact %s: %w", path, err)
		}
		key := u.objectKey(runDate, filepath.Base(path))
		if err := u.upload(ctx, key, data); err != nil {
			return fmt.Errorf("upload %s: %w", path, err)
		}
		u.log.WithComponent("s3_uploader").WithFields(logger.Fields{
			"s3_key": key,
			"bytes":  len(data),
		}).Info("artifact uploaded")
	}
	return nil
}

func (u *Uploader) upload(ctx context.Context, key string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	_, err := u.s3Client.PutObject(ctx, input)
	return err
}

func (u *Uploader) objectKey(runDate, filename string) string {
	parts := []string{}
	if prefix := strings.Trim(u.cfg.Storage.S3.Prefix, "/"); prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, fmt.Sprintf("run_date=%s", runDate), filename)
	return strings.Join(parts, "/")
}
