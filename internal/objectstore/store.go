// Package objectstore uploads processing outputs (JSON results, LaTeX and
// calendar files) to S3.
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/ZinnunMalikov/clipsmart-main/internal/config"
	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
	"github.com/ZinnunMalikov/clipsmart-main/internal/telemetry"
)

// Content types written by the store.
const (
	ContentTypeJSON     = "application/json"
	ContentTypeText     = "text/plain; charset=utf-8"
	ContentTypeCalendar = "text/calendar"
)

const timestampLayout = "20060102_150405"

// PutAPI is the S3 write call used by the store.
type PutAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PresignAPI signs download URLs.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Store is safe for concurrent use.
type Store struct {
	api        PutAPI
	presigner  PresignAPI
	bucket     string
	region     string
	presign    bool
	presignTTL time.Duration
	logger     logger.Logger
	telemetry  *telemetry.Provider
	now        func() time.Time
	newID      func() string
}

// New builds a Store from configuration. Static credentials are used when
// both keys are set; otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg config.ObjectStoreConfig, log logger.Logger, tp *telemetry.Provider) (*Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewWithAPI(client, s3.NewPresignClient(client), cfg, log, tp), nil
}

// NewWithAPI builds a Store around explicit clients.
func NewWithAPI(api PutAPI, presigner PresignAPI, cfg config.ObjectStoreConfig, log logger.Logger, tp *telemetry.Provider) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{
		api:        api,
		presigner:  presigner,
		bucket:     cfg.Bucket,
		region:     cfg.Region,
		presign:    cfg.Presign,
		presignTTL: cfg.PresignTTL,
		logger:     log,
		telemetry:  tp,
		now:        time.Now,
		newID:      func() string { return uuid.NewString()[:8] },
	}
}

// jsonDocument is the envelope stored for processing results.
type jsonDocument struct {
	Timestamp        string         `json:"timestamp"`
	ProcessingResult any            `json:"processing_result"`
	Metadata         map[string]any `json:"metadata"`
}

// UploadJSON stores a processing result under outputs/.
func (s *Store) UploadJSON(ctx context.Context, result any, metadata map[string]any) (domain.StoredObject, error) {
	ts := s.timestamp()
	if metadata == nil {
		metadata = map[string]any{}
	}

	body, err := json.MarshalIndent(jsonDocument{Timestamp: ts, ProcessingResult: result, Metadata: metadata}, "", "  ")
	if err != nil {
		return domain.StoredObject{Error: err.Error()}, fmt.Errorf("marshal output: %w", err)
	}

	return s.Put(ctx, fmt.Sprintf("outputs/%s_%s_result.json", ts, s.newID()), body, ContentTypeJSON)
}

// UploadLatex stores raw LaTeX under latex_outputs/.
func (s *Store) UploadLatex(ctx context.Context, latex string) (domain.StoredObject, error) {
	key := fmt.Sprintf("latex_outputs/%s_%s_output.txt", s.timestamp(), s.newID())
	return s.Put(ctx, key, []byte(latex), ContentTypeText)
}

// UploadCalendar stores an .ics file under events/.
func (s *Store) UploadCalendar(ctx context.Context, ics string) (domain.StoredObject, error) {
	key := fmt.Sprintf("events/event_%s_%s.ics", s.timestamp(), s.newID())
	return s.Put(ctx, key, []byte(ics), ContentTypeCalendar)
}

// Put writes body to key. The returned object carries a download URL: a
// presigned one when presigning is enabled, otherwise the public URL.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) (domain.StoredObject, error) {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	s.telemetry.RecordUpload(contentType, err == nil)

	if err != nil {
		s.logger.Warn("Object upload failed",
			logger.String("key", key),
			logger.String("bucket", s.bucket),
			logger.Error(err))
		return domain.StoredObject{Key: key, ContentType: contentType, Error: "S3 upload failed: " + err.Error()},
			fmt.Errorf("put %s: %w", key, err)
	}

	obj := domain.StoredObject{
		Success:     true,
		Key:         key,
		URL:         s.PublicURL(key),
		URI:         fmt.Sprintf("s3://%s/%s", s.bucket, key),
		ContentType: contentType,
	}

	if s.presign {
		signed, signErr := s.PresignGet(ctx, key)
		if signErr != nil {
			s.logger.Warn("Presign failed, using public URL", logger.String("key", key), logger.Error(signErr))
		} else {
			obj.URL = signed
		}
	}

	s.logger.Info("Object uploaded",
		logger.String("key", key),
		logger.String("content_type", contentType),
		logger.Int("bytes", len(body)))

	return obj, nil
}

// PresignGet returns a time-limited GET URL for key.
func (s *Store) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

// PublicURL is the virtual-hosted style URL of key.
func (s *Store) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *Store) timestamp() string {
	return s.now().Format(timestampLayout)
}
