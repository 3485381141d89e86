package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"bakery_planner_v1/internal/errs"
	"bakery_planner_v1/pkg/config"
	"bakery_planner_v1/pkg/utils"
)

// ==================== Interface ====================

// StorageProvider stores opaque objects under forward-slash keys.
type StorageProvider interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// List walks every stored object, used by the orphan sweep.
	List(ctx context.Context) ([]StoredObject, error)
}

type StoredObject struct {
	Key      string
	Modified time.Time
}

var ErrObjectNotFound = errors.New("stored object not found")

// ==================== Factory ====================

func NewStorageProvider(ctx context.Context, cfg config.StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(ctx, cfg)
	case "local", "":
		return NewLocalStorage(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// ==================== StorageService ====================

// Image codes
const (
	ImageInvalid  = "IMAGE_INVALID"
	ImageTooLarge = "IMAGE_TOO_LARGE"
)

// StorageService stores recipe images: it checks the upload is a real image
// within the size limit and names it with a dated uuid key.
type StorageService struct {
	provider StorageProvider
	maxBytes int64
	now      func() time.Time
}

func NewStorageService(provider StorageProvider, maxBytes int64) *StorageService {
	return &StorageService{provider: provider, maxBytes: maxBytes, now: time.Now}
}

// SaveImage stores r and returns its key.
func (s *StorageService) SaveImage(ctx context.Context, r io.Reader) (string, error) {
	limit := s.maxBytes
	if limit <= 0 {
		limit = 5 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", errs.Internal(fmt.Errorf("read upload: %w", err))
	}
	if int64(len(data)) > limit {
		return "", errs.Validation([]errs.Detail{{Code: ImageTooLarge, Message: fmt.Sprintf("recipe.image exceeds %d bytes", limit)}})
	}
	contentType, ext, ok := utils.DetectImage(data)
	if !ok {
		return "", errs.Validation([]errs.Detail{{Code: ImageInvalid, Message: "recipe.image must be a jpeg, png, gif or webp image"}})
	}

	key := path.Join(s.now().Format("2006/01/02"), uuid.NewString()+ext)
	if err := s.provider.Put(ctx, key, data, contentType); err != nil {
		return "", errs.Internal(fmt.Errorf("store image: %w", err))
	}
	return key, nil
}

// OpenImage returns the stored image and its content type.
func (s *StorageService) OpenImage(ctx context.Context, key string) (io.ReadCloser, string, error) {
	rc, err := s.provider.Get(ctx, key)
	if errors.Is(err, ErrObjectNotFound) {
		return nil, "", errs.NotFound("image")
	}
	if err != nil {
		return nil, "", errs.Internal(err)
	}
	return rc, utils.ContentTypeByExt(key), nil
}

func (s *StorageService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	err := s.provider.Delete(ctx, key)
	if errors.Is(err, ErrObjectNotFound) {
		return nil
	}
	return err
}

func (s *StorageService) Provider() StorageProvider { return s.provider }

// ==================== Local ====================

type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	if root == "" {
		root = "./uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

// resolve maps a key to a file below root and refuses keys escaping it.
func (s *LocalStorage) resolve(key string) (string, error) {
	clean := path.Clean("/" + utils.NormalizePath(key))
	if clean == "/" {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (s *LocalStorage) Put(_ context.Context, key string, data []byte, _ string) error {
	p, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func (s *LocalStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	return f, err
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	p, err := s.resolve(key)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrObjectNotFound
	}
	return err
}

func (s *LocalStorage) List(ctx context.Context) ([]StoredObject, error) {
	var out []StoredObject
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		out = append(out, StoredObject{Key: utils.NormalizePath(rel), Modified: info.ModTime()})
		return nil
	})
	return out, err
}

// ==================== S3 ====================

// S3Storage works against AWS or any S3-compatible endpoint (MinIO).
type S3Storage struct {
	client   *s3.Client
	bucket   string
	basePath string
}

func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
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

	return &S3Storage{
		client:   client,
		bucket:   cfg.Bucket,
		basePath: strings.Trim(cfg.BasePath, "/"),
	}, nil
}

func (s *S3Storage) objectKey(key string) string {
	if s.basePath == "" {
		return key
	}
	return s.basePath + "/" + key
}

func (s *S3Storage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put: %w", err)
	}
	return nil
}

func (s *S3Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("s3 get: %w", err)
	}
	return out.Body, nil
}

// Delete is idempotent on S3; a missing key is not reported.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	return nil
}

func (s *S3Storage) List(ctx context.Context) ([]StoredObject, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(s.bucket)}
	if s.basePath != "" {
		input.Prefix = aws.String(s.basePath + "/")
	}
	var out []StoredObject
	p := s3.NewListObjectsV2Paginator(s.client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if s.basePath != "" {
				key = strings.TrimPrefix(key, s.basePath+"/")
			}
			out = append(out, StoredObject{Key: key, Modified: aws.ToTime(obj.LastModified)})
		}
	}
	return out, nil
}
