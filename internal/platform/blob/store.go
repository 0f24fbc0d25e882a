// Package blob wraps gocloud.dev buckets for report uploads and document downloads.
package blob

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

var (
	// ErrObjectNotFound is returned when the key does not exist in the bucket.
	ErrObjectNotFound = errors.New("object not found")
	// ErrUnsupportedURL is returned for object URLs that cannot be mapped to a bucket.
	ErrUnsupportedURL = errors.New("unsupported object url")
	// ErrURLNotAllowed is returned for object URLs outside the configured buckets.
	ErrURLNotAllowed = errors.New("object url not allowed")
)

// Config holds the report bucket settings.
type Config struct {
	// BucketURL is a gocloud.dev bucket URL, e.g. s3://reports?region=us-east-1 or file:///var/lib/advisor.
	BucketURL string
	// PublicBaseURL overrides the URL prefix returned for uploaded objects.
	PublicBaseURL string
	// UploadAttempts bounds retries of a single Put.
	UploadAttempts uint
}

// LoadConfig reads the bucket configuration from the environment.
func LoadConfig() Config {
	bucketURL := os.Getenv("REPORT_BUCKET_URL")
	if bucketURL == "" {
		bucketURL = "file://" + path.Join(os.TempDir(), "advisor-reports")
	}
	return Config{
		BucketURL:      bucketURL,
		PublicBaseURL:  strings.TrimSuffix(os.Getenv("REPORT_PUBLIC_BASE_URL"), "/"),
		UploadAttempts: 3,
	}
}

// Store writes and reads objects in the report bucket.
type Store struct {
	bucket     *blob.Bucket
	bucketURL  string
	publicBase string
	attempts   uint
}

// OpenStore opens the configured bucket. Local file buckets are created on demand.
func OpenStore(ctx context.Context, cfg Config) (*Store, error) {
	if dir, ok := fileBucketDir(cfg.BucketURL); ok {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bucket dir %s: %w", dir, err)
		}
	}
	b, err := blob.OpenBucket(ctx, cfg.BucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", cfg.BucketURL, err)
	}
	return NewStore(b, cfg), nil
}

// NewStore wraps an already opened bucket.
func NewStore(b *blob.Bucket, cfg Config) *Store {
	attempts := cfg.UploadAttempts
	if attempts == 0 {
		attempts = 3
	}
	return &Store{
		bucket:     b,
		bucketURL:  cfg.BucketURL,
		publicBase: cfg.PublicBaseURL,
		attempts:   attempts,
	}
}

// Put uploads data under key and returns the object's public URL.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	err := retry.Do(
		func() error {
			return s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType})
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("object upload failed, retrying", "key", key, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.URL(key), nil
}

// Get downloads the object stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%s: %w", key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// URL returns the address clients use to download key.
func (s *Store) URL(key string) string {
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	u, err := url.Parse(s.bucketURL)
	if err != nil {
		return key
	}
	switch u.Scheme {
	case "s3":
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.Host, key)
	case "file":
		return "file://" + path.Join(u.Path, key)
	default:
		return fmt.Sprintf("%s://%s/%s", u.Scheme, u.Host, key)
	}
}

// Ping reports whether the bucket is reachable.
func (s *Store) Ping(ctx context.Context) error {
	ok, err := s.bucket.IsAccessible(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s is not accessible", s.bucketURL)
	}
	return nil
}

// Close releases the bucket.
func (s *Store) Close() error {
	return s.bucket.Close()
}

// Policy restricts the object URLs an Opener reads.
type Policy struct {
	// Buckets lists the s3 or mem bucket names documents may be read from.
	Buckets []string
	// LocalFiles allows file:// URLs. Only the CLI enables it.
	LocalFiles bool
}

// LoadPolicy reads DOCUMENT_BUCKETS (comma separated bucket names) and adds the report bucket.
func LoadPolicy(cfg Config) Policy {
	var p Policy
	for _, name := range strings.Split(os.Getenv("DOCUMENT_BUCKETS"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			p.Buckets = append(p.Buckets, name)
		}
	}
	if u, err := url.Parse(cfg.BucketURL); err == nil && (u.Scheme == "s3" || u.Scheme == "mem") && u.Host != "" {
		p.Buckets = append(p.Buckets, u.Host)
	}
	return p
}

// Check reports whether rawURL may be read under the policy.
// Query parameters are never accepted because they configure the bucket driver.
func (p Policy) Check(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}
	if u.RawQuery != "" || u.ForceQuery {
		return fmt.Errorf("%w: query parameters are not accepted in %s", ErrURLNotAllowed, rawURL)
	}

	var bucket string
	switch u.Scheme {
	case "file":
		if !p.LocalFiles {
			return fmt.Errorf("%w: local files are not accepted", ErrURLNotAllowed)
		}
		return nil
	case "s3", "mem":
		bucket = u.Host
	case "https", "http":
		name, _, ok := s3VirtualHost(u.Host)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
		}
		bucket = name
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}
	if !slices.Contains(p.Buckets, bucket) {
		return fmt.Errorf("%w: bucket %q is not allowed", ErrURLNotAllowed, bucket)
	}
	return nil
}

const (
	openerBuckets   = 32
	openerBucketTTL = 30 * time.Minute
)

// Opener reads objects addressed by full URLs. Opened buckets are kept in a bounded LRU
// and closed on eviction.
type Opener struct {
	policy  Policy
	mu      sync.Mutex
	buckets *expirable.LRU[string, *blob.Bucket]
	open    func(ctx context.Context, bucketURL string) (*blob.Bucket, error)
}

// NewOpener returns an Opener backed by blob.OpenBucket that reads only URLs allowed by policy.
func NewOpener(policy Policy) *Opener {
	return &Opener{
		policy:  policy,
		buckets: expirable.NewLRU[string, *blob.Bucket](openerBuckets, closeBucket, openerBucketTTL),
		open:    blob.OpenBucket,
	}
}

func closeBucket(bucketURL string, b *blob.Bucket) {
	if err := b.Close(); err != nil {
		slog.Warn("failed to close bucket", "bucket", bucketURL, "error", err)
	}
}

// Check reports whether rawURL may be read by this Opener.
func (o *Opener) Check(rawURL string) error {
	return o.policy.Check(rawURL)
}

// ReadObject downloads the object addressed by rawURL (s3://, https://<bucket>.s3.amazonaws.com/, file://, mem://).
func (o *Opener) ReadObject(ctx context.Context, rawURL string) ([]byte, error) {
	if err := o.policy.Check(rawURL); err != nil {
		return nil, err
	}
	bucketURL, key, err := ParseObjectURL(rawURL)
	if err != nil {
		return nil, err
	}
	b, err := o.bucket(ctx, bucketURL)
	if err != nil {
		return nil, err
	}
	data, err := b.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", rawURL, err)
	}
	return data, nil
}

// Close closes every bucket still cached.
func (o *Opener) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.buckets.Purge()
	return nil
}

func (o *Opener) bucket(ctx context.Context, bucketURL string) (*blob.Bucket, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if b, ok := o.buckets.Get(bucketURL); ok {
		return b, nil
	}
	b, err := o.open(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", bucketURL, err)
	}
	o.buckets.Add(bucketURL, b)
	return b, nil
}

var regionPattern = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d$`)

// ParseObjectURL splits an object URL into a gocloud.dev bucket URL and a key.
// The only query parameter carried into the bucket URL is a well-formed region.
func ParseObjectURL(rawURL string) (bucketURL, key string, err error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}
	switch u.Scheme {
	case "s3", "mem":
		key = strings.TrimPrefix(u.Path, "/")
		bucketURL = u.Scheme + "://" + u.Host
		q := u.Query()
		region := q.Get("region")
		q.Del("region")
		if len(q) > 0 || (region != "" && !regionPattern.MatchString(region)) {
			return "", "", fmt.Errorf("%w: unsupported query in %s", ErrUnsupportedURL, rawURL)
		}
		if region != "" {
			bucketURL += "?region=" + region
		}
	case "https", "http":
		bucket, region, ok := s3VirtualHost(u.Host)
		if !ok {
			return "", "", fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
		}
		key = strings.TrimPrefix(u.Path, "/")
		bucketURL = "s3://" + bucket
		if region != "" {
			bucketURL += "?region=" + region
		}
	case "file":
		dir, file := path.Split(u.Path)
		bucketURL = "file://" + strings.TrimSuffix(dir, "/")
		key = file
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}
	if key == "" {
		return "", "", fmt.Errorf("%w: missing object key in %s", ErrUnsupportedURL, rawURL)
	}
	return bucketURL, key, nil
}

// s3VirtualHost parses <bucket>.s3.amazonaws.com, <bucket>.s3.<region>.amazonaws.com
// and <bucket>.s3-<region>.amazonaws.com. The s3 label is matched from the right,
// so bucket names may themselves contain ".s3".
func s3VirtualHost(host string) (bucket, region string, ok bool) {
	rest, found := strings.CutSuffix(host, ".amazonaws.com")
	if !found {
		return "", "", false
	}
	if b, found := strings.CutSuffix(rest, ".s3"); found {
		return b, "", b != ""
	}
	idx := max(strings.LastIndex(rest, ".s3."), strings.LastIndex(rest, ".s3-"))
	if idx <= 0 {
		return "", "", false
	}
	region = rest[idx+len(".s3."):]
	if !regionPattern.MatchString(region) {
		return "", "", false
	}
	return rest[:idx], region, true
}

func fileBucketDir(bucketURL string) (string, bool) {
	u, err := url.Parse(bucketURL)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	return u.Path, true
}
