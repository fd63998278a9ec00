// Package publish uploads the rendered report artifacts to object storage.
package publish

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/domain"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Options configures the S3 publisher.
type Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string

	// ACL applied to each uploaded object. The report is meant to be
	// publicly downloadable, so public-read is the default.
	ACL string

	// Optional proxies for outbound traffic. When unset the standard
	// proxy environment variables apply.
	HTTPProxy  string
	HTTPSProxy string

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	MaxRetries     int
}

// DefaultOptions returns the stock publisher settings.
func DefaultOptions() Options {
	return Options{
		Bucket:         "dpd-rco-docs-prod",
		Region:         "us-east-1",
		ACL:            "public-read",
		ConnectTimeout: 10 * time.Second,
		ReadTimeout:    60 * time.Second,
		MaxRetries:     2,
	}
}

// uploader is the slice of s3manager.Uploader the publisher uses.
type uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// Publisher uploads local files to a fixed S3 bucket.
type Publisher struct {
	options  Options
	uploader uploader
}

// New creates a publisher with an S3 session built from the options.
func New(options Options) (*Publisher, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(options.Region),
		Endpoint:    endpointOrNil(options.Endpoint),
		Credentials: credentials.NewStaticCredentials(options.AccessKey, options.SecretKey, ""),
		MaxRetries:  aws.Int(options.MaxRetries),
		HTTPClient:  newHTTPClient(options),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return &Publisher{
		options:  options,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// Upload sends the file at localPath to the configured bucket under
// remoteKey, overwriting any prior object. The three failure causes the
// orchestrator branches on are distinguishable: domain.ErrFileNotFound
// when the local artifact is absent, domain.ErrCredentials when the
// credentials are missing or rejected, domain.ErrUpload otherwise.
func (p *Publisher) Upload(ctx context.Context, localPath, remoteKey string) error {
	if _, err := os.Stat(localPath); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrFileNotFound, localPath)
	}
	if strings.TrimSpace(p.options.AccessKey) == "" || strings.TrimSpace(p.options.SecretKey) == "" {
		return fmt.Errorf("%w: access key or secret not configured", domain.ErrCredentials)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFileNotFound, err)
	}
	defer func() { _ = file.Close() }()

	input := &s3manager.UploadInput{
		Bucket:      aws.String(p.options.Bucket),
		Key:         aws.String(remoteKey),
		Body:        file,
		ContentType: aws.String(contentTypeFor(localPath)),
	}
	if p.options.ACL != "" {
		input.ACL = aws.String(p.options.ACL)
	}

	if _, err := p.uploader.UploadWithContext(ctx, input); err != nil {
		if isCredentialError(err) {
			return fmt.Errorf("%w: %v", domain.ErrCredentials, err)
		}
		return fmt.Errorf("%w: s3://%s/%s: %v", domain.ErrUpload, p.options.Bucket, remoteKey, err)
	}
	return nil
}

// credentialErrorCodes are the awserr codes that mean the credentials
// themselves are the problem rather than the transfer.
var credentialErrorCodes = map[string]bool{
	"NoCredentialProviders":       true,
	"MissingAuthenticationToken":  true,
	"InvalidAccessKeyId":          true,
	"InvalidClientTokenId":        true,
	"SignatureDoesNotMatch":       true,
	"ExpiredToken":                true,
	"CredentialsEndpointError":    true,
	"UnrecognizedClientException": true,
}

func isCredentialError(err error) bool {
	var aerr awserr.Error
	for err != nil {
		var ok bool
		if aerr, ok = err.(awserr.Error); ok {
			if credentialErrorCodes[aerr.Code()] {
				return true
			}
			err = aerr.OrigErr()
			continue
		}
		return false
	}
	return false
}

func newHTTPClient(options Options) *http.Client {
	transport := &http.Transport{
		Proxy: proxyFunc(options),
		DialContext: (&net.Dialer{
			Timeout: options.ConnectTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   options.ConnectTimeout,
		ResponseHeaderTimeout: options.ReadTimeout,
	}
	return &http.Client{Transport: transport}
}

// proxyFunc prefers explicitly configured proxies and falls back to the
// process environment, matching how the job ran behind the city proxy.
func proxyFunc(options Options) func(*http.Request) (*url.URL, error) {
	if options.HTTPProxy == "" && options.HTTPSProxy == "" {
		return http.ProxyFromEnvironment
	}
	return func(req *http.Request) (*url.URL, error) {
		raw := options.HTTPProxy
		if req.URL.Scheme == "https" && options.HTTPSProxy != "" {
			raw = options.HTTPSProxy
		}
		if raw == "" {
			return http.ProxyFromEnvironment(req)
		}
		return url.Parse(raw)
	}
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func endpointOrNil(endpoint string) *string {
	if endpoint == "" {
		return nil
	}
	return aws.String(endpoint)
}
