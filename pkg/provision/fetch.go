package provision

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/oneconcern/texpack/pkg/provision/status"
)

const (
	// DefaultSourceURL is where the libGDX runnable texture packer is published
	DefaultSourceURL = "https://libgdx-nightlies.s3.eu-central-1.amazonaws.com/libgdx-runnables/runnable-texturepacker.jar"

	// DefaultS3Region is the region of the bucket hosting the libGDX nightlies
	DefaultS3Region = "eu-central-1"
)

// Fetcher knows how to stream the runnable jar from a remote source
type Fetcher interface {
	fmt.Stringer
	Fetch(context.Context) (io.ReadCloser, error)
}

// NewFetcher picks a fetcher from the URL scheme: http(s):// or s3://bucket/key.
//
// The region only applies to s3 sources and defaults to DefaultS3Region.
func NewFetcher(source, region string) (Fetcher, error) {
	if source == "" {
		source = DefaultSourceURL
	}
	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", status.ErrUnsupportedSource, source, err)
	}
	switch u.Scheme {
	case "http", "https":
		return NewHTTPFetcher(source, nil), nil
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("%w: %q: expected s3://bucket/key", status.ErrUnsupportedSource, source)
		}
		return NewS3Fetcher(u.Host, key, region, nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", status.ErrUnsupportedSource, source)
	}
}

// HTTPFetcher retrieves the jar with a plain GET. No retry, redirects are left to the client.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher builds a fetcher for url. A nil client defaults to http.DefaultClient.
func NewHTTPFetcher(url string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{url: url, client: client}
}

func (f *HTTPFetcher) String() string {
	return f.url
}

// Fetch the jar. Any status other than 200 is a DownloadFailure.
func (f *HTTPFetcher) Fetch(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &DownloadFailure{Source: f.url, Message: "invalid request", Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &DownloadFailure{Source: f.url, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &DownloadFailure{
			Source:  f.url,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))),
		}
	}
	return resp.Body, nil
}

// S3Fetcher retrieves the jar from a public bucket, with anonymous credentials
type S3Fetcher struct {
	bucket string
	key    string
	region string
	client s3iface.S3API
}

// NewS3Fetcher builds a fetcher for an object in a bucket. A nil client is created on first use.
func NewS3Fetcher(bucket, key, region string, client s3iface.S3API) *S3Fetcher {
	if region == "" {
		region = DefaultS3Region
	}
	return &S3Fetcher{
		bucket: bucket,
		key:    key,
		region: region,
		client: client,
	}
}

func (f *S3Fetcher) String() string {
	return "s3://" + f.bucket + "/" + f.key
}

func (f *S3Fetcher) s3Client() (s3iface.S3API, error) {
	if f.client != nil {
		return f.client, nil
	}
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(f.region),
		Credentials: credentials.AnonymousCredentials,
	})
	if err != nil {
		return nil, err
	}
	f.client = s3.New(sess)
	return f.client, nil
}

// Fetch the object. AWS request failures are reported as a DownloadFailure with the AWS status code.
func (f *S3Fetcher) Fetch(ctx context.Context) (io.ReadCloser, error) {
	client, err := f.s3Client()
	if err != nil {
		return nil, &DownloadFailure{Source: f.String(), Message: "cannot create s3 session", Err: err}
	}
	obj, err := client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key),
	})
	if err != nil {
		if rerr, ok := err.(awserr.RequestFailure); ok {
			return nil, &DownloadFailure{
				Source:  f.String(),
				Status:  rerr.StatusCode(),
				Message: rerr.Code() + ": " + rerr.Message(),
			}
		}
		return nil, &DownloadFailure{Source: f.String(), Err: err}
	}
	return obj.Body, nil
}
