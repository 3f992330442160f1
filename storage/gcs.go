package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
)

// UploadRequest is one image to side-load into the bucket. Ref is an opaque
// caller-supplied correlation token echoed back on the result, so callers
// never have to rely on result ordering.
type UploadRequest struct {
	Ref       string
	SourceURL string
}

// UploadResult reports the outcome for one request.
type UploadResult struct {
	Ref string
	URL string
	Err error
}

// Uploader is the durable-storage collaborator.
type Uploader interface {
	UploadFromURLs(ctx context.Context, reqs []UploadRequest) []UploadResult
	Delete(ctx context.Context, objectURL string) error
}

type ClientUploader struct {
	cl         *gcs.Client
	bucketName string
	uploadPath string
	httpClient *http.Client
}

func NewClientUploader(ctx context.Context, bucketName string) (*ClientUploader, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &ClientUploader{
		cl:         client,
		bucketName: bucketName,
		uploadPath: "designs/",
		httpClient: &http.Client{Timeout: 50 * time.Second},
	}, nil
}

// UploadFromURLs side-loads each source URL into the bucket sequentially.
// Per-item failures are recorded in the result rather than aborting the batch.
func (c *ClientUploader) UploadFromURLs(ctx context.Context, reqs []UploadRequest) []UploadResult {
	results := make([]UploadResult, 0, len(reqs))
	for _, req := range reqs {
		url, err := c.uploadOne(ctx, req.SourceURL)
		results = append(results, UploadResult{Ref: req.Ref, URL: url, Err: err})
	}
	return results
}

func (c *ClientUploader) uploadOne(ctx context.Context, sourceURL string) (string, error) {
	data, err := c.fetchImage(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	// Keep stored copies at a sane size; non-decodable payloads pass through.
	data = downscale(data)

	objectPath := c.uploadPath + strconv.FormatInt(time.Now().UnixNano(), 10) + ".jpg"

	wctx, cancel := context.WithTimeout(ctx, 50*time.Second)
	defer cancel()

	wc := c.cl.Bucket(c.bucketName).Object(objectPath).NewWriter(wctx)
	if _, err := io.Copy(wc, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("io.Copy: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("Writer.Close: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectPath), nil
}

func (c *ClientUploader) fetchImage(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received status code %d", res.StatusCode)
	}

	contentType := res.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("URL does not point to an image")
	}

	return io.ReadAll(res.Body)
}

// Delete removes a previously uploaded object, identified by its public URL.
func (c *ClientUploader) Delete(ctx context.Context, objectURL string) error {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", c.bucketName)
	objectPath := strings.TrimPrefix(objectURL, prefix)
	if objectPath == objectURL || objectPath == "" {
		return fmt.Errorf("object URL %q is not in bucket %s", objectURL, c.bucketName)
	}

	dctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return c.cl.Bucket(c.bucketName).Object(objectPath).Delete(dctx)
}
