package storage

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeBucket = "workouts-test"

// fakeS3 is an in-memory http.RoundTripper speaking just enough of the S3
// REST API for S3Store: bucket head/create and object get/put/delete/list.
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	bucket := parts[0]
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	if key == "" {
		switch req.Method {
		case http.MethodHead:
			if f.buckets[bucket] {
				return respond(http.StatusOK, ""), nil
			}
			return respond(http.StatusNotFound, ""), nil
		case http.MethodPut:
			f.buckets[bucket] = true
			return respond(http.StatusOK, ""), nil
		case http.MethodGet:
			return f.list(req), nil
		}
		return respond(http.StatusNotImplemented, ""), nil
	}

	switch req.Method {
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			return respondXML(http.StatusNotFound, `<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`), nil
		}
		resp := respond(http.StatusOK, string(body))
		resp.Header.Set("Content-Type", "application/json")
		resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
		return resp, nil
	case http.MethodPut:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") {
			body = decodeChunked(body)
		}
		f.objects[key] = body
		resp := respond(http.StatusOK, "")
		resp.Header.Set("ETag", `"etag"`)
		return resp, nil
	case http.MethodDelete:
		delete(f.objects, key)
		return respond(http.StatusNoContent, ""), nil
	}
	return respond(http.StatusNotImplemented, ""), nil
}

func (f *fakeS3) list(req *http.Request) *http.Response {
	q := req.URL.Query()
	prefix := q.Get("prefix")
	delimiter := q.Get("delimiter")

	var keys []string
	prefixes := map[string]bool{}
	for k := range f.objects {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		rest := strings.TrimPrefix(k, prefix)
		if delimiter != "" {
			if i := strings.Index(rest, delimiter); i != -1 {
				prefixes[prefix+rest[:i+1]] = true
				continue
			}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult>`)
	b.WriteString("<IsTruncated>false</IsTruncated>")
	fmt.Fprintf(&b, "<KeyCount>%d</KeyCount>", len(keys))
	for _, k := range keys {
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size></Contents>", k, len(f.objects[k]))
	}
	for p := range prefixes {
		fmt.Fprintf(&b, "<CommonPrefixes><Prefix>%s</Prefix></CommonPrefixes>", p)
	}
	b.WriteString("</ListBucketResult>")
	return respondXML(http.StatusOK, b.String())
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func respondXML(status int, body string) *http.Response {
	resp := respond(status, body)
	resp.Header.Set("Content-Type", "application/xml")
	return resp
}

// decodeChunked strips aws-chunked framing: <hex-size>[;ext]\r\n<data>\r\n ... 0\r\n
func decodeChunked(b []byte) []byte {
	var out bytes.Buffer
	r := bufio.NewReader(bytes.NewReader(b))
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return out.Bytes()
		}
		sizeStr := strings.TrimSpace(strings.SplitN(line, ";", 2)[0])
		size, err := strconv.ParseInt(sizeStr, 16, 64)
		if err != nil || size == 0 {
			return out.Bytes()
		}
		chunk := make([]byte, size)
		if _, err := io.ReadFull(r, chunk); err != nil {
			return out.Bytes()
		}
		out.Write(chunk)
		_, _ = r.ReadString('\n')
	}
}

func newFakeS3Store(t *testing.T) (*S3Store, *fakeS3) {
	t.Helper()
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	fake := newFakeS3()
	store, err := NewS3Store(context.Background(), S3Config{
		Region:     "us-east-1",
		Bucket:     fakeBucket,
		AccessKey:  "AKIA",
		SecretKey:  "SECRET",
		Endpoint:   "https://s3.mock.local",
		PathStyle:  true,
		HTTPClient: &http.Client{Transport: fake},
	})
	require.NoError(t, err)
	return store, fake
}

func TestS3Store_CreatesBucket(t *testing.T) {
	_, fake := newFakeS3Store(t)
	assert.True(t, fake.buckets[fakeBucket])
}

func TestS3Store_Contract(t *testing.T) {
	store, _ := newFakeS3Store(t)
	runStoreContract(t, store)
}

func TestS3Store_ObjectLayout(t *testing.T) {
	store, fake := newFakeS3Store(t)

	require.NoError(t, store.Set(context.Background(), "workouts/2025-09-16/entries/abc", Fields{"name": "Squat"}))

	raw, ok := fake.objects["workouts/2025-09-16/entries/abc.json"]
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"Squat"}`, string(raw))
}

func TestS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}
