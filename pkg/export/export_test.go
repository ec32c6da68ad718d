package export

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/withhover/internal/errors"
)

// fakePutter records uploads in memory.
type fakePutter struct {
	mu      sync.Mutex
	objects map[string]string
	meta    map[string]map[string]string
	failKey string
}

func newFakePutter() *fakePutter {
	return &fakePutter{objects: map[string]string{}, meta: map[string]map[string]string{}}
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	if aws.ToString(in.Key) == f.failKey {
		return nil, stderrors.New("access denied")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = string(body)
	f.meta[key] = in.Metadata
	return &s3.PutObjectOutput{}, nil
}

func TestRenderBothStates(t *testing.T) {
	snaps, err := Render(Config{Title: "Demo", Texts: []string{"hello", "world"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(snaps) != 2 || snaps[0].Name != "default" || snaps[1].Name != "hovered" {
		t.Fatalf("snapshots = %+v", snaps)
	}

	def, hov := string(snaps[0].HTML), string(snaps[1].HTML)
	if strings.Contains(def, "background-color: blue") || strings.Count(def, "background-color: white;") != 2 {
		t.Errorf("default snapshot:\n%s", def)
	}
	if strings.Count(hov, "background-color: blue;") != 2 {
		t.Errorf("hovered snapshot:\n%s", hov)
	}
	for _, html := range []string{def, hov} {
		if strings.Contains(html, "data-hid") || strings.Contains(html, "<script") {
			t.Errorf("snapshots must be static:\n%s", html)
		}
		if !strings.Contains(html, "<title>Demo</title>") {
			t.Errorf("title missing:\n%s", html)
		}
	}
}

func TestPublish(t *testing.T) {
	fp := newFakePutter()
	keys, err := Publish(context.Background(), fp, Config{
		Bucket: "snaps",
		Prefix: "demo/",
		Texts:  []string{"hello"},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if strings.Join(keys, ",") != "demo/default.html,demo/hovered.html" {
		t.Errorf("keys = %v", keys)
	}
	if !strings.Contains(fp.objects["snaps/demo/hovered.html"], "background-color: blue;") {
		t.Errorf("hovered object:\n%s", fp.objects["snaps/demo/hovered.html"])
	}
	if fp.meta["snaps/demo/default.html"]["hover-state"] != "default" {
		t.Errorf("metadata = %v", fp.meta["snaps/demo/default.html"])
	}
}

func TestPublishErrors(t *testing.T) {
	_, err := Publish(context.Background(), newFakePutter(), Config{Texts: []string{"x"}})
	if errors.Code(err) != errors.ExportBucket {
		t.Errorf("missing bucket: %v", err)
	}

	fp := newFakePutter()
	fp.failKey = "hovered.html"
	keys, err := Publish(context.Background(), fp, Config{Bucket: "b", Texts: []string{"x"}})
	if errors.Code(err) != errors.ExportUpload {
		t.Fatalf("upload failure: %v", err)
	}
	if len(keys) != 1 || keys[0] != "default.html" {
		t.Errorf("keys written before the failure = %v", keys)
	}
	if !strings.Contains(err.Error(), "access denied") {
		t.Errorf("error should wrap the cause: %v", err)
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	env := map[string]string{
		EnvAccessKeyID:     "AKID",
		EnvSecretAccessKey: "secret",
		EnvSessionToken:    "token",
	}
	creds, err := credentialsFromEnv(func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("credentialsFromEnv: %v", err)
	}
	if creds.AccessKeyID != "AKID" || creds.SessionToken != "token" {
		t.Errorf("creds = %+v", creds)
	}

	delete(env, EnvSecretAccessKey)
	if _, err := credentialsFromEnv(func(k string) string { return env[k] }); errors.Code(err) != errors.ExportNoCreds {
		t.Errorf("missing secret: %v", err)
	}
}

func TestNewS3Client(t *testing.T) {
	env := map[string]string{
		EnvAccessKeyID:     "AKID",
		EnvSecretAccessKey: "secret",
		EnvEndpoint:        "http://localhost:9000",
	}
	client, err := newS3Client("eu-west-1", func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("newS3Client: %v", err)
	}

	opts := client.Options()
	if opts.Region != "eu-west-1" || !opts.UsePathStyle || aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" {
		t.Errorf("options: region=%q pathStyle=%t endpoint=%q", opts.Region, opts.UsePathStyle, aws.ToString(opts.BaseEndpoint))
	}
	creds, err := opts.Credentials.Retrieve(context.Background())
	if err != nil || creds.AccessKeyID != "AKID" {
		t.Errorf("Retrieve = %+v, %v", creds, err)
	}
}
