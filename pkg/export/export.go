package export

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/withhover/internal/errors"
	"github.com/vango-dev/withhover/pkg/render"
	"github.com/vango-dev/withhover/pkg/text"
	"github.com/vango-dev/withhover/pkg/vdom"
)

// Putter is the part of the S3 API Publish needs.
type Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ Putter = (*s3.Client)(nil)

// Config describes what to render and where to put it.
type Config struct {
	Bucket string
	Prefix string
	Title  string
	Texts  []string

	// Pretty indents the HTML.
	Pretty bool

	Logger *slog.Logger
}

// Snapshot is one rendered hover state.
type Snapshot struct {
	// Name is "default" or "hovered".
	Name    string
	Hovered bool
	HTML    []byte
}

// Key returns the object key for s under prefix.
func (s Snapshot) Key(prefix string) string {
	return prefix + s.Name + ".html"
}

// Render renders the list once with every item left alone and once with
// every item hovered.
func Render(cfg Config) ([]Snapshot, error) {
	list := text.NewList(cfg.Title, cfg.Texts)
	defer list.Dispose()

	states := []Snapshot{
		{Name: "default"},
		{Name: "hovered", Hovered: true},
	}
	for i := range states {
		list.SetHovered(states[i].Hovered)

		var buf bytes.Buffer
		r := render.NewRenderer(render.RendererConfig{Pretty: cfg.Pretty})
		err := r.RenderPage(&buf, render.PageData{
			Title:  cfg.Title,
			Styles: []string{text.Stylesheet},
			Body:   vdom.Comp(list),
		})
		if err != nil {
			return nil, errors.New(errors.ExportRender).WithDetail("%s state", states[i].Name).Wrap(err)
		}
		states[i].HTML = buf.Bytes()
	}
	return states, nil
}

// Publish renders both snapshots and uploads them. It returns the keys
// written, in order.
func Publish(ctx context.Context, client Putter, cfg Config) ([]string, error) {
	if cfg.Bucket == "" {
		return nil, errors.New(errors.ExportBucket)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	snapshots, err := Render(cfg)
	if err != nil {
		return nil, err
	}

	renderedAt := time.Now().UTC().Format(time.RFC3339)
	keys := make([]string, 0, len(snapshots))
	for _, snap := range snapshots {
		key := snap.Key(cfg.Prefix)
		_, err := client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:       aws.String(cfg.Bucket),
			Key:          aws.String(key),
			Body:         bytes.NewReader(snap.HTML),
			ContentType:  aws.String("text/html; charset=utf-8"),
			CacheControl: aws.String("no-cache"),
			Metadata: map[string]string{
				"hover-state": snap.Name,
				"rendered-at": renderedAt,
			},
		})
		if err != nil {
			return keys, errors.New(errors.ExportUpload).
				WithDetail("s3://%s/%s", cfg.Bucket, key).
				Wrap(err)
		}
		logger.Info("snapshot published", "bucket", cfg.Bucket, "key", key, "bytes", len(snap.HTML))
		keys = append(keys, key)
	}
	return keys, nil
}
