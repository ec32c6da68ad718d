// Package export renders static snapshots of a text list in both hover
// states and publishes them to S3.
//
//	client, err := export.NewS3Client("eu-west-1")
//	keys, err := export.Publish(ctx, client, export.Config{
//	    Bucket: "my-snapshots",
//	    Prefix: "withhover/",
//	    Title:  "Demo",
//	    Texts:  []string{"hello"},
//	})
//	// keys: withhover/default.html, withhover/hovered.html
//
// Credentials come from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and the
// optional AWS_SESSION_TOKEN. AWS_ENDPOINT_URL_S3 points the client at an
// S3-compatible endpoint with path-style addressing.
package export
