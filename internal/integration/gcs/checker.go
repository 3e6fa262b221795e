package gcs

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// MaxCountedObjects caps how many objects CountObjects walks per prefix
const MaxCountedObjects = 1000

// Checker looks at the Cloud Storage prefixes an import is about to read
type Checker struct {
	client *storage.Client
}

func NewChecker(ctx context.Context) (*Checker, error) {
	client, err := storage.NewClient(ctx, option.WithScopes(storage.ScopeReadOnly))
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &Checker{
		client: client,
	}, nil
}

func (c *Checker) Close() error {
	return c.client.Close()
}

// CountObjects counts the objects under a gs://bucket/prefix URI, stopping
// at MaxCountedObjects.
func (c *Checker) CountObjects(ctx context.Context, uri string) (int, error) {
	bucket, prefix, err := ParseURI(uri)
	if err != nil {
		return 0, err
	}

	it := c.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	count := 0
	for count < MaxCountedObjects {
		_, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return count, fmt.Errorf("list objects in %s: %w", uri, err)
		}
		count++
	}

	return count, nil
}

// ParseURI splits gs://bucket/some/prefix into bucket and prefix
func ParseURI(uri string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("not a gs:// URI: %q", uri)
	}

	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in %q", uri)
	}

	return bucket, prefix, nil
}
