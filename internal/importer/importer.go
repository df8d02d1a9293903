// Package importer loads batches of events from a local file or an S3 object.
// Sources hold either a JSON array of events or newline-delimited JSON.
package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	v1 "github.com/aevon-lab/hybrid-events/internal/api/v1"
)

var (
	// ErrPathRequired is returned when no path is given.
	ErrPathRequired = errors.New("missing 'path'")

	// ErrSourceNotFound is returned when the file or object does not exist.
	ErrSourceNotFound = errors.New("file not found")

	// ErrMalformedSource is returned when the source is not a JSON array or NDJSON.
	ErrMalformedSource = errors.New("malformed import source")
)

const s3Scheme = "s3://"

// Options configures S3 access. Local files need no configuration.
type Options struct {
	S3Region   string
	S3Endpoint string

	// S3Client overrides the client built from the AWS default config chain.
	S3Client ObjectGetter
}

// Importer resolves import paths to event batches.
type Importer struct {
	opts Options

	mu       sync.Mutex
	s3Client ObjectGetter
}

// New creates an importer. The S3 client is created on the first s3:// path.
func New(opts Options) *Importer {
	return &Importer{opts: opts, s3Client: opts.S3Client}
}

// Load reads and decodes every event at path. Paths starting with s3:// are
// fetched from S3; anything else is a local file.
func (im *Importer) Load(ctx context.Context, path string) ([]*v1.Event, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrPathRequired
	}

	var (
		events []*v1.Event
		err    error
	)
	if strings.HasPrefix(path, s3Scheme) {
		events, err = im.loadS3(ctx, path)
	} else {
		events, err = loadFile(path)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("[Importer] Loaded events", "path", path, "count", len(events))
	return events, nil
}

func loadFile(path string) ([]*v1.Event, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

func (im *Importer) loadS3(ctx context.Context, path string) ([]*v1.Event, error) {
	bucket, key, err := parseS3Path(path)
	if err != nil {
		return nil, err
	}

	client, err := im.client(ctx)
	if err != nil {
		return nil, err
	}

	body, err := getObject(ctx, client, bucket, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return Decode(body)
}

func (im *Importer) client(ctx context.Context) (ObjectGetter, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.s3Client != nil {
		return im.s3Client, nil
	}
	client, err := NewS3Client(ctx, im.opts.S3Region, im.opts.S3Endpoint)
	if err != nil {
		return nil, err
	}
	im.s3Client = client
	return client, nil
}

// Decode parses a JSON array of events or a stream of JSON objects
// (one per line). Empty input yields no events.
func Decode(r io.Reader) ([]*v1.Event, error) {
	br := bufio.NewReader(r)
	first, err := firstNonSpace(br)
	if err == io.EOF {
		return []*v1.Event{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read import source: %w", err)
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		var events []*v1.Event
		if err := dec.Decode(&events); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
		}
		if events == nil {
			events = []*v1.Event{}
		}
		return events, nil
	}

	events := []*v1.Event{}
	for line := 1; dec.More(); line++ {
		var evt v1.Event
		if err := dec.Decode(&evt); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedSource, line, err)
		}
		events = append(events, &evt)
	}
	return events, nil
}

func firstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}
