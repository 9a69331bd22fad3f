// Package snapshot writes committed HTML to a destination: stdout, a local
// file or an S3 object.
package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/weft/internal/config"
	"github.com/vango-dev/weft/internal/errors"
)

// Snapshot is one rendered document.
type Snapshot struct {
	RootID  string
	HTML    []byte
	TakenAt time.Time
}

// Sink stores snapshots.
type Sink interface {
	Write(ctx context.Context, s Snapshot) error
	String() string
}

// Open returns the sink for out: "" writes to stdout, "s3://bucket/key"
// uploads with an S3 client built from cfg, anything else is a file path.
func Open(out string, cfg config.S3Config, stdout io.Writer) (Sink, error) {
	switch {
	case out == "" || out == "-":
		return &WriterSink{W: stdout}, nil
	case strings.HasPrefix(out, "s3://"):
		bucket, key, err := ParseS3URL(out)
		if err != nil {
			return nil, err
		}
		return NewS3Sink(NewS3Client(cfg), bucket, key), nil
	default:
		return &FileSink{Path: out}, nil
	}
}

// WriterSink writes snapshots to an io.Writer.
type WriterSink struct {
	W io.Writer
}

func (s *WriterSink) Write(_ context.Context, snap Snapshot) error {
	if _, err := s.W.Write(snap.HTML); err != nil {
		return errors.New("W022").WithDetail("stdout").Wrap(err)
	}
	return nil
}

func (s *WriterSink) String() string { return "stdout" }

// FileSink writes snapshots to a file, creating parent directories.
type FileSink struct {
	Path string
}

func (s *FileSink) Write(_ context.Context, snap Snapshot) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New("W022").WithDetail(s.Path).Wrap(err)
		}
	}
	if err := os.WriteFile(s.Path, snap.HTML, 0o644); err != nil {
		return errors.New("W022").WithDetail(s.Path).Wrap(err)
	}
	return nil
}

func (s *FileSink) String() string { return s.Path }

// ParseS3URL splits s3://bucket/key.
func ParseS3URL(raw string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(raw, "s3://")
	if !ok {
		return "", "", errors.New("W022").WithDetailf("%q is not an s3:// URL", raw)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", errors.New("W022").WithDetailf("%q must name a bucket and an object key", raw)
	}
	return bucket, key, nil
}

// Name returns a default object name for a snapshot.
func Name(s Snapshot) string {
	return fmt.Sprintf("%s-%s.html", s.TakenAt.UTC().Format("20060102T150405Z"), s.RootID)
}
