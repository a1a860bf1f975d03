package downloads

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// LocalSink writes each file to <dir>/<uuid>/<filename> on an afero
// filesystem, so two receipts for applicants with the same name never
// share a location. Production uses afero.NewOsFs; tests use afero.NewMemMapFs.
type LocalSink struct {
	fs    afero.Fs
	dir   string
	newID func() string
}

func NewLocalSink(fs afero.Fs, dir string) *LocalSink {
	return &LocalSink{fs: fs, dir: dir, newID: func() string { return uuid.NewString() }}
}

func (s *LocalSink) Deliver(ctx context.Context, filename, contentType string, data []byte) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := filepath.Join(s.dir, s.newID())
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}

	name := SafeFilename(filename)
	target := filepath.Join(dir, name)
	tmp := target + ".part"

	// write then rename so readers never see a half-written file
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		_ = s.fs.Remove(tmp)
		return nil, fmt.Errorf("write %s: %w", name, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return nil, fmt.Errorf("rename %s: %w", name, err)
	}

	return &Object{
		Filename:    name,
		ContentType: contentType,
		Location:    target,
		Size:        len(data),
	}, nil
}

func (s *LocalSink) Remove(ctx context.Context, obj *Object) error {
	if err := s.fs.Remove(obj.Location); err != nil {
		return fmt.Errorf("remove %s: %w", obj.Location, err)
	}
	if dir := filepath.Dir(obj.Location); filepath.Dir(dir) == filepath.Clean(s.dir) {
		_ = s.fs.Remove(dir)
	}
	return nil
}
