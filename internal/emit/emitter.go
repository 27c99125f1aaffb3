// Package emit writes a compiled artifact set to the filesystem. It is the
// only part of the tool that touches disk; everything upstream is pure.
package emit

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/pkg/errors"

	"imapmaildirgen/internal/artifact"
)

// Emitter renders an artifact set and writes it under the configured
// directories: unit files to UnitDir, account configs under ConfigRoot.
type Emitter struct {
	fileMgr    FileManager
	logger     *slog.Logger
	unitDir    string
	configRoot string
}

type EmitterOption func(*Emitter) error

func NewEmitter(opts ...EmitterOption) (*Emitter, error) {
	var e Emitter
	for _, opt := range opts {
		if err := opt(&e); err != nil {
			return nil, err
		}
	}

	if e.fileMgr == nil {
		return nil, errors.New("requires file manager")
	}
	if e.logger == nil {
		return nil, errors.New("requires slogger")
	}
	if e.unitDir == "" {
		return nil, errors.New("requires unit directory")
	}
	if e.configRoot == "" {
		return nil, errors.New("requires config root")
	}

	return &e, nil
}

func WithFileManager(fm FileManager) EmitterOption {
	return func(e *Emitter) error {
		e.fileMgr = fm
		return nil
	}
}

func WithLogger(logger *slog.Logger) EmitterOption {
	return func(e *Emitter) error {
		e.logger = logger
		return nil
	}
}

func WithUnitDir(dir string) EmitterOption {
	return func(e *Emitter) error {
		e.unitDir = dir
		return nil
	}
}

func WithConfigRoot(dir string) EmitterOption {
	return func(e *Emitter) error {
		e.configRoot = dir
		return nil
	}
}

// Emit writes every artifact in the set. The set is fully compiled before
// this is called, so a write failure can leave files behind but never a
// half-compiled configuration.
func (e *Emitter) Emit(ctx context.Context, set *artifact.Set) error {
	if err := e.fileMgr.MkdirAll(e.unitDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating unit directory %s", e.unitDir)
	}

	for _, svc := range set.Services() {
		data, err := artifact.RenderService(svc)
		if err != nil {
			return err
		}
		if err := e.writeArtifact(ctx, filepath.Join(e.unitDir, svc.Key+".service"), data); err != nil {
			return err
		}
	}

	for _, timer := range set.Timers() {
		data, err := artifact.RenderTimer(timer)
		if err != nil {
			return err
		}
		if err := e.writeArtifact(ctx, filepath.Join(e.unitDir, timer.Key+".timer"), data); err != nil {
			return err
		}
	}

	for _, cfg := range set.Configs() {
		data, err := artifact.RenderConfig(cfg)
		if err != nil {
			return err
		}
		target := filepath.Join(e.configRoot, filepath.FromSlash(cfg.Path))
		if err := e.fileMgr.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.Wrapf(err, "creating config directory for %s", cfg.Path)
		}
		if err := e.writeArtifact(ctx, target, data); err != nil {
			return err
		}
	}

	e.logger.InfoContext(ctx, "Emitted artifact set",
		slog.Int("services", len(set.Services())),
		slog.Int("timers", len(set.Timers())),
		slog.Int("configs", len(set.Configs())))

	return nil
}

func (e *Emitter) writeArtifact(ctx context.Context, path string, data []byte) error {
	if err := e.fileMgr.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	e.logger.DebugContext(ctx, "Wrote artifact", slog.String("path", path), slog.Int("bytes", len(data)))
	return nil
}
