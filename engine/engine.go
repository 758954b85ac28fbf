// Package engine exposes the two entry points the host application
// needs, Compile and Export, plus a single-worker service that
// serializes concurrent evaluation requests with a latest-wins policy.
package engine

import (
	"context"
	"sync"

	"github.com/meshcad-xyz/go-meshcad/eval"
	"github.com/meshcad-xyz/go-meshcad/logger"
	"github.com/meshcad-xyz/go-meshcad/scad"
	"github.com/meshcad-xyz/go-meshcad/scene"
	"github.com/meshcad-xyz/go-meshcad/stl"
)

// Compile runs the whole synchronous pipeline: lex, parse, evaluate.
// One source buffer in, one scene out. Recoverable problems surface as
// diagnostics on the scene; an empty result returns *eval.NoGeometryError.
func Compile(source string) (*scene.Scene, error) {
	return eval.Evaluate(scad.Parse(source))
}

// Export serializes a finalized scene to ASCII STL bytes. It is a
// pure function of the scene and needs no synchronization.
func Export(s *scene.Scene, name string) ([]byte, error) {
	return stl.Marshal(s, name)
}

// SceneHandler receives each published evaluation result. Exactly one
// of scene and err is meaningful per call.
type SceneHandler func(*scene.Scene, error)

// Service serializes evaluation requests through a single worker.
// Rapid submissions coalesce: a newer source replaces a pending one,
// and a result computed for a superseded submission is discarded
// rather than published. The current scene is replaced atomically;
// consumers never observe a partially evaluated scene.
type Service struct {
	log     *logger.Logger
	handler SceneHandler
	notify  chan struct{}

	mu      sync.Mutex
	pending *string
	gen     uint64
	current *scene.Scene

	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a service publishing results to handler. handler
// may be nil if callers only poll Current.
func NewService(handler SceneHandler, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		log:     log.WithPrefix("engine"),
		handler: handler,
		notify:  make(chan struct{}, 1),
	}
}

// Start launches the worker. It returns immediately.
func (s *Service) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run(ctx)
}

// Stop halts the worker and waits for it to exit. A pending
// submission is discarded.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// Submit queues source text for evaluation, replacing any submission
// not yet started. Latest wins.
func (s *Service) Submit(source string) {
	s.mu.Lock()
	src := source
	s.pending = &src
	s.gen++
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Current returns the most recently published scene, or nil if no
// evaluation has succeeded yet.
func (s *Service) Current() *scene.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.notify:
		}

		for {
			s.mu.Lock()
			if s.pending == nil {
				s.mu.Unlock()
				break
			}
			source := *s.pending
			gen := s.gen
			s.pending = nil
			s.mu.Unlock()

			sc, err := Compile(source)

			s.mu.Lock()
			stale := gen != s.gen
			if !stale && err == nil {
				s.current = sc
			}
			s.mu.Unlock()

			if stale {
				s.log.Debug("discarding superseded evaluation (gen %d)", gen)
				continue
			}
			if err != nil {
				s.log.Warn("evaluation failed: %v", err)
			} else if len(sc.Diagnostics) > 0 {
				s.log.Info("evaluated with %d skipped statements", len(sc.Diagnostics))
			}
			if s.handler != nil {
				s.handler(sc, err)
			}
		}
	}
}
