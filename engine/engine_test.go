package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/meshcad-xyz/go-meshcad/eval"
	"github.com/meshcad-xyz/go-meshcad/logger"
	"github.com/meshcad-xyz/go-meshcad/scene"
)

func TestCompile_FullPipeline(t *testing.T) {
	s, err := Compile(`
side = 4;
translate([1, 0, 0]) cube([side, side, side]);
`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(s.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(s.Nodes))
	}
	if s.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", s.TriangleCount())
	}
}

func TestCompile_NoGeometry(t *testing.T) {
	_, err := Compile(`x = 1;`)
	if !errors.Is(err, eval.ErrNoGeometry) {
		t.Fatalf("expected ErrNoGeometry, got %v", err)
	}
}

func TestExport(t *testing.T) {
	s, err := Compile(`sphere(r=2);`)
	if err != nil {
		t.Fatal(err)
	}
	data, err := Export(s, "ball")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(string(data), "solid ball\n") {
		t.Errorf("unexpected export header")
	}
}

func TestExport_EmptyScene(t *testing.T) {
	if _, err := Export(scene.New(), "x"); err == nil {
		t.Errorf("expected error exporting an empty scene")
	}
}

func quietLogger() *logger.Logger {
	return logger.New(io.Discard, logger.LevelError, "")
}

func TestService_PublishesScene(t *testing.T) {
	results := make(chan *scene.Scene, 8)
	svc := NewService(func(s *scene.Scene, err error) {
		if err == nil {
			results <- s
		}
	}, quietLogger())

	svc.Start(context.Background())
	defer svc.Stop()

	svc.Submit(`cube(1);`)

	select {
	case s := <-results:
		if s.TriangleCount() != 12 {
			t.Errorf("expected cube scene, got %d triangles", s.TriangleCount())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no scene published")
	}

	if svc.Current() == nil {
		t.Errorf("Current should hold the published scene")
	}
}

func TestService_LatestWins(t *testing.T) {
	published := make(chan int, 64)
	svc := NewService(func(s *scene.Scene, err error) {
		if err == nil {
			published <- len(s.Nodes)
		}
	}, quietLogger())

	svc.Start(context.Background())
	defer svc.Stop()

	// Burst of edits; the final source has 3 shapes.
	for i := 1; i <= 3; i++ {
		var b strings.Builder
		for j := 0; j < i; j++ {
			fmt.Fprintf(&b, "translate([%d, 0, 0]) cube(1);\n", j*2)
		}
		svc.Submit(b.String())
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case n := <-published:
			if n == 3 {
				// The final submission made it through. Allow the
				// worker to settle, then the current scene must match.
				svc.Stop()
				if got := len(svc.Current().Nodes); got != 3 {
					t.Fatalf("current scene has %d nodes, expected 3", got)
				}
				return
			}
		case <-deadline:
			t.Fatal("final submission never published")
		}
	}
}

func TestService_ErrorDoesNotReplaceCurrent(t *testing.T) {
	done := make(chan struct{}, 8)
	svc := NewService(func(s *scene.Scene, err error) {
		done <- struct{}{}
	}, quietLogger())

	svc.Start(context.Background())
	defer svc.Stop()

	svc.Submit(`cube(1);`)
	<-done
	good := svc.Current()
	if good == nil {
		t.Fatal("expected a published scene")
	}

	svc.Submit(`not even close`)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("failed evaluation never reported")
	}

	if svc.Current() != good {
		t.Errorf("failed evaluation must not replace the last good scene")
	}
}
