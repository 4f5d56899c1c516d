// Package bspserver serves the Build Server Protocol over stdio.
//
// The server owns the handshake and request dispatch; compilation
// itself runs through internal/driver with an internal/report.Reporter
// streaming diagnostics back over the same connection.
package bspserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"veld/internal/driver"
	"veld/internal/project"
	"veld/internal/protocol"
	"veld/internal/report"
	"veld/internal/version"
)

var (
	// ErrExit signals a graceful shutdown after receiving "build/exit".
	ErrExit = errors.New("bsp exit")
	// ErrExitWithoutShutdown signals an exit without a preceding shutdown.
	ErrExitWithoutShutdown = errors.New("bsp exit without shutdown")
)

// CompileFunc runs one compile of target through sink.
type CompileFunc func(ctx context.Context, target *project.Target, sink driver.Sink, opts driver.Options) error

// Options configures server behavior.
type Options struct {
	Jobs    int
	Cache   *driver.Cache
	Compile CompileFunc
	Logf    func(format string, args ...any)
}

// Server handles stdio JSON-RPC for the veld build server.
type Server struct {
	in      *bufio.Reader
	conn    *protocol.ConnNotifier
	compile CompileFunc
	logf    func(format string, args ...any)
	jobs    int
	cache   *driver.Cache

	mu                sync.Mutex
	target            *project.Target
	shutdownRequested bool

	taskSeq atomic.Uint64
}

// NewServer constructs a build server reading from in and writing to out.
func NewServer(in io.Reader, out io.Writer, opts Options) *Server {
	compileFn := opts.Compile
	if compileFn == nil {
		compileFn = driver.Compile
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "bsp: "+format+"\n", args...)
		}
	}
	return &Server{
		in:      bufio.NewReader(in),
		conn:    protocol.NewConnNotifier(out),
		compile: compileFn,
		logf:    logf,
		jobs:    opts.Jobs,
		cache:   opts.Cache,
	}
}

// Run serves requests until exit. It returns ErrExit on a clean
// shutdown-then-exit sequence.
func (s *Server) Run(ctx context.Context) error {
	for {
		payload, err := protocol.ReadMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg protocol.Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(ctx, &msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, msg *protocol.Message) error {
	switch msg.Method {
	case protocol.MethodInitialize:
		return s.handleInitialize(msg)
	case protocol.MethodInitialized:
		return nil
	case protocol.MethodShutdown:
		s.mu.Lock()
		s.shutdownRequested = true
		s.mu.Unlock()
		return s.conn.Respond(msg.ID, nil)
	case protocol.MethodExit:
		s.mu.Lock()
		clean := s.shutdownRequested
		s.mu.Unlock()
		if clean {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case protocol.MethodBuildTargets:
		return s.handleBuildTargets(msg)
	case protocol.MethodCompile:
		return s.handleCompile(ctx, msg)
	default:
		if len(msg.ID) > 0 {
			return s.conn.RespondError(msg.ID, -32601, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *protocol.Message) error {
	var params protocol.InitializeBuildParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.conn.RespondError(msg.ID, -32602, "invalid params")
		}
	}
	if root := protocol.URIPath(params.RootURI); root != "" {
		target, err := project.LoadTarget(root)
		if err != nil {
			s.logf("no target under %s: %v", root, err)
		} else {
			s.mu.Lock()
			s.target = target
			s.mu.Unlock()
		}
	}
	result := protocol.InitializeBuildResult{
		DisplayName: "veld-bsp",
		Version:     version.Number,
		BSPVersion:  "2.1.0",
		Capabilities: protocol.BuildServerCapabilities{
			CompileProvider: &protocol.CompileProvider{
				LanguageIDs: []string{"veld"},
			},
		},
	}
	return s.conn.Respond(msg.ID, result)
}

func (s *Server) handleBuildTargets(msg *protocol.Message) error {
	s.mu.Lock()
	target := s.target
	s.mu.Unlock()

	result := protocol.WorkspaceBuildTargetsResult{Targets: []protocol.BuildTarget{}}
	if target != nil {
		result.Targets = append(result.Targets, protocol.BuildTarget{
			ID:            target.ID,
			DisplayName:   target.Name,
			BaseDirectory: protocol.FileURI(target.Root),
			LanguageIDs:   []string{"veld"},
			Capabilities:  protocol.BuildTargetCapabilities{CanCompile: true},
		})
	}
	return s.conn.Respond(msg.ID, result)
}

func (s *Server) handleCompile(ctx context.Context, msg *protocol.Message) error {
	var params protocol.CompileParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.conn.RespondError(msg.ID, -32602, "invalid params")
		}
	}
	s.mu.Lock()
	target := s.target
	s.mu.Unlock()
	if target == nil {
		return s.conn.RespondError(msg.ID, -32002, "no build target loaded")
	}

	taskID := protocol.TaskID{ID: fmt.Sprintf("compile-%d", s.taskSeq.Add(1))}
	reporter := report.New(s.conn, report.Options{
		Target:      target.ID,
		DisplayName: target.Name,
		TaskID:      taskID,
		OriginID:    params.OriginID,
		Logf:        s.logf,
	})
	if err := s.compile(ctx, target, reporter, driver.Options{
		Jobs:  s.jobs,
		Cache: s.cache,
		Logf:  s.logf,
	}); err != nil {
		s.logf("compile failed: %v", err)
		return s.conn.RespondError(msg.ID, -32603, err.Error())
	}
	return s.conn.Respond(msg.ID, protocol.CompileResult{
		OriginID:   params.OriginID,
		StatusCode: reporter.Status(),
	})
}
