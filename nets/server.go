package nets

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/reusee/stepviz/futures"
	"github.com/reusee/stepviz/insts"
	"github.com/reusee/stepviz/logs"
	"github.com/reusee/stepviz/snapshots"
	"github.com/reusee/stepviz/stepvm"
	"golang.org/x/net/websocket"
)

// Server exposes one engine to websocket debugger clients.
// All engine access goes through the driver.
type Server struct {
	driver  *stepvm.Driver
	logger  logs.Logger
	newSpan logs.NewSpan
}

// NewServer creates a server. Each connection gets its own span when newSpan is not nil.
func NewServer(driver *stepvm.Driver, logger logs.Logger, newSpan logs.NewSpan) *Server {
	return &Server{
		driver:  driver,
		logger:  logger,
		newSpan: newSpan,
	}
}

func (s *Server) Handler() websocket.Handler {
	return s.serve
}

const outgoingBuffer = 64

func (s *Server) serve(conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(conn.Request().Context())
	if s.newSpan != nil {
		ctx, _ = s.newSpan(ctx, "")
	}
	remote := conn.Request().RemoteAddr
	s.logger.InfoContext(ctx, "debugger connected", "remote", remote)

	out := make(chan Message, outgoingBuffer)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-out:
				if err := websocket.JSON.Send(conn, msg); err != nil {
					s.logger.WarnContext(ctx, "send", "remote", remote, "error", err)
					cancel()
					return
				}
			}
		}
	}()
	send := func(msg Message) {
		select {
		case out <- msg:
		case <-ctx.Done():
		}
	}

	var unsubscribe func()
	s.driver.Do(func(e *stepvm.Engine) error {
		unsubscribe = e.Subscribe(func(ev stepvm.Event) {
			send(eventMessage(ev))
		})
		return nil
	})
	defer func() {
		cancel()
		s.driver.Do(func(*stepvm.Engine) error {
			unsubscribe()
			return nil
		})
		s.logger.InfoContext(ctx, "debugger disconnected", "remote", remote)
	}()

	for {
		var req Request
		if err := websocket.JSON.Receive(conn, &req); err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				s.logger.WarnContext(ctx, "receive", "remote", remote, "error", err)
			}
			return
		}
		s.logger.DebugContext(ctx, "request", "id", req.ID, "op", req.Op)
		if msg := s.handle(ctx, req, send); msg != nil {
			send(*msg)
		}
	}
}

// handle returns nil when the response is delivered later through send.
func (s *Server) handle(ctx context.Context, req Request, send func(Message)) *Message {
	msg := &Message{
		ID: req.ID,
	}
	deferred := false
	settle := func(future *futures.Future[any]) {
		deferred = true
		id := req.ID
		future.Then(func(value any, err error) {
			send(resultMessage(id, value, err))
		})
	}

	err := s.driver.Do(func(e *stepvm.Engine) error {
		switch req.Op {

		case OpDump:
			dump := e.Dump()
			msg.Dump = &dump

		case OpMethods:
			msg.Methods = methodInfos(e.Runnable())

		case OpInstructions:
			if program := e.Program(); program != nil {
				msg.Instructions = instructionInfos(program)
			}

		case OpPause:
			e.Pause()

		case OpResume:
			return e.Resume()

		case OpStep:
			return e.StepOver()

		case OpStepNext:
			return e.StepNext()

		case OpTerminate:
			e.Terminate()

		case OpReset:
			settle(e.Reset())

		case OpBreakpoint:
			inst := e.Instruction(req.Instruction)
			if inst == nil {
				return fmt.Errorf("%w: %s", ErrInstructionNotFound, req.Instruction)
			}
			msg.Result = inst.ToggleBreakpoint()
			msg.Instruction = inst.Description()

		case OpCall:
			method := e.Method(req.Method)
			if method == nil || !method.IsPublic() {
				return fmt.Errorf("%w: %s", insts.ErrMethodNotFound, req.Method)
			}
			args, err := method.ParseArgs(req.Args)
			if err != nil {
				return err
			}
			settle(e.Call(req.Method, args))

		case OpExport:
			snapshot, err := e.CreateSnapshot()
			if err != nil {
				return err
			}
			msg.Snapshot = &snapshot

		case OpImport:
			if req.Snapshot == nil {
				return fmt.Errorf("%w: no snapshot", snapshots.ErrInvalid)
			}
			future, err := e.ApplySnapshot(*req.Snapshot)
			if err != nil {
				return err
			}
			settle(future)

		default:
			return fmt.Errorf("%w: %s", ErrUnknownOp, req.Op)
		}
		return nil
	})

	if err != nil {
		s.logger.DebugContext(ctx, "request failed", "id", req.ID, "op", req.Op, "error", err)
		msg.Error = logs.WrapSpan(ctx, err).Error()
		return msg
	}
	if deferred {
		return nil
	}
	return msg
}
