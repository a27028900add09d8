package scopes

import (
	"errors"
	"testing"

	"github.com/reusee/stepviz/insts"
)

func TestDeclare(t *testing.T) {
	s := NewStack()
	tag := new(int)
	s.Push(tag, nil, "loop")
	if err := s.Declare("x", 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Declare("x", 2); !errors.Is(err, insts.ErrDuplicateDeclaration) {
		t.Fatalf("got %v", err)
	}
	if _, err := s.Pop(); err != nil {
		t.Fatal(err)
	}
	s.Push(tag, nil, "loop")
	if err := s.Declare("x", 2); err != nil {
		t.Fatal(err)
	}
	v, err := s.Read("x")
	if err != nil {
		t.Fatal(err)
	}
	if v != 2 {
		t.Fatalf("got %v", v)
	}
}

func TestResolution(t *testing.T) {
	s := NewStack()
	if err := s.DeclareBase("root", nil); err != nil {
		t.Fatal(err)
	}
	s.Push("call", nil, "f")
	if err := s.Declare("x", 1); err != nil {
		t.Fatal(err)
	}
	s.Push("while", nil, "loop")
	if err := s.Declare("x", 2); err != nil {
		t.Fatal(err)
	}

	// shadowing, first match wins
	if v, _ := s.Read("x"); v != 2 {
		t.Fatalf("got %v", v)
	}
	if err := s.Write("root", "node"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Base().Get("root"); v != "node" {
		t.Fatalf("got %v", v)
	}

	if _, err := s.Read("y"); !errors.Is(err, insts.ErrUndefinedVariable) {
		t.Fatalf("got %v", err)
	}
	if err := s.Write("y", 1); !errors.Is(err, insts.ErrUndefinedVariable) {
		t.Fatalf("got %v", err)
	}
	if _, ok := s.Lookup("y"); ok {
		t.Fatal("should not exist")
	}

	if _, err := s.Pop(); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Read("x"); v != 1 {
		t.Fatalf("got %v", v)
	}
}

func TestBase(t *testing.T) {
	s := NewStack()
	if s.Depth() != 1 {
		t.Fatalf("got %v", s.Depth())
	}
	if _, err := s.Pop(); !errors.Is(err, insts.ErrStackUnderflow) {
		t.Fatalf("got %v", err)
	}
	if err := s.DeclareBase("size", 0); err != nil {
		t.Fatal(err)
	}
	if err := s.DeclareBase("size", 0); !errors.Is(err, insts.ErrDuplicateField) {
		t.Fatalf("got %v", err)
	}
	s.Push("x", nil, "")
	if !s.TopIs("x") || s.TopIs("y") {
		t.Fatal()
	}
	if err := s.DeclareBase("head", nil); err != nil {
		t.Fatal(err)
	}
	if names := s.Base().Names(); len(names) != 2 || names[1] != "head" {
		t.Fatalf("got %v", names)
	}
	s.Reset()
	if s.Depth() != 1 || s.Base().Len() != 0 {
		t.Fatal()
	}
	if s.TopIs(nil) {
		t.Fatal("base frame has no tag")
	}
}

func TestBindings(t *testing.T) {
	s := NewStack()
	s.Push(1, nil, "f")
	s.Declare("b", 2)
	s.Declare("a", 1)
	bindings := s.Top().Bindings()
	if len(bindings) != 2 || bindings[0].Name != "b" || bindings[1].Value != 1 {
		t.Fatalf("got %v", bindings)
	}
}
