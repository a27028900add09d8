package cmds

import (
	"errors"
	"strings"
	"testing"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var a int
	executor.Define("+a", Func(func() {
		a = 42
	}))
	executor.Define("a", Func(func(i int) {
		a = i
	}))

	if err := executor.Execute([]string{
		"+a",
	}); err != nil {
		t.Fatal(err)
	}
	if a != 42 {
		t.Fatal()
	}

	if err := executor.Execute([]string{
		"a", "1",
	}); err != nil {
		t.Fatal(err)
	}
	if a != 1 {
		t.Fatal()
	}

	err := executor.Execute([]string{
		"foo",
	})
	if !strings.Contains(err.Error(), "unknown command: foo") {
		t.Fatalf("got %v", err)
	}

}

func TestArguments(t *testing.T) {
	executor := NewExecutor()
	var f float64
	var s string
	var failed bool
	executor.Define("pair", Func(func(x float64, y string) {
		f = x
		s = y
	}))
	executor.Define("fail", Func(func() error {
		failed = true
		return errors.New("failed")
	}))

	if err := executor.Execute([]string{"pair", "1.5", "foo"}); err != nil {
		t.Fatal(err)
	}
	if f != 1.5 || s != "foo" {
		t.Fatalf("got %v %v", f, s)
	}

	err := executor.Execute([]string{"pair", "2"})
	if err == nil || !strings.Contains(err.Error(), "pair: expecting 2 arguments, got 1") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"pair", "x", "y"})
	if err == nil || !strings.Contains(err.Error(), "convert x to float") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"fail"})
	if err == nil || err.Error() != "failed" || !failed {
		t.Fatalf("got %v", err)
	}
}

func TestDuplicatedCommand(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Func(func() {}))
	defer func() {
		if p := recover(); p == nil {
			t.Fatal("should panic")
		}
	}()
	executor.Define("bar", Func(func() {}).Alias("foo"))
}

func TestInlineArgument(t *testing.T) {
	executor := NewExecutor()
	var s string
	var b bool
	executor.Define("-name", Func(func(v string) {
		s = v
	}))
	executor.Define("-verbose", Func(func(v bool) {
		b = v
	}))
	if err := executor.Execute([]string{
		"-name=a=b",
		"-verbose=on",
	}); err != nil {
		t.Fatal(err)
	}
	if s != "a=b" {
		t.Fatalf("got %s", s)
	}
	if !b {
		t.Fatal()
	}

	err := executor.Execute([]string{"-verbose=maybe"})
	if err == nil || !strings.Contains(err.Error(), "convert maybe to bool") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"-missing=1"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: -missing=1") {
		t.Fatalf("got %v", err)
	}
}
