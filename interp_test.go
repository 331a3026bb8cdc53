package glox

import (
	"strings"
	"testing"
)

func runSource(t *testing.T, src string) string {
	t.Helper()
	stmts, locals, errs := Load(strings.NewReader(src))
	if len(errs) > 0 {
		t.Fatalf("load errors: %v", errs)
	}
	var out strings.Builder
	ip := New(&out)
	if err := ip.Run(stmts, locals); err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	return out.String()
}

func runFailure(t *testing.T, src string) *RuntimeError {
	t.Helper()
	stmts, locals, errs := Load(strings.NewReader(src))
	if len(errs) > 0 {
		t.Fatalf("load errors: %v", errs)
	}
	var out strings.Builder
	ip := New(&out)
	err := ip.Run(stmts, locals)
	if err == nil {
		t.Fatal("want runtime error")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("want RuntimeError, got %T: %v", err, err)
	}
	return rerr
}

func TestRunPrint(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print 1 + 2;", "3\n"},
		{`print "a" + "b";`, "ab\n"},
		{"print 5 / 2;", "2.5\n"},
		{"print 4.0;", "4\n"},
		{"print -2.5;", "-2.5\n"},
		{"print 1 + 2 * 3;", "7\n"},
		{"print (1 + 2) * 3;", "9\n"},
		{"print nil;", "nil\n"},
		{"print true;", "true\n"},
		{"print 1 == 1.0;", "true\n"},
		{`print 1 == "1";`, "false\n"},
		{"print nil == nil;", "true\n"},
		{"print 1 != 2;", "true\n"},
		{"print 2 >= 2;", "true\n"},
		{"print 1 > 2;", "false\n"},
	}
	for _, c := range tests {
		if got := runSource(t, c.src); got != c.want {
			t.Errorf("%s: want %q, got %q", c.src, c.want, got)
		}
	}
}

// Only nil and false are falsey. Zero and the empty string are truthy.
func TestRunTruthiness(t *testing.T) {
	got := runSource(t, `print !nil; print !false; print !0; print !""; print !clock;`)
	want := "true\ntrue\nfalse\nfalse\nfalse\n"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

// Logical operators return operand values, not booleans.
func TestRunLogical(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`print "hi" or 2;`, "hi\n"},
		{`print nil or "yes";`, "yes\n"},
		{"print nil and 1;", "nil\n"},
		{"print 0 and 1;", "1\n"},
		{"print false or nil;", "nil\n"},
	}
	for _, c := range tests {
		if got := runSource(t, c.src); got != c.want {
			t.Errorf("%s: want %q, got %q", c.src, c.want, got)
		}
	}
}

// The right side of a short-circuited operator must not run.
func TestRunShortCircuit(t *testing.T) {
	got := runSource(t, `fun loud() { print "side"; return true; }
var a = false and loud();
var b = true or loud();
print a; print b;`)
	want := "false\ntrue\n"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestRunVariables(t *testing.T) {
	got := runSource(t, "var a = 1; print a = 2; print a; var b; print b;")
	want := "2\n2\nnil\n"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestRunShadowing(t *testing.T) {
	got := runSource(t, `var a = 1;
{
  var a = a + 1;
  print a;
}
print a;`)
	want := "2\n1\n"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestRunBlockScope(t *testing.T) {
	got := runSource(t, `var a = "outer";
{
  var a = "inner";
  a = "changed";
  print a;
}
print a;`)
	want := "changed\nouter\n"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestRunIfWhileFor(t *testing.T) {
	got := runSource(t, `if (1 < 2) print "then"; else print "else";
if (nil) print "then"; else print "else";
var i = 0;
while (i < 2) {
  print i;
  i = i + 1;
}
for (var j = 0; j < 3; j = j + 1) print j;`)
	want := "then\nelse\n0\n1\n0\n1\n2\n"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestRunFunctions(t *testing.T) {
	got := runSource(t, `fun add(a, b) { return a + b; }
print add(1, 2);
print add;
print clock;
fun noReturn() {}
print noReturn();
fun bareReturn() { return; }
print bareReturn();`)
	want := "3\n<fn add>\n<native fn>\nnil\nnil\n"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestRunRecursion(t *testing.T) {
	got := runSource(t, `fun fib(n) {
  if (n < 2) return n;
  return fib(n - 2) + fib(n - 1);
}
print fib(10);`)
	if got != "55\n" {
		t.Errorf("want 55, got %q", got)
	}
}

func TestRunCounterClosure(t *testing.T) {
	got := runSource(t, `fun makeCounter() {
  var i = 0;
  fun count() {
    i = i + 1;
    print i;
  }
  return count;
}
var counter = makeCounter();
counter();
counter();`)
	want := "1\n2\n"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

// Two counters from the same factory do not share state.
func TestRunClosureIsolation(t *testing.T) {
	got := runSource(t, `fun makeCounter() {
  var i = 0;
  fun count() {
    i = i + 1;
    print i;
  }
  return count;
}
var a = makeCounter();
var b = makeCounter();
a();
a();
b();`)
	want := "1\n2\n1\n"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestRunClock(t *testing.T) {
	got := runSource(t, "print clock() > 1000000000;")
	if got != "true\n" {
		t.Errorf("clock should be seconds since the epoch, got %q", got)
	}
}

func TestRunRegister(t *testing.T) {
	stmts, locals, errs := Load(strings.NewReader("print double(21);"))
	if len(errs) > 0 {
		t.Fatalf("load errors: %v", errs)
	}
	var out strings.Builder
	ip := New(&out)
	ip.Register("double", NewBuiltinFunc("double", 1, func(args []Value) (Value, error) {
		n, ok := args[0].(Float)
		if !ok {
			return nil, &RuntimeError{Message: "Operand must be a number."}
		}
		return getFloat(2 * n.value), nil
	}))
	if err := ip.Run(stmts, locals); err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	if out.String() != "42\n" {
		t.Errorf("want 42, got %q", out.String())
	}
}

func TestRunRuntimeErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`print "a" + 1;`, "Operands must be two numbers or two strings."},
		{`print -"a";`, "Operand must be a number."},
		{`print 1 < "a";`, "Operands must be numbers."},
		{"print x;", "Undefined variable 'x'."},
		{"x = 1;", "Undefined variable 'x'."},
		{`"str"();`, "Can only call functions and classes."},
		{"fun f(a, b) { return a; } f(1);", "Expected 2 arguments but got 1."},
		{"clock(1);", "Expected 0 arguments but got 1."},
	}
	for _, c := range tests {
		rerr := runFailure(t, c.src)
		if rerr.Message != c.want {
			t.Errorf("%s: want %q, got %q", c.src, c.want, rerr.Message)
		}
	}
}

func TestRunRuntimeErrorFormat(t *testing.T) {
	rerr := runFailure(t, "var a = 1;\nprint a + nil;")
	want := "Operands must be two numbers or two strings.\n[line 2]"
	if rerr.Error() != want {
		t.Errorf("want %q, got %q", want, rerr.Error())
	}
}

// A runtime error stops execution; nothing after the faulting statement
// runs.
func TestRunStopsOnError(t *testing.T) {
	stmts, locals, errs := Load(strings.NewReader(`print "before";
print nil + 1;
print "after";`))
	if len(errs) > 0 {
		t.Fatalf("load errors: %v", errs)
	}
	var out strings.Builder
	ip := New(&out)
	if err := ip.Run(stmts, locals); err == nil {
		t.Fatal("want runtime error")
	}
	if out.String() != "before\n" {
		t.Errorf("want only the first print, got %q", out.String())
	}
}

// Definitions survive across Run calls on one interpreter, the way a
// prompt session feeds lines.
func TestRunIncremental(t *testing.T) {
	var out strings.Builder
	ip := New(&out)
	for _, line := range []string{
		"var a = 1;",
		"fun inc(n) { return n + 1; }",
		"print inc(a);",
	} {
		stmts, locals, errs := Load(strings.NewReader(line))
		if len(errs) > 0 {
			t.Fatalf("%s: load errors: %v", line, errs)
		}
		if err := ip.Run(stmts, locals); err != nil {
			t.Fatalf("%s: runtime error: %v", line, err)
		}
	}
	if out.String() != "2\n" {
		t.Errorf("want 2, got %q", out.String())
	}
}
