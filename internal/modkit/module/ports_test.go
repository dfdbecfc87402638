package module

import (
	"strings"
	"testing"

	phttp "startupsignal/internal/platform/net/http"
)

type FooPort interface{ Foo() int }

type fooImpl struct{ v int }

func (f fooImpl) Foo() int { return f.v }

type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) Name() string             { return m.name }
func (m fakeModule) Ports() any               { return m.ports }
func (m fakeModule) MountRoutes(phttp.Router) {}

func TestPortsOf(t *testing.T) {
	type Bundle struct {
		Foo FooPort
		N   int
	}
	type hidden struct{ foo FooPort }

	cases := []struct {
		name  string
		ports any
		want  int
		ok    bool
	}{
		{"nil ports", nil, 0, false},
		{"direct", FooPort(fooImpl{v: 42}), 42, true},
		{"struct field", Bundle{Foo: fooImpl{v: 7}}, 7, true},
		{"pointer to struct", &Bundle{Foo: fooImpl{v: 8}}, 8, true},
		{"nil interface field", Bundle{}, 0, false},
		{"unexported field", hidden{foo: fooImpl{v: 1}}, 0, false},
		{"primitive", 123, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PortsOf[FooPort](fakeModule{ports: tc.ports})
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got.Foo() != tc.want {
				t.Fatalf("Foo = %d, want %d", got.Foo(), tc.want)
			}
		})
	}

	if _, ok := PortsOf[FooPort](nil); ok {
		t.Fatalf("nil module should report false")
	}
}

func TestMustPortsOf(t *testing.T) {
	if got := MustPortsOf[FooPort](fakeModule{ports: FooPort(fooImpl{v: 99})}); got.Foo() != 99 {
		t.Fatalf("got %d", got.Foo())
	}

	defer func() {
		msg, _ := recover().(string)
		if !strings.Contains(msg, `"predict"`) {
			t.Fatalf("panic should name the module, got %q", msg)
		}
	}()
	_ = MustPortsOf[FooPort](fakeModule{name: "predict"})
}
