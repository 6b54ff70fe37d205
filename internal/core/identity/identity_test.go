package identity

import "testing"

func TestFold(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Foo", "foo"},
		{"  @Foo ", "@foo"},
		{"", ""},
		{"   ", ""},
		{"ÀLICE", "àlice"},
	}
	for _, c := range cases {
		if got := Fold(c.in); got != c.want {
			t.Fatalf("Fold(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Foo", "foo"},
		{"  @Foo ", "foo"},
		{"@@bob", "bob"},
		{"@", ""},
		{"", ""},
		{"ÀLICE", "àlice"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMarkerForms(t *testing.T) {
	cases := []struct{ in, with, without string }{
		{"bob", "@bob", "bob"},
		{"@Bob", "@bob", "bob"},
		{"@@bob", "@bob", "bob"},
		{" BOB ", "@bob", "bob"},
		{"@", "", ""},
		{"", "", ""},
	}
	for _, c := range cases {
		if got := WithMarker(c.in); got != c.with {
			t.Fatalf("WithMarker(%q) = %q, want %q", c.in, got, c.with)
		}
		if got := WithoutMarker(c.in); got != c.without {
			t.Fatalf("WithoutMarker(%q) = %q, want %q", c.in, got, c.without)
		}
	}
}

func TestNormalizedFormsAgree(t *testing.T) {
	pairs := [][2]string{{"@Foo", "foo"}, {" FOO", "@@foo "}, {"@Àlice", "àLICE"}}
	for _, p := range pairs {
		if Normalize(p[0]) != Normalize(p[1]) {
			t.Fatalf("Normalize(%q) = %q, Normalize(%q) = %q; want equal", p[0], Normalize(p[0]), p[1], Normalize(p[1]))
		}
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"@Foo", "foo", true},
		{"foo", "@FOO", true},
		{"@bob", "Bob", true},
		{"bob", "bobby", false},
		{"carol", "@bob", false},
		{"", "", false},
		{"@", "", false},
	}
	for _, c := range cases {
		if got := Equal(c.a, c.b); got != c.want {
			t.Fatalf("Equal(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
