package schema

import (
	"strings"
	"testing"
)

type actor struct {
	Name string
	HP   int
}

type brain struct {
	Plan func() // no converter resolves for a func type
}

func TestNewFieldOrder(t *testing.T) {
	s, err := New[actor]("Actor",
		Field("name", "Name"),
		Field("hp", "HP"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var names []string
	for _, fd := range s.Fields() {
		names = append(names, fd.Name())
	}
	want := []string{"name", "hp"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("field order = %v, want %v", names, want)
		}
	}
	fd, ok := s.Field("hp")
	if !ok {
		t.Fatal("Field(hp) not found")
	}
	if fd.GoField() != "HP" || !fd.Serializable() {
		t.Errorf("hp descriptor: goField=%q serializable=%v", fd.GoField(), fd.Serializable())
	}
}

func TestNewDefinitionErrors(t *testing.T) {
	cases := []struct {
		name  string
		decls []FieldDecl
		want  string
	}{
		{
			name:  "duplicate field name",
			decls: []FieldDecl{Field("name", "Name"), Field("name", "HP")},
			want:  "duplicate field name",
		},
		{
			name:  "member declared twice",
			decls: []FieldDecl{Field("a", "HP"), Field("b", "HP")},
			want:  "declared twice",
		},
		{
			name:  "missing member",
			decls: []FieldDecl{Field("x", "Nope")},
			want:  "has no member",
		},
		{
			name:  "empty field name",
			decls: []FieldDecl{Field("", "HP")},
			want:  "must have a name",
		},
		{
			name:  "bad check expression",
			decls: []FieldDecl{Field("hp", "HP", Check("value >="))},
			want:  "bad check",
		},
		{
			name:  "bad default",
			decls: []FieldDecl{Field("hp", "HP", Default("lots"))},
			want:  "bad default",
		},
		{
			name:  "default fails check",
			decls: []FieldDecl{Field("hp", "HP", Default("50"), Check("value > 100"))},
			want:  "fails check",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New[actor]("Actor", tc.decls...)
			if err == nil {
				t.Fatal("New succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestNewNonStruct(t *testing.T) {
	if _, err := New[int]("Int"); err == nil {
		t.Error("New[int] succeeded, want error")
	}
	if _, err := New[actor](""); err == nil {
		t.Error("New with empty name succeeded, want error")
	}
}

func TestUnconvertibleFieldDegrades(t *testing.T) {
	s, err := New[brain]("Brain", Field("plan", "Plan"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fd, _ := s.Field("plan")
	if fd.Serializable() {
		t.Error("func-typed field reported serializable")
	}

	// attaching a check or default to it is a definition error
	if _, err := New[brain]("Brain2", Field("plan", "Plan", Check("true"))); err == nil {
		t.Error("Check on unconvertible field accepted")
	}
	if _, err := New[brain]("Brain3", Field("plan", "Plan", Default("x"))); err == nil {
		t.Error("Default on unconvertible field accepted")
	}
}

func TestFieldDefault(t *testing.T) {
	s := MustNew[actor]("ActorDefaults",
		Field("hp", "HP", Default("50")),
		Field("name", "Name"),
	)
	fd, _ := s.Field("hp")
	def, ok := fd.Default()
	if !ok || def != "50" {
		t.Errorf("Default() = %q, %v; want 50, true", def, ok)
	}
	fd, _ = s.Field("name")
	if _, ok := fd.Default(); ok {
		t.Error("name reported a default")
	}
}

func TestDescribe(t *testing.T) {
	s := MustNew[actor]("ActorDescribe",
		Field("name", "Name"),
		Field("hp", "HP", Check("value >= 0"), Default("10")),
	)
	d := s.Describe()
	if d.Name != "ActorDescribe" || len(d.Fields) != 2 {
		t.Fatalf("Describe() = %+v", d)
	}
	hp := d.Fields[1]
	if hp.Name != "hp" || hp.Type != "int" || hp.Check != "value >= 0" || hp.Default != "10" {
		t.Errorf("hp description = %+v", hp)
	}
	out, err := s.DescribeYAML()
	if err != nil {
		t.Fatalf("DescribeYAML: %v", err)
	}
	if !strings.Contains(string(out), "name: hp") {
		t.Errorf("YAML missing field entry:\n%s", out)
	}
}
