package objmap

import (
	"testing"
)

func TestMergePatch(t *testing.T) {
	m := newMonster()
	m.Name = "grik"

	report, err := MergePatch(monsterView, m, []byte(`{"damage": "99"}`))
	if err != nil {
		t.Fatalf("MergePatch: %v", err)
	}
	if !report.Ok() {
		t.Fatalf("report not ok: %v", report.Failed)
	}
	if m.Damage != 99 {
		t.Errorf("damage = %d, want 99", m.Damage)
	}
	if m.Health != 50 || m.Name != "grik" {
		t.Errorf("unpatched fields changed: health=%d name=%q", m.Health, m.Name)
	}
}

func TestMergePatchNullKeepsValue(t *testing.T) {
	m := newMonster()
	m.Health = 30

	// null removes the key from the merged document, and an absent
	// key leaves the field as it is
	report, err := MergePatch(monsterView, m, []byte(`{"health": null, "damage": "7"}`))
	if err != nil {
		t.Fatal(err)
	}
	if !report.Ok() {
		t.Fatalf("report not ok: %v", report.Failed)
	}
	if m.Health != 30 {
		t.Errorf("health = %d, want 30", m.Health)
	}
	if m.Damage != 7 {
		t.Errorf("damage = %d, want 7", m.Damage)
	}
}

func TestMergePatchUnknownKey(t *testing.T) {
	m := newMonster()
	report, err := MergePatch(monsterView, m, []byte(`{"mana": "12"}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Unknown) != 1 || report.Unknown[0] != "mana" {
		t.Errorf("unknown = %v, want [mana]", report.Unknown)
	}
}

func TestMergePatchCollidingChain(t *testing.T) {
	s := &Scion{Elder: Elder{Title: "the Old"}, Epithet: "the Young"}

	// an empty patch must leave both same-named fields alone
	report, err := MergePatch(scionView, s, []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if !report.Ok() {
		t.Fatalf("report not ok: %v", report.Failed)
	}
	if s.Title != "the Old" || s.Epithet != "the Young" {
		t.Errorf("empty patch changed fields: title=%q epithet=%q", s.Title, s.Epithet)
	}

	// patching the shared name reaches only the first occurrence
	report, err = MergePatch(scionView, s, []byte(`{"title": "the Elder"}`))
	if err != nil {
		t.Fatal(err)
	}
	if !report.Ok() {
		t.Fatalf("report not ok: %v", report.Failed)
	}
	if s.Title != "the Elder" {
		t.Errorf("title = %q, want the Elder", s.Title)
	}
	if s.Epithet != "the Young" {
		t.Errorf("epithet = %q changed by patch on the first occurrence", s.Epithet)
	}
}

func TestMergePatchBadPatch(t *testing.T) {
	m := newMonster()
	if _, err := MergePatch(monsterView, m, []byte(`{"damage":`)); err == nil {
		t.Error("MergePatch accepted a truncated patch")
	}
}

func TestMergePatchBadInstance(t *testing.T) {
	if _, err := MergePatch(monsterView, &Creature{}, []byte(`{}`)); err == nil {
		t.Error("MergePatch accepted wrong instance type")
	}
}
