package schema

import (
	"errors"
	"testing"
)

// test hierarchy: Entity <- Combatant <- NPC, composed by embedding

type Entity struct {
	ID   string
	Tags []string
}

type Combatant struct {
	Entity
	HP     int
	Damage int
}

type NPC struct {
	Combatant
	Alias string
	Greet string
}

var (
	entitySchema = MustNew[Entity]("TestEntity",
		Field("id", "ID"),
		Field("tags", "Tags"),
	)
	combatantSchema = MustNew[Combatant]("TestCombatant",
		Field("hp", "HP", Check("value >= 0")),
		Field("damage", "Damage"),
	)
	npcSchema = MustNew[NPC]("TestNPC",
		Field("id", "Alias"), // collides with TestEntity's "id" on purpose
		Field("greet", "Greet"),
	)

	entityChain    = Root().Extend(entitySchema)
	combatantChain = entityChain.Extend(combatantSchema)
	npcChain       = combatantChain.Extend(npcSchema)
)

func TestChainOrder(t *testing.T) {
	if Root().Len() != 0 {
		t.Errorf("Root().Len() = %d", Root().Len())
	}
	schemas := npcChain.Schemas()
	want := []string{"TestEntity", "TestCombatant", "TestNPC"}
	if len(schemas) != len(want) {
		t.Fatalf("chain has %d schemas, want %d", len(schemas), len(want))
	}
	for i, s := range schemas {
		if s.Name() != want[i] {
			t.Errorf("chain[%d] = %q, want %q", i, s.Name(), want[i])
		}
	}
	// extending does not mutate the receiver
	if combatantChain.Len() != 2 {
		t.Errorf("combatantChain.Len() = %d after later Extend", combatantChain.Len())
	}
}

func TestBindComposedOrder(t *testing.T) {
	v := MustBind[NPC](npcChain)
	var names []string
	for _, bf := range v.Fields() {
		names = append(names, bf.Name())
	}
	want := []string{"id", "tags", "hp", "damage", "id", "greet"}
	if len(names) != len(want) {
		t.Fatalf("composed fields = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("composed fields = %v, want %v", names, want)
		}
	}
}

func TestBindRequiresEmbedding(t *testing.T) {
	type unrelated struct{ X int }
	_, err := Bind[unrelated](entityChain)
	if err == nil {
		t.Fatal("Bind succeeded for type without embedded schema struct")
	}
	if _, err := Bind[int](entityChain); err == nil {
		t.Fatal("Bind[int] succeeded")
	}
}

func TestSerializeDeserialize(t *testing.T) {
	v := MustBind[Combatant](combatantChain)
	c := &Combatant{
		Entity: Entity{ID: "e-1", Tags: []string{"hostile", "woods"}},
		HP:     50,
		Damage: 10,
	}

	hp, ok := v.Lookup("hp")
	if !ok {
		t.Fatal("Lookup(hp) failed")
	}
	s, err := hp.Serialize(c)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if s != "50" {
		t.Errorf("Serialize(hp) = %q", s)
	}

	// embedded ancestor storage
	id, _ := v.Lookup("id")
	s, err = id.Serialize(c)
	if err != nil {
		t.Fatalf("Serialize(id): %v", err)
	}
	if s != "e-1" {
		t.Errorf("Serialize(id) = %q", s)
	}

	if err := hp.Deserialize(c, "30"); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if c.HP != 30 {
		t.Errorf("HP = %d after deserialize, want 30", c.HP)
	}

	tags, _ := v.Lookup("tags")
	if err := tags.Deserialize(c, "[cave, boss]"); err != nil {
		t.Fatalf("Deserialize(tags): %v", err)
	}
	if len(c.Tags) != 2 || c.Tags[0] != "cave" || c.Tags[1] != "boss" {
		t.Errorf("Tags = %v", c.Tags)
	}
}

func TestDeserializeFailureKeepsValue(t *testing.T) {
	v := MustBind[Combatant](combatantChain)
	c := &Combatant{HP: 42}
	hp, _ := v.Lookup("hp")

	if err := hp.Deserialize(c, "many"); err == nil {
		t.Fatal("Deserialize accepted malformed int")
	}
	if c.HP != 42 {
		t.Errorf("HP = %d after failed deserialize, want 42", c.HP)
	}

	// check expression rejects negatives
	err := hp.Deserialize(c, "-5")
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("Deserialize(-5) error = %v, want ErrCheckFailed", err)
	}
	if c.HP != 42 {
		t.Errorf("HP = %d after rejected deserialize, want 42", c.HP)
	}
}

func TestLookupCollisionFirstMatch(t *testing.T) {
	v := MustBind[NPC](npcChain)
	n := &NPC{}
	n.ID = "base-id"
	n.Alias = "derived-id"

	bf, ok := v.Lookup("id")
	if !ok {
		t.Fatal("Lookup(id) failed")
	}
	s, err := bf.Serialize(n)
	if err != nil {
		t.Fatal(err)
	}
	if s != "base-id" {
		t.Errorf("Lookup(id) resolved %q, want the base schema's field", s)
	}

	// both colliding fields remain addressable by position
	fields := v.Fields()
	first, last := fields[0], fields[4]
	if first.Name() != "id" || last.Name() != "id" {
		t.Fatalf("positions 0 and 4 are %q, %q", first.Name(), last.Name())
	}
	sFirst, _ := first.Serialize(n)
	sLast, _ := last.Serialize(n)
	if sFirst != "base-id" || sLast != "derived-id" {
		t.Errorf("positional serialize = %q, %q", sFirst, sLast)
	}
}

func TestInstanceTypeMismatch(t *testing.T) {
	v := MustBind[Combatant](combatantChain)
	hp, _ := v.Lookup("hp")
	if _, err := hp.Serialize(&Entity{}); err == nil {
		t.Error("Serialize accepted wrong instance type")
	}
	if _, err := hp.Serialize(nil); err == nil {
		t.Error("Serialize accepted nil instance")
	}
	var c Combatant
	if _, err := hp.Serialize(c); err == nil {
		t.Error("Serialize accepted non-pointer instance")
	}
}

func TestNotSerializableField(t *testing.T) {
	type wired struct {
		Signal chan int
	}
	s := MustNew[wired]("TestWired", Field("signal", "Signal"))
	v := MustBind[wired](Root().Extend(s))
	bf, _ := v.Lookup("signal")
	if bf.Serializable() {
		t.Fatal("chan field reported serializable")
	}
	w := &wired{}
	if _, err := bf.Serialize(w); !errors.Is(err, ErrNotSerializable) {
		t.Errorf("Serialize error = %v, want ErrNotSerializable", err)
	}
	if err := bf.Deserialize(w, "x"); !errors.Is(err, ErrNotSerializable) {
		t.Errorf("Deserialize error = %v, want ErrNotSerializable", err)
	}
}
