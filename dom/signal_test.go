package dom

import (
	"testing"
)

func TestMutable_GetSet(t *testing.T) {
	type tc struct {
		initial int
		set     int
	}

	tests := map[string]tc{
		"zero to positive": {initial: 0, set: 5},
		"negative":         {initial: 3, set: -1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := NewMutable(tt.initial)
			if got := m.Get(); got != tt.initial {
				t.Errorf("Get() = %d, want %d", got, tt.initial)
			}
			m.Set(tt.set)
			if got := m.Get(); got != tt.set {
				t.Errorf("Get() after Set = %d, want %d", got, tt.set)
			}
		})
	}
}

func TestMutable_BindAndUnbind(t *testing.T) {
	m := NewMutable(0)
	var seen []int
	unbind := m.Bind(func(v int) { seen = append(seen, v) })

	m.Set(1)
	m.Update(func(v int) int { return v + 1 })
	unbind()
	m.Set(10)

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("seen = %v, want [1 2]", seen)
	}
}

func TestSignal_SubscribeFiresCurrentValue(t *testing.T) {
	m := NewMutable("a")
	var seen []string
	cancel := m.Signal().Subscribe(func(v string) { seen = append(seen, v) })
	m.Set("b")
	cancel()
	m.Set("c")

	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("seen = %v, want [a b]", seen)
	}
}

func TestFormat(t *testing.T) {
	m := NewMutable(41)
	var last string
	Format(m.Signal()).Subscribe(func(v string) { last = v })
	if last != "41" {
		t.Errorf("initial = %q, want %q", last, "41")
	}
	m.Set(42)
	if last != "42" {
		t.Errorf("after Set = %q, want %q", last, "42")
	}
}

func TestMap(t *testing.T) {
	m := NewMutable(2)
	var last int
	Map(m.Signal(), func(v int) int { return v * v }).Subscribe(func(v int) { last = v })
	m.Set(3)
	if last != 9 {
		t.Errorf("last = %d, want 9", last)
	}
}

func TestMutable_CloneSharesState(t *testing.T) {
	m := NewMutable(1)
	c := m.Clone()
	c.Set(7)
	if m.Get() != 7 {
		t.Errorf("original Get() = %d, want 7", m.Get())
	}
}
