package instantiate

import "testing"

// fakeChild is a minimal Solvable implementing a half-adder:
// s = x ^ y; c = x & y;
type fakeChild struct {
	x, y, s, c bool
	ticked     bool
}

func (f *fakeChild) HeaderInputs() []string  { return []string{"x", "y"} }
func (f *fakeChild) HeaderOutputs() []string { return []string{"s", "c"} }

func (f *fakeChild) GetValue(name string) (bool, error) {
	switch name {
	case "x":
		return f.x, nil
	case "y":
		return f.y, nil
	case "s":
		return f.s, nil
	case "c":
		return f.c, nil
	}
	return false, nil
}

func (f *fakeChild) SetValue(name string, v bool) {
	switch name {
	case "x":
		f.x = v
	case "y":
		f.y = v
	}
}

func (f *fakeChild) Solve() error {
	f.s = f.x != f.y
	f.c = f.x && f.y
	return nil
}

func (f *fakeChild) Tick() error {
	f.ticked = true
	return f.Solve()
}

type fakeResolver struct {
	child *fakeChild
}

func (r *fakeResolver) Resolve(path string) (Solvable, error) {
	return r.child, nil
}

type fakeOwner struct {
	values map[string]bool
}

func (o *fakeOwner) GetValue(name string) (bool, error) { return o.values[name], nil }
func (o *fakeOwner) SetValue(name string, v bool)       { o.values[name] = v }

func TestEngineRunHalfAdder(t *testing.T) {
	child := &fakeChild{}
	eng := NewEngine(&fakeResolver{child: child})
	eng.Add(&Instance{
		Name:          "u1",
		ModulePath:    "half_adder.vb",
		CallerInputs:  []string{"a", "b"},
		CallerOutputs: []string{"s", "c"},
	})

	owner := &fakeOwner{values: map[string]bool{"a": true, "b": true}}
	if err := eng.Run(owner, false); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if owner.values["s"] != false || owner.values["c"] != true {
		t.Errorf("s=%v c=%v, want s=false c=true for a=b=1", owner.values["s"], owner.values["c"])
	}
}

func TestEngineRunArityMismatch(t *testing.T) {
	child := &fakeChild{}
	eng := NewEngine(&fakeResolver{child: child})
	eng.Add(&Instance{
		Name:          "u1",
		ModulePath:    "half_adder.vb",
		CallerInputs:  []string{"a"},
		CallerOutputs: []string{"s", "c"},
	})
	owner := &fakeOwner{values: map[string]bool{"a": true}}
	if err := eng.Run(owner, false); err == nil {
		t.Fatal("expected arity mismatch error")
	}
}

func TestEngineRunTicking(t *testing.T) {
	child := &fakeChild{}
	eng := NewEngine(&fakeResolver{child: child})
	eng.Add(&Instance{
		Name:          "u1",
		ModulePath:    "half_adder.vb",
		CallerInputs:  []string{"a", "b"},
		CallerOutputs: []string{"s", "c"},
	})
	owner := &fakeOwner{values: map[string]bool{"a": true, "b": false}}
	if err := eng.Run(owner, true); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !child.ticked {
		t.Error("expected child.Tick to be invoked")
	}
}
