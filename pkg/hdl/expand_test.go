package hdl

import (
	"reflect"
	"testing"

	"github.com/visiboole/vbcore/pkg/errcode"
)

func TestExpandVectorRefDots(t *testing.T) {
	v := &VectorRef{Name: "X", Dots: &DotsRange{Hi: 3, Lo: 0}}
	got, err := ExpandVectorRef(v, errcode.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"X3", "X2", "X1", "X0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandVectorRefStep(t *testing.T) {
	v := &VectorRef{Name: "Y", Step: &StepRange{Hi: 6, Step: 2, Lo: 0}}
	got, err := ExpandVectorRef(v, errcode.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Y6", "Y4", "Y2", "Y0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandVectorRefHiLessThanLoRejected(t *testing.T) {
	v := &VectorRef{Name: "Z", Dots: &DotsRange{Hi: 0, Lo: 3}}
	if _, err := ExpandVectorRef(v, errcode.Position{}); err == nil {
		t.Fatal("expected error for hi < lo")
	}
}

func TestExpandVectorRefZeroStep(t *testing.T) {
	v := &VectorRef{Name: "X", Step: &StepRange{Hi: 3, Step: 0, Lo: 0}}
	if _, err := ExpandVectorRef(v, errcode.Position{}); err == nil {
		t.Fatal("expected error for zero step")
	}
}

func TestExpandVectorRefUnevenStep(t *testing.T) {
	v := &VectorRef{Name: "X", Step: &StepRange{Hi: 5, Step: 2, Lo: 0}}
	if _, err := ExpandVectorRef(v, errcode.Position{}); err == nil {
		t.Fatal("expected error for uneven step division")
	}
}

func TestExpandListMixed(t *testing.T) {
	name := "a"
	items := []*IdentOrVector{
		{Name: &name},
		{Vector: &VectorRef{Name: "X", Dots: &DotsRange{Hi: 1, Lo: 0}}},
	}
	got, err := ExpandList(items, errcode.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "X1", "X0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
