package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame(ActionLeft)

	if !f.Has(ActionLeft) {
		t.Error("frame should hold Left")
	}
	if f.Has(ActionRight) {
		t.Error("frame should not hold Right")
	}

	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear should release all actions")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionStart) {
		t.Error("zero frame should hold nothing")
	}
	f.Set(ActionStart)
	if !f.Has(ActionStart) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestStepResultHas(t *testing.T) {
	r := StepResult{Events: []Event{{Kind: EventRunEnded, Score: 12}}}
	if !r.Has(EventRunEnded) {
		t.Error("expected RunEnded")
	}
	if r.Has(EventRunStarted) {
		t.Error("unexpected RunStarted")
	}
	if EventRunEnded.String() != "RunEnded" {
		t.Errorf("String() = %q", EventRunEnded.String())
	}
}
