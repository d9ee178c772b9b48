package service

import (
	"errors"
	"testing"
)

type fakeService struct {
	name    string
	deps    []string
	initErr error
	log     *[]string
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Init(args ...any) error {
	*f.log = append(*f.log, "init:"+f.name)
	return f.initErr
}

func (f *fakeService) Start() error {
	*f.log = append(*f.log, "start:"+f.name)
	return nil
}

func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop:"+f.name)
	return nil
}

func TestHubInitOrder(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})
	h.Register(&fakeService{name: "a", log: &log})
	h.Register(&fakeService{name: "c", deps: []string{"b"}, log: &log})

	if err := h.InitAll(); err != nil {
		t.Fatal(err)
	}

	want := []string{"init:a", "init:b", "init:c"}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, log[i])
		}
	}
}

func TestHubInitFailureRollsBack(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "a", log: &log})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, initErr: errors.New("boom"), log: &log})

	if err := h.InitAll(); err == nil {
		t.Fatal("Expected init error")
	}

	// a initialized then stopped during rollback
	want := []string{"init:a", "init:b", "stop:a"}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
}

func TestHubCycleDetection(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})

	if err := h.InitAll(); err == nil {
		t.Error("Expected circular dependency error")
	}
}

func TestHubMissingDependency(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "a", deps: []string{"ghost"}, log: &log})

	if err := h.InitAll(); err == nil {
		t.Error("Expected unregistered dependency error")
	}
}

func TestHubStopAllReverseOrder(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "a", log: &log})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})

	if err := h.InitAll(); err != nil {
		t.Fatal(err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatal(err)
	}
	log = log[:0]
	h.StopAll()

	want := []string{"stop:b", "stop:a"}
	if len(log) != len(want) || log[0] != want[0] || log[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, log)
	}
}

func TestMustGet(t *testing.T) {
	var log []string
	h := NewHub()
	svc := &fakeService{name: "a", log: &log}
	h.Register(svc)

	got := MustGet[*fakeService](h, "a")
	if got != svc {
		t.Error("Expected registered instance back")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for missing service")
		}
	}()
	MustGet[*fakeService](h, "missing")
}
