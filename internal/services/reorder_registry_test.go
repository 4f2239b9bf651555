package services

import (
	"context"
	"errors"
	"testing"
)

func TestReorderRegistrySingleSessionPerRoute(t *testing.T) {
	reg := NewReorderRegistry()
	create := func() (*ReorderPipeline, error) {
		return NewReorderPipeline(acmeRoute(), nil, ReorderOptions{}, nil), nil
	}

	p, err := reg.Start(testKey, create)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reg.Active(testKey) {
		t.Fatalf("Active = false after Start")
	}
	if p.State() != ReorderDragging {
		t.Fatalf("state = %v, want dragging", p.State())
	}

	if _, err := reg.Start(testKey, create); !errors.Is(err, ErrReorderInProgress) {
		t.Fatalf("second Start err = %v, want ErrReorderInProgress", err)
	}

	other := testKey
	other.Date = "2026-03-05"
	if _, err := reg.Start(other, create); err != nil {
		t.Fatalf("Start on another day: %v", err)
	}

	if err := reg.Do(testKey, func(p *ReorderPipeline) error {
		p.Cancel()
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Active(testKey) {
		t.Fatalf("Active = true after cancel")
	}
	if err := reg.Do(testKey, func(*ReorderPipeline) error { return nil }); !errors.Is(err, ErrNoPendingReorder) {
		t.Fatalf("Do after cancel err = %v, want ErrNoPendingReorder", err)
	}
}

func TestReorderRegistryKeepsSessionOnFailedConfirm(t *testing.T) {
	st := newMemRouteStore()
	st.saveErr = errStoreDown
	reg := NewReorderRegistry()

	_, err := reg.Start(testKey, func() (*ReorderPipeline, error) {
		return NewReorderPipeline(acmeRoute(), st, ReorderOptions{}, nil), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = reg.Do(testKey, func(p *ReorderPipeline) error {
		p.OnDragEnd("S3", "S1")
		_, err := p.Confirm(context.Background())
		return err
	})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("err = %v, want errStoreDown", err)
	}
	if !reg.Active(testKey) {
		t.Fatalf("session released after failed confirm")
	}
}

func TestReorderRegistryCreateError(t *testing.T) {
	reg := NewReorderRegistry()

	_, err := reg.Start(testKey, func() (*ReorderPipeline, error) { return nil, errStoreDown })
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("err = %v, want errStoreDown", err)
	}
	if reg.Active(testKey) {
		t.Fatalf("Active = true after failed create")
	}
}

func TestReorderRegistryCreateRunsUnlocked(t *testing.T) {
	reg := NewReorderRegistry()
	other := testKey
	other.TechnicianID = "tech-2"

	plain := func() (*ReorderPipeline, error) {
		return NewReorderPipeline(acmeRoute(), nil, ReorderOptions{}, nil), nil
	}

	_, err := reg.Start(testKey, func() (*ReorderPipeline, error) {
		// Runs while the outer Start is still loading its route.
		if reg.Active(other) {
			t.Fatalf("Active(other) = true before any session")
		}
		if _, err := reg.Start(other, plain); err != nil {
			t.Fatalf("Start(other) during create: %v", err)
		}
		if _, err := reg.Start(testKey, plain); err != nil {
			t.Fatalf("concurrent Start(testKey) during create: %v", err)
		}
		return plain()
	})
	if !errors.Is(err, ErrReorderInProgress) {
		t.Fatalf("outer Start err = %v, want ErrReorderInProgress after a concurrent session won", err)
	}

	if !reg.Active(testKey) || !reg.Active(other) {
		t.Fatalf("sessions started during create were not kept")
	}
}
