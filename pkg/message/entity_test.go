package message

import (
	"errors"
	"io"
	"testing"
)

func TestEntitySingleConsumer(t *testing.T) {
	e := NewEntity(func() (io.ReadCloser, error) {
		return io.NopCloser(nil), nil
	}, nil)

	if _, err := e.Open(); err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	if _, err := e.Open(); !errors.Is(err, ErrAlreadyOpened) {
		t.Errorf("second Open() error = %v, want ErrAlreadyOpened", err)
	}
}

func TestEntityRestartable(t *testing.T) {
	e := NewBytesEntity([]byte("hello"))
	for i := 0; i < 2; i++ {
		rc, err := e.Open()
		if err != nil {
			t.Fatalf("Open() iteration %d error = %v", i, err)
		}
		b, _ := io.ReadAll(rc)
		if string(b) != "hello" {
			t.Errorf("iteration %d = %q, want hello", i, b)
		}
	}
}

func TestEntityIsKnownEmpty(t *testing.T) {
	if !EmptyEntity().IsKnownEmpty() {
		t.Error("EmptyEntity() should be known-empty")
	}
	if NewBytesEntity([]byte("x")).IsKnownEmpty() {
		t.Error("non-empty entity should not be known-empty")
	}
	if NewEntity(nil, nil).IsKnownEmpty() {
		t.Error("unknown-size entity should not be known-empty")
	}
}
