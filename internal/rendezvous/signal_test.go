package rendezvous

import (
	"testing"
	"time"
)

func TestSignal_PostThenWaitReturnsImmediately(t *testing.T) {
	s := New()
	s.Post()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return after a prior Post()")
	}
}

func TestSignal_WaitBlocksUntilPost(t *testing.T) {
	s := New()
	done := make(chan struct{})

	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait() returned before Post() was called")
	case <-time.After(50 * time.Millisecond):
	}

	s.Post()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return after Post()")
	}
}

func TestSignal_IsSingleShot(t *testing.T) {
	s := New()
	s.Post()
	s.Wait()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second Wait() returned without a second Post()")
	case <-time.After(50 * time.Millisecond):
	}

	s.Post()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return after the second Post()")
	}
}
