package keylock

import (
	"sync"
	"testing"
	"time"
)

func TestLockUnlock_Basic(t *testing.T) {
	kl := New()

	kl.Lock("u1")
	if kl.Len() != 1 {
		t.Fatalf("want 1 active key, got %d", kl.Len())
	}
	kl.Unlock("u1")
	if kl.Len() != 0 {
		t.Fatalf("key entry must be dropped after last unlock, got %d", kl.Len())
	}
}

func TestLock_SerializesSameKey(t *testing.T) {
	kl := New()

	const iterations = 100
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				kl.Lock("u1")
				counter++
				kl.Unlock("u1")
			}
		}()
	}
	wg.Wait()

	if counter != 10*iterations {
		t.Fatalf("lost updates: want %d, got %d", 10*iterations, counter)
	}
	if kl.Len() != 0 {
		t.Fatalf("want no active keys, got %d", kl.Len())
	}
}

func TestLock_DifferentKeysIndependent(t *testing.T) {
	kl := New()

	kl.Lock("u1")

	// Другой ключ не блокируется удержанием u1.
	done := make(chan struct{})
	go func() {
		kl.Lock("u2")
		kl.Unlock("u2")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on another key must not block")
	}

	kl.Unlock("u1")
}

func TestUnlock_UnheldKeyPanics(t *testing.T) {
	kl := New()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unlock of unheld key")
		}
	}()
	kl.Unlock("ghost")
}
