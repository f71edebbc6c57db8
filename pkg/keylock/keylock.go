// Пакет keylock — мьютекс по строковому ключу.
// Используется для сериализации мутаций корзины одного пользователя:
// параллельные запросы одного пользователя (двойной клик «в корзину»)
// выполняются по очереди, между пользователями блокировок нет.
package keylock

import "sync"

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// KeyLock — набор мьютексов по ключам с подсчётом ссылок:
// запись о ключе живёт, только пока за него кто-то держится или ждёт.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

// New — конструктор KeyLock.
func New() *KeyLock {
	return &KeyLock{locks: make(map[string]*lockEntry)}
}

// Lock — захватывает мьютекс ключа; блокируется, пока ключ занят.
func (k *KeyLock) Lock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

// Unlock — освобождает мьютекс ключа; паника при освобождении незахваченного ключа.
func (k *KeyLock) Unlock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keylock: unlock of unheld key " + key)
	}
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}

// Len — число ключей с активными захватами/ожиданиями (для тестов и метрик).
func (k *KeyLock) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
