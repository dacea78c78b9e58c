package queue

import "fmt"

// PersistenceError ошибка записи очереди в локальное хранилище.
// Состояние очереди в памяти при этом не меняется.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("queue %s: persist: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
