package queue

import (
	"time"

	"github.com/google/uuid"

	"hospitalsched/internal/domain/schedule"
)

type OpType string

const (
	OpCreate OpType = "CREATE"
	OpUpdate OpType = "UPDATE"
	OpDelete OpType = "DELETE"
)

// Payload данные операции. Для CREATE и UPDATE переданные поля записи,
// для DELETE достаточно id.
type Payload struct {
	RecordID string `json:"id"`
	schedule.UpdateRequest
}

// PendingOperation мутация, ожидающая отправки на сервер. ID принадлежит
// элементу очереди, а не записи.
type PendingOperation struct {
	ID        string    `json:"id"`
	Type      OpType    `json:"type"`
	Data      Payload   `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

func NewOperation(t OpType, data Payload) PendingOperation {
	return PendingOperation{
		ID:        uuid.NewString(),
		Type:      t,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func CreateOp(recordID string, req schedule.CreateRequest) PendingOperation {
	return NewOperation(OpCreate, Payload{RecordID: recordID, UpdateRequest: req.AsUpdate()})
}

func UpdateOp(recordID string, req schedule.UpdateRequest) PendingOperation {
	return NewOperation(OpUpdate, Payload{RecordID: recordID, UpdateRequest: req})
}

func DeleteOp(recordID string) PendingOperation {
	return NewOperation(OpDelete, Payload{RecordID: recordID})
}
