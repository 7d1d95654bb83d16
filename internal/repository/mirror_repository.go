package repository

import (
	"nimko_store/internal/models"
	redisdb "nimko_store/internal/redis"
)

// OrderMirror keeps a full copy of the order list outside the document
// store, serving reads and exports when the store is unreachable.
type OrderMirror interface {
	Save(orders []models.Order) error
	Load() ([]models.Order, error)
}

type redisOrderMirror struct {
	client *redisdb.Client
}

func NewOrderMirror(client *redisdb.Client) OrderMirror {
	return &redisOrderMirror{client: client}
}

func (m *redisOrderMirror) Save(orders []models.Order) error {
	return m.client.SaveOrderMirror(orders)
}

func (m *redisOrderMirror) Load() ([]models.Order, error) {
	orders, err := m.client.LoadOrderMirror()
	if err != nil {
		if err == redisdb.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return orders, nil
}
