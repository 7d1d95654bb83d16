package repository

import (
	"nimko_store/internal/models"
	redisdb "nimko_store/internal/redis"
)

// PromoRepository is the load/save boundary for the free-orders counter
// state. The whole state object is rewritten on every change.
type PromoRepository interface {
	Load() (*models.FreeOrdersState, error)
	Save(state *models.FreeOrdersState) error
}

type redisPromoRepository struct {
	client *redisdb.Client
}

func NewPromoRepository(client *redisdb.Client) PromoRepository {
	return &redisPromoRepository{client: client}
}

func (r *redisPromoRepository) Load() (*models.FreeOrdersState, error) {
	state, err := r.client.LoadPromoState()
	if err != nil {
		if err == redisdb.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return state, nil
}

func (r *redisPromoRepository) Save(state *models.FreeOrdersState) error {
	return r.client.SavePromoState(state)
}
