package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/barberx/BarberX-BookingService/internal/domain"
	storage "github.com/barberx/BarberX-BookingService/internal/infra/storage/service"
)

// ServiceRepository нижележащий репозиторий каталога
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// ServiceCache read-through LRU кэш каталога услуг
// Каталог читается на каждой попытке бронирования и меняется редко,
// поэтому держим горячие услуги в памяти. Записи инвалидируются
// сервисом каталога при любом изменении услуги.
type ServiceCache struct {
	repo  ServiceRepository
	cache *lru.Cache[string, *domain.Service]
	mu    sync.RWMutex
	log   Logger
}

// NewServiceCache создает кэш каталога на size записей
func NewServiceCache(repo ServiceRepository, size int, log Logger) (*ServiceCache, error) {
	c, err := lru.New[string, *domain.Service](size)
	if err != nil {
		return nil, err
	}
	return &ServiceCache{repo: repo, cache: c, log: log}, nil
}

// GetByID возвращает услугу из кэша или из репозитория
// Отсутствие услуги (ErrServiceNotFound) не кэшируется
func (c *ServiceCache) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	c.mu.RLock()
	svc, ok := c.cache.Get(id)
	c.mu.RUnlock()
	if ok {
		c.log.Debug("service cache: hit id=%s", id)
		return svc, nil
	}

	svc, err := c.repo.GetByID(ctx, id)
	if err != nil {
		if err != storage.ErrServiceNotFound {
			c.log.Warn("service cache: underlying lookup failed id=%s: %v", id, err)
		}
		return nil, err
	}

	c.mu.Lock()
	c.cache.Add(id, svc)
	c.mu.Unlock()

	c.log.Debug("service cache: miss, stored id=%s", id)
	return svc, nil
}

// Invalidate удаляет услугу из кэша
func (c *ServiceCache) Invalidate(id string) {
	c.mu.Lock()
	c.cache.Remove(id)
	c.mu.Unlock()
}

// Purge полностью очищает кэш
func (c *ServiceCache) Purge() {
	c.mu.Lock()
	c.cache.Purge()
	c.mu.Unlock()
}
