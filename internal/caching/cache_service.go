package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"foodcourt/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Unread-count caching for the notification ledger
	GetUnreadCount(ctx context.Context, recipient models.Recipient) (int, bool, error)
	SetUnreadCount(ctx context.Context, recipient models.Recipient, count int, ttl time.Duration) error
	InvalidateUnreadCount(ctx context.Context, recipient models.Recipient) error

	// Vendor catalog caching
	GetVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]*models.Product, error)
	SetVendorProducts(ctx context.Context, vendorID uuid.UUID, products []*models.Product, ttl time.Duration) error
	InvalidateVendorProducts(ctx context.Context, vendorID uuid.UUID) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, addr)
	}

	return &redisCacheService{client: client}
}

// NewRedisCacheServiceWithClient shares an existing client with the event
// publisher.
func NewRedisCacheServiceWithClient(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func unreadKey(recipient models.Recipient) string {
	return fmt.Sprintf("foodcourt:unread:%s:%s", recipient.Type, recipient.ID)
}

func (r *redisCacheService) GetUnreadCount(ctx context.Context, recipient models.Recipient) (int, bool, error) {
	count, err := r.client.Get(ctx, unreadKey(recipient)).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil // cache miss
		}
		return 0, false, err
	}
	return count, true, nil
}

func (r *redisCacheService) SetUnreadCount(ctx context.Context, recipient models.Recipient, count int, ttl time.Duration) error {
	return r.client.Set(ctx, unreadKey(recipient), count, ttl).Err()
}

func (r *redisCacheService) InvalidateUnreadCount(ctx context.Context, recipient models.Recipient) error {
	return r.client.Del(ctx, unreadKey(recipient)).Err()
}

func productsKey(vendorID uuid.UUID) string {
	return fmt.Sprintf("foodcourt:vendor-products:%s", vendorID)
}

func (r *redisCacheService) GetVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]*models.Product, error) {
	data, err := r.client.Get(ctx, productsKey(vendorID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}
	var products []*models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *redisCacheService) SetVendorProducts(ctx context.Context, vendorID uuid.UUID, products []*models.Product, ttl time.Duration) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, productsKey(vendorID), data, ttl).Err()
}

func (r *redisCacheService) InvalidateVendorProducts(ctx context.Context, vendorID uuid.UUID) error {
	return r.client.Del(ctx, productsKey(vendorID)).Err()
}
