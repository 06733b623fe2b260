// Package notify guarda os alertas do sininho do painel e a ponte que
// os sintetiza a partir das mudanças dos caches.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/infra/http/middleware"
)

// Center é a central de notificações em memória. Mais novo primeiro;
// nada persiste entre reinícios.
type Center struct {
	mu    sync.RWMutex
	items []entity.Notification
}

func NewCenter() *Center {
	return &Center{}
}

func (c *Center) Add(typ entity.NotificationType, title, message, link string) entity.Notification {
	n := entity.Notification{
		ID:        "n-" + uuid.New().String(),
		Type:      typ,
		Title:     title,
		Message:   message,
		Link:      link,
		Timestamp: time.Now(),
	}

	c.mu.Lock()
	c.items = append([]entity.Notification{n}, c.items...)
	c.mu.Unlock()

	middleware.RecordNotification()
	return n
}

func (c *Center) Snapshot() []entity.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Center) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range c.items {
		if !it.Read {
			n++
		}
	}
	return n
}

func (c *Center) MarkRead(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Read = true
			return true
		}
	}
	return false
}

func (c *Center) MarkAllRead() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		c.items[i].Read = true
	}
}

func (c *Center) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Center) ClearRead() {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, it := range c.items {
		if !it.Read {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

func (c *Center) ClearAll() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}
