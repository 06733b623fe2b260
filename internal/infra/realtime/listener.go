// Package realtime recebe o feed de mudanças do Postgres via
// LISTEN/NOTIFY e distribui os eventos por tabela. Um trigger no banco
// publica no canal "crm_changes" um JSON com a linha nova e a antiga.
//
// A ordem de entrega entre entidades distintas não é garantida, e nem
// mesmo entre eventos da mesma entidade — quem consome assume
// last-write-wins (sem número de sequência).
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"
)

type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Event é um item do feed. Record traz a linha nova (insert/update);
// Old traz a anterior (update/delete) — em deletes normalmente só o id.
type Event struct {
	Table  string          `json:"table"`
	Action Action          `json:"action"`
	Record json.RawMessage `json:"record"`
	Old    json.RawMessage `json:"old_record"`
}

// OldID extrai o id da linha antiga de um evento de delete.
func (e Event) OldID() string {
	var row struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(e.Old, &row); err != nil {
		return ""
	}
	return row.ID
}

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

type Listener struct {
	pq      *pq.Listener
	channel string

	mu   sync.Mutex
	subs map[string][]chan Event
}

// NewListener abre a conexão dedicada de LISTEN. O pq.Listener
// reconecta sozinho; eventos perdidos durante a reconexão não são
// repostos (o chamador pode recarregar os caches se quiser).
func NewListener(dsn, channel string) (*Listener, error) {
	l := &Listener{
		channel: channel,
		subs:    make(map[string][]chan Event),
	}

	l.pq = pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("⚠️ [realtime] problema na conexão de LISTEN: %v", err)
		}
		if ev == pq.ListenerEventReconnected {
			log.Printf("🔌 [realtime] reconectado ao canal %s", channel)
		}
	})

	if err := l.pq.Listen(channel); err != nil {
		return nil, fmt.Errorf("falha ao escutar canal %s: %w", channel, err)
	}
	return l, nil
}

// Subscribe devolve o canal de eventos de uma tabela e a função de
// desinscrição — chamar no teardown para não vazar o canal.
func (l *Listener) Subscribe(table string) (<-chan Event, func()) {
	ch := make(chan Event, 64)

	l.mu.Lock()
	l.subs[table] = append(l.subs[table], ch)
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		list := l.subs[table]
		for i, sub := range list {
			if sub == ch {
				l.subs[table] = append(list[:i], list[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// Run drena as notificações até o contexto encerrar.
func (l *Listener) Run(ctx context.Context) {
	defer l.pq.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-l.pq.Notify:
			if n == nil {
				// Sinal de reconexão; o estado perdido fica perdido.
				continue
			}
			ev, err := ParseEvent([]byte(n.Extra))
			if err != nil {
				log.Printf("⚠️ [realtime] payload descartado: %v", err)
				continue
			}
			l.dispatch(ev)
		case <-time.After(pingInterval):
			go func() {
				if err := l.pq.Ping(); err != nil {
					log.Printf("⚠️ [realtime] ping falhou: %v", err)
				}
			}()
		}
	}
}

// ParseEvent valida o envelope do NOTIFY. Payload sem tabela ou com
// ação desconhecida é quarentena: loga e ignora, nunca derruba o feed.
func ParseEvent(payload []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return Event{}, fmt.Errorf("json inválido no NOTIFY: %w", err)
	}
	if ev.Table == "" {
		return Event{}, fmt.Errorf("evento sem tabela")
	}
	switch ev.Action {
	case ActionInsert, ActionUpdate, ActionDelete:
	default:
		return Event{}, fmt.Errorf("ação desconhecida %q na tabela %s", ev.Action, ev.Table)
	}
	return ev, nil
}

func (l *Listener) dispatch(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, sub := range l.subs[ev.Table] {
		select {
		case sub <- ev:
		default:
			log.Printf("⚠️ [realtime] assinante de %s cheio, evento descartado", ev.Table)
		}
	}
}
