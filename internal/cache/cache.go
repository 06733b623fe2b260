// Package cache mantém o espelho em memória de uma tabela remota:
// carga inicial completa + patches incrementais vindos do feed de
// mudanças. Última escrita observada vence; não há token de versão.
package cache

import (
	"context"
	"log"
	"sort"
	"sync"
)

type Entity interface {
	EntityID() string
}

type ChangeKind string

const (
	Inserted ChangeKind = "insert"
	Updated  ChangeKind = "update"
	Deleted  ChangeKind = "delete"
)

// Change é o que os assinantes recebem a cada patch aplicado.
// Prev carrega a versão que estava no cache antes do patch (update e
// delete) para quem precisa detectar mudança de etapa.
type Change[T Entity] struct {
	Kind   ChangeKind
	Entity T
	Prev   *T
}

type Cache[T Entity] struct {
	name string
	// less define a posição de inserção; nil = mais novo na frente.
	less func(a, b T) bool

	mu      sync.RWMutex
	items   []T
	loading bool

	subMu   sync.Mutex
	subs    map[int]chan Change[T]
	nextSub int
}

func New[T Entity](name string, less func(a, b T) bool) *Cache[T] {
	return &Cache[T]{
		name: name,
		less: less,
		subs: make(map[int]chan Change[T]),
	}
}

// Load busca o conjunto completo e substitui o cache por inteiro.
// Em caso de falha de transporte o conteúdo anterior fica intacto e o
// erro volta para o chamador decidir quando tentar de novo. Loads
// concorrentes não são coordenados: o último a terminar vence.
func (c *Cache[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	c.setLoading(true)
	defer c.setLoading(false)

	items, err := fetch(ctx)
	if err != nil {
		return err
	}

	fresh := make([]T, len(items))
	copy(fresh, items)
	if c.less != nil {
		sort.SliceStable(fresh, func(i, j int) bool { return c.less(fresh[i], fresh[j]) })
	}

	c.mu.Lock()
	c.items = fresh
	c.mu.Unlock()
	return nil
}

func (c *Cache[T]) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Cache[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// ApplyInsert insere respeitando a ordenação. Idempotente: se o id já
// existe o evento é ignorado (o feed pode entregar duplicado).
func (c *Cache[T]) ApplyInsert(e T) {
	c.mu.Lock()
	if c.indexOf(e.EntityID()) >= 0 {
		c.mu.Unlock()
		log.Printf("[cache:%s] insert duplicado ignorado: %s", c.name, e.EntityID())
		return
	}
	if c.less == nil {
		c.items = append([]T{e}, c.items...)
	} else {
		pos := sort.Search(len(c.items), func(i int) bool { return c.less(e, c.items[i]) })
		c.items = append(c.items, e)
		copy(c.items[pos+1:], c.items[pos:])
		c.items[pos] = e
	}
	c.mu.Unlock()

	c.broadcast(Change[T]{Kind: Inserted, Entity: e})
}

// ApplyUpdate troca a entidade de mesmo id no lugar (posição mantida).
// Id desconhecido é no-op logado, nunca erro.
func (c *Cache[T]) ApplyUpdate(e T) {
	c.mu.Lock()
	i := c.indexOf(e.EntityID())
	if i < 0 {
		c.mu.Unlock()
		log.Printf("[cache:%s] update para id desconhecido: %s", c.name, e.EntityID())
		return
	}
	prev := c.items[i]
	c.items[i] = e
	c.mu.Unlock()

	c.broadcast(Change[T]{Kind: Updated, Entity: e, Prev: &prev})
}

// ApplyDelete remove por id; ausente é no-op.
func (c *Cache[T]) ApplyDelete(id string) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	prev := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.mu.Unlock()

	c.broadcast(Change[T]{Kind: Deleted, Entity: prev, Prev: &prev})
}

// Snapshot devolve uma cópia da lista ordenada atual.
func (c *Cache[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cache[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Subscribe registra um assinante de mudanças. A função devolvida
// cancela a assinatura e fecha o canal — chamar no teardown para não
// vazar goroutine.
func (c *Cache[T]) Subscribe(buffer int) (<-chan Change[T], func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Change[T], buffer)

	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.subMu.Unlock()

	cancel := func() {
		c.subMu.Lock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
		c.subMu.Unlock()
	}
	return ch, cancel
}

func (c *Cache[T]) broadcast(ch Change[T]) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for id, sub := range c.subs {
		select {
		case sub <- ch:
		default:
			// Assinante lento não pode travar a aplicação do feed.
			log.Printf("[cache:%s] assinante %d cheio, mudança descartada", c.name, id)
		}
	}
}

// indexOf exige c.mu já segurado.
func (c *Cache[T]) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].EntityID() == id {
			return i
		}
	}
	return -1
}
