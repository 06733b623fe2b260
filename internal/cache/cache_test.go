package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string
	Name string
	Rank int
}

func (i item) EntityID() string { return i.ID }

func fetchOf(items ...item) func(context.Context) ([]item, error) {
	return func(context.Context) ([]item, error) { return items, nil }
}

func TestLoadReplacesEverything(t *testing.T) {
	c := New[item]("teste", nil)
	require.NoError(t, c.Load(context.Background(), fetchOf(item{ID: "a"}, item{ID: "b"})))
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Load(context.Background(), fetchOf(item{ID: "c"})))
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok, "carga completa substitui o conteúdo anterior")
}

func TestLoadFailureKeepsPreviousContent(t *testing.T) {
	c := New[item]("teste", nil)
	require.NoError(t, c.Load(context.Background(), fetchOf(item{ID: "a"})))

	err := c.Load(context.Background(), func(context.Context) ([]item, error) {
		return nil, errors.New("banco fora do ar")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, c.Len())
	assert.False(t, c.Loading(), "flag de loading limpa mesmo com falha")
}

func TestApplyInsertIsIdempotent(t *testing.T) {
	c := New[item]("teste", nil)
	c.ApplyInsert(item{ID: "a", Name: "primeiro"})
	c.ApplyInsert(item{ID: "a", Name: "duplicado"})

	assert.Equal(t, 1, c.Len())
	got, _ := c.Get("a")
	assert.Equal(t, "primeiro", got.Name, "duplicado não sobrescreve")
}

func TestApplyInsertPrependsWithoutOrdering(t *testing.T) {
	c := New[item]("teste", nil)
	c.ApplyInsert(item{ID: "a"})
	c.ApplyInsert(item{ID: "b"})

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "b", snap[0].ID, "mais novo na frente")
}

func TestApplyInsertRespectsLessFunc(t *testing.T) {
	c := New[item]("teste", func(a, b item) bool { return a.Rank < b.Rank })
	c.ApplyInsert(item{ID: "c", Rank: 3})
	c.ApplyInsert(item{ID: "a", Rank: 1})
	c.ApplyInsert(item{ID: "b", Rank: 2})

	snap := c.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{snap[0].ID, snap[1].ID, snap[2].ID})
}

func TestApplyUpdateUnknownIDIsNoop(t *testing.T) {
	c := New[item]("teste", nil)
	c.ApplyUpdate(item{ID: "fantasma"})
	assert.Equal(t, 0, c.Len())
}

func TestApplyUpdateReplacesInPlace(t *testing.T) {
	c := New[item]("teste", nil)
	c.ApplyInsert(item{ID: "a", Name: "antes"})
	c.ApplyInsert(item{ID: "b"})

	c.ApplyUpdate(item{ID: "a", Name: "depois"})

	snap := c.Snapshot()
	assert.Equal(t, "a", snap[1].ID, "posição mantida")
	assert.Equal(t, "depois", snap[1].Name)
}

func TestApplyDeleteAbsentIsNoop(t *testing.T) {
	c := New[item]("teste", nil)
	c.ApplyInsert(item{ID: "a"})
	c.ApplyDelete("fantasma")
	c.ApplyDelete("a")
	c.ApplyDelete("a") // de novo, ainda no-op
	assert.Equal(t, 0, c.Len())
}

// Dois updates do mesmo id em sequência: o último aplicado vence,
// independente de qual escrita "nasceu" primeiro.
func TestLastWriteWins(t *testing.T) {
	c := New[item]("teste", nil)
	c.ApplyInsert(item{ID: "a", Name: "v1"})
	c.ApplyUpdate(item{ID: "a", Name: "v2"})
	c.ApplyUpdate(item{ID: "a", Name: "v3"})

	got, _ := c.Get("a")
	assert.Equal(t, "v3", got.Name)
	assert.Equal(t, 1, c.Len())
}

func TestSubscribeReceivesChangesWithPrev(t *testing.T) {
	c := New[item]("teste", nil)
	ch, cancel := c.Subscribe(8)
	defer cancel()

	c.ApplyInsert(item{ID: "a", Name: "v1"})
	c.ApplyUpdate(item{ID: "a", Name: "v2"})
	c.ApplyDelete("a")

	ins := <-ch
	assert.Equal(t, Inserted, ins.Kind)
	assert.Nil(t, ins.Prev)

	upd := <-ch
	assert.Equal(t, Updated, upd.Kind)
	require.NotNil(t, upd.Prev)
	assert.Equal(t, "v1", upd.Prev.Name)
	assert.Equal(t, "v2", upd.Entity.Name)

	del := <-ch
	assert.Equal(t, Deleted, del.Kind)
	assert.Equal(t, "a", del.Entity.ID)
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	c := New[item]("teste", nil)
	_, cancel := c.Subscribe(1)
	defer cancel()

	// Buffer de 1: a segunda mudança é descartada, nunca trava.
	c.ApplyInsert(item{ID: "a"})
	c.ApplyInsert(item{ID: "b"})
	assert.Equal(t, 2, c.Len())
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New[item]("teste", nil)
	c.ApplyInsert(item{ID: "a", Name: "original"})

	snap := c.Snapshot()
	snap[0].Name = "mexido"

	got, _ := c.Get("a")
	assert.Equal(t, "original", got.Name)
}
