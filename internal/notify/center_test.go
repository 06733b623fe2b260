package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

func TestCenterAddNewestFirst(t *testing.T) {
	c := NewCenter()
	c.Add(entity.NotificationInfo, "primeira", "a", "")
	c.Add(entity.NotificationInfo, "segunda", "b", "")

	items := c.Snapshot()
	require.Len(t, items, 2)
	assert.Equal(t, "segunda", items[0].Title)
	assert.NotEmpty(t, items[0].ID)
	assert.Equal(t, 2, c.UnreadCount())
}

func TestCenterMarkRead(t *testing.T) {
	c := NewCenter()
	n := c.Add(entity.NotificationLead, "x", "y", "")

	assert.True(t, c.MarkRead(n.ID))
	assert.False(t, c.MarkRead("fantasma"))
	assert.Equal(t, 0, c.UnreadCount())
}

func TestCenterClearReadKeepsUnread(t *testing.T) {
	c := NewCenter()
	read := c.Add(entity.NotificationInfo, "lida", "", "")
	c.Add(entity.NotificationInfo, "pendente", "", "")
	c.MarkRead(read.ID)

	c.ClearRead()
	items := c.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, "pendente", items[0].Title)
}

func TestCenterDeleteAndClearAll(t *testing.T) {
	c := NewCenter()
	n := c.Add(entity.NotificationInfo, "x", "", "")
	c.Add(entity.NotificationInfo, "y", "", "")

	assert.True(t, c.Delete(n.ID))
	assert.False(t, c.Delete(n.ID))

	c.MarkAllRead()
	assert.Equal(t, 0, c.UnreadCount())

	c.ClearAll()
	assert.Empty(t, c.Snapshot())
}
