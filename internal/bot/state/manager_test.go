package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerStateAndTempData(t *testing.T) {
	m := NewManager()

	assert.Equal(t, None, m.GetUserState(1))
	m.SetUserState(1, WaitingForReportContent)
	assert.Equal(t, WaitingForReportContent, m.GetUserState(1))

	m.SetTempData(1, KeyReportTitle, "Lipid panel")
	title, ok := m.GetTempData(1, KeyReportTitle)
	assert.True(t, ok)
	assert.Equal(t, "Lipid panel", title)

	_, ok = m.GetTempData(2, KeyReportTitle)
	assert.False(t, ok)

	m.ClearTempData(1)
	_, ok = m.GetTempData(1, KeyReportTitle)
	assert.False(t, ok)
}

func TestManagerSignInOut(t *testing.T) {
	m := NewManager()

	_, ok := m.SignedInUser(10)
	assert.False(t, ok)

	m.SignIn(10, 3)
	m.SetUserState(10, ChatMode)
	m.SetTempData(10, KeyMetricType, "weight")

	userID, ok := m.SignedInUser(10)
	assert.True(t, ok)
	assert.Equal(t, uint(3), userID)

	m.SignOut(10)
	_, ok = m.SignedInUser(10)
	assert.False(t, ok)
	assert.Equal(t, None, m.GetUserState(10))
	_, ok = m.GetTempData(10, KeyMetricType)
	assert.False(t, ok)
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.SignIn(id, uint(id+1))
			m.SetUserState(id, ChatMode)
			m.GetUserState(id)
			m.SignedInUser(id)
		}(i)
	}
	wg.Wait()

	userID, ok := m.SignedInUser(49)
	assert.True(t, ok)
	assert.Equal(t, uint(50), userID)
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "user:42:state", stateKey(42))
	assert.Equal(t, "user:42:temp", tempKey(42))
	assert.Equal(t, "user:42:session", sessionKey(42))
}

var (
	_ StateManager = (*Manager)(nil)
	_ StateManager = (*RedisManager)(nil)
)
