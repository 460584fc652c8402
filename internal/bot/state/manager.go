package state

import "sync"

// User states constants
const (
	None                    = "none"
	WaitingForReportTitle   = "waiting_for_report_title"
	WaitingForReportContent = "waiting_for_report_content"
	WaitingForAnalysisText  = "waiting_for_analysis_text"
	ChatMode                = "chat_mode"
	WaitingForTask          = "waiting_for_task"
	WaitingForMetric        = "waiting_for_metric"
)

// Temp data keys
const (
	KeyReportTitle = "report_title"
	KeyMetricType  = "metric_type"
)

// StateManager tracks the conversation state and sign-in of each Telegram
// user. Implementations must be safe for concurrent use.
type StateManager interface {
	SetUserState(telegramID int64, state string)
	GetUserState(telegramID int64) string
	SetTempData(telegramID int64, key, value string)
	GetTempData(telegramID int64, key string) (string, bool)
	ClearTempData(telegramID int64)

	SignIn(telegramID int64, userID uint)
	SignOut(telegramID int64)
	SignedInUser(telegramID int64) (uint, bool)
}

// Manager keeps states in process memory. Everything is lost on restart.
type Manager struct {
	userStates map[int64]string
	tempData   map[int64]map[string]string
	sessions   map[int64]uint
	mu         sync.RWMutex
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		tempData:   make(map[int64]map[string]string),
		sessions:   make(map[int64]uint),
	}
}

// SetUserState sets the state for a user
func (m *Manager) SetUserState(telegramID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[telegramID] = state
}

// GetUserState gets the state for a user
func (m *Manager) GetUserState(telegramID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[telegramID]
	if !exists {
		return None
	}
	return state
}

// SetTempData sets temporary data for a user
func (m *Manager) SetTempData(telegramID int64, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tempData[telegramID] == nil {
		m.tempData[telegramID] = make(map[string]string)
	}
	m.tempData[telegramID][key] = value
}

// GetTempData gets temporary data for a user
func (m *Manager) GetTempData(telegramID int64, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.tempData[telegramID][key]
	return value, exists
}

// ClearTempData clears all temporary data for a user
func (m *Manager) ClearTempData(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tempData, telegramID)
}

// SignIn binds the Telegram account to a user id
func (m *Manager) SignIn(telegramID int64, userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[telegramID] = userID
}

// SignOut drops the session together with any pending conversation state
func (m *Manager) SignOut(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, telegramID)
	delete(m.userStates, telegramID)
	delete(m.tempData, telegramID)
}

// SignedInUser returns the user id bound to the Telegram account
func (m *Manager) SignedInUser(telegramID int64) (uint, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	userID, ok := m.sessions[telegramID]
	return userID, ok
}
