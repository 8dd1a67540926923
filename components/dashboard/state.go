package dashboard

import "sync"

// AppState is the single owner of the dashboard UI state: the campaign list plus
// the theme, modal and loading flags, the create-form draft and the last notice.
type AppState struct {
	mu        sync.RWMutex
	campaigns *CampaignStore
	darkMode  bool
	modalOpen bool
	loading   bool
	draft     CampaignForm
	notice    *Notice
}

// NewAppState builds the initial state: empty list, loading, light theme.
func NewAppState() *AppState {
	return &AppState{
		campaigns: NewCampaignStore(),
		loading:   true,
		draft:     EmptyCampaignForm(),
	}
}

// Campaigns exposes the campaign store.
func (s *AppState) Campaigns() *CampaignStore {
	return s.campaigns
}

// StateSnapshot is an immutable copy of the UI flags.
type StateSnapshot struct {
	DarkMode  bool
	ModalOpen bool
	Loading   bool
	Draft     CampaignForm
	Notice    *Notice
	Campaigns []Campaign
}

// Snapshot copies the current state.
func (s *AppState) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := StateSnapshot{
		DarkMode:  s.darkMode,
		ModalOpen: s.modalOpen,
		Loading:   s.loading,
		Draft:     s.draft,
		Campaigns: s.campaigns.List(),
	}
	if s.notice != nil {
		n := *s.notice
		snap.Notice = &n
	}
	return snap
}

func (s *AppState) setDarkMode(on bool) {
	s.mu.Lock()
	s.darkMode = on
	s.mu.Unlock()
}

func (s *AppState) setLoading(on bool) {
	s.mu.Lock()
	s.loading = on
	s.mu.Unlock()
}

// setModal toggles the create modal. Opening keeps any draft left over from a
// failed submission; closing clears the notice.
func (s *AppState) setModal(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modalOpen = open
	if !open {
		s.notice = nil
	}
}

func (s *AppState) setDraft(form CampaignForm) {
	s.mu.Lock()
	s.draft = form
	s.mu.Unlock()
}

// completeCreate closes the modal and resets the draft after a successful submit.
func (s *AppState) completeCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modalOpen = false
	s.draft = EmptyCampaignForm()
}

func (s *AppState) setNotice(n *Notice) {
	s.mu.Lock()
	s.notice = n
	s.mu.Unlock()
}
