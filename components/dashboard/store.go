package dashboard

import "sync"

// CampaignStore holds the ordered campaign list. Records are only ever replaced
// wholesale or appended; there is no in-place edit or delete.
type CampaignStore struct {
	mu        sync.RWMutex
	campaigns []Campaign
}

// NewCampaignStore creates an empty store.
func NewCampaignStore() *CampaignStore {
	return &CampaignStore{}
}

// List returns a copy of the campaigns in fetch-then-append order.
func (s *CampaignStore) List() []Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Campaign, len(s.campaigns))
	copy(out, s.campaigns)
	return out
}

// Len returns the number of stored campaigns.
func (s *CampaignStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.campaigns)
}

// ReplaceAll swaps the whole sequence. Last write wins.
func (s *CampaignStore) ReplaceAll(campaigns []Campaign) {
	next := make([]Campaign, len(campaigns))
	copy(next, campaigns)
	s.mu.Lock()
	s.campaigns = next
	s.mu.Unlock()
}

// Append adds a campaign to the end of the sequence.
func (s *CampaignStore) Append(campaign Campaign) {
	s.mu.Lock()
	s.campaigns = append(s.campaigns, campaign)
	s.mu.Unlock()
}
