// Package feed holds the list state behind the discovery views: a page of
// campaigns replaced wholesale on every fetch, optimistic like toggles, and
// an opt-in demo dataset for running without a backend.
package feed

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"catalyster/internal/domain"
	"catalyster/internal/infra"
	"catalyster/internal/services"
)

// Options configures a campaign feed.
type Options struct {
	Campaigns *services.CampaignService
	Logger    *infra.Logger
	// ViewerID scopes like state to the signed-in user; empty for guests.
	ViewerID string
	// DemoFallback substitutes the sample dataset when a fetch fails.
	// Off by default; real errors surface to the caller.
	DemoFallback bool
}

// Feed is the page of campaigns a list view renders. Each Load replaces the
// previous page wholesale; responses from superseded loads are dropped.
type Feed struct {
	campaigns *services.CampaignService
	logger    *infra.Logger
	viewerID  string
	demo      bool

	mu    sync.Mutex
	gen   uint64
	items []domain.Campaign
	liked map[string]bool
	page  services.Paged[domain.Campaign]
	// demoData is true while the sample dataset is on display.
	demoData bool
}

// New builds an empty feed.
func New(opts Options) *Feed {
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Feed{
		campaigns: opts.Campaigns,
		logger:    logger,
		viewerID:  opts.ViewerID,
		demo:      opts.DemoFallback,
		liked:     map[string]bool{},
	}
}

// Load fetches one page of active campaigns and replaces the feed's contents.
// When loads overlap, only the most recently issued one may apply; slower
// responses from earlier loads are discarded on arrival.
func (f *Feed) Load(ctx context.Context, params services.ActiveParams) error {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.mu.Unlock()

	page, err := f.campaigns.Active(ctx, params)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		f.logger.Debug().Uint64("generation", gen).Msg("feed: dropping stale response")
		return nil
	}
	if err != nil {
		if f.demo {
			f.logger.Warn().Err(err).Msg("feed: fetch failed, showing demo dataset")
			f.items = demoCampaigns()
			f.page = services.Paged[domain.Campaign]{
				Content:       f.items,
				TotalElements: int64(len(f.items)),
				TotalPages:    1,
				Last:          true,
			}
			f.demoData = true
			return nil
		}
		return err
	}
	f.items = page.Content
	f.page = *page
	f.demoData = false
	return nil
}

// Items returns the currently displayed page.
func (f *Feed) Items() []domain.Campaign {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Campaign, len(f.items))
	copy(out, f.items)
	return out
}

// Page returns the envelope of the last applied load.
func (f *Feed) Page() services.Paged[domain.Campaign] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// Demo reports whether the sample dataset is on display.
func (f *Feed) Demo() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.demoData
}

// Liked reports the locally tracked like state for a campaign.
func (f *Feed) Liked(campaignID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.liked[campaignID]
}

// ToggleLike flips a campaign's like optimistically: the count and state
// change before the backend call, and revert exactly if it fails.
func (f *Feed) ToggleLike(ctx context.Context, campaignID string) error {
	f.mu.Lock()
	wasLiked := f.liked[campaignID]
	f.applyLike(campaignID, !wasLiked)
	f.mu.Unlock()

	var err error
	if wasLiked {
		err = f.campaigns.Unlike(ctx, campaignID, f.viewerID)
	} else {
		err = f.campaigns.Like(ctx, campaignID, f.viewerID)
	}
	if err != nil {
		f.mu.Lock()
		f.applyLike(campaignID, wasLiked)
		f.mu.Unlock()
		f.logger.Warn().Err(err).Str("campaign_id", campaignID).Msg("feed: like toggle reverted")
		return err
	}
	return nil
}

// applyLike mutates state under f.mu.
func (f *Feed) applyLike(campaignID string, liked bool) {
	if f.liked[campaignID] == liked {
		return
	}
	f.liked[campaignID] = liked
	delta := 1
	if !liked {
		delta = -1
	}
	for i := range f.items {
		if f.items[i].ID == campaignID {
			f.items[i].LikeCount += delta
			if f.items[i].LikeCount < 0 {
				f.items[i].LikeCount = 0
			}
			break
		}
	}
}

// demoCampaigns is the sample dataset shown in demo mode.
func demoCampaigns() []domain.Campaign {
	return []domain.Campaign{
		{
			ID:            "demo-1",
			Title:         "Solar Lab for Rural Schools",
			Description:   "Equip ten village schools with solar-powered science labs.",
			Category:      "Education",
			GoalAmount:    500000,
			CurrentAmount: 225000,
			Currency:      "INR",
			DonorCount:    118,
			LikeCount:     342,
			Status:        domain.CampaignActive,
			CreatorName:   "Asha Rao",
		},
		{
			ID:            "demo-2",
			Title:         "Clean Water for Dharavi",
			Description:   "Install community water filtration units.",
			Category:      "Community",
			GoalAmount:    300000,
			CurrentAmount: 287000,
			Currency:      "INR",
			DonorCount:    204,
			LikeCount:     510,
			Status:        domain.CampaignActive,
			CreatorName:   "Vikram Mehta",
		},
		{
			ID:            "demo-3",
			Title:         "Open Source Braille Reader",
			Description:   "An affordable refreshable braille display.",
			Category:      "Technology",
			GoalAmount:    800000,
			CurrentAmount: 120000,
			Currency:      "INR",
			DonorCount:    67,
			LikeCount:     95,
			Status:        domain.CampaignActive,
			CreatorName:   "Priya Nair",
		},
	}
}
