package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/adsradar/adsradar-backend/models"
)

// fakeActivitySource serves canned accounts, feeds and enrichment objects,
// recording the batch chunks it is asked for.
type fakeActivitySource struct {
	mu sync.Mutex

	accounts    []models.AdAccount
	accountsErr error

	activities  map[string][]models.Activity
	activityErr map[string]error

	ads       map[string]models.AdDetails
	adSets    map[string]models.AdSetDetails
	campaigns map[string]models.CampaignDetails

	adChunks       [][]string
	adSetChunks    [][]string
	campaignChunks [][]string

	adErr       error
	adSetErr    error
	campaignErr error
}

func newFakeActivitySource() *fakeActivitySource {
	return &fakeActivitySource{
		activities:  make(map[string][]models.Activity),
		activityErr: make(map[string]error),
		ads:         make(map[string]models.AdDetails),
		adSets:      make(map[string]models.AdSetDetails),
		campaigns:   make(map[string]models.CampaignDetails),
	}
}

func (f *fakeActivitySource) ListAdAccounts(ctx context.Context) ([]models.AdAccount, error) {
	return f.accounts, f.accountsErr
}

func (f *fakeActivitySource) ListActivities(ctx context.Context, accountId string, since time.Time,
) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activities[accountId], f.activityErr[accountId]
}

func (f *fakeActivitySource) BatchGetAds(ctx context.Context, ids []string,
) (map[string]models.AdDetails, []string, error) {
	f.mu.Lock()
	f.adChunks = append(f.adChunks, ids)
	f.mu.Unlock()
	if f.adErr != nil {
		return nil, nil, f.adErr
	}
	return lookupBatch(f.ads, ids)
}

func (f *fakeActivitySource) BatchGetAdSets(ctx context.Context, ids []string,
) (map[string]models.AdSetDetails, []string, error) {
	f.mu.Lock()
	f.adSetChunks = append(f.adSetChunks, ids)
	f.mu.Unlock()
	if f.adSetErr != nil {
		return nil, nil, f.adSetErr
	}
	return lookupBatch(f.adSets, ids)
}

func (f *fakeActivitySource) BatchGetCampaigns(ctx context.Context, ids []string,
) (map[string]models.CampaignDetails, []string, error) {
	f.mu.Lock()
	f.campaignChunks = append(f.campaignChunks, ids)
	f.mu.Unlock()
	if f.campaignErr != nil {
		return nil, nil, f.campaignErr
	}
	return lookupBatch(f.campaigns, ids)
}

func lookupBatch[T any](table map[string]T, ids []string) (map[string]T, []string, error) {
	found := make(map[string]T)
	var missing []string
	for _, id := range ids {
		if details, ok := table[id]; ok {
			found[id] = details
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing, nil
}

type fakeBrandSource struct {
	mappings []models.BrandMapping
	err      error
}

func (f *fakeBrandSource) ListBrandRecords(ctx context.Context) ([]models.BrandMapping, error) {
	return f.mappings, f.err
}

type fakeRowStore struct {
	rows       []models.TrackedRow
	latest     *time.Time
	latestErr  error
	replaceErr error

	replacedWith []models.TrackedRow
}

func (f *fakeRowStore) ListAllRows(ctx context.Context) ([]models.TrackedRow, error) {
	return f.rows, nil
}

func (f *fakeRowStore) ReplaceAll(ctx context.Context, rows []models.TrackedRow) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacedWith = rows
	return nil
}

func (f *fakeRowStore) LatestEventTime(ctx context.Context) (*time.Time, error) {
	return f.latest, f.latestErr
}

type fakeAuditStore struct {
	reports []models.RunReport
}

func (f *fakeAuditStore) InsertRunReport(ctx context.Context, report models.RunReport) error {
	f.reports = append(f.reports, report)
	return nil
}

var errUpstream = errors.New("upstream unavailable")
