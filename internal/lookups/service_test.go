package lookups

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-bms/meridian/internal/masterdata/branches"
	"github.com/meridian-bms/meridian/internal/masterdata/companies"
	"github.com/meridian-bms/meridian/internal/masterdata/partners"
	"github.com/meridian-bms/meridian/internal/masterdata/products"
	"github.com/meridian-bms/meridian/internal/store"
)

type fakeCompanyRepo struct {
	listCalls int
}

func (f *fakeCompanyRepo) List(ctx context.Context) ([]companies.Company, error) {
	f.listCalls++
	return []companies.Company{{ID: 1, Name: "Meridian Holdings"}, {ID: 2, Name: "Initech"}}, nil
}

func (f *fakeCompanyRepo) Get(ctx context.Context, id int64) (companies.Company, error) {
	return companies.Company{}, nil
}

func (f *fakeCompanyRepo) Create(ctx context.Context, company companies.Company) (companies.Company, error) {
	return company, nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, id int64, company companies.Company) error {
	return nil
}

func (f *fakeCompanyRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

type fakeBranchRepo struct {
	listCalls int
}

func (f *fakeBranchRepo) List(ctx context.Context, companyID int64) ([]branches.Branch, error) {
	f.listCalls++
	return []branches.Branch{{ID: 4, CompanyID: companyID, Name: "Downtown"}}, nil
}

func (f *fakeBranchRepo) Get(ctx context.Context, companyID, id int64) (branches.Branch, error) {
	return branches.Branch{}, nil
}

func (f *fakeBranchRepo) Create(ctx context.Context, companyID int64, branch branches.Branch) (branches.Branch, error) {
	return branch, nil
}

func (f *fakeBranchRepo) Update(ctx context.Context, companyID, id int64, branch branches.Branch) error {
	return nil
}

func (f *fakeBranchRepo) Delete(ctx context.Context, companyID, id int64) error {
	return nil
}

type fakePartnerRepo struct {
	vendorCalls int
	clientCalls int
}

func (f *fakePartnerRepo) ListVendors(ctx context.Context, companyID int64) ([]partners.Partner, error) {
	f.vendorCalls++
	return []partners.Partner{{ID: 7, Name: "Acme Supplies"}}, nil
}

func (f *fakePartnerRepo) ListClients(ctx context.Context, companyID int64) ([]partners.Partner, error) {
	f.clientCalls++
	return []partners.Partner{{ID: 9, Name: "Globex"}}, nil
}

func (f *fakePartnerRepo) Get(ctx context.Context, companyID, id int64, kind partners.Kind) (partners.Partner, error) {
	return partners.Partner{}, nil
}

func (f *fakePartnerRepo) Create(ctx context.Context, companyID int64, partner partners.Partner) (partners.Partner, error) {
	return partner, nil
}

func (f *fakePartnerRepo) Update(ctx context.Context, companyID, id int64, partner partners.Partner) error {
	return nil
}

func (f *fakePartnerRepo) Delete(ctx context.Context, companyID, id int64, kind partners.Kind) error {
	return nil
}

type fakeProductRepo struct {
	listCalls int
}

func (f *fakeProductRepo) List(ctx context.Context, branchID int64) ([]products.Product, error) {
	f.listCalls++
	return []products.Product{{ID: 3, SKU: "SKU-003", Name: "Widget"}}, nil
}

func (f *fakeProductRepo) Get(ctx context.Context, branchID, id int64) (products.Product, error) {
	return products.Product{}, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, branchID int64, product products.Product) (products.Product, error) {
	return product, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, branchID, id int64, product products.Product) error {
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, branchID, id int64) error {
	return nil
}

func newTestService(t *testing.T) (*Service, *fakePartnerRepo, *fakeProductRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	partnerRepo := &fakePartnerRepo{}
	productRepo := &fakeProductRepo{}
	cache := store.NewLookupCache(client, time.Minute)
	svc := NewService(cache, &fakeCompanyRepo{}, &fakeBranchRepo{}, partnerRepo, productRepo)
	return svc, partnerRepo, productRepo
}

func TestVendorsCachesPerCompany(t *testing.T) {
	svc, partnerRepo, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Vendors(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Acme Supplies", first[0].Label)

	second, err := svc.Vendors(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, partnerRepo.vendorCalls)

	_, err = svc.Vendors(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, partnerRepo.vendorCalls)
}

func TestProductsLabelIncludesSKU(t *testing.T) {
	svc, _, productRepo := newTestService(t)

	opts, err := svc.Products(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "SKU-003 - Widget", opts[0].Label)
	assert.Equal(t, 1, productRepo.listCalls)
}

func TestCompanyNameResolvesFromCache(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	name, err := svc.CompanyName(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Initech", name)

	unknown, err := svc.CompanyName(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestBranchesCachedPerCompany(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	opts, err := svc.Branches(ctx, 1)
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "Downtown", opts[0].Label)
}

func TestClientsSeparateFromVendors(t *testing.T) {
	svc, partnerRepo, _ := newTestService(t)
	ctx := context.Background()

	clients, err := svc.Clients(ctx, 1)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Globex", clients[0].Label)
	assert.Equal(t, 1, partnerRepo.clientCalls)
	assert.Equal(t, 0, partnerRepo.vendorCalls)
}
