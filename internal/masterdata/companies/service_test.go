package companies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-bms/meridian/internal/listing"
	"github.com/meridian-bms/meridian/internal/masterdata/shared"
)

type memoryCompanyRepo struct {
	items  map[int64]Company
	nextID int64
}

func newMemoryCompanyRepo() *memoryCompanyRepo {
	return &memoryCompanyRepo{items: map[int64]Company{}, nextID: 1}
}

func (m *memoryCompanyRepo) List(ctx context.Context) ([]Company, error) {
	out := make([]Company, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

func (m *memoryCompanyRepo) Get(ctx context.Context, id int64) (Company, error) {
	return m.items[id], nil
}

func (m *memoryCompanyRepo) Create(ctx context.Context, company Company) (Company, error) {
	company.ID = m.nextID
	m.nextID++
	m.items[company.ID] = company
	return company, nil
}

func (m *memoryCompanyRepo) Update(ctx context.Context, id int64, company Company) error {
	company.ID = id
	m.items[id] = company
	return nil
}

func (m *memoryCompanyRepo) Delete(ctx context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func TestCreateCompanyValidates(t *testing.T) {
	svc := NewService(newMemoryCompanyRepo(), nil)

	_, err := svc.Create(context.Background(), CompanyForm{Name: "", Registration: "REG-1", Status: "ACTIVE"})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(context.Background(), CompanyForm{Name: "Meridian Traders", Registration: "REG-1", Status: "SUSPENDED"})
	require.ErrorIs(t, err, shared.ErrValidation, "status outside the enum is rejected")

	created, err := svc.Create(context.Background(), CompanyForm{Name: "Meridian Traders", Registration: "REG-1", Status: "ACTIVE"})
	require.NoError(t, err)
	assert.Equal(t, shared.StatusActive, created.Status)
}

func TestListCompaniesFilters(t *testing.T) {
	repo := newMemoryCompanyRepo()
	repo.items[1] = Company{ID: 1, Name: "Meridian Traders", Registration: "REG-1", Status: shared.StatusActive}
	repo.items[2] = Company{ID: 2, Name: "Harbor Logistics", Registration: "REG-2", Status: shared.StatusInactive}
	svc := NewService(repo, nil)

	got, err := svc.List(context.Background(), listing.Filters{Search: "harbor"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Harbor Logistics", got[0].Name)

	got, err = svc.List(context.Background(), listing.Filters{Status: "ACTIVE"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Meridian Traders", got[0].Name)
}
