package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchworks/techpack-cli/internal/adapters/driven/storage/memory"
	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

func newTestTechPacks(t *testing.T) *TechPackService {
	t.Helper()
	return NewTechPackService(memory.NewTechPackStore())
}

func TestTechPackService_Create(t *testing.T) {
	svc := newTestTechPacks(t)
	ctx := context.Background()

	pack, err := svc.Create(ctx, "tote-01", "Aria Tote")
	require.NoError(t, err)
	assert.Equal(t, "tote-01", pack.ProductID)
	assert.Equal(t, domain.Scalar("Aria Tote"), pack.Sections[domain.SectionProductName])

	stored, err := svc.Get(ctx, "tote-01")
	require.NoError(t, err)
	assert.Equal(t, pack.ProductID, stored.ProductID)
}

func TestTechPackService_Create_AlreadyExists(t *testing.T) {
	svc := newTestTechPacks(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "tote-01", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "tote-01", "")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestTechPackService_Create_EmptyID(t *testing.T) {
	svc := newTestTechPacks(t)
	_, err := svc.Create(context.Background(), "", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTechPackService_Get_NotFound(t *testing.T) {
	svc := newTestTechPacks(t)
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTechPackService_SetSection_Coerces(t *testing.T) {
	svc := newTestTechPacks(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "tote-01", "")
	require.NoError(t, err)

	stored, err := svc.SetSection(ctx, "tote-01", domain.SectionMaterials, "", "Cotton, Leather")
	require.NoError(t, err)

	list, ok := stored.(domain.List)
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, "Cotton", list[0].(domain.Record)["material"])

	pack, err := svc.Get(ctx, "tote-01")
	require.NoError(t, err)
	assert.Equal(t, stored, pack.Sections[domain.SectionMaterials])
}

func TestTechPackService_SetSection_UnknownSection(t *testing.T) {
	svc := newTestTechPacks(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "tote-01", "")
	require.NoError(t, err)

	_, err = svc.SetSection(ctx, "tote-01", "shipping", "", "x")
	assert.ErrorIs(t, err, domain.ErrUnknownSection)
}

func TestTechPackService_SetSection_NestedField(t *testing.T) {
	svc := newTestTechPacks(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "tote-01", "")
	require.NoError(t, err)

	_, err = svc.SetSection(ctx, "tote-01", domain.SectionColors, "primaryColors", "Navy, Cream")
	require.NoError(t, err)

	pack, err := svc.Get(ctx, "tote-01")
	require.NoError(t, err)
	colors := pack.Sections[domain.SectionColors].(domain.Object)
	assert.Equal(t, domain.Value(domain.List{domain.Scalar("Navy"), domain.Scalar("Cream")}), colors["primaryColors"])
}

func TestTechPackService_Summary(t *testing.T) {
	svc := newTestTechPacks(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "tote-01", "Aria Tote")
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, "tote-01")
	require.NoError(t, err)
	assert.Contains(t, summary, "productName: Aria Tote")
}

func TestTechPackService_List(t *testing.T) {
	svc := newTestTechPacks(t)
	ctx := context.Background()

	ids, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = svc.Create(ctx, "tote-01", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "belt-02", "")
	require.NoError(t, err)

	ids, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"belt-02", "tote-01"}, ids)
}
