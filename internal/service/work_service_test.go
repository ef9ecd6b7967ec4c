package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wm-backend/internal/apperror"
	"wm-backend/internal/model"
)

func payload(t *testing.T, body string) WorkPayload {
	t.Helper()
	var p WorkPayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func (f *workFixture) seedWork(t *testing.T, name string) *model.Work {
	t.Helper()
	w := &model.Work{Name: name, Links: model.Links{}}
	require.NoError(t, f.works.Create(context.Background(), w))
	return w
}

func TestWorkCreateBySuperuser(t *testing.T) {
	f := newWorkFixture()
	ctx := context.Background()

	rec, err := f.svc.Create(ctx, f.admin, payload(t, `{"name":"Afiş","price":"12.5","note":"acil"}`))
	require.NoError(t, err)

	assert.Equal(t, "Afiş", rec["name"])
	assert.Equal(t, "12.50", rec["price"])
	assert.Equal(t, model.StatusWaiting, rec["status_code"])

	require.Len(t, f.movements.rows, 1)
	m := f.movements.rows[0]
	assert.Equal(t, model.ActionCreate, m.Action)
	assert.Equal(t, "Afiş isimli yeni iş oluşturuldu", m.Description)
	assert.Equal(t, "Ada Yönetici", m.UserFullName)
	require.NotNil(t, m.WorkID)
}

func TestWorkCreateValidation(t *testing.T) {
	f := newWorkFixture()
	ctx := context.Background()

	inactive := &model.Category{LookupBase: model.LookupBase{ID: uuid.New(), Name: "Eski", IsActive: false}}
	f.categories.rows[inactive.ID] = inactive

	_, err := f.svc.Create(ctx, f.admin, payload(t, `{
		"name": "  ",
		"category": "`+inactive.ID.String()+`",
		"links": [{"title": "no url"}],
		"printing_confirm": null
	}`))
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "category")
	assert.Contains(t, verr.Fields, "printing_confirm")
	require.Contains(t, verr.Fields, "links")
	assert.Contains(t, verr.Fields["links"][0], "Bağlantı 1")

	assert.Empty(t, f.works.rows)
	assert.Empty(t, f.movements.rows)
}

func TestWorkCreateRequiresName(t *testing.T) {
	f := newWorkFixture()

	_, err := f.svc.Create(context.Background(), f.admin, payload(t, `{"note":"x"}`))
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
}

func TestWorkCreateWithoutCapability(t *testing.T) {
	f := newWorkFixture()

	_, err := f.svc.Create(context.Background(), f.designer, payload(t, `{"name":"Afiş"}`))
	require.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Empty(t, f.works.rows)
	assert.Empty(t, f.movements.rows)
}

func TestWorkUpdateRejectsUnwritableFields(t *testing.T) {
	f := newWorkFixture()
	ctx := context.Background()
	w := f.seedWork(t, "Afiş")

	_, err := f.svc.Update(ctx, f.designer, w.ID.String(), payload(t, `{"note":"yeni","price":"10"}`))
	require.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Equal(t, "Bu alanlara yazma yetkiniz yok: Fiyat", err.Error())

	stored, err := f.works.FindByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Note)
	assert.Equal(t, 0, f.works.saves)
	assert.Empty(t, f.movements.rows)
}

func TestWorkUpdateByDesigner(t *testing.T) {
	f := newWorkFixture()
	ctx := context.Background()
	w := f.seedWork(t, "Afiş")

	rec, err := f.svc.Update(ctx, f.designer, w.ID.String(), payload(t, `{"note":"yeni","design_start_date":"2026-10-01"}`))
	require.NoError(t, err)

	assert.NotContains(t, rec, "price")
	assert.Equal(t, "2026-10-01", rec["design_start_date"])

	require.Len(t, f.movements.rows, 1)
	m := f.movements.rows[0]
	require.NotNil(t, m.Changes)
	assert.Equal(t, "yeni", m.Changes.New["note"])
	assert.Nil(t, m.Changes.Old["note"])
	assert.Equal(t, "2026-10-01", m.Changes.New["design_start_date"])
}

func TestWorkUpdatePrintingConfirmToggle(t *testing.T) {
	f := newWorkFixture()
	ctx := context.Background()
	w := f.seedWork(t, "Afiş")

	rec, err := f.svc.Update(ctx, f.admin, w.ID.String(), payload(t, `{"printing_confirm":true}`))
	require.NoError(t, err)
	assert.Equal(t, model.StatusPrinting, rec["status_code"])

	require.Len(t, f.movements.rows, 1)
	m := f.movements.rows[0]
	assert.Equal(t, model.ActionUpdate, m.Action)
	assert.Equal(t, "Afiş isimli iş güncellendi. Değişiklikler: Baskı Onayı: Hayır → Evet", m.Description)
	assert.Equal(t, map[string]any{"printing_confirm": "false"}, m.Changes.Old)
	assert.Equal(t, map[string]any{"printing_confirm": "true"}, m.Changes.New)
}

func TestWorkUpdateWithoutChangesRecordsNothing(t *testing.T) {
	f := newWorkFixture()
	w := f.seedWork(t, "Afiş")

	_, err := f.svc.Update(context.Background(), f.admin, w.ID.String(), payload(t, `{"name":"Afiş"}`))
	require.NoError(t, err)
	assert.Empty(t, f.movements.rows)
}

func TestWorkUpdatePrintingControlStamps(t *testing.T) {
	f := newWorkFixture()
	ctx := context.Background()
	w := f.seedWork(t, "Afiş")

	_, err := f.svc.Update(ctx, f.admin, w.ID.String(), payload(t, `{"printing_control":true}`))
	require.NoError(t, err)

	stored, err := f.works.FindByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PrintingControlDate)
	require.NotNil(t, stored.PrintingControlledByID)
	assert.Equal(t, f.admin.ID, *stored.PrintingControlledByID)

	_, err = f.svc.Update(ctx, f.admin, w.ID.String(), payload(t, `{"printing_control":false}`))
	require.NoError(t, err)

	stored, err = f.works.FindByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PrintingControlDate)
	assert.Nil(t, stored.PrintingControlledByID)
}

func TestWorkUpdateMissing(t *testing.T) {
	f := newWorkFixture()

	_, err := f.svc.Update(context.Background(), f.admin, uuid.NewString(), payload(t, `{"name":"x"}`))
	require.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Update(context.Background(), f.admin, "not-a-uuid", payload(t, `{"name":"x"}`))
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestWorkGetFiltersUnreadable(t *testing.T) {
	f := newWorkFixture()
	w := f.seedWork(t, "Afiş")

	rec, err := f.svc.Get(context.Background(), f.designer, w.ID.String())
	require.NoError(t, err)
	assert.NotContains(t, rec, "price")
	assert.Contains(t, rec, "name")
	assert.Contains(t, rec, "status_text")

	full, err := f.svc.Get(context.Background(), f.admin, w.ID.String())
	require.NoError(t, err)
	assert.Contains(t, full, "price")
}

func TestWorkList(t *testing.T) {
	f := newWorkFixture()
	f.seedWork(t, "Bir")
	f.seedWork(t, "İki")

	items, total, err := f.svc.List(context.Background(), f.designer, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotContains(t, item, "price")
	}
}

func TestWorkDelete(t *testing.T) {
	f := newWorkFixture()
	ctx := context.Background()
	w := f.seedWork(t, "Afiş")

	err := f.svc.Delete(ctx, f.designer, w.ID.String())
	require.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Len(t, f.works.rows, 1)

	require.NoError(t, f.svc.Delete(ctx, f.admin, w.ID.String()))
	assert.Empty(t, f.works.rows)

	require.Len(t, f.movements.rows, 1)
	m := f.movements.rows[0]
	assert.Equal(t, model.ActionDelete, m.Action)
	assert.Equal(t, "Afiş", m.WorkName)
	assert.Nil(t, m.WorkID)
}

func TestWorkAddAndRemoveLink(t *testing.T) {
	f := newWorkFixture()
	ctx := context.Background()
	w := f.seedWork(t, "Afiş")

	res, err := f.svc.AddLink(ctx, f.designer, w.ID.String(), AddLinkRequest{URL: "https://example.com/a", Title: "Taslak"})
	require.NoError(t, err)
	require.Len(t, res.Links, 1)
	assert.Equal(t, "Alice Tasarım ("+f.designer.ID.String()+")", res.Links[0].AddedBy)
	assert.NotNil(t, res.Links[0].AddedAt)

	require.Len(t, f.movements.rows, 1)
	assert.Equal(t, "0", f.movements.rows[0].Changes.Old["links_count"])
	assert.Equal(t, "1", f.movements.rows[0].Changes.New["links_count"])

	_, err = f.svc.RemoveLink(ctx, f.designer, w.ID.String(), RemoveLinkRequest{URL: "https://example.com/missing"})
	require.ErrorIs(t, err, apperror.ErrNotFound)

	res, err = f.svc.RemoveLink(ctx, f.designer, w.ID.String(), RemoveLinkRequest{URL: "https://example.com/a"})
	require.NoError(t, err)
	assert.Empty(t, res.Links)
	assert.Len(t, f.movements.rows, 2)
}

func TestWorkAddLinkValidation(t *testing.T) {
	f := newWorkFixture()
	w := f.seedWork(t, "Afiş")

	_, err := f.svc.AddLink(context.Background(), f.admin, w.ID.String(), AddLinkRequest{URL: "not a url"})
	require.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.svc.RemoveLink(context.Background(), f.admin, w.ID.String(), RemoveLinkRequest{})
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestWorkLinkRequiresWriteOnLinks(t *testing.T) {
	f := newWorkFixture()
	w := f.seedWork(t, "Afiş")
	viewer := &model.User{ID: uuid.New(), Username: "bob", IsActive: true}

	_, err := f.svc.AddLink(context.Background(), viewer, w.ID.String(), AddLinkRequest{URL: "https://example.com"})
	require.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.RemoveLink(context.Background(), viewer, w.ID.String(), RemoveLinkRequest{URL: "https://example.com"})
	require.ErrorIs(t, err, apperror.ErrForbidden)
	assert.False(t, errors.Is(err, apperror.ErrNotFound))
}
