package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/extraction"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/finance"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/query"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 25, 9, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T, userID string) (*Manager, *testutil.TestDB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	n := 0
	m := NewManager(db.Storage, userID, nil,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return "att-" + string(rune('0'+n))
		}),
	)
	return m, db
}

func TestIngestResults_FlagsRejectedCases(t *testing.T) {
	m, _ := newTestManager(t, "")
	ctx := context.Background()

	_, err := m.ToggleRejected(ctx, "19-000123-0164-CJ")
	require.NoError(t, err)

	got, err := m.IngestResults(ctx, testutil.SampleResults())
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.True(t, got[0].IsRejected)
	assert.True(t, got[1].IsRejected)
	assert.False(t, got[2].IsRejected)

	stored, err := m.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestIngestResults_MergesSavedSnapshot(t *testing.T) {
	m, db := newTestManager(t, "u1")
	ctx := context.Background()

	saved := testutil.NewProperty("old-house").WithExpediente("20-000456-1157-CJ").
		WithPrice(80_000, model.USD).WithDates("2024-12-01", "", "").
		WithAnalisis(model.Analisis{PrecioVentaEstimado: 60_000_000, Notas: "visitada"}).Build()
	db.SeedSaved("u1", saved)

	got, err := m.IngestResults(ctx, testutil.SampleResults())
	require.NoError(t, err)

	house := got[2]
	assert.Equal(t, "old-house", house.ID)
	assert.Equal(t, "2025-04-10", house.FechaRemate)
	require.NotNil(t, house.Analisis)
	assert.Equal(t, "visitada", house.Analisis.Notas)
}

func TestIngestResults_KeepsSavedDateWhenNewIsEmpty(t *testing.T) {
	m, db := newTestManager(t, "u1")
	ctx := context.Background()

	db.SeedSaved("u1", testutil.NewProperty("s").WithExpediente("EXP-9").WithDates("2025-06-01", "", "").Build())

	got, err := m.IngestResults(ctx, []*model.Property{
		testutil.NewProperty("n1").WithExpediente("EXP-9").Build(),
		testutil.NewProperty("n2").WithExpediente("EXP-9").Build(),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s", got[0].ID)
	assert.Equal(t, "2025-06-01", got[0].FechaRemate)
	assert.Equal(t, "n2", got[1].ID)
}

func TestIngestResults_SavedLotKeepsSiblings(t *testing.T) {
	m, db := newTestManager(t, "u1")
	ctx := context.Background()

	db.SeedSaved("u1", testutil.NewProperty("old-finca").WithExpediente("25-9").Build())
	_, err := m.ToggleRejected(ctx, "25-9")
	require.NoError(t, err)

	got, err := m.IngestResults(ctx, []*model.Property{
		testutil.NewProperty("new-finca").WithExpediente("25-9").Build(),
		testutil.NewProperty("new-car").WithExpediente("25-9").
			WithTipo(model.TipoVehiculo).WithDescripcion("Placa ABC123").Build(),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "old-finca", got[0].ID)
	assert.Equal(t, model.TipoPropiedad, got[0].TipoBien)
	assert.Equal(t, "new-car", got[1].ID)
	assert.Equal(t, model.TipoVehiculo, got[1].TipoBien)
	assert.True(t, got[1].IsRejected)

	stored, err := m.Results(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestIngestResults_UnlistedProvinceIsStored(t *testing.T) {
	m, _ := newTestManager(t, "")
	ctx := context.Background()

	first := extraction.Normalize(extraction.RawItem{
		NumeroExpediente: "25-1", Descripcion: "Lote en Grecia", Provincia: "Alajuela",
	}, "p1")
	second := extraction.Normalize(extraction.RawItem{
		NumeroExpediente: "25-2", Descripcion: "Casa", Provincia: "Provincia de Alajuela",
	}, "p2")
	third := extraction.Normalize(extraction.RawItem{
		NumeroExpediente: "25-3", Descripcion: "Bodega", Provincia: "Zona Norte",
	}, "p3")

	got, err := m.IngestResults(ctx, []*model.Property{first, second, third})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Alajuela", got[1].Provincia)
	assert.Equal(t, model.ProvinciaDesconocida, got[2].Provincia)
}

func TestToggleFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("requires user", func(t *testing.T) {
		m, _ := newTestManager(t, "")
		_, err := m.ToggleFavorite(ctx, "lot-a")
		require.ErrorIs(t, err, common.ErrLoginRequired)
		_, ok := common.UserMessage(err)
		assert.True(t, ok)
	})

	t.Run("add and remove", func(t *testing.T) {
		m, db := newTestManager(t, "u1")
		db.SeedResults(testutil.SampleResults()...)

		fav, err := m.ToggleFavorite(ctx, "lot-a")
		require.NoError(t, err)
		assert.True(t, fav)

		saved, err := m.Saved(ctx)
		require.NoError(t, err)
		require.Len(t, saved, 1)
		require.NotNil(t, saved[0].Analisis)
		assert.InDelta(t, 400_000, saved[0].Analisis.CostosLegales, 0.001)

		prefs, err := m.Preferences(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"lot-a"}, prefs.Favorites)

		fav, err = m.ToggleFavorite(ctx, "lot-a")
		require.NoError(t, err)
		assert.False(t, fav)

		saved, err = m.Saved(ctx)
		require.NoError(t, err)
		assert.Empty(t, saved)
	})

	t.Run("fresh extraction gets legal costs", func(t *testing.T) {
		m, db := newTestManager(t, "u1")
		fresh := extraction.Normalize(extraction.RawItem{
			NumeroExpediente: "25-4", Descripcion: "Lote", PrecioBaseNumerico: 10_000_000,
		}, "fresh")
		require.NotNil(t, fresh.Analisis)
		db.SeedResults(fresh)

		_, err := m.ToggleFavorite(ctx, "fresh")
		require.NoError(t, err)

		saved, err := m.Saved(ctx)
		require.NoError(t, err)
		require.Len(t, saved, 1)
		assert.InDelta(t, 400_000, saved[0].Analisis.CostosLegales, 0.001)
	})

	t.Run("unknown property", func(t *testing.T) {
		m, _ := newTestManager(t, "u1")
		_, err := m.ToggleFavorite(ctx, "ghost")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestToggleRejected(t *testing.T) {
	ctx := context.Background()

	for _, user := range []string{"", "u1"} {
		t.Run("user="+user, func(t *testing.T) {
			m, db := newTestManager(t, user)
			db.SeedResults(testutil.SampleResults()...)

			rej, err := m.ToggleRejected(ctx, "car")
			require.NoError(t, err)
			assert.True(t, rej)

			results, err := m.Results(ctx)
			require.NoError(t, err)
			assert.True(t, results[3].IsRejected)

			rejected, _, err := m.Sets(ctx)
			require.NoError(t, err)
			assert.True(t, rejected.Has("car"))

			rej, err = m.ToggleRejected(ctx, "car")
			require.NoError(t, err)
			assert.False(t, rej)

			results, err = m.Results(ctx)
			require.NoError(t, err)
			assert.False(t, results[3].IsRejected)
		})
	}

	t.Run("anonymous rejections live in the blob store", func(t *testing.T) {
		m, db := newTestManager(t, "")
		_, err := m.ToggleRejected(ctx, "EXP-1")
		require.NoError(t, err)

		raw, err := db.Storage.GetBlob(ctx, RejectedKey)
		require.NoError(t, err)
		assert.JSONEq(t, `["EXP-1"]`, raw)
	})

	t.Run("empty key", func(t *testing.T) {
		m, _ := newTestManager(t, "")
		_, err := m.ToggleRejected(ctx, " ")
		assert.ErrorIs(t, err, ErrEmptyKey)
	})
}

func TestRejectGroup(t *testing.T) {
	m, db := newTestManager(t, "u1")
	ctx := context.Background()
	db.SeedResults(testutil.SampleResults()...)

	results, err := m.Results(ctx)
	require.NoError(t, err)
	groups := query.GroupByExpediente(results)
	lots := groups[0]
	require.Len(t, lots.Properties, 2)

	rej, err := m.RejectGroup(ctx, lots)
	require.NoError(t, err)
	assert.True(t, rej)

	prefs, err := m.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"19-000123-0164-CJ"}, prefs.Rejected)

	results, err = m.Results(ctx)
	require.NoError(t, err)
	assert.True(t, results[0].IsRejected)
	assert.True(t, results[1].IsRejected)

	// A lot rejected on its own also counts; toggling restores everything.
	_, err = m.ToggleRejected(ctx, "lot-b")
	require.NoError(t, err)
	rej, err = m.RejectGroup(ctx, query.GroupByExpediente(results)[0])
	require.NoError(t, err)
	assert.False(t, rej)

	prefs, err = m.Preferences(ctx)
	require.NoError(t, err)
	assert.Empty(t, prefs.Rejected)
}

func TestUpdateProperty(t *testing.T) {
	m, db := newTestManager(t, "u1")
	ctx := context.Background()
	db.SeedResults(testutil.SampleResults()...)

	_, err := m.ToggleFavorite(ctx, "house")
	require.NoError(t, err)

	p, err := m.Find(ctx, "house")
	require.NoError(t, err)
	p.Estrategia = model.EstrategiaSegundo
	p.Analisis = &model.Analisis{PrecioVentaEstimado: 50_000_000}
	require.NoError(t, m.UpdateProperty(ctx, p))

	saved, err := db.Storage.GetSavedProperty(ctx, "u1", "house")
	require.NoError(t, err)
	assert.Equal(t, model.EstrategiaSegundo, saved.Estrategia)

	results, err := m.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.EstrategiaSegundo, results[2].Estrategia)

	// Non-favorites only touch the results.
	car, err := m.Find(ctx, "car")
	require.NoError(t, err)
	car.Analisis = &model.Analisis{Notas: "revisar"}
	require.NoError(t, m.UpdateProperty(ctx, car))
	_, err = db.Storage.GetSavedProperty(ctx, "u1", "car")
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = m.UpdateProperty(ctx, testutil.NewProperty("ghost").Build())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSummary(t *testing.T) {
	m, db := newTestManager(t, "u1")
	ctx := context.Background()

	db.SeedSaved("u1",
		testutil.NewProperty("a").WithPrice(5_000_000, model.CRC).WithDates("2025-02-01", "", "").
			WithAnalisis(model.Analisis{CostosLegales: 200_000, CostoRemodelacion: 800_000, PrecioVentaEstimado: 9_000_000}).Build(),
		testutil.NewProperty("b").WithPrice(10_000, model.USD).WithDates("2025-03-01", "", "").
			WithAnalisis(model.Analisis{PrecioVentaEstimado: 6_150_000}).Build(),
	)

	s, err := m.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 6_000_000+5_150_000, s.TotalInvested, 0.01)
	assert.InDelta(t, 15_150_000, s.PotentialValue, 0.01)
	assert.InDelta(t, 4_000_000, s.ProjectedGain, 0.01)
	assert.InDelta(t, finance.ROI(4_000_000, 11_150_000), s.ROI, 1e-9)

	anon, _ := newTestManager(t, "")
	s, err = anon.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, s.Count)
	assert.Zero(t, s.ROI)
}

func TestNewSearch(t *testing.T) {
	m, db := newTestManager(t, "")
	ctx := context.Background()
	db.SeedResults(testutil.SampleResults()...)

	require.NoError(t, m.NewSearch(ctx))
	results, err := m.Results(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAttachments(t *testing.T) {
	m, db := newTestManager(t, "u1")
	ctx := context.Background()
	db.SeedResults(testutil.SampleResults()...)

	_, err := m.AddAttachment(ctx, "car", AttachmentInput{Type: model.AttachmentLink, Name: "x", Data: "https://x"})
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = m.ToggleFavorite(ctx, "car")
	require.NoError(t, err)

	a, err := m.AddAttachment(ctx, "car", AttachmentInput{
		Type: model.AttachmentLink, Name: " Registro ", Data: "https://registro.example/car",
	})
	require.NoError(t, err)
	assert.Equal(t, "att-1", a.ID)
	assert.Equal(t, "Registro", a.Name)
	assert.True(t, a.Date.Equal(fixedNow))

	list, err := m.Attachments(ctx, "car")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, m.RemoveAttachment(ctx, "car", "att-1"))
	list, err = m.Attachments(ctx, "car")
	require.NoError(t, err)
	assert.Empty(t, list)

	anon, _ := newTestManager(t, "")
	_, err = anon.Attachments(ctx, "car")
	assert.ErrorIs(t, err, common.ErrLoginRequired)
}
