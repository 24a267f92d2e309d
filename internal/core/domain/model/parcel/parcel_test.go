package parcel_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/parcel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft(t *testing.T) parcel.Draft {
	t.Helper()
	price, err := kernel.NewMoneyFromString("300")
	require.NoError(t, err)

	return parcel.Draft{
		ClientName: "Amine B.",
		Phone:      "0600000001",
		City:       "city-3",
		District:   "district-12",
		ProductRef: "prod-7",
		SKU:        "SKU-7",
		UnitCount:  2,
		Price:      price,
		Comment:    "call before delivery",
	}
}

func newTestParcel(t *testing.T, variant pipeline.Variant) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(kernel.NewUUID(), variant, validDraft(t), time.Now())
	require.NoError(t, err)
	return p
}

// advance walks a parcel along a legal path without scan shortcuts.
func advance(t *testing.T, p *parcel.Parcel, stages ...pipeline.Stage) {
	t.Helper()
	for _, s := range stages {
		if s == pipeline.Packaging {
			require.NoError(t, p.BeginPackaging())
			continue
		}
		require.NoError(t, p.Transition(s, nil))
	}
}

func scanAll(t *testing.T, p *parcel.Parcel) {
	t.Helper()
	for range p.PackagingLines() {
		require.Equal(t, parcel.ScanMatched, p.ScanLine(p.SKU()))
	}
}

func TestNewParcel(t *testing.T) {
	t.Run("creates a parcel in the initial stage", func(t *testing.T) {
		now := time.Now()
		id := kernel.NewUUID()
		p, err := parcel.NewParcel(id, pipeline.Default, validDraft(t), now)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, pipeline.New, p.Stage())
		assert.Equal(t, "New", p.StageName())
		assert.Equal(t, now, p.CreatedAt())
		assert.Nil(t, p.Employee())
		assert.Nil(t, p.ReminderAt())
		assert.Empty(t, p.PackagingLines())
	})

	t.Run("regional parcels carry suffixed stage names", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Regional)

		assert.Equal(t, "New-R", p.StageName())
		assert.Equal(t, pipeline.New, p.Stage())
	})

	t.Run("rejects an invalid draft", func(t *testing.T) {
		cases := map[string]func(*parcel.Draft){
			"missing client": func(d *parcel.Draft) { d.ClientName = "" },
			"missing phone":  func(d *parcel.Draft) { d.Phone = "" },
			"missing product": func(d *parcel.Draft) {
				d.ProductRef = ""
			},
			"missing sku":     func(d *parcel.Draft) { d.SKU = "" },
			"zero unit count": func(d *parcel.Draft) { d.UnitCount = 0 },
		}

		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				draft := validDraft(t)
				mutate(&draft)

				_, err := parcel.NewParcel(kernel.NewUUID(), pipeline.Default, draft, time.Now())
				require.Error(t, err)
			})
		}
	})

	t.Run("rejects an unknown pipeline", func(t *testing.T) {
		_, err := parcel.NewParcel(kernel.NewUUID(), pipeline.UnknownVariant, validDraft(t), time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrUnknownPipeline)
	})

	t.Run("zero value fails Validate", func(t *testing.T) {
		var p parcel.Parcel
		require.ErrorIs(t, p.Validate(), parcel.ErrParcelIsNotConstructed)
	})
}

func TestParcel_Transition(t *testing.T) {
	t.Run("follows the happy path to delivered", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)

		advance(t, p, pipeline.Confirmed, pipeline.Packaging)
		scanAll(t, p)
		require.NoError(t, p.Transition(pipeline.Dispatched, nil))
		require.NoError(t, p.Transition(pipeline.Delivered, nil))

		assert.Equal(t, pipeline.Delivered, p.Stage())
	})

	t.Run("transition to the current stage is a no-op success", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed)

		require.NoError(t, p.Transition(pipeline.Confirmed, nil))
		assert.Equal(t, pipeline.Confirmed, p.Stage())
	})

	t.Run("no-op holds even in a terminal stage", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed, pipeline.Cancelled)

		require.NoError(t, p.Transition(pipeline.Cancelled, nil))
	})

	t.Run("rejects unreachable stages", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)

		err := p.Transition(pipeline.Delivered, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Equal(t, pipeline.New, p.Stage(), "failed transition must not change state")
	})

	t.Run("illegal transition names stages in the parcel's namespace", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Regional)

		err := p.Transition(pipeline.Dispatched, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "New-R")
		assert.Contains(t, err.Error(), "Dispatched-R")
	})

	t.Run("stores the reminder when postponing", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed)

		remindAt := time.Now().Add(48 * time.Hour)
		require.NoError(t, p.Transition(pipeline.Postponed, &remindAt))

		require.NotNil(t, p.ReminderAt())
		assert.Equal(t, remindAt, *p.ReminderAt())
	})

	t.Run("postponed parcel re-enters confirmation", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed, pipeline.Postponed)

		require.NoError(t, p.Transition(pipeline.Confirmed, nil))
	})

	t.Run("parcel postponed out of dispatch re-enters dispatch", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed, pipeline.Packaging)
		scanAll(t, p)
		advance(t, p, pipeline.Dispatched, pipeline.Postponed)

		require.NoError(t, p.Transition(pipeline.Dispatched, nil))
	})

	t.Run("rejects an invalid target stage", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)

		require.Error(t, p.Transition(pipeline.Unknown, nil))
		require.Error(t, p.Transition(pipeline.Stage(42), nil))
	})
}

func TestParcel_Packaging(t *testing.T) {
	t.Run("BeginPackaging materializes one line per unit", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed)

		require.NoError(t, p.BeginPackaging())

		assert.Equal(t, pipeline.Packaging, p.Stage())
		require.Len(t, p.PackagingLines(), 2)
		for _, line := range p.PackagingLines() {
			assert.False(t, line.Scanned())
			assert.Equal(t, "prod-7", line.ProductRef())
			assert.Equal(t, "SKU-7", line.SKU())
			assert.True(t, line.ParcelID().IsEqual(p.ID()))
		}
	})

	t.Run("BeginPackaging requires the confirmed stage", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)

		err := p.BeginPackaging()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("scanning the correct SKU confirms lines one by one", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed, pipeline.Packaging)

		assert.False(t, p.ReadyForDispatch())
		assert.Equal(t, parcel.ScanMatched, p.ScanLine("SKU-7"))
		assert.False(t, p.ReadyForDispatch(), "one line still unscanned")
		assert.Equal(t, parcel.ScanMatched, p.ScanLine("SKU-7"))
		assert.True(t, p.ReadyForDispatch(), "becomes true exactly on the completing scan")

		require.NoError(t, p.Transition(pipeline.Dispatched, nil))
	})

	t.Run("a wrong SKU is a mismatch and mutates nothing", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed, pipeline.Packaging)

		assert.Equal(t, parcel.ScanMismatch, p.ScanLine("SKU-9"))
		for _, line := range p.PackagingLines() {
			assert.False(t, line.Scanned())
		}

		err := p.Transition(pipeline.Dispatched, nil)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrIncompleteScan)
		assert.Equal(t, pipeline.Packaging, p.Stage())
	})

	t.Run("scanning past completion is a mismatch", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed, pipeline.Packaging)
		scanAll(t, p)

		assert.Equal(t, parcel.ScanMismatch, p.ScanLine("SKU-7"))
	})

	t.Run("scanning outside the labeling stage is a mismatch", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)

		assert.Equal(t, parcel.ScanMismatch, p.ScanLine("SKU-7"))
	})

	t.Run("dispatch without any lines is blocked", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed)

		assert.False(t, p.ReadyForDispatch())
	})
}

func TestParcel_Reassign(t *testing.T) {
	t.Run("assigns the agent in a non-terminal stage", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		agent := kernel.NewUUID()

		require.NoError(t, p.Reassign(agent))

		require.NotNil(t, p.Employee())
		assert.True(t, p.Employee().IsEqual(agent))
	})

	t.Run("replaces a previous assignment", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		require.NoError(t, p.Reassign(kernel.NewUUID()))
		next := kernel.NewUUID()

		require.NoError(t, p.Reassign(next))
		assert.True(t, p.Employee().IsEqual(next))
	})

	t.Run("fails in a terminal stage", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed, pipeline.Cancelled)

		err := p.Reassign(kernel.NewUUID())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrTerminalState)
	})

	t.Run("rejects a zero-value employee id", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)

		require.Error(t, p.Reassign(kernel.UUID{}))
	})
}

func TestParcel_IsUrgent(t *testing.T) {
	now := time.Now()

	t.Run("no reminder means not urgent", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)

		assert.False(t, p.IsUrgent(now))
	})

	t.Run("reminder within the window is urgent", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed)
		remindAt := now.Add(2 * time.Hour)
		require.NoError(t, p.Transition(pipeline.Postponed, &remindAt))

		assert.True(t, p.IsUrgent(now))
	})

	t.Run("past-due reminder stays urgent", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed)
		remindAt := now.Add(-time.Hour)
		require.NoError(t, p.Transition(pipeline.Postponed, &remindAt))

		assert.True(t, p.IsUrgent(now))
	})

	t.Run("reminder beyond the window is not urgent", func(t *testing.T) {
		p := newTestParcel(t, pipeline.Default)
		advance(t, p, pipeline.Confirmed)
		remindAt := now.Add(25 * time.Hour)
		require.NoError(t, p.Transition(pipeline.Postponed, &remindAt))

		assert.False(t, p.IsUrgent(now))
	})
}

func TestRestoreParcel(t *testing.T) {
	t.Run("restores stage, assignment, reminder and lines", func(t *testing.T) {
		id := kernel.NewUUID()
		agent := kernel.NewUUID()
		remindAt := time.Now().Add(3 * time.Hour)
		createdAt := time.Now().Add(-48 * time.Hour)

		line, err := parcel.RestorePackagingLine(id, "prod-7", "SKU-7", true)
		require.NoError(t, err)

		p, err := parcel.RestoreParcel(
			id, pipeline.Regional, pipeline.Packaging, validDraft(t),
			&agent, &remindAt, createdAt, []*parcel.PackagingLine{line},
		)

		require.NoError(t, err)
		assert.Equal(t, pipeline.Packaging, p.Stage())
		assert.Equal(t, "Packaging-R", p.StageName())
		assert.True(t, p.Employee().IsEqual(agent))
		assert.Equal(t, remindAt, *p.ReminderAt())
		assert.Equal(t, createdAt, p.CreatedAt())
		require.Len(t, p.PackagingLines(), 1)
		assert.True(t, p.PackagingLines()[0].Scanned())
	})

	t.Run("rejects an invalid stage", func(t *testing.T) {
		_, err := parcel.RestoreParcel(
			kernel.NewUUID(), pipeline.Default, pipeline.Unknown, validDraft(t),
			nil, nil, time.Now(), nil,
		)

		require.Error(t, err)
	})
}
