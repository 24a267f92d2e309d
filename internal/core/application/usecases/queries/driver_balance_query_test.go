package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriverBalanceQuery_Valid(t *testing.T) {
	driverID := kernel.NewUUID()
	statuses := []settlement.Status{settlement.InTransit, settlement.ToSettle}

	query, err := queries.NewDriverBalanceQuery(driverID, statuses)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, driverID, query.DriverID())
	assert.Equal(t, statuses, query.Statuses())
}

func TestNewDriverBalanceQuery_NoStatuses(t *testing.T) {
	_, err := queries.NewDriverBalanceQuery(kernel.NewUUID(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewDriverBalanceQuery_UnknownStatus(t *testing.T) {
	_, err := queries.NewDriverBalanceQuery(kernel.NewUUID(), []settlement.Status{settlement.Unknown})
	require.Error(t, err)
}

func TestDriverBalanceQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.DriverBalanceQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrDriverBalanceQueryIsNotConstructed)
}
