package create_slot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventSlots/pkg/ptr"
)

func TestIntegerCapacity(t *testing.T) {
	c, err := IntegerCapacity(3)
	require.NoError(t, err)
	assert.Equal(t, 3, c)

	for _, v := range []float64{2.5, math.NaN(), math.Inf(1), 1e12} {
		_, err := IntegerCapacity(v)
		assert.Error(t, err, v)
	}
}

func TestToServiceRequest(t *testing.T) {
	req := &CreateSlotRequest{
		EventID:   4,
		Date:      "2025-10-15",
		StartTime: "10:00",
		EndTime:   "11:00",
		Purpose:   "Tour",
		Capacity:  ptr.Ptr(2.0),
	}

	serviceReq, err := req.ToServiceRequest(42)
	require.NoError(t, err)
	assert.Equal(t, 2, serviceReq.Capacity)
	assert.Equal(t, int64(42), serviceReq.OwnerID)

	req.Capacity = ptr.Ptr(1.5)
	_, err = req.ToServiceRequest(42)
	assert.Error(t, err)

	req.Capacity = nil
	serviceReq, err = req.ToServiceRequest(42)
	require.NoError(t, err)
	assert.Zero(t, serviceReq.Capacity)
}
