package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestControllerAcquireRelease(t *testing.T) {
	limits := NewLimits(1, 1)
	controller := NewController(limits)

	require.Equal(t, limits, controller.LimitsSnapshot())

	require.NoError(t, controller.AcquireLearn(context.Background()))
	controller.ReleaseLearn()

	require.NoError(t, controller.AcquireDataset(context.Background()))
	controller.ReleaseDataset()
}
