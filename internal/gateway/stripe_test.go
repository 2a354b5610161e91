package gateway

import (
	"context"
	"testing"

	"github.com/blues/fundsy/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := Init(config.GatewayConfig{
		APIKey:         "sk_test_dummy",
		Currency:       "cad",
		TimeoutSeconds: 1,
	})
	require.NoError(t, err)
	return c
}

func TestInitRequiresAPIKey(t *testing.T) {
	_, err := Init(config.GatewayConfig{})
	assert.Error(t, err)
}

func TestRegisterPayerRejectsEmptyTokenLocally(t *testing.T) {
	c := newTestClient(t)

	_, err := c.RegisterPayer(context.Background(), "", "Customer for user id 1")
	assert.Equal(t, CodeInvalidToken, CodeOf(err))
}

func TestChargePayerRejectsNonPositiveAmount(t *testing.T) {
	c := newTestClient(t)

	_, err := c.ChargePayer(context.Background(), "cus_1", 0, "Charge for pledge id 1")
	assert.Equal(t, CodeDeclined, CodeOf(err))

	_, err = c.ChargePayer(context.Background(), "cus_1", -100, "Charge for pledge id 1")
	assert.Equal(t, CodeDeclined, CodeOf(err))
}
