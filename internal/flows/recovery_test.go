package flows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chanjin5212/myfarm-storefront/internal/pkg/errors"
)

func TestFindID(t *testing.T) {
	f := NewFindID()

	assert.ErrorIs(t, f.CanVerify(), apperrors.ErrInvalidFlowStep)
	assert.ErrorIs(t, f.Found("farmer01"), apperrors.ErrInvalidFlowStep)

	require.NoError(t, f.CodeSent("farmer@myfarm.kr"))
	assert.Equal(t, FindIDStepVerification, f.Step)

	require.NoError(t, f.CodeSent("farmer@myfarm.kr"), "resend from verification")

	require.NoError(t, f.Found("farmer01"))
	assert.Equal(t, FindIDStepResult, f.Step)
	assert.Equal(t, "farmer01", f.LoginID)

	assert.ErrorIs(t, f.CodeSent("farmer@myfarm.kr"), apperrors.ErrInvalidFlowStep)

	f.Reset()
	assert.Equal(t, FindIDStepEmail, f.Step)
	assert.Empty(t, f.Email)
	assert.Empty(t, f.LoginID)
}

func TestFindID_ZeroValueStartsAtEmail(t *testing.T) {
	var f FindID
	require.NoError(t, f.CodeSent("farmer@myfarm.kr"))
	assert.Equal(t, FindIDStepVerification, f.Step)
}

func TestFindPassword(t *testing.T) {
	f := NewFindPassword()

	assert.ErrorIs(t, f.Verified(), apperrors.ErrInvalidFlowStep)
	assert.ErrorIs(t, f.CanReset(), apperrors.ErrInvalidFlowStep)

	require.NoError(t, f.CodeSent("farmer@myfarm.kr", "farmer01"))
	assert.Equal(t, FindPasswordStepVerification, f.Step)
	assert.ErrorIs(t, f.Completed(), apperrors.ErrInvalidFlowStep)

	require.NoError(t, f.Verified())
	assert.Equal(t, FindPasswordStepNewPassword, f.Step)
	assert.ErrorIs(t, f.CodeSent("farmer@myfarm.kr", "farmer01"), apperrors.ErrInvalidFlowStep)

	require.NoError(t, f.Completed())
	assert.Equal(t, FindPasswordStepResult, f.Step)

	f.Reset()
	assert.Equal(t, FindPasswordStepCredentials, f.Step)
	assert.Empty(t, f.LoginID)
}
