package smartreply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sr "github.com/smartreplyhq/smartreply"
)

func TestOutcome_Err(t *testing.T) {
	assert.NoError(t, sr.Outcome{Kind: sr.OutcomeSuccess, Text: "hi"}.Err())

	assert.ErrorIs(t, sr.Outcome{Kind: sr.OutcomeQuotaExceeded}.Err(), sr.ErrQuotaExceeded)
	assert.ErrorIs(t, sr.Outcome{Kind: sr.OutcomeTransportTimeout}.Err(), sr.ErrTransportTimeout)
	assert.ErrorIs(t, sr.Outcome{Kind: sr.OutcomeServerUnavailable}.Err(), sr.ErrServerUnavailable)

	err := sr.Outcome{Kind: sr.OutcomeServerRejected, Message: "bad tone"}.Err()
	assert.ErrorIs(t, err, sr.ErrServerRejected)
	assert.Contains(t, err.Error(), "bad tone")

	assert.ErrorIs(t, sr.Outcome{Kind: sr.OutcomeUnknownFailure}.Err(), sr.ErrUnknownFailure)
}

func TestOutcome_Retryable(t *testing.T) {
	assert.True(t, sr.Outcome{Kind: sr.OutcomeTransportTimeout}.Retryable())
	assert.True(t, sr.Outcome{Kind: sr.OutcomeServerUnavailable}.Retryable())
	assert.False(t, sr.Outcome{Kind: sr.OutcomeSuccess}.Retryable())
	assert.False(t, sr.Outcome{Kind: sr.OutcomeQuotaExceeded}.Retryable())
	assert.False(t, sr.Outcome{Kind: sr.OutcomeServerRejected}.Retryable())
}

func TestIsRetryable_MatchesWrappedErrors(t *testing.T) {
	assert.True(t, sr.IsRetryable(sr.Outcome{Kind: sr.OutcomeTransportTimeout}.Err()))
	assert.True(t, sr.IsRetryable(sr.Outcome{Kind: sr.OutcomeServerUnavailable}.Err()))
	assert.False(t, sr.IsRetryable(sr.Outcome{Kind: sr.OutcomeQuotaExceeded}.Err()))
}

func TestNormalizeTone(t *testing.T) {
	assert.Equal(t, sr.ToneCasual, sr.NormalizeTone(sr.ToneCasual))
	assert.Equal(t, sr.ToneProfessional, sr.NormalizeTone(""))
	assert.Equal(t, sr.ToneProfessional, sr.NormalizeTone("sarcastic"))
}
