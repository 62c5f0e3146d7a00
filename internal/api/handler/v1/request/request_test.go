package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{
		Email:           "player@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Name:            "New Player",
	}
	assert.NoError(t, valid.Validate())

	noDigit := valid
	noDigit.Password = "secretsecret"
	noDigit.ConfirmPassword = "secretsecret"
	assert.ErrorIs(t, noDigit.Validate(), errInvalidPassword)

	tooShort := valid
	tooShort.Password = "abc123"
	tooShort.ConfirmPassword = "abc123"
	assert.ErrorIs(t, tooShort.Validate(), errInvalidPassword)

	mismatch := valid
	mismatch.ConfirmPassword = "secret124"
	assert.ErrorIs(t, mismatch.Validate(), errConfirmPasswordMismatch)

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())
}

func TestMergeAccountsRequestValidate(t *testing.T) {
	assert.NoError(t, (&MergeAccountsRequest{SourceID: 1, TargetID: 2}).Validate())
	assert.ErrorIs(t, (&MergeAccountsRequest{SourceID: 3, TargetID: 3}).Validate(), errMergeSameAccount)
	assert.Error(t, (&MergeAccountsRequest{SourceID: 0, TargetID: 2}).Validate())
}

func TestRubberResultRequestValidate(t *testing.T) {
	assert.NoError(t, (&RubberResultRequest{HomeGames: 7, AwayGames: 5}).Validate())
	assert.NoError(t, (&RubberResultRequest{HomeGames: 12, AwayGames: 0}).Validate())
	assert.ErrorIs(t, (&RubberResultRequest{HomeGames: 6, AwayGames: 5}).Validate(), errBadGameTotal)
	assert.Error(t, (&RubberResultRequest{HomeGames: 13, AwayGames: -1}).Validate())
}

func TestConfirmPaymentRequestValidate(t *testing.T) {
	valid := ConfirmPaymentRequest{AccountID: 1, Amount: "18.00", Reference: "BACS-1"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&ConfirmPaymentRequest{AccountID: 1, Amount: "abc"}).Validate())
	assert.Error(t, (&ConfirmPaymentRequest{AccountID: 1, Amount: "-5.00"}).Validate())
	assert.Error(t, (&ConfirmPaymentRequest{AccountID: 0, Amount: "18.00"}).Validate())
}

func TestConfirmSessionsRequestValidate(t *testing.T) {
	assert.NoError(t, (&ConfirmSessionsRequest{AttendanceIDs: []uint{1, 2}}).Validate())
	assert.ErrorIs(t, (&ConfirmSessionsRequest{}).Validate(), errNoAttendances)
}
