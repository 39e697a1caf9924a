package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightly/internal/fares"
	"flightly/internal/payment"
	"flightly/internal/seats"
)

func testCard() payment.Card {
	return payment.Card{
		CardNumber:        "4111111111111111",
		CardHolderName:    "Ada",
		CardHolderSurname: "Lovelace",
		ExpirationMonth:   "09",
		ExpirationYear:    "2028",
		CVV:               "123",
	}
}

func paidUpSession(t *testing.T) *Session {
	t.Helper()
	session := newTestSession(t, fares.TierAdvantage)
	now := time.Now().UTC()
	require.NoError(t, session.SubmitPassenger(validDetails(t), now))
	require.NoError(t, session.SelectSeat(seats.Coordinate{RowID: 4, BlockID: 1, SeatID: 2}, now))
	return session
}

func TestBuildSubmissionAssemblesPayload(t *testing.T) {
	session := paidUpSession(t)

	req, err := BuildSubmission(session, testCard())
	require.NoError(t, err)

	assert.Equal(t, "TK1989", req.Passenger.FlightNumber)
	assert.Equal(t, "advantage", req.Passenger.FareType)
	assert.Equal(t, "Ada", req.Passenger.Name)
	assert.Equal(t, "Lovelace", req.Passenger.Surname)
	assert.Equal(t, "12345678901", req.Passenger.NationalID)
	assert.Equal(t, "1988-03-14", req.Passenger.BirthDate)
	assert.Equal(t, testCard(), req.CreditCard)
}

func TestBuildSubmissionStripsPhoneWhitespace(t *testing.T) {
	session := paidUpSession(t)
	session.Draft.Phone = "+90 532 111 22 33"

	req, err := BuildSubmission(session, testCard())
	require.NoError(t, err)
	assert.Equal(t, "+905321112233", req.Passenger.Phone)
}

func TestBuildSubmissionFlattensSeatCoordinate(t *testing.T) {
	session := paidUpSession(t)

	// Row 4, block 1, seat 2 in a 3-3-3 cabin: 4*9 + 3 + 2.
	req, err := BuildSubmission(session, testCard())
	require.NoError(t, err)
	assert.Equal(t, 41, req.Passenger.Seat)
}

func TestBuildSubmissionChildFlagUsesDepartureDate(t *testing.T) {
	session := paidUpSession(t)
	departure := session.DepartureTime

	cases := []struct {
		name      string
		birthDate time.Time
		child     bool
	}{
		{"under ten at departure", departure.AddDate(-10, 0, 1), true},
		{"exactly ten at departure", departure.AddDate(-10, 0, 0), false},
		{"well over ten", departure.AddDate(-38, 0, 0), false},
		{"infant", departure.AddDate(-1, 0, 0), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			birthDate := tc.birthDate
			session.Draft.BirthDate = &birthDate

			req, err := BuildSubmission(session, testCard())
			require.NoError(t, err)
			assert.Equal(t, tc.child, req.Passenger.Child)
		})
	}
}

func TestBuildSubmissionRejectsIncompleteDraft(t *testing.T) {
	session := paidUpSession(t)
	session.Draft.Seat = nil
	_, err := BuildSubmission(session, testCard())
	assert.ErrorIs(t, err, ErrIncompleteDraft)

	session = paidUpSession(t)
	session.Draft.BirthDate = nil
	_, err = BuildSubmission(session, testCard())
	assert.ErrorIs(t, err, ErrIncompleteDraft)

	session = paidUpSession(t)
	session.Draft.Email = ""
	_, err = BuildSubmission(session, testCard())
	assert.ErrorIs(t, err, ErrIncompleteDraft)
}
