package admin

import (
	"testing"
	"time"

	bookingRepo "evcare/database/repository/booking"
	centerRepo "evcare/database/repository/center"
	paymentRepo "evcare/database/repository/payment"
	"evcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The stubs embed the repository interfaces so only the methods a test
// exercises need overriding.

type stubBookings struct {
	bookingRepo.BookingRepository
	appointment *models.Appointment
	updatedTo   string
	byCenter    map[string]int64
}

func (s *stubBookings) GetByID(id string) (*models.Appointment, error) {
	return s.appointment, nil
}

func (s *stubBookings) UpdateStatus(id, status, paymentStatus string) error {
	s.updatedTo = status
	return nil
}

func (s *stubBookings) CountByCenter() (map[string]int64, error) {
	return s.byCenter, nil
}

type stubPayments struct {
	paymentRepo.PaymentRepository
	monthly map[string]int64
}

func (s *stubPayments) SumPaidAmountsByMonth(since time.Time) (map[string]int64, error) {
	return s.monthly, nil
}

type stubCenters struct {
	centerRepo.CenterRepository
	active []models.ServiceCenter
}

func (s *stubCenters) GetAllActive() ([]models.ServiceCenter, error) {
	return s.active, nil
}

func TestAdvanceAppointmentFollowsWorkflow(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{models.AppointmentPending, models.AppointmentConfirmed, true},
		{models.AppointmentPending, models.AppointmentCancelled, true},
		{models.AppointmentPending, models.AppointmentCompleted, false},
		{models.AppointmentConfirmed, models.AppointmentInProgress, true},
		{models.AppointmentConfirmed, models.AppointmentPending, false},
		{models.AppointmentInProgress, models.AppointmentCompleted, true},
		{models.AppointmentInProgress, models.AppointmentCancelled, false},
		{models.AppointmentCompleted, models.AppointmentPending, false},
	}

	for _, tc := range cases {
		bookings := &stubBookings{appointment: &models.Appointment{ID: "apt-1", Status: tc.from}}
		svc := &DefaultAdminService{Bookings: bookings}

		updated, err := svc.AdvanceAppointment("apt-1", tc.to)
		if tc.ok {
			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, updated.Status)
			assert.Equal(t, tc.to, bookings.updatedTo)
		} else {
			require.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
			assert.Empty(t, bookings.updatedTo)
		}
	}
}

func TestRevenueSeriesFillsEmptyMonths(t *testing.T) {
	now := time.Now()
	current := now.Format("2006-01")
	svc := &DefaultAdminService{
		Payments: &stubPayments{monthly: map[string]int64{current: 1500000}},
	}

	points, err := svc.RevenueSeries(3)
	require.NoError(t, err)
	require.Len(t, points, 3)

	// Oldest first, zero-filled, current month last.
	assert.Equal(t, int64(0), points[0].Amount)
	assert.Equal(t, int64(0), points[1].Amount)
	assert.Equal(t, current, points[2].Month)
	assert.Equal(t, int64(1500000), points[2].Amount)
	assert.Equal(t, "1.500.000 ₫", points[2].AmountDisplay)

	first, err := time.Parse("2006-01", points[0].Month)
	require.NoError(t, err)
	expected := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -2, 0)
	assert.Equal(t, expected.Format("2006-01"), first.Format("2006-01"))
}

func TestCenterUtilizationCoversAllActiveCenters(t *testing.T) {
	svc := &DefaultAdminService{
		Bookings: &stubBookings{byCenter: map[string]int64{"ctr-1": 4}},
		Centers: &stubCenters{active: []models.ServiceCenter{
			{ID: "ctr-1", Name: "EV Care Thu Duc"},
			{ID: "ctr-2", Name: "EV Care Binh Thanh"},
		}},
	}

	loads, err := svc.CenterUtilization()
	require.NoError(t, err)
	require.Len(t, loads, 2)
	assert.Equal(t, int64(4), loads[0].Appointments)
	assert.Equal(t, "EV Care Thu Duc", loads[0].CenterName)
	assert.Equal(t, int64(0), loads[1].Appointments)
}
