package booking

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"evcare/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVehicleRepo struct {
	vehicles map[string]*models.Vehicle
}

func (f *fakeVehicleRepo) GetByID(id string) (*models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, errors.New("vehicle not found")
	}
	return v, nil
}
func (f *fakeVehicleRepo) GetByUser(userID string) ([]models.Vehicle, error) { return nil, nil }
func (f *fakeVehicleRepo) Create(v *models.Vehicle) error                    { return nil }
func (f *fakeVehicleRepo) Update(v *models.Vehicle) error                    { return nil }
func (f *fakeVehicleRepo) Delete(id string) error                            { return nil }
func (f *fakeVehicleRepo) Count() (int64, error)                             { return 0, nil }

type fakeCenterRepo struct {
	centers  map[string]*models.ServiceCenter
	types    map[string]*models.ServiceType
	packages map[string]*models.ServicePackage
}

func (f *fakeCenterRepo) GetByID(id string) (*models.ServiceCenter, error) {
	c, ok := f.centers[id]
	if !ok {
		return nil, errors.New("center not found")
	}
	return c, nil
}
func (f *fakeCenterRepo) GetAllActive() ([]models.ServiceCenter, error) { return nil, nil }
func (f *fakeCenterRepo) SearchActive(query string) ([]models.ServiceCenter, error) {
	return nil, nil
}
func (f *fakeCenterRepo) Create(c *models.ServiceCenter) error          { return nil }
func (f *fakeCenterRepo) Update(c *models.ServiceCenter) error          { return nil }
func (f *fakeCenterRepo) Delete(id string) error                        { return nil }
func (f *fakeCenterRepo) GetServiceType(id string) (*models.ServiceType, error) {
	st, ok := f.types[id]
	if !ok {
		return nil, errors.New("service type not found")
	}
	return st, nil
}
func (f *fakeCenterRepo) GetServiceTypes(ids []string) ([]models.ServiceType, error) {
	return nil, nil
}
func (f *fakeCenterRepo) GetServicePackage(id string) (*models.ServicePackage, error) {
	pkg, ok := f.packages[id]
	if !ok {
		return nil, errors.New("service package not found")
	}
	return pkg, nil
}
func (f *fakeCenterRepo) GetServicePackages(ids []string) ([]models.ServicePackage, error) {
	return nil, nil
}
func (f *fakeCenterRepo) GetDaySchedule(centerID, date string) (*models.DaySchedule, error) {
	return nil, nil
}
func (f *fakeCenterRepo) UpsertDaySchedule(schedule *models.DaySchedule) error { return nil }

type fakeBookingRepo struct {
	created []*models.Appointment
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Appointment, error) {
	return nil, errors.New("not found")
}
func (f *fakeBookingRepo) GetByUser(userID string) ([]models.Appointment, error)   { return nil, nil }
func (f *fakeBookingRepo) GetByCenter(centerID string) ([]models.Appointment, error) { return nil, nil }
func (f *fakeBookingRepo) Create(a *models.Appointment) error {
	f.created = append(f.created, a)
	return nil
}
func (f *fakeBookingRepo) Update(a *models.Appointment) error                  { return nil }
func (f *fakeBookingRepo) UpdateStatus(id, status, paymentStatus string) error { return nil }
func (f *fakeBookingRepo) CountByStatus() (map[string]int64, error)            { return nil, nil }
func (f *fakeBookingRepo) CountByCenter() (map[string]int64, error)            { return nil, nil }
func (f *fakeBookingRepo) CountBookedAt(centerID, date, startTime string) (int64, error) {
	return 0, nil
}
func (f *fakeBookingRepo) GetUpcoming(date string) ([]models.Appointment, error) { return nil, nil }

type fakeAvailability struct {
	hasSlot bool
}

func (f *fakeAvailability) GetAvailableSlots(centerID, date string, period Period, showAll bool) (*models.SlotPage, error) {
	return &models.SlotPage{}, nil
}
func (f *fakeAvailability) HasSlot(centerID, date, startTime string) (bool, error) {
	return f.hasSlot, nil
}

type fakePaymentCreator struct {
	payment *models.Payment
	err     error
	calls   int
}

func (f *fakePaymentCreator) CreateForAppointment(appointment *models.Appointment, sessionID string) (*models.Payment, error) {
	f.calls++
	return f.payment, f.err
}

// alwaysOpen covers every weekday so date validation does not interfere with
// the behavior under test.
func alwaysOpen() models.OperatingHours {
	hours := models.OperatingHours{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		hours[day] = models.DayHours{Open: "08:00", Close: "17:00", IsOpen: true}
	}
	return hours
}

type wizardFixture struct {
	svc      *DefaultBookingSessionService
	bookings *fakeBookingRepo
	payments *fakePaymentCreator
	redis    *miniredis.Miniredis
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	bookings := &fakeBookingRepo{}
	payments := &fakePaymentCreator{}

	svc := &DefaultBookingSessionService{
		Cache: client,
		Vehicles: &fakeVehicleRepo{vehicles: map[string]*models.Vehicle{
			"veh-1": {ID: "veh-1", UserID: "user-1"},
			"veh-2": {ID: "veh-2", UserID: "someone-else"},
		}},
		Centers: &fakeCenterRepo{
			centers: map[string]*models.ServiceCenter{
				"ctr-1": {ID: "ctr-1", OperatingHours: alwaysOpen()},
			},
			types: map[string]*models.ServiceType{
				"svc-1": {ID: "svc-1", BasePrice: 500000},
			},
			packages: map[string]*models.ServicePackage{
				"pkg-1": {ID: "pkg-1", Price: 1200000},
			},
		},
		Bookings:     bookings,
		Availability: &fakeAvailability{hasSlot: true},
		Payments:     payments,
	}
	return &wizardFixture{svc: svc, bookings: bookings, payments: payments, redis: mr}
}

// completeDraft walks a session through all four steps and the details form.
func (f *wizardFixture) completeDraft(t *testing.T, paymentPreference string) *models.BookingSession {
	t.Helper()

	session, err := f.svc.StartSession("user-1")
	require.NoError(t, err)
	_, err = f.svc.SelectVehicle(session.SessionID, "veh-1")
	require.NoError(t, err)
	_, err = f.svc.SelectCenter(session.SessionID, "ctr-1")
	require.NoError(t, err)
	_, err = f.svc.SelectService(session.SessionID, models.ServiceSelection{Kind: models.SelectionServiceType, ID: "svc-1"})
	require.NoError(t, err)
	_, err = f.svc.SetSchedule(session.SessionID, "2026-03-02", "09:00-10:00")
	require.NoError(t, err)
	updated, err := f.svc.SetDetails(session.SessionID, "Battery check", models.PriorityHigh, paymentPreference)
	require.NoError(t, err)
	return updated
}

func TestWizardStepAdvancing(t *testing.T) {
	f := newWizardFixture(t)

	session, err := f.svc.StartSession("user-1")
	require.NoError(t, err)
	assert.Equal(t, models.StepVehicleSelect, session.Step)
	assert.Equal(t, models.PriorityMedium, session.Priority)

	session, err = f.svc.SelectVehicle(session.SessionID, "veh-1")
	require.NoError(t, err)
	assert.Equal(t, models.StepCenterSelect, session.Step)

	session, err = f.svc.SelectCenter(session.SessionID, "ctr-1")
	require.NoError(t, err)
	assert.Equal(t, models.StepServiceSelect, session.Step)

	session, err = f.svc.SelectService(session.SessionID, models.ServiceSelection{Kind: models.SelectionInspectionOnly})
	require.NoError(t, err)
	assert.Equal(t, models.StepDateTime, session.Step)
}

func TestSelectVehicleRejectsForeignVehicle(t *testing.T) {
	f := newWizardFixture(t)

	session, err := f.svc.StartSession("user-1")
	require.NoError(t, err)

	_, err = f.svc.SelectVehicle(session.SessionID, "veh-2")
	assert.ErrorIs(t, err, ErrVehicleNotOwned)
}

func TestSelectCenterRequiresVehicle(t *testing.T) {
	f := newWizardFixture(t)

	session, err := f.svc.StartSession("user-1")
	require.NoError(t, err)

	_, err = f.svc.SelectCenter(session.SessionID, "ctr-1")
	assert.ErrorIs(t, err, ErrNoVehicleSelected)
}

func TestGoToStepBackwardPreservesSelections(t *testing.T) {
	f := newWizardFixture(t)
	session := f.completeDraft(t, models.PaymentOffline)

	back, err := f.svc.GoToStep(session.SessionID, models.StepVehicleSelect)
	require.NoError(t, err)
	assert.Equal(t, models.StepVehicleSelect, back.Step)
	assert.Equal(t, "veh-1", back.VehicleID)
	assert.Equal(t, "ctr-1", back.ServiceCenterID)
	assert.True(t, back.Selection.IsSet())
	assert.Equal(t, "2026-03-02", back.AppointmentDate)
	assert.Equal(t, "09:00", back.AppointmentTime)

	// And forward again, since everything is still filled in.
	forward, err := f.svc.GoToStep(session.SessionID, models.StepDateTime)
	require.NoError(t, err)
	assert.Equal(t, models.StepDateTime, forward.Step)
}

func TestGoToStepForwardIsGated(t *testing.T) {
	f := newWizardFixture(t)

	session, err := f.svc.StartSession("user-1")
	require.NoError(t, err)

	_, err = f.svc.GoToStep(session.SessionID, models.StepServiceSelect)
	assert.ErrorIs(t, err, ErrNoVehicleSelected)

	_, err = f.svc.GoToStep(session.SessionID, 7)
	assert.Error(t, err)
}

func TestSetScheduleDateChangeClearsTime(t *testing.T) {
	f := newWizardFixture(t)
	session := f.completeDraft(t, models.PaymentOffline)
	require.Equal(t, "09:00", session.AppointmentTime)

	updated, err := f.svc.SetSchedule(session.SessionID, "2026-03-03", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-03", updated.AppointmentDate)
	assert.Empty(t, updated.AppointmentTime, "changing the date invalidates the chosen slot")
}

func TestSetScheduleRejectsUnavailableSlot(t *testing.T) {
	f := newWizardFixture(t)
	session := f.completeDraft(t, models.PaymentOffline)

	f.svc.Availability = &fakeAvailability{hasSlot: false}
	_, err := f.svc.SetSchedule(session.SessionID, "2026-03-02", "09:00-10:00")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestSubmitValidationOrder(t *testing.T) {
	f := newWizardFixture(t)

	// No date or time set: fails before anything else is looked at, and no
	// appointment is created.
	session, err := f.svc.StartSession("user-1")
	require.NoError(t, err)
	_, err = f.svc.Submit(session.SessionID)
	assert.ErrorIs(t, err, ErrNoDateTime)
	assert.Empty(t, f.bookings.created)
	assert.Zero(t, f.payments.calls)

	// Date and time present but no description.
	session = f.completeDraft(t, models.PaymentOffline)
	_, err = f.svc.SetDetails(session.SessionID, "   ", "", "")
	require.NoError(t, err)
	_, err = f.svc.Submit(session.SessionID)
	assert.ErrorIs(t, err, ErrNoDescription)
	assert.Empty(t, f.bookings.created)
}

func TestSubmitOfflineCompletesAndDiscardsDraft(t *testing.T) {
	f := newWizardFixture(t)
	session := f.completeDraft(t, models.PaymentOffline)

	result, err := f.svc.Submit(session.SessionID)
	require.NoError(t, err)

	assert.False(t, result.RequiresPayment)
	assert.Nil(t, result.Payment)
	require.NotNil(t, result.Appointment)
	assert.Equal(t, models.AppointmentPending, result.Appointment.Status)
	assert.Equal(t, int64(500000), result.Appointment.TotalAmount)
	assert.Zero(t, f.payments.calls)

	// The draft is gone.
	_, err = f.svc.GetSession(session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSubmitOnlineReturnsPaymentAndKeepsDraft(t *testing.T) {
	f := newWizardFixture(t)
	f.payments.payment = &models.Payment{PaymentID: "pay-1", OrderCode: 42, CheckoutURL: "https://pay.example/42"}
	session := f.completeDraft(t, models.PaymentOnline)

	result, err := f.svc.Submit(session.SessionID)
	require.NoError(t, err)

	assert.True(t, result.RequiresPayment)
	require.NotNil(t, result.Payment)
	assert.Equal(t, "pay-1", result.Payment.PaymentID)
	assert.Equal(t, 1, f.payments.calls)

	// The draft survives until the payment settles.
	_, err = f.svc.GetSession(session.SessionID)
	assert.NoError(t, err)
}

func TestSubmitOnlineWithoutPaymentIsInconsistent(t *testing.T) {
	f := newWizardFixture(t)
	f.payments.payment = nil
	session := f.completeDraft(t, models.PaymentOnline)

	_, err := f.svc.Submit(session.SessionID)
	assert.ErrorIs(t, err, ErrPaymentInconsistent)

	// The draft stays intact so the user can retry.
	_, err = f.svc.GetSession(session.SessionID)
	assert.NoError(t, err)
}

func TestComputeAmountPerSelectionKind(t *testing.T) {
	f := newWizardFixture(t)

	for _, tc := range []struct {
		selection models.ServiceSelection
		want      int64
	}{
		{models.ServiceSelection{Kind: models.SelectionServiceType, ID: "svc-1"}, 500000},
		{models.ServiceSelection{Kind: models.SelectionServicePackage, ID: "pkg-1"}, 1200000},
		{models.ServiceSelection{Kind: models.SelectionInspectionOnly}, inspectionFeeVND},
	} {
		amount, err := f.svc.computeAmount(tc.selection)
		require.NoError(t, err, fmt.Sprintf("kind %s", tc.selection.Kind))
		assert.Equal(t, tc.want, amount)
	}

	_, err := f.svc.computeAmount(models.ServiceSelection{})
	assert.ErrorIs(t, err, ErrNoServiceSelected)
}

func TestSessionExpiry(t *testing.T) {
	f := newWizardFixture(t)

	session, err := f.svc.StartSession("user-1")
	require.NoError(t, err)

	f.redis.FastForward(sessionTTL + time.Minute)

	_, err = f.svc.GetSession(session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
