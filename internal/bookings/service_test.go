package bookings_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/mock/gomock"

	"wildtrack-backend/internal/bookings"
	"wildtrack-backend/internal/bookings/mocks"
	"wildtrack-backend/internal/httpx"
)

var sast = time.FixedZone("SAST", 2*60*60)

type stubCatalog map[string]float64

func (c stubCatalog) PriceOf(ctx context.Context, name string) (float64, bool, error) {
	price, ok := c[name]
	return price, ok, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	seen []bookings.Booking
}

func (n *recordingNotifier) BookingReceived(b bookings.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seen = append(n.seen, b)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func validRequest() bookings.CreateRequest {
	return bookings.CreateRequest{
		Name:          "Naledi Dube",
		Email:         "naledi@example.com",
		Phone:         "+27 82 555 0101",
		SafariPackage: "Night Safari Drive",
		Date:          "2026-10-20",
		Guests:        3,
	}
}

func TestService_CreateComputesTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	notifier := &recordingNotifier{}
	now := time.Date(2026, 10, 18, 8, 0, 0, 0, sast)
	svc := bookings.NewService(mockRepo, stubCatalog{"Night Safari Drive": 1400}, notifier, sast).WithClock(fixedClock(now))

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	booking, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 4200.0, booking.TotalAmount)
	assert.Equal(t, bookings.StatusPending, booking.Status)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, sast), booking.Date)
	assert.Equal(t, now, booking.CreatedAt)
	require.Len(t, notifier.seen, 1)
	assert.Equal(t, booking.ID, notifier.seen[0].ID)
}

func TestService_CreateUnknownPackagePricesZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	svc := bookings.NewService(mockRepo, stubCatalog{}, nil, sast)

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	req := validRequest()
	req.SafariPackage = "Custom Package"
	booking, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, booking.TotalAmount)
}

func TestService_CreateStoreFailureSkipsNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	notifier := &recordingNotifier{}
	svc := bookings.NewService(mockRepo, stubCatalog{}, notifier, sast)

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("no primary"))

	_, err := svc.Create(context.Background(), validRequest())
	assert.Error(t, err)
	assert.Empty(t, notifier.seen)
}

func TestService_CheckDate(t *testing.T) {
	// 01:30 on the 18th in SAST is still the 17th in UTC.
	now := time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC)
	svc := bookings.NewService(nil, nil, nil, sast).WithClock(fixedClock(now))

	assert.Empty(t, svc.CheckDate("2026-10-18"), "today is accepted")
	assert.Empty(t, svc.CheckDate("2027-01-01"))

	fields := svc.CheckDate("2026-10-17")
	require.Len(t, fields, 1, "yesterday is rejected")
	assert.Equal(t, "date", fields[0].Field)

	assert.Empty(t, svc.CheckDate("not-a-date"), "format errors are reported by struct validation")
}

func TestService_UpdateRequiresAField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := bookings.NewService(mocks.NewMockRepository(ctrl), nil, nil, sast)

	_, err := svc.Update(context.Background(), "b1", bookings.UpdateRequest{})
	assert.ErrorIs(t, err, bookings.ErrEmptyUpdate)
}

func TestService_UpdateStatusAndNotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	svc := bookings.NewService(mockRepo, nil, nil, sast)

	status, notes := bookings.StatusConfirmed, "  paid deposit "
	mockRepo.EXPECT().
		Update(gomock.Any(), "b1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, id string, set bson.M) (bookings.Booking, error) {
			assert.Equal(t, bookings.StatusConfirmed, set["status"])
			assert.Equal(t, "paid deposit", set["notes"])
			return bookings.Booking{ID: id, Status: bookings.StatusConfirmed, Notes: "paid deposit"}, nil
		})

	updated, err := svc.Update(context.Background(), "b1", bookings.UpdateRequest{Status: &status, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusConfirmed, updated.Status)

	mockRepo.EXPECT().Update(gomock.Any(), "gone", gomock.Any()).Return(bookings.Booking{}, mongo.ErrNoDocuments)
	_, err = svc.Update(context.Background(), "gone", bookings.UpdateRequest{Status: &status})
	assert.ErrorIs(t, err, bookings.ErrNotFound)
}

func TestService_DeleteNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	svc := bookings.NewService(mockRepo, nil, nil, sast)

	mockRepo.EXPECT().Delete(gomock.Any(), "b1").Return(false, nil)
	assert.ErrorIs(t, svc.Delete(context.Background(), "b1"), bookings.ErrNotFound)
}

func TestService_ListPaginates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	svc := bookings.NewService(mockRepo, nil, nil, sast)

	filter := bookings.ListFilter{Status: bookings.StatusPending}
	mockRepo.EXPECT().List(gomock.Any(), filter, int64(10), int64(20)).Return([]bookings.Booking{{ID: "b21"}}, nil)
	mockRepo.EXPECT().Count(gomock.Any(), filter).Return(int64(21), nil)

	items, total, err := svc.List(context.Background(), filter, httpx.Page{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(21), total)
}

func TestService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	svc := bookings.NewService(mockRepo, nil, nil, sast)

	mockRepo.EXPECT().CountByStatus(gomock.Any()).Return(map[string]int64{
		bookings.StatusPending:   4,
		bookings.StatusConfirmed: 2,
		bookings.StatusCompleted: 1,
	}, nil)
	mockRepo.EXPECT().Recent(gomock.Any(), int64(5)).Return([]bookings.Recent{{ID: "b7"}}, nil)

	stats, recent, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bookings.Stats{Total: 7, Pending: 4, Confirmed: 2, Completed: 1}, stats)
	assert.Len(t, recent, 1)
}
