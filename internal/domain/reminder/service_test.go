package reminder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/smartcredit/internal/domain/activity"
	"github.com/rpggio/smartcredit/internal/domain/ledger"
	"github.com/rpggio/smartcredit/internal/domain/reminder"
	"github.com/rpggio/smartcredit/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteText(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type fakeOpener struct {
	links []string
	err   error
}

func (f *fakeOpener) Open(_ context.Context, link string) error {
	if f.err != nil {
		return f.err
	}
	f.links = append(f.links, link)
	return nil
}

var ravi = ledger.Customer{ID: 42, Name: "Ravi", Phone: "9876543210", Amount: "500"}

const raviLink = "https://wa.me/919876543210?text=Dear%20Ravi%2C%0A%0AYou%20have%20%E2%82%B9500%20pending.%20Please%20clear%20it%20soon.%0A%0AThank%20you!"

func TestBuild(t *testing.T) {
	svc := reminder.NewService(nil, nil, nil, nil)

	r, err := svc.Build(ravi)
	require.NoError(t, err)
	require.Equal(t, "Dear Ravi,\n\nYou have ₹500 pending. Please clear it soon.\n\nThank you!", r.Message)
	require.Equal(t, raviLink, r.Link)
	require.Equal(t, int64(42), r.RecordID)
}

func TestBuild_MissingPhone(t *testing.T) {
	svc := reminder.NewService(nil, nil, nil, nil)

	for _, phone := range []string{"", "   "} {
		c := ravi
		c.Phone = phone
		_, err := svc.Build(c)
		require.ErrorIs(t, err, reminder.ErrMissingPhone)
	}
}

func TestBuild_CountryCode(t *testing.T) {
	svc := reminder.NewService(nil, nil, nil, nil, reminder.WithCountryCode("+44"))

	r, err := svc.Build(ravi)
	require.NoError(t, err)
	require.Contains(t, r.Link, "https://wa.me/449876543210?text=")
}

func TestSend(t *testing.T) {
	clip := &fakeClipboard{}
	opener := &fakeOpener{}
	activities := &mocks.ActivityRepository{}
	activities.On("Log", mock.Anything, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeReminderSent && e.RecordID != nil && *e.RecordID == 42
	})).Return(nil).Once()

	svc := reminder.NewService(clip, opener, activities, nil)
	r, err := svc.Send(context.Background(), ravi)
	require.NoError(t, err)
	require.True(t, r.Copied)
	require.True(t, r.Opened)
	require.Equal(t, r.Message, clip.text)
	require.Equal(t, []string{raviLink}, opener.links)
	activities.AssertExpectations(t)
}

func TestSend_ClipboardFailureIsIgnored(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no display")}
	opener := &fakeOpener{}

	svc := reminder.NewService(clip, opener, nil, nil)
	r, err := svc.Send(context.Background(), ravi)
	require.NoError(t, err)
	require.False(t, r.Copied)
	require.True(t, r.Opened)
}

func TestSend_MissingPhoneTouchesNothing(t *testing.T) {
	clip := &fakeClipboard{}
	opener := &fakeOpener{}
	activities := &mocks.ActivityRepository{}

	svc := reminder.NewService(clip, opener, activities, nil)
	c := ravi
	c.Phone = ""
	_, err := svc.Send(context.Background(), c)
	require.ErrorIs(t, err, reminder.ErrMissingPhone)
	require.Empty(t, clip.text)
	require.Empty(t, opener.links)
	activities.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

func TestSend_OpenerFailure(t *testing.T) {
	opener := &fakeOpener{err: errors.New("no browser")}

	svc := reminder.NewService(nil, opener, nil, nil)
	r, err := svc.Send(context.Background(), ravi)
	require.Error(t, err)
	require.NotNil(t, r)
	require.Equal(t, raviLink, r.Link)
	require.False(t, r.Opened)
}
