package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/model"
)

type MockOverdueLister struct {
	mock.Mock
}

func (m *MockOverdueLister) GetOverdueBooks(ctx context.Context, asOf time.Time) ([]model.IssuedBook, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IssuedBook), args.Error(1)
}

func TestOverdueReporter_Run(t *testing.T) {
	fixedNow := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(*MockOverdueLister)
		wantCount int
		wantErr   bool
		wantLog   []string
	}{
		{
			name: "reports each overdue loan",
			setupMock: func(m *MockOverdueLister) {
				m.On("GetOverdueBooks", mock.Anything, fixedNow).Return([]model.IssuedBook{
					{ID: "l1", UserID: "u1", BookID: "b1", ReturnDate: "2024-04-01"},
					{ID: "l2", UserID: "u2", BookID: "b2", ReturnDate: "2024-04-30"},
				}, nil)
			},
			wantCount: 2,
			wantLog:   []string{`"loan_id":"l1"`, `"loan_id":"l2"`, `"overdue":2`, `"as_of":"2024-05-01"`},
		},
		{
			name: "nothing overdue",
			setupMock: func(m *MockOverdueLister) {
				m.On("GetOverdueBooks", mock.Anything, fixedNow).Return([]model.IssuedBook{}, nil)
			},
			wantLog: []string{`"overdue":0`},
		},
		{
			name: "store failure",
			setupMock: func(m *MockOverdueLister) {
				m.On("GetOverdueBooks", mock.Anything, fixedNow).Return(nil, errors.New("boom"))
			},
			wantErr: true,
			wantLog: []string{"overdue report failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			lister := new(MockOverdueLister)
			tt.setupMock(lister)

			r := NewOverdueReporter(lister, zerolog.New(&buf))
			r.now = func() time.Time { return fixedNow }

			count, err := r.Run(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCount, count)
			for _, s := range tt.wantLog {
				assert.Contains(t, buf.String(), s)
			}
			lister.AssertExpectations(t)
		})
	}
}

func TestSchedule(t *testing.T) {
	r := NewOverdueReporter(new(MockOverdueLister), zerolog.Nop())

	for _, spec := range []string{"", "off", " OFF "} {
		c, err := Schedule(spec, r, zerolog.Nop())
		require.NoError(t, err)
		assert.Nil(t, c)
	}

	_, err := Schedule("not a cron line", r, zerolog.Nop())
	assert.Error(t, err)

	c, err := Schedule("30 8 * * *", r, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}
