package streamlog

import (
	"testing"

	"github.com/cuemby/hutch/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestLogLevels(t *testing.T) {
	entry := types.LogEntry{
		Type:    "parse",
		Claimed: "parse",
		Data:    map[string]any{"val": 42},
	}

	t.Run("off records nothing", func(t *testing.T) {
		l := New(Off)
		l.Record(entry)
		assert.Empty(t, l.Sample())
	})

	t.Run("events strips data", func(t *testing.T) {
		l := New(Events)
		l.Record(entry)
		sample := l.Sample()
		assert.Len(t, sample, 1)
		assert.Equal(t, "parse", sample[0].Type)
		assert.Equal(t, "parse", sample[0].Claimed)
		assert.Nil(t, sample[0].Data)
	})

	t.Run("data keeps payload", func(t *testing.T) {
		l := New(Data)
		l.Record(entry)
		sample := l.Sample()
		assert.Len(t, sample, 1)
		assert.Equal(t, map[string]any{"val": 42}, sample[0].Data)
	})
}

func TestLogAppendOrder(t *testing.T) {
	l := New(Events)
	l.Record(types.LogEntry{Type: "a"})
	l.Record(types.LogEntry{Type: "b"})
	l.Record(types.LogEntry{Type: "c"})

	sample := l.Sample()
	assert.Equal(t, []string{"a", "b", "c"}, []string{sample[0].Type, sample[1].Type, sample[2].Type})
	assert.Equal(t, 3, l.Len())
}

func TestSampleIsSnapshot(t *testing.T) {
	l := New(Events)
	l.Record(types.LogEntry{Type: "a"})

	sample := l.Sample()
	l.Record(types.LogEntry{Type: "b"})

	// The earlier sample does not grow
	assert.Len(t, sample, 1)
	assert.Equal(t, 2, l.Len())
}

func TestNilLogIsSilent(t *testing.T) {
	var l *Log
	l.Record(types.LogEntry{Type: "a"})
	assert.Nil(t, l.Sample())
	assert.Zero(t, l.Len())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "off", want: Off},
		{in: "events", want: Events},
		{in: "data", want: Data},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
